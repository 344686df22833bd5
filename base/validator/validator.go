package validator

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	checksum := common.HexToAddress(address).Hex()
	return strings.ToLower(checksum) == strings.ToLower(address)
}

// IsUint256 accepts a base 10 integer string in [0, 2^256)
func IsUint256(s string) bool {
	if s == "" || strings.HasPrefix(s, "+") {
		return false
	}
	n, ok := new(big.Int).SetString(s, 10)
	return ok && n.Sign() >= 0 && n.Cmp(math.MaxBig256) <= 0
}

// New registers the exchange's tags on top of validator's built-ins:
// uint256 for decimal amounts and hexbytes for 0x prefixed byte strings
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("uint256", func(fl validator.FieldLevel) bool {
		return IsUint256(fl.Field().String())
	})
	_ = v.RegisterValidation("hexbytes", func(fl validator.FieldLevel) bool {
		_, err := hexutil.Decode(fl.Field().String())
		return err == nil
	})
	return v
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
