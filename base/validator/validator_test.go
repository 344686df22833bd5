package validator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidatorTestSuite struct {
	suite.Suite
}

func (s *ValidatorTestSuite) SetupTest() {
}

func (s *ValidatorTestSuite) TearDownTest() {
}

func (s *ValidatorTestSuite) SetupSuite() {
}

func (s *ValidatorTestSuite) TearDownSuite() {
}

func (s *ValidatorTestSuite) TestIsValidAddress() {
	tests := []struct {
		desc       string
		address    string
		expIsValid bool
	}{
		{
			desc:       "invalid address",
			address:    "0x000",
			expIsValid: false,
		},
		{
			desc:       "valid address - real address",
			address:    "0x939ae6A4C8dfDBB1f7085189574F0A938013952A",
			expIsValid: true,
		},
		{
			desc:       "valid address - lower case",
			address:    "0x939ae6a4c8dfdbb1f7085189574f0a938013952b",
			expIsValid: true,
		},
	}
	for _, t := range tests {
		s.Equal(t.expIsValid, IsValidAddress(t.address), t.desc)
	}
}

func TestValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(ValidatorTestSuite))
}

func (s *ValidatorTestSuite) TestIsUint256() {
	s.True(IsUint256("0"))
	s.True(IsUint256("115792089237316195423570985008687907853269984665640564039457584007913129639935"))
	s.False(IsUint256("115792089237316195423570985008687907853269984665640564039457584007913129639936"))
	s.False(IsUint256("-1"))
	s.False(IsUint256("+1"))
	s.False(IsUint256("0x10"))
	s.False(IsUint256(""))
}

func (s *ValidatorTestSuite) TestCustomTags() {
	type req struct {
		Amount    string `validate:"required,uint256"`
		Signature string `validate:"required,hexbytes"`
		Seller    string `validate:"required,eth_addr"`
	}
	v := NewCustomValidator(New())

	s.NoError(v.Validate(&req{Amount: "100", Signature: "0xabcd", Seller: "0x939ae6a4c8dfdbb1f7085189574f0a938013952b"}))
	s.Error(v.Validate(&req{Amount: "1.5", Signature: "0xabcd", Seller: "0x939ae6a4c8dfdbb1f7085189574f0a938013952b"}))
	s.Error(v.Validate(&req{Amount: "100", Signature: "abcd", Seller: "0x939ae6a4c8dfdbb1f7085189574f0a938013952b"}))
	s.Error(v.Validate(&req{Amount: "100", Signature: "0xabcd", Seller: "0x1234"}))
}
