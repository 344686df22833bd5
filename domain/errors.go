package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrInvalidSignature    = errors.New("Invalid signature")

	// configuration
	ErrInvalidFee      = errors.New("InvalidFee")
	ErrInvalidAddress  = errors.New("InvalidAddress")
	ErrAlreadyAccepted = errors.New("AlreadyAccepted")
	ErrNotAccepted     = errors.New("NotAccepted")
	ErrArrayEmpty      = errors.New("ArrayEmpty")

	// authorization
	ErrNotOwner                  = errors.New("NotOwner")
	ErrOrderCreatorCannotExecute = errors.New("OrderCreatorCannotExecute")
	ErrCurrencyNotAccepted       = errors.New("CurrencyNotAccepted")
	ErrCollectionNotAccepted     = errors.New("CollectionNotAccepted")
	ErrUnauthorized              = errors.New("Unauthorized")

	// staleness
	ErrOrderExpired          = errors.New("OrderExpired")
	ErrInvalidOrder          = errors.New("InvalidOrder")
	ErrNonceLowerThanCurrent = errors.New("NonceLowerThanCurrent")
	ErrOrderAlreadyCancelled = errors.New("OrderAlreadyCancelled")

	// integrity
	ErrSignatureInvalid    = errors.New("SignatureInvalid")
	ErrSellerNotOwner      = errors.New("SellerNotOwner")
	ErrInsufficientBalance = errors.New("InsufficientBalance")
	ErrInvalidPayment      = errors.New("InvalidPayment")
	ErrZeroAmount          = errors.New("ZeroAmount")

	// asset ledger
	ErrInsufficientAllowance = errors.New("InsufficientAllowance")
	ErrNotTokenOwner         = errors.New("NotTokenOwner")
	ErrTransferRejected      = errors.New("TransferRejected")
)

// ErrorClass groups failures by what a caller can do about them
type ErrorClass string

const (
	ErrorClassConfiguration ErrorClass = "configuration"
	ErrorClassAuthorization ErrorClass = "authorization"
	ErrorClassStaleness     ErrorClass = "staleness"
	ErrorClassIntegrity     ErrorClass = "integrity"
	ErrorClassUnknown       ErrorClass = "unknown"
)

var errorClasses = map[error]ErrorClass{
	ErrInvalidFee:      ErrorClassConfiguration,
	ErrInvalidAddress:  ErrorClassConfiguration,
	ErrAlreadyAccepted: ErrorClassConfiguration,
	ErrNotAccepted:     ErrorClassConfiguration,
	ErrArrayEmpty:      ErrorClassConfiguration,

	ErrNotOwner:                  ErrorClassAuthorization,
	ErrUnauthorized:              ErrorClassAuthorization,
	ErrOrderCreatorCannotExecute: ErrorClassAuthorization,
	ErrCurrencyNotAccepted:       ErrorClassAuthorization,
	ErrCollectionNotAccepted:     ErrorClassAuthorization,

	ErrOrderExpired:          ErrorClassStaleness,
	ErrInvalidOrder:          ErrorClassStaleness,
	ErrNonceLowerThanCurrent: ErrorClassStaleness,
	ErrOrderAlreadyCancelled: ErrorClassStaleness,

	ErrSignatureInvalid:      ErrorClassIntegrity,
	ErrSellerNotOwner:        ErrorClassIntegrity,
	ErrInsufficientBalance:   ErrorClassIntegrity,
	ErrInvalidPayment:        ErrorClassIntegrity,
	ErrZeroAmount:            ErrorClassIntegrity,
	ErrInsufficientAllowance: ErrorClassIntegrity,
	ErrNotTokenOwner:         ErrorClassIntegrity,
	ErrTransferRejected:      ErrorClassIntegrity,
}

// ClassOf finds the class of the first known sentinel in err's chain
func ClassOf(err error) ErrorClass {
	for sentinel, class := range errorClasses {
		if errors.Is(err, sentinel) {
			return class
		}
	}
	return ErrorClassUnknown
}

// IsRetryable tells whether the same order may succeed later without being re-signed.
// Expiry is final for a signed order, balances and ownership may still change.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrInsufficientAllowance) ||
		errors.Is(err, ErrSellerNotOwner) ||
		errors.Is(err, ErrCurrencyNotAccepted) ||
		errors.Is(err, ErrCollectionNotAccepted)
}
