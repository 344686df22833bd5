package ethereum

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrInvalidSignatureFormat = errors.New("invalid signature format")

// ValidateMsgSignature checks a personal_sign signature over message
func ValidateMsgSignature(message []byte, signature, signer string) (bool, error) {
	return validateSignature(message, signature, signer, true)
}

// ValidateHashSignature checks a signature over an already hashed digest
func ValidateHashSignature(hash []byte, signature, signer string) (bool, error) {
	return validateSignature(hash, signature, signer, false)
}

func validateSignature(data []byte, signature, signer string, applyTextHash bool) (bool, error) {
	if !common.IsHexAddress(signer) {
		return false, fmt.Errorf("%w: bad signer %q", ErrInvalidSignatureFormat, signer)
	}
	hash := data
	if applyTextHash {
		hash = accounts.TextHash(data)
	}
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidSignatureFormat, err)
	}
	recovered, err := RecoverSigner(hash, sig)
	if err != nil {
		return false, err
	}
	return recovered == common.HexToAddress(signer), nil
}

// RecoverSigner returns the address that produced sig over hash.
// sig is not modified.
func RecoverSigner(hash, sig []byte) (common.Address, error) {
	if len(hash) != common.HashLength {
		return common.Address{}, fmt.Errorf("%w: hash must be %d bytes long", ErrInvalidSignatureFormat, common.HashLength)
	}
	return ecRecover(hash, sig)
}

// ecRecover returns the address for the account that was used to create the signature.
// adapted from go-ethereum internal/ethapi.
func ecRecover(data []byte, signature []byte) (common.Address, error) {
	if len(signature) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("%w: signature must be %d bytes long", ErrInvalidSignatureFormat, crypto.SignatureLength)
	}
	sig := make([]byte, crypto.SignatureLength)
	copy(sig, signature)

	// support both versions of `eth_sign` responses
	//	@see	https://github.com/ethereumjs/ethereumjs-util/blob/master/src/signature.ts#L112
	if sig[crypto.RecoveryIDOffset] < 27 {
		sig[crypto.RecoveryIDOffset] += 27
	}

	if sig[crypto.RecoveryIDOffset] != 27 && sig[crypto.RecoveryIDOffset] != 28 {
		return common.Address{}, fmt.Errorf("%w: V is not 27 or 28", ErrInvalidSignatureFormat)
	}

	sig[crypto.RecoveryIDOffset] -= 27 // Transform yellow paper V from 27/28 to 0/1

	rpk, err := crypto.SigToPub(data, sig)
	if err != nil {
		return common.Address{}, err
	}

	return crypto.PubkeyToAddress(*rpk), nil
}
