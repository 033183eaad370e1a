package tokenhash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed = errors.New("token hashing failed")
	ErrMismatch      = errors.New("token does not match stored hash")
	ErrInvalidToken  = errors.New("invalid token id")
)

const DefaultCost = bcrypt.DefaultCost

// Hash stores refresh-token ids, never the signed token itself (bcrypt caps input at 72 bytes).
func Hash(tokenID string) (string, error) {
	if tokenID == "" {
		return "", ErrInvalidToken
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(tokenID), DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}

	return string(hashedBytes), nil
}

func Compare(hashed, tokenID string) error {
	if hashed == "" || tokenID == "" {
		return ErrInvalidToken
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(tokenID))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}

	return nil
}
