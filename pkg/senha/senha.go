package senha

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes is the longest password bcrypt accepts.
const MaxBytes = 72

var ErrMuitoLonga = errors.New("senha: mais de 72 bytes")

// Hash returns the bcrypt hash of senha. Empty passwords and values that
// are already bcrypt hashes come back unchanged.
func Hash(senha string) (string, error) {
	if senha == "" || IsHash(senha) {
		return senha, nil
	}
	if len(senha) > MaxBytes {
		return "", ErrMuitoLonga
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	return string(hash), err
}

func IsHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

// Confere reports whether senha matches hash.
func Confere(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}
