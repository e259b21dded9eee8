package model

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// Account is the transient credential holder built for a single login.
// The stated password is only kept as a bcrypt hash.
type Account struct {
	Username string
	Role     Role
	hash     []byte
}

func NewAccount(username, password string, role Role, cost int) (*Account, error) {
	hash, err := bcrypt.GenerateFromPassword(digest(password), cost)
	if err != nil {
		return nil, err
	}
	return &Account{Username: username, Role: role, hash: hash}, nil
}

// Authenticate reports whether pwd satisfies the role rule and equals the stated password.
func (a *Account) Authenticate(pwd string) bool {
	if a.Role.CheckPassword(pwd) != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword(a.hash, digest(pwd)) == nil
}

// digest maps a password of any length onto 64 hex bytes, under bcrypt's 72-byte input limit.
func digest(pwd string) []byte {
	sum := sha256.Sum256([]byte(pwd))
	dst := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(dst, sum[:])
	return dst
}
