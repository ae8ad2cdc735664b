// Package user defines the account directory domain.
package user

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/momentumhq/momentum/id"
	"github.com/momentumhq/momentum/types"
)

// User is one account. The password is stored only as a bcrypt hash.
type User struct {
	types.Entity
	ID           id.UserID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash []byte    `json:"-"`
}

// SetPassword hashes plaintext with bcrypt and stores the hash.
func (u *User) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword reports whether plaintext matches the stored hash.
func (u *User) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(plaintext)) == nil
}
