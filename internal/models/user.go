package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like local@domain-with-dot.
func ValidEmail(s string) bool { return emailPattern.MatchString(s) }

// NormalizeEmail trims and lowercases an address before it is stored or compared.
func NormalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) Validate() error {
	if !ValidEmail(u.Email) {
		return errors.New("invalid email")
	}
	return nil
}
