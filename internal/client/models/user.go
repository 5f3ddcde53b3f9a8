// Package models defines client-side data models used by the fcpanel CLI.
package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fcpanel/internal/common"
)

// User is the identity record returned by the auth API. The client never
// mutates it; a copy is cached in the session store as the current user.
type User struct {
	ID       int64  `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	Nom      string `json:"nom,omitempty" yaml:"nom,omitempty"`
	Prenom   string `json:"prenom,omitempty" yaml:"prenom,omitempty"`
}

// Normalize fills the optional profile fields the way the dashboard shows
// them: a missing email falls back to the username.
func (u *User) Normalize() {
	if u.Email == "" {
		u.Email = u.Username
	}
}

// DisplayName returns "Prenom Nom" when known, the username otherwise.
func (u *User) DisplayName() string {
	full := strings.TrimSpace(u.Prenom + " " + u.Nom)
	if full == "" {
		return u.Username
	}
	return full
}

// LoginCredentials is the signin request body.
type LoginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterData is the signup request body.
type RegisterData struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nom      string `json:"nom"`
	Prenom   string `json:"prenom"`
	Email    string `json:"email"`
}

// Credentials returns the login credentials used for the automatic login
// that follows a successful signup.
func (d RegisterData) Credentials() LoginCredentials {
	return LoginCredentials{Username: d.Username, Password: d.Password}
}

// RegisterForm is what the user fills in; it only differs from RegisterData
// by the password confirmation, which never leaves the client.
type RegisterForm struct {
	RegisterData
	ConfirmPassword string
}

// Validate checks the form locally. A password mismatch is reported before
// any other problem so the user sees it first, as the web form did.
func (f *RegisterForm) Validate() error {
	if f.Password != f.ConfirmPassword {
		return common.ErrPasswordMismatch
	}
	fields := []struct{ name, value string }{
		{"username", f.Username},
		{"password", f.Password},
		{"email", f.Email},
		{"nom", f.Nom},
		{"prenom", f.Prenom},
	}
	for _, fld := range fields {
		if strings.TrimSpace(fld.value) == "" {
			return fmt.Errorf("%s: %w", fld.name, common.ErrRequiredField)
		}
	}
	return nil
}

// Validate rejects credentials with an empty username or password.
func (c LoginCredentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return fmt.Errorf("username: %w", common.ErrRequiredField)
	}
	if c.Password == "" {
		return fmt.Errorf("password: %w", common.ErrRequiredField)
	}
	return nil
}
