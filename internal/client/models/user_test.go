package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fcpanel/internal/common"
)

func validForm() RegisterForm {
	return RegisterForm{
		RegisterData: RegisterData{
			Username: "alice",
			Password: "s3cret",
			Nom:      "Martin",
			Prenom:   "Alice",
			Email:    "alice@example.com",
		},
		ConfirmPassword: "s3cret",
	}
}

func TestRegisterForm_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *RegisterForm)
		wantErr error
	}{
		{name: "valid", mutate: func(*RegisterForm) {}},
		{name: "password mismatch", mutate: func(f *RegisterForm) { f.ConfirmPassword = "other" }, wantErr: common.ErrPasswordMismatch},
		{name: "mismatch wins over empty fields", mutate: func(f *RegisterForm) { f.Username = ""; f.ConfirmPassword = "x" }, wantErr: common.ErrPasswordMismatch},
		{name: "empty username", mutate: func(f *RegisterForm) { f.Username = "  " }, wantErr: common.ErrRequiredField},
		{name: "empty email", mutate: func(f *RegisterForm) { f.Email = "" }, wantErr: common.ErrRequiredField},
		{name: "empty password", mutate: func(f *RegisterForm) { f.Password = ""; f.ConfirmPassword = "" }, wantErr: common.ErrRequiredField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			err := f.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterData_Credentials(t *testing.T) {
	f := validForm()
	assert.Equal(t, LoginCredentials{Username: "alice", Password: "s3cret"}, f.Credentials())
}

func TestLoginCredentials_Validate(t *testing.T) {
	require.NoError(t, LoginCredentials{Username: "a", Password: "b"}.Validate())
	require.ErrorIs(t, LoginCredentials{Password: "b"}.Validate(), common.ErrRequiredField)
	require.ErrorIs(t, LoginCredentials{Username: "a"}.Validate(), common.ErrRequiredField)
}

func TestUser_NormalizeAndDisplayName(t *testing.T) {
	u := &User{ID: 1, Username: "alice"}
	u.Normalize()
	assert.Equal(t, "alice", u.Email)
	assert.Equal(t, "alice", u.DisplayName())

	u = &User{ID: 2, Username: "bob", Email: "bob@example.com", Nom: "Durand", Prenom: "Bob"}
	u.Normalize()
	assert.Equal(t, "bob@example.com", u.Email)
	assert.Equal(t, "Bob Durand", u.DisplayName())
}
