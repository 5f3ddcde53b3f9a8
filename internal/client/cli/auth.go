package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fcpanel/internal/client/client"
	"github.com/dmitrijs2005/fcpanel/internal/client/models"
	"github.com/dmitrijs2005/fcpanel/internal/common"
)

// Register prompts for the profile and a confirmed password, creates the
// account and logs in with the same credentials.
func (a *App) Register(ctx context.Context) error {
	return a.registerWith(ctx, models.RegisterForm{})
}

// registerWith prompts only for the fields of form that are still empty.
// The password is always prompted for.
func (a *App) registerWith(ctx context.Context, form models.RegisterForm) error {
	prompts := []struct {
		text string
		dst  *string
	}{
		{"Enter user name", &form.Username},
		{"Enter first name (prenom)", &form.Prenom},
		{"Enter last name (nom)", &form.Nom},
		{"Enter email", &form.Email},
	}
	for _, p := range prompts {
		if *p.dst != "" {
			continue
		}
		v, err := a.readText(p.text)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	pw, confirm, err := a.readPasswordPair()
	if err != nil {
		return err
	}
	form.Password, form.ConfirmPassword = pw, confirm

	return a.register(ctx, form)
}

func (a *App) register(ctx context.Context, form models.RegisterForm) error {
	done := a.busy(a.auth.Loading)
	u, err := a.auth.Register(ctx, form)
	done()
	if err != nil {
		return a.report(ctx, err)
	}
	a.println(fmt.Sprintf("Registered and logged in as %s", u.Username))
	return nil
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	return a.loginAs(ctx, "")
}

// loginAs prompts for the user name unless given, then for the password.
func (a *App) loginAs(ctx context.Context, userName string) error {
	if userName == "" {
		v, err := a.readText("Enter user name")
		if err != nil {
			return err
		}
		userName = v
	}

	password, err := a.readSecret("Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.login(ctx, models.LoginCredentials{Username: userName, Password: string(password)})
}

func (a *App) login(ctx context.Context, creds models.LoginCredentials) error {
	done := a.busy(a.auth.Loading)
	u, err := a.auth.Login(ctx, creds)
	done()
	if err != nil {
		return a.report(ctx, err)
	}
	a.println(fmt.Sprintf("Logged in as %s", u.DisplayName()))
	return nil
}

// Logout drops the persisted session. It never calls the API.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return a.report(ctx, err)
	}
	a.println("Logged out")
	return nil
}

// WhoAmI prints the cached profile of the current user.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.auth.User()
	if u == nil {
		return a.report(ctx, client.Unauthenticated("whoami"))
	}
	s, err := a.formatter.FormatUser(u)
	if err != nil {
		return err
	}
	a.print(s)
	return nil
}

// report logs a failed operation at warn level and returns err for the
// caller to surface.
func (a *App) report(ctx context.Context, err error) error {
	a.logger.Warn(ctx, "operation failed", "kind", client.KindOf(err).String(), "error", err)
	return err
}
