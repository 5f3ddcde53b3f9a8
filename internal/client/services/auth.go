// Package services contains the application services of the fcpanel client.
// This file defines the authentication workflow: login, register (with the
// automatic login that follows it), logout and restoring the stored session.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/fcpanel/internal/client/client"
	"github.com/dmitrijs2005/fcpanel/internal/client/models"
	"github.com/dmitrijs2005/fcpanel/internal/client/session"
	"github.com/dmitrijs2005/fcpanel/internal/common"
	"github.com/dmitrijs2005/fcpanel/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: sign in, fetch the profile, persist token and profile together.
//     Nothing is persisted unless both calls succeed.
//   - Register: validate locally, sign up, then Login with the same
//     credentials.
//   - Logout: clear the store. No network call.
//   - Restore: read the stored session without contacting the server.
//
// Every returned error is a *client.Error.
type AuthService interface {
	Login(ctx context.Context, creds models.LoginCredentials) (*session.Snapshot, error)
	Register(ctx context.Context, form models.RegisterForm) (*session.Snapshot, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (*session.Snapshot, error)
}

type authService struct {
	client client.AuthClient
	store  session.Store
	logger logging.Logger
}

// NewAuthService constructs an AuthService bound to the auth API client and
// the session store.
func NewAuthService(c client.AuthClient, store session.Store, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &authService{client: c, store: store, logger: logger}
}

func (a *authService) Login(ctx context.Context, creds models.LoginCredentials) (*session.Snapshot, error) {
	const op = "login"
	log := a.logger.With("op", op, "username", creds.Username)

	if err := creds.Validate(); err != nil {
		return nil, client.Validation(op, err)
	}

	token, err := a.client.SignIn(ctx, creds)
	if err != nil {
		log.Warn(ctx, "signin failed", "error", err)
		return nil, client.AsError(op, err)
	}

	user, err := a.client.Me(ctx, token)
	if err != nil {
		log.Warn(ctx, "profile fetch failed", "error", err)
		return nil, client.AsError(op, err)
	}

	snap := session.Snapshot{Token: token, User: *user}
	if err := a.store.Set(ctx, snap); err != nil {
		log.Error(ctx, "session not saved", "error", err)
		return nil, &client.Error{Kind: client.KindUnknown, Op: op, Detail: "unable to save session: " + err.Error(), Err: err}
	}

	log.Info(ctx, "logged in", "user_id", user.ID)
	return &snap, nil
}

func (a *authService) Register(ctx context.Context, form models.RegisterForm) (*session.Snapshot, error) {
	const op = "register"
	log := a.logger.With("op", op, "username", form.Username)

	if err := form.Validate(); err != nil {
		return nil, client.Validation(op, err)
	}

	if err := a.client.SignUp(ctx, form.RegisterData); err != nil {
		log.Warn(ctx, "signup failed", "error", err)
		return nil, client.AsError(op, err)
	}
	log.Info(ctx, "account created")

	snap, err := a.Login(ctx, form.Credentials())
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		a.logger.Error(ctx, "session not cleared", "error", err)
		return &client.Error{Kind: client.KindUnknown, Op: "logout", Detail: "unable to clear session: " + err.Error(), Err: err}
	}
	a.logger.Info(ctx, "logged out")
	return nil
}

// Restore returns the stored session. A missing session is reported as
// KindUnauthenticated; an unreadable one is logged and reported the same way.
func (a *authService) Restore(ctx context.Context) (*session.Snapshot, error) {
	const op = "restore"

	snap, err := a.store.Get(ctx)
	switch {
	case err == nil:
		return snap, nil
	case errors.Is(err, common.ErrNoSession):
		return nil, client.Unauthenticated(op)
	case errors.Is(err, common.ErrCorruptProfile):
		a.logger.Warn(ctx, "ignoring stored session", "error", err)
		return nil, client.Unauthenticated(op)
	default:
		return nil, &client.Error{Kind: client.KindUnknown, Op: op, Detail: "unable to read session: " + err.Error(), Err: err}
	}
}
