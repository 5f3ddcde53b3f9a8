// Package auth holds the signed-in state of the client.
//
// A Provider starts in StateUnknown, moves to StateAuthenticated or
// StateUnauthenticated on Hydrate, and then follows Login, Register and
// Logout. Hydrate trusts the stored session as-is; the token is never
// revalidated, refreshed or expired on the client side.
package auth

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/fcpanel/internal/client/client"
	"github.com/dmitrijs2005/fcpanel/internal/client/models"
	"github.com/dmitrijs2005/fcpanel/internal/client/services"
	"github.com/dmitrijs2005/fcpanel/internal/client/session"
)

// State of the provider.
type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Provider exposes the current user and the session operations.
//
// Operations are neither serialized nor deduplicated: two concurrent Logins
// both run and the last one to finish wins. The mutex only guards the
// fields.
type Provider struct {
	svc services.AuthService

	mu      sync.RWMutex
	state   State
	sess    *session.Snapshot
	loading bool
	err     error
}

func NewProvider(svc services.AuthService) *Provider {
	return &Provider{svc: svc}
}

// Hydrate loads the stored session without any network call. A future
// revalidation of the token belongs here.
func (p *Provider) Hydrate(ctx context.Context) State {
	snap, err := p.svc.Restore(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.setUnauthenticated()
		if client.KindOf(err) != client.KindUnauthenticated {
			p.err = err
		}
		return p.state
	}
	p.setAuthenticated(snap)
	return p.state
}

// Login signs in and, on success, makes the fetched user current. On
// failure the error is kept in Err and an existing session stays in place;
// otherwise the provider ends up unauthenticated.
func (p *Provider) Login(ctx context.Context, creds models.LoginCredentials) (*models.User, error) {
	p.begin()
	snap, err := p.svc.Login(ctx, creds)
	return p.finish(snap, err)
}

// Register validates the form, signs up and logs in with the same
// credentials. Validation failures never reach the network.
func (p *Provider) Register(ctx context.Context, form models.RegisterForm) (*models.User, error) {
	p.begin()
	snap, err := p.svc.Register(ctx, form)
	return p.finish(snap, err)
}

// Logout clears the stored session. The provider becomes unauthenticated
// even when clearing the store fails; that error is returned.
func (p *Provider) Logout(ctx context.Context) error {
	err := p.svc.Logout(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.setUnauthenticated()
	p.loading = false
	return err
}

func (p *Provider) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// User returns a copy of the current user, or nil.
func (p *Provider) User() *models.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.sess == nil {
		return nil
	}
	u := p.sess.User
	return &u
}

// Session returns a copy of the current session, or nil.
func (p *Provider) Session() *session.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.sess == nil {
		return nil
	}
	s := *p.sess
	return &s
}

// Loading reports whether a Login or Register is in flight.
func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Err returns the error of the last failed operation. It is cleared by the
// next operation and by Logout.
func (p *Provider) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

func (p *Provider) begin() {
	p.mu.Lock()
	p.loading = true
	p.err = nil
	p.mu.Unlock()
}

func (p *Provider) finish(snap *session.Snapshot, err error) (*models.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false

	if err != nil {
		if p.state != StateAuthenticated {
			p.setUnauthenticated()
		}
		p.err = err
		return nil, err
	}
	p.setAuthenticated(snap)
	u := snap.User
	return &u, nil
}

func (p *Provider) setAuthenticated(snap *session.Snapshot) {
	s := *snap
	p.sess = &s
	p.state = StateAuthenticated
	p.err = nil
}

func (p *Provider) setUnauthenticated() {
	p.sess = nil
	p.state = StateUnauthenticated
	p.err = nil
}
