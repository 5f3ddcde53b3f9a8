package client

import (
	"context"

	"github.com/dmitrijs2005/fcpanel/internal/client/models"
)

// AuthClient talks to the auth API.
type AuthClient interface {
	SignUp(ctx context.Context, data models.RegisterData) error
	// SignIn returns the bearer token issued for the credentials.
	SignIn(ctx context.Context, creds models.LoginCredentials) (string, error)
	// Me returns the profile of the token's owner.
	Me(ctx context.Context, token string) (*models.User, error)
}

// VMClient talks to the VM API. The token may be empty; it is forwarded as a
// bearer credential when set.
type VMClient interface {
	CreateVM(ctx context.Context, token string, req *models.CreateVMRequest) (*models.VirtualMachine, error)
	ListVMs(ctx context.Context, token string, userID int64) ([]models.VirtualMachine, error)
	GetVM(ctx context.Context, token string, id int64) (*models.VirtualMachine, error)
	DeleteVM(ctx context.Context, token string, id int64) error
	StartVM(ctx context.Context, token string, id int64) error
	StopVM(ctx context.Context, token string, id int64) error
}
