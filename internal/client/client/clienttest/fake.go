// Package clienttest provides scriptable in-memory AuthClient and VMClient
// implementations for tests of the layers above the HTTP clients.
package clienttest

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/fcpanel/internal/client/client"
	"github.com/dmitrijs2005/fcpanel/internal/client/models"
)

// AuthClient is a fake client.AuthClient. Set the *Err fields to make a call
// fail; the Last* fields and counters record what was sent.
type AuthClient struct {
	mu sync.Mutex

	SignUpErr error

	Token     string
	SignInErr error

	User  *models.User
	MeErr error

	LastSignUp  models.RegisterData
	LastSignIn  models.LoginCredentials
	LastMeToken string
	SignUpCalls int
	SignInCalls int
	MeCalls     int
}

func (f *AuthClient) SignUp(_ context.Context, data models.RegisterData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignUpCalls++
	f.LastSignUp = data
	return f.SignUpErr
}

func (f *AuthClient) SignIn(_ context.Context, creds models.LoginCredentials) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignInCalls++
	f.LastSignIn = creds
	if f.SignInErr != nil {
		return "", f.SignInErr
	}
	return f.Token, nil
}

func (f *AuthClient) Me(_ context.Context, token string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.MeCalls++
	f.LastMeToken = token
	if f.MeErr != nil {
		return nil, f.MeErr
	}
	if f.User == nil {
		return nil, &client.Error{Kind: client.KindMalformed, Op: "me", Detail: "no user"}
	}
	u := *f.User
	return &u, nil
}

// Calls returns the number of requests made so far.
func (f *AuthClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.SignUpCalls + f.SignInCalls + f.MeCalls
}

// VMClient is a fake client.VMClient backed by a slice. Created VMs are
// appended with the next free id; start and stop flip the status.
// When Gate is set every call blocks until it is closed, then sleeps Delay.
type VMClient struct {
	mu sync.Mutex

	VMs []models.VirtualMachine

	Gate  chan struct{}
	Delay time.Duration

	CreateErr error
	ListErr   error
	GetErr    error
	DeleteErr error
	StartErr  error
	StopErr   error

	LastToken   string
	LastUserID  int64
	LastCreate  *models.CreateVMRequest
	ListCalls   int
	CreateCalls int
	DeleteCalls int
}

func (f *VMClient) CreateVM(_ context.Context, token string, req *models.CreateVMRequest) (*models.VirtualMachine, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	f.LastToken = token
	cp := *req
	f.LastCreate = &cp
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}

	var next int64 = 1
	for _, vm := range f.VMs {
		if vm.ID >= next {
			next = vm.ID + 1
		}
	}
	vm := models.VirtualMachine{
		ID:       next,
		UserID:   req.UserID,
		Hostname: req.Hostname,
		IPAddr:   req.IPAddr,
		Gateway:  req.Gateway,
		SSHKey:   req.SSHKey,
		Status:   models.StatusStopped,
		Template: req.Template,
	}
	f.VMs = append(f.VMs, vm)
	return &vm, nil
}

func (f *VMClient) ListVMs(_ context.Context, token string, userID int64) ([]models.VirtualMachine, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	f.LastToken = token
	f.LastUserID = userID
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]models.VirtualMachine, 0, len(f.VMs))
	for _, vm := range f.VMs {
		if vm.UserID == userID {
			out = append(out, vm)
		}
	}
	return out, nil
}

func (f *VMClient) GetVM(_ context.Context, token string, id int64) (*models.VirtualMachine, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	i := f.index(id)
	if i < 0 {
		return nil, notFound("get vm")
	}
	vm := f.VMs[i]
	return &vm, nil
}

func (f *VMClient) DeleteVM(_ context.Context, token string, id int64) error {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	f.LastToken = token
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	i := f.index(id)
	if i < 0 {
		return notFound("delete vm")
	}
	f.VMs = append(f.VMs[:i], f.VMs[i+1:]...)
	return nil
}

func (f *VMClient) StartVM(_ context.Context, token string, id int64) error {
	return f.setStatus(token, id, models.StatusRunning, f.StartErr)
}

func (f *VMClient) StopVM(_ context.Context, token string, id int64) error {
	return f.setStatus(token, id, models.StatusStopped, f.StopErr)
}

func (f *VMClient) setStatus(token string, id int64, st models.VMStatus, failWith error) error {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	if failWith != nil {
		return failWith
	}
	i := f.index(id)
	if i < 0 {
		return notFound("power vm")
	}
	f.VMs[i].Status = st
	return nil
}

func (f *VMClient) wait() {
	if f.Gate != nil {
		<-f.Gate
	}
	time.Sleep(f.Delay)
}

func (f *VMClient) index(id int64) int {
	for i, vm := range f.VMs {
		if vm.ID == id {
			return i
		}
	}
	return -1
}

func notFound(op string) error {
	return &client.Error{Kind: client.KindStatus, Op: op, Status: 404, Detail: "vm not found"}
}

var (
	_ client.AuthClient = (*AuthClient)(nil)
	_ client.VMClient   = (*VMClient)(nil)
)
