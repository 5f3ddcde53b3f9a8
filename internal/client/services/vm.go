package services

import (
	"context"

	"github.com/dmitrijs2005/fcpanel/internal/client/client"
	"github.com/dmitrijs2005/fcpanel/internal/client/models"
	"github.com/dmitrijs2005/fcpanel/internal/client/session"
	"github.com/dmitrijs2005/fcpanel/internal/logging"
)

// VMService runs VM API calls on behalf of a signed-in user. Every method
// takes the current session and fails with KindUnauthenticated when it is
// nil.
type VMService interface {
	Create(ctx context.Context, sess *session.Snapshot, req models.CreateVMRequest) (*models.VirtualMachine, error)
	List(ctx context.Context, sess *session.Snapshot) ([]models.VirtualMachine, error)
	Get(ctx context.Context, sess *session.Snapshot, id int64) (*models.VirtualMachine, error)
	Delete(ctx context.Context, sess *session.Snapshot, id int64) error
	Start(ctx context.Context, sess *session.Snapshot, id int64) error
	Stop(ctx context.Context, sess *session.Snapshot, id int64) error
}

type vmService struct {
	client client.VMClient
	logger logging.Logger
}

func NewVMService(c client.VMClient, logger logging.Logger) VMService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &vmService{client: c, logger: logger}
}

// Create validates req, stamps it with the session's user id and submits it.
func (s *vmService) Create(ctx context.Context, sess *session.Snapshot, req models.CreateVMRequest) (*models.VirtualMachine, error) {
	const op = "create vm"
	if sess == nil {
		return nil, client.Unauthenticated(op)
	}

	req.Normalize()
	req.UserID = sess.User.ID
	if err := req.Validate(); err != nil {
		return nil, client.Validation(op, err)
	}

	vm, err := s.client.CreateVM(ctx, sess.Token, &req)
	if err != nil {
		s.logger.Warn(ctx, "vm not created", "hostname", req.Hostname, "error", err)
		return nil, client.AsError(op, err)
	}
	s.logger.Info(ctx, "vm created", "vm_id", vm.ID, "hostname", vm.Hostname)
	return vm, nil
}

func (s *vmService) List(ctx context.Context, sess *session.Snapshot) ([]models.VirtualMachine, error) {
	const op = "list vms"
	if sess == nil {
		return nil, client.Unauthenticated(op)
	}

	vms, err := s.client.ListVMs(ctx, sess.Token, sess.User.ID)
	if err != nil {
		s.logger.Warn(ctx, "vm list failed", "user_id", sess.User.ID, "error", err)
		return nil, client.AsError(op, err)
	}
	return vms, nil
}

func (s *vmService) Get(ctx context.Context, sess *session.Snapshot, id int64) (*models.VirtualMachine, error) {
	const op = "get vm"
	if sess == nil {
		return nil, client.Unauthenticated(op)
	}

	vm, err := s.client.GetVM(ctx, sess.Token, id)
	if err != nil {
		return nil, client.AsError(op, err)
	}
	return vm, nil
}

func (s *vmService) Delete(ctx context.Context, sess *session.Snapshot, id int64) error {
	return s.act(ctx, sess, "delete vm", id, s.client.DeleteVM)
}

func (s *vmService) Start(ctx context.Context, sess *session.Snapshot, id int64) error {
	return s.act(ctx, sess, "start vm", id, s.client.StartVM)
}

func (s *vmService) Stop(ctx context.Context, sess *session.Snapshot, id int64) error {
	return s.act(ctx, sess, "stop vm", id, s.client.StopVM)
}

// act runs a body-less per-VM call.
func (s *vmService) act(ctx context.Context, sess *session.Snapshot, op string, id int64,
	fn func(ctx context.Context, token string, id int64) error) error {
	if sess == nil {
		return client.Unauthenticated(op)
	}
	if err := fn(ctx, sess.Token, id); err != nil {
		s.logger.Warn(ctx, op+" failed", "vm_id", id, "error", err)
		return client.AsError(op, err)
	}
	s.logger.Info(ctx, op+" done", "vm_id", id)
	return nil
}
