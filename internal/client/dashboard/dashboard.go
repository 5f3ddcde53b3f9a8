// Package dashboard keeps the signed-in user's VM list in sync with the VM
// API. Every successful mutation is followed by a full re-fetch of the list;
// nothing is inserted or removed locally.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/fcpanel/internal/client/catalog"
	"github.com/dmitrijs2005/fcpanel/internal/client/client"
	"github.com/dmitrijs2005/fcpanel/internal/client/models"
	"github.com/dmitrijs2005/fcpanel/internal/client/services"
	"github.com/dmitrijs2005/fcpanel/internal/client/session"
	"github.com/dmitrijs2005/fcpanel/internal/common"
)

// SessionSource yields the current session, nil when signed out.
// *auth.Provider implements it.
type SessionSource interface {
	Session() *session.Snapshot
}

// CreateForm is what the user picks when creating a VM. SizeID and OSID
// refer to catalog entries. SSHKey is optional.
type CreateForm struct {
	SizeID   string
	OSID     string
	Hostname string
	IPAddr   string
	Gateway  string
	SSHKey   string
}

// Request builds the create request from the form and the catalog.
func (f CreateForm) Request(cat *catalog.Catalog) (models.CreateVMRequest, error) {
	required := []struct{ name, value string }{
		{"size", f.SizeID},
		{"os", f.OSID},
		{"hostname", f.Hostname},
		{"ip_addr", f.IPAddr},
		{"gateway", f.Gateway},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return models.CreateVMRequest{}, fmt.Errorf("%s: %w", r.name, common.ErrRequiredField)
		}
	}

	tpl, err := cat.Template(f.SizeID, f.OSID)
	if err != nil {
		return models.CreateVMRequest{}, err
	}
	return models.CreateVMRequest{
		Hostname: f.Hostname,
		IPAddr:   f.IPAddr,
		Gateway:  f.Gateway,
		SSHKey:   f.SSHKey,
		Template: tpl,
	}, nil
}

type Dashboard struct {
	svc     services.VMService
	src     SessionSource
	catalog *catalog.Catalog

	mu      sync.RWMutex
	vms     []models.VirtualMachine
	loading bool
	err     error
}

func New(svc services.VMService, src SessionSource, cat *catalog.Catalog) *Dashboard {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Dashboard{svc: svc, src: src, catalog: cat}
}

func (d *Dashboard) Catalog() *catalog.Catalog {
	return d.catalog
}

// Refresh replaces the list with the backend's. On failure the previous
// list is kept.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.setLoading(true)
	vms, err := d.svc.List(ctx, d.src.Session())

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	d.err = err
	if err != nil {
		return err
	}
	d.vms = vms
	return nil
}

// CreateVM validates the form, submits it and re-fetches the list. A failed
// re-fetch does not fail the creation; it is reported by Err.
func (d *Dashboard) CreateVM(ctx context.Context, form CreateForm) (*models.VirtualMachine, error) {
	const op = "create vm"
	if d.src.Session() == nil {
		return nil, d.fail(client.Unauthenticated(op))
	}

	req, err := form.Request(d.catalog)
	if err != nil {
		return nil, d.fail(client.Validation(op, err))
	}
	return d.Submit(ctx, req)
}

// Submit sends a prepared request (e.g. loaded from a file) and re-fetches.
func (d *Dashboard) Submit(ctx context.Context, req models.CreateVMRequest) (*models.VirtualMachine, error) {
	d.setLoading(true)
	vm, err := d.svc.Create(ctx, d.src.Session(), req)
	d.setLoading(false)
	if err != nil {
		return nil, d.fail(err)
	}
	_ = d.Refresh(ctx)
	return vm, nil
}

func (d *Dashboard) DeleteVM(ctx context.Context, id int64) error {
	return d.mutate(ctx, id, d.svc.Delete)
}

func (d *Dashboard) StartVM(ctx context.Context, id int64) error {
	return d.mutate(ctx, id, d.svc.Start)
}

func (d *Dashboard) StopVM(ctx context.Context, id int64) error {
	return d.mutate(ctx, id, d.svc.Stop)
}

// Get fetches a single VM without touching the list.
func (d *Dashboard) Get(ctx context.Context, id int64) (*models.VirtualMachine, error) {
	d.setLoading(true)
	defer d.setLoading(false)
	return d.svc.Get(ctx, d.src.Session(), id)
}

// VMs returns a copy of the last fetched list in backend order.
func (d *Dashboard) VMs() []models.VirtualMachine {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.VirtualMachine, len(d.vms))
	copy(out, d.vms)
	return out
}

func (d *Dashboard) Stats() models.Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return models.ComputeStats(d.vms)
}

// Loading reports whether a call to the VM API is in flight.
func (d *Dashboard) Loading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loading
}

// Err is the error of the last operation, nil after a success.
func (d *Dashboard) Err() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.err
}

func (d *Dashboard) mutate(ctx context.Context, id int64,
	fn func(ctx context.Context, sess *session.Snapshot, id int64) error) error {
	d.setLoading(true)
	err := fn(ctx, d.src.Session(), id)
	d.setLoading(false)
	if err != nil {
		return d.fail(err)
	}
	_ = d.Refresh(ctx)
	return nil
}

func (d *Dashboard) setLoading(v bool) {
	d.mu.Lock()
	d.loading = v
	d.mu.Unlock()
}

func (d *Dashboard) fail(err error) error {
	d.mu.Lock()
	d.err = err
	d.mu.Unlock()
	return err
}
