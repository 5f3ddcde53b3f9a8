package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fcpanel/internal/client/client"
	"github.com/dmitrijs2005/fcpanel/internal/client/dashboard"
	"github.com/dmitrijs2005/fcpanel/internal/client/models"
	"github.com/dmitrijs2005/fcpanel/internal/client/output"
)

// List fetches the user's VMs and prints them. In table mode the dashboard
// stats are printed above the list.
func (a *App) List(ctx context.Context) error {
	if err := a.refresh(ctx); err != nil {
		return a.report(ctx, err)
	}

	if a.config.OutputFormat == "" || output.Format(a.config.OutputFormat) == output.FormatTable {
		if err := a.Stats(ctx); err != nil {
			return err
		}
		a.println()
	}

	s, err := a.formatter.FormatVMList(a.dash.VMs())
	if err != nil {
		return err
	}
	a.print(s)
	return nil
}

// Stats prints the counters of the last fetched list.
func (a *App) Stats(ctx context.Context) error {
	s, err := a.formatter.FormatStats(a.dash.Stats())
	if err != nil {
		return err
	}
	a.print(s)
	return nil
}

// RefreshStats re-fetches the list before printing the stats.
func (a *App) RefreshStats(ctx context.Context) error {
	if err := a.refresh(ctx); err != nil {
		return a.report(ctx, err)
	}
	return a.Stats(ctx)
}

func (a *App) refresh(ctx context.Context) error {
	done := a.busy(a.dash.Loading)
	defer done()
	return a.dash.Refresh(ctx)
}

// Get prints a single VM. When arg is empty the id is prompted for.
func (a *App) Get(ctx context.Context, arg string) error {
	id, err := a.vmID(arg)
	if err != nil {
		return err
	}

	done := a.busy(a.dash.Loading)
	vm, err := a.dash.Get(ctx, id)
	done()
	if err != nil {
		return a.report(ctx, err)
	}
	return a.printVM(vm)
}

// CreateInteractive prompts for the create form, listing the catalog
// choices first.
func (a *App) CreateInteractive(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.report(ctx, client.Unauthenticated("create vm"))
	}

	if err := a.Catalog(ctx); err != nil {
		return err
	}
	a.println()

	var form dashboard.CreateForm
	prompts := []struct {
		text string
		dst  *string
	}{
		{"Enter size", &form.SizeID},
		{"Enter OS", &form.OSID},
		{"Enter hostname", &form.Hostname},
		{"Enter IP address", &form.IPAddr},
		{"Enter gateway", &form.Gateway},
		{"Enter SSH public key (optional)", &form.SSHKey},
	}
	for _, p := range prompts {
		v, err := a.readText(p.text)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	return a.createVM(ctx, form)
}

func (a *App) createVM(ctx context.Context, form dashboard.CreateForm) error {
	done := a.busy(a.dash.Loading)
	vm, err := a.dash.CreateVM(ctx, form)
	done()
	if err != nil {
		return a.report(ctx, err)
	}
	return a.created(ctx, vm)
}

// createVMFromFile submits a request read from a YAML file.
func (a *App) createVMFromFile(ctx context.Context, path string) error {
	req, err := models.LoadCreateVMRequestFile(path)
	if err != nil {
		return a.report(ctx, client.Validation("create vm", err))
	}
	done := a.busy(a.dash.Loading)
	vm, err := a.dash.Submit(ctx, *req)
	done()
	if err != nil {
		return a.report(ctx, err)
	}
	return a.created(ctx, vm)
}

func (a *App) created(ctx context.Context, vm *models.VirtualMachine) error {
	if err := a.dash.Err(); err != nil {
		a.logger.Warn(ctx, "vm list not refreshed", "error", err)
	}
	a.println(fmt.Sprintf("VM %d (%s) created", vm.ID, vm.Hostname))
	return a.printVM(vm)
}

// Delete asks for confirmation, then deletes the VM.
func (a *App) Delete(ctx context.Context, arg string) error {
	return a.deleteVM(ctx, arg, false)
}

func (a *App) deleteVM(ctx context.Context, arg string, yes bool) error {
	id, err := a.vmID(arg)
	if err != nil {
		return err
	}

	if !yes {
		ok, err := Confirm(a.reader, fmt.Sprintf("Delete VM %d?", id), a.out)
		if err != nil {
			return err
		}
		if !ok {
			a.println("Cancelled")
			return nil
		}
	}

	done := a.busy(a.dash.Loading)
	err = a.dash.DeleteVM(ctx, id)
	done()
	if err != nil {
		return a.report(ctx, err)
	}
	a.println(fmt.Sprintf("VM %d deleted", id))
	return nil
}

func (a *App) Start(ctx context.Context, arg string) error {
	return a.power(ctx, arg, "started", a.dash.StartVM)
}

func (a *App) Stop(ctx context.Context, arg string) error {
	return a.power(ctx, arg, "stopped", a.dash.StopVM)
}

func (a *App) power(ctx context.Context, arg, verb string, fn func(context.Context, int64) error) error {
	id, err := a.vmID(arg)
	if err != nil {
		return err
	}
	done := a.busy(a.dash.Loading)
	err = fn(ctx, id)
	done()
	if err != nil {
		return a.report(ctx, err)
	}
	a.println(fmt.Sprintf("VM %d %s", id, verb))
	return nil
}

// Catalog prints the available sizes and OS images.
func (a *App) Catalog(_ context.Context) error {
	s, err := a.formatter.FormatCatalog(a.dash.Catalog())
	if err != nil {
		return err
	}
	a.print(s)
	return nil
}

func (a *App) printVM(vm *models.VirtualMachine) error {
	s, err := a.formatter.FormatVM(vm)
	if err != nil {
		return err
	}
	a.print(s)
	return nil
}

// vmID parses arg, prompting for it when empty.
func (a *App) vmID(arg string) (int64, error) {
	if strings.TrimSpace(arg) == "" {
		v, err := a.readText("Enter VM id")
		if err != nil {
			return 0, err
		}
		arg = v
	}
	return parseID(arg)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, client.Validation("parse id", fmt.Errorf("invalid VM id %q", s))
	}
	return id, nil
}
