package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/fcpanel/internal/client/catalog"
	"github.com/dmitrijs2005/fcpanel/internal/client/models"
)

// TableFormatter formats resources as human-readable tables.
type TableFormatter struct {
	NoHeaders bool
}

func (f *TableFormatter) FormatVM(vm *models.VirtualMachine) (string, error) {
	return f.FormatVMList([]models.VirtualMachine{*vm})
}

func (f *TableFormatter) FormatVMList(vms []models.VirtualMachine) (string, error) {
	if len(vms) == 0 {
		return "No VMs found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "ID\tHOSTNAME\tSTATUS\tIP\tGATEWAY\tVCPUs\tMEMORY\tDISK")
	}

	for _, vm := range vms {
		status := string(vm.Status)
		if status == "" {
			status = "-"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%d MB\t%d GB\n",
			vm.ID, vm.Hostname, status, dash(vm.IPAddr), dash(vm.Gateway),
			vm.Template.CPU, vm.Template.RAM, vm.Template.Storage)
	}

	_ = w.Flush()
	return buf.String(), nil
}

func (f *TableFormatter) FormatStats(s models.Stats) (string, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "ACTIVE VMS\tTOTAL CPU\tTOTAL MEMORY")
	}
	_, _ = fmt.Fprintf(w, "%d\t%d cores\t%.1f GB\n", s.ActiveVMs, s.TotalCPU, s.TotalRAM)
	_ = w.Flush()
	return buf.String(), nil
}

func (f *TableFormatter) FormatUser(u *models.User) (string, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tEMAIL")
	}
	_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.DisplayName(), dash(u.Email))
	_ = w.Flush()
	return buf.String(), nil
}

func (f *TableFormatter) FormatCatalog(c *catalog.Catalog) (string, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "SIZE\tNAME\tVCPUs\tMEMORY\tDISK\tPRICE")
	}
	for _, s := range c.Sizes {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d MB\t%d GB\t%s\n", s.ID, s.Name, s.CPU, s.RAM, s.Storage, dash(s.Price))
	}
	_, _ = fmt.Fprintln(w)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "OS\tNAME\tDESCRIPTION")
	}
	for _, o := range c.OS {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", o.ID, o.Name, dash(o.Description))
	}

	_ = w.Flush()
	return buf.String(), nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
