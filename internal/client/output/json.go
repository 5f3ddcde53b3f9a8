package output

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/fcpanel/internal/client/catalog"
	"github.com/dmitrijs2005/fcpanel/internal/client/models"
)

// JSONFormatter formats resources as indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) FormatVM(vm *models.VirtualMachine) (string, error) {
	return marshalJSON(vm, "VM")
}

// FormatVMList outputs a JSON array, "[]" when empty.
func (f *JSONFormatter) FormatVMList(vms []models.VirtualMachine) (string, error) {
	if len(vms) == 0 {
		return "[]\n", nil
	}
	return marshalJSON(vms, "VMs")
}

func (f *JSONFormatter) FormatStats(s models.Stats) (string, error) {
	return marshalJSON(s, "stats")
}

func (f *JSONFormatter) FormatUser(u *models.User) (string, error) {
	return marshalJSON(u, "user")
}

func (f *JSONFormatter) FormatCatalog(c *catalog.Catalog) (string, error) {
	return marshalJSON(c, "catalog")
}

func marshalJSON(v any, what string) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s to JSON: %w", what, err)
	}
	return string(data) + "\n", nil
}
