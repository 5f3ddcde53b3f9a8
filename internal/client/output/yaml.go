package output

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/fcpanel/internal/client/catalog"
	"github.com/dmitrijs2005/fcpanel/internal/client/models"
)

// YAMLFormatter formats resources as YAML.
type YAMLFormatter struct{}

func (f *YAMLFormatter) FormatVM(vm *models.VirtualMachine) (string, error) {
	return marshalYAML(vm, "VM")
}

// FormatVMList outputs a YAML stream, one document per VM.
func (f *YAMLFormatter) FormatVMList(vms []models.VirtualMachine) (string, error) {
	var buf bytes.Buffer
	for i := range vms {
		data, err := yaml.Marshal(&vms[i])
		if err != nil {
			return "", fmt.Errorf("failed to marshal VM %d to YAML: %w", vms[i].ID, err)
		}
		if i > 0 {
			buf.WriteString("---\n")
		}
		buf.Write(data)
	}
	return buf.String(), nil
}

func (f *YAMLFormatter) FormatStats(s models.Stats) (string, error) {
	return marshalYAML(s, "stats")
}

func (f *YAMLFormatter) FormatUser(u *models.User) (string, error) {
	return marshalYAML(u, "user")
}

func (f *YAMLFormatter) FormatCatalog(c *catalog.Catalog) (string, error) {
	return marshalYAML(c, "catalog")
}

func marshalYAML(v any, what string) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s to YAML: %w", what, err)
	}
	return string(data), nil
}
