// Package output renders client resources as a table, YAML or JSON.
package output

import (
	"fmt"

	"github.com/dmitrijs2005/fcpanel/internal/client/catalog"
	"github.com/dmitrijs2005/fcpanel/internal/client/models"
)

// Format represents an output format type.
type Format string

const (
	// FormatTable is a human-readable table format.
	FormatTable Format = "table"
	// FormatYAML is a YAML format.
	FormatYAML Format = "yaml"
	// FormatJSON is a JSON format for machine consumption.
	FormatJSON Format = "json"
)

// Formatter formats client resources for output.
type Formatter interface {
	FormatVM(vm *models.VirtualMachine) (string, error)
	FormatVMList(vms []models.VirtualMachine) (string, error)
	FormatStats(s models.Stats) (string, error)
	FormatUser(u *models.User) (string, error)
	FormatCatalog(c *catalog.Catalog) (string, error)
}

// Options contains options for formatting output.
type Options struct {
	Format Format
	// NoHeaders omits headers in table format.
	NoHeaders bool
}

// NewFormatter creates a new Formatter based on the specified format.
func NewFormatter(opts Options) (Formatter, error) {
	switch opts.Format {
	case FormatTable, "":
		return &TableFormatter{NoHeaders: opts.NoHeaders}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (supported: table, yaml, json)", opts.Format)
	}
}

// ValidateFormat checks if a format string is valid.
func ValidateFormat(format string) error {
	switch Format(format) {
	case FormatTable, FormatYAML, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid formats: table, yaml, json)", format)
	}
}
