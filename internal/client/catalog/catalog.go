// Package catalog provides the VM sizes and OS images offered when creating
// a VM. The built-in catalog can be replaced by a YAML file.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/fcpanel/internal/client/models"
	"github.com/dmitrijs2005/fcpanel/internal/common"
)

const (
	helloKernel = "/var/lib/firecracker/hello/hello-vmlinux.bin"
	helloRootfs = "/var/lib/firecracker/hello/hello-rootfs.ext4"
)

// VMSize is a predefined resource bundle. RAM is in MB, Storage in GB.
type VMSize struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	CPU         int    `yaml:"cpu" json:"cpu"`
	RAM         int    `yaml:"ram" json:"ram"`
	Storage     int    `yaml:"storage" json:"storage"`
	Price       string `yaml:"price" json:"price"`
}

// OSOption is a kernel and root filesystem pair.
type OSOption struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	KernelImage string `yaml:"kernel_image" json:"kernel_image"`
	RootfsImage string `yaml:"rootfs_image" json:"rootfs_image"`
}

type Catalog struct {
	Sizes []VMSize   `yaml:"sizes" json:"sizes"`
	OS    []OSOption `yaml:"os" json:"os"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		Sizes: []VMSize{
			{ID: "micro", Name: "Micro", Description: "Idéal pour les tests et le développement", CPU: 1, RAM: 1024, Storage: 2, Price: "5€/mois"},
			{ID: "small", Name: "Small", Description: "Pour les applications légères", CPU: 2, RAM: 2048, Storage: 5, Price: "10€/mois"},
			{ID: "medium", Name: "Medium", Description: "Pour les applications de production", CPU: 4, RAM: 4096, Storage: 10, Price: "20€/mois"},
			{ID: "large", Name: "Large", Description: "Pour les applications exigeantes", CPU: 8, RAM: 8192, Storage: 20, Price: "40€/mois"},
		},
		OS: []OSOption{
			{ID: "ubuntu", Name: "Ubuntu 22.04 LTS", Description: "Distribution Linux stable et populaire", KernelImage: helloKernel, RootfsImage: helloRootfs},
			{ID: "debian", Name: "Debian 11", Description: "Distribution Linux robuste et fiable", KernelImage: helloKernel, RootfsImage: helloRootfs},
		},
	}
}

// Load returns the catalog from path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return LoadYAML(data)
}

// LoadYAML parses and validates a catalog.
func LoadYAML(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

// Validate requires at least one size and one OS, unique ids, positive
// resources and both image paths.
func (c *Catalog) Validate() error {
	if len(c.Sizes) == 0 {
		return fmt.Errorf("no sizes defined")
	}
	if len(c.OS) == 0 {
		return fmt.Errorf("no OS images defined")
	}

	seen := make(map[string]bool)
	for _, s := range c.Sizes {
		if s.ID == "" {
			return fmt.Errorf("size without id")
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate size %q", s.ID)
		}
		seen[s.ID] = true
		if s.CPU <= 0 || s.RAM <= 0 || s.Storage <= 0 {
			return fmt.Errorf("size %q: %w", s.ID, common.ErrInvalidResources)
		}
	}

	clear(seen)
	for _, o := range c.OS {
		if o.ID == "" {
			return fmt.Errorf("OS image without id")
		}
		if seen[o.ID] {
			return fmt.Errorf("duplicate OS image %q", o.ID)
		}
		seen[o.ID] = true
		if o.KernelImage == "" || o.RootfsImage == "" {
			return fmt.Errorf("OS image %q: kernel_image and rootfs_image: %w", o.ID, common.ErrRequiredField)
		}
	}
	return nil
}

func (c *Catalog) Size(id string) (VMSize, error) {
	for _, s := range c.Sizes {
		if s.ID == id {
			return s, nil
		}
	}
	return VMSize{}, fmt.Errorf("%q: %w", id, common.ErrUnknownSize)
}

func (c *Catalog) OSOption(id string) (OSOption, error) {
	for _, o := range c.OS {
		if o.ID == id {
			return o, nil
		}
	}
	return OSOption{}, fmt.Errorf("%q: %w", id, common.ErrUnknownOS)
}

// Template combines a size and an OS image into a VM template.
func (c *Catalog) Template(sizeID, osID string) (models.VMTemplate, error) {
	size, err := c.Size(sizeID)
	if err != nil {
		return models.VMTemplate{}, err
	}
	img, err := c.OSOption(osID)
	if err != nil {
		return models.VMTemplate{}, err
	}
	return models.VMTemplate{
		CPU:         size.CPU,
		RAM:         size.RAM,
		Storage:     size.Storage,
		KernelImage: img.KernelImage,
		RootfsImage: img.RootfsImage,
	}, nil
}
