package models

import (
	"fmt"
	"net"
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/dmitrijs2005/fcpanel/internal/common"
)

// VMStatus is the lifecycle status reported by the VM API. The client treats
// it as an opaque string except for StatusRunning, used by the stats.
type VMStatus string

const (
	StatusRunning VMStatus = "running"
	StatusStopped VMStatus = "stopped"
)

// VMTemplate is the sizing and image descriptor copied into a create request.
// RAM is in MB, Storage in GB.
type VMTemplate struct {
	CPU         int    `json:"cpu" yaml:"cpu"`
	RAM         int    `json:"ram" yaml:"ram"`
	Storage     int    `json:"storage" yaml:"storage"`
	KernelImage string `json:"kernel_image" yaml:"kernel_image"`
	RootfsImage string `json:"rootfs_image" yaml:"rootfs_image"`
}

// VirtualMachine is a server-owned resource. The client only requests
// creation, deletion and power changes, then re-fetches.
type VirtualMachine struct {
	ID       int64      `json:"id" yaml:"id"`
	UserID   int64      `json:"user_id" yaml:"user_id"`
	Hostname string     `json:"hostname" yaml:"hostname"`
	IPAddr   string     `json:"ip_addr" yaml:"ip_addr"`
	Gateway  string     `json:"gateway" yaml:"gateway"`
	SSHKey   string     `json:"ssh_key,omitempty" yaml:"ssh_key,omitempty"`
	Status   VMStatus   `json:"status" yaml:"status"`
	Template VMTemplate `json:"template" yaml:"template"`
}

// CreateVMRequest is the POST /vms body.
type CreateVMRequest struct {
	UserID   int64      `json:"user_id" yaml:"user_id"`
	IPAddr   string     `json:"ip_addr" yaml:"ip_addr"`
	Hostname string     `json:"hostname" yaml:"hostname"`
	SSHKey   string     `json:"ssh_key" yaml:"ssh_key"`
	Gateway  string     `json:"gateway" yaml:"gateway"`
	Template VMTemplate `json:"template" yaml:"template"`
}

// Normalize trims user input in place.
func (r *CreateVMRequest) Normalize() {
	r.Hostname = strings.TrimSpace(r.Hostname)
	r.IPAddr = strings.TrimSpace(r.IPAddr)
	r.Gateway = strings.TrimSpace(r.Gateway)
	r.SSHKey = strings.TrimSpace(r.SSHKey)
}

// Validate checks the request before submission. Empty hostname, ip or
// gateway block the call. The SSH key is optional but must parse when set.
func (r *CreateVMRequest) Validate() error {
	if r.Hostname == "" {
		return fmt.Errorf("hostname: %w", common.ErrRequiredField)
	}
	if r.IPAddr == "" {
		return fmt.Errorf("ip_addr: %w", common.ErrRequiredField)
	}
	if r.Gateway == "" {
		return fmt.Errorf("gateway: %w", common.ErrRequiredField)
	}

	// ip_addr may carry a prefix length, the gateway may not
	if net.ParseIP(r.IPAddr) == nil {
		if _, _, err := net.ParseCIDR(r.IPAddr); err != nil {
			return fmt.Errorf("ip_addr %q: %w", r.IPAddr, common.ErrInvalidAddress)
		}
	}
	if net.ParseIP(r.Gateway) == nil {
		return fmt.Errorf("gateway %q: %w", r.Gateway, common.ErrInvalidAddress)
	}

	if r.SSHKey != "" {
		if _, _, _, _, err := ssh.ParseAuthorizedKey([]byte(r.SSHKey)); err != nil {
			return fmt.Errorf("ssh_key: %w: %v", common.ErrInvalidSSHKey, err)
		}
	}

	return r.Template.Validate()
}

// Validate checks that the template carries usable resources and images.
func (t *VMTemplate) Validate() error {
	if t.CPU <= 0 || t.RAM <= 0 || t.Storage <= 0 {
		return fmt.Errorf("cpu=%d ram=%d storage=%d: %w", t.CPU, t.RAM, t.Storage, common.ErrInvalidResources)
	}
	if t.KernelImage == "" {
		return fmt.Errorf("kernel_image: %w", common.ErrRequiredField)
	}
	if t.RootfsImage == "" {
		return fmt.Errorf("rootfs_image: %w", common.ErrRequiredField)
	}
	return nil
}

// Stats summarizes a VM list the way the dashboard header does.
type Stats struct {
	ActiveVMs int     `json:"active_vms" yaml:"active_vms"`
	TotalCPU  int     `json:"total_cpu" yaml:"total_cpu"`
	TotalRAM  float64 `json:"total_ram_gb" yaml:"total_ram_gb"`
}

// ComputeStats counts running VMs and sums CPU and RAM (converted to GB).
func ComputeStats(vms []VirtualMachine) Stats {
	var s Stats
	ramMB := 0
	for _, vm := range vms {
		if vm.Status == StatusRunning {
			s.ActiveVMs++
		}
		s.TotalCPU += vm.Template.CPU
		ramMB += vm.Template.RAM
	}
	s.TotalRAM = float64(ramMB) / 1024
	return s
}
