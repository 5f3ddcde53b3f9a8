package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/fcpanel/internal/client/config"
	"github.com/dmitrijs2005/fcpanel/internal/client/dashboard"
	"github.com/dmitrijs2005/fcpanel/internal/client/models"
)

var (
	version = "dev"
	commit  = "unknown"
)

// NewRootCmd builds the fcpanel command tree. Every subcommand runs against
// an App opened in PersistentPreRunE and closed when the command returns.
func NewRootCmd(streams IO) *cobra.Command {
	var app *App

	root := &cobra.Command{
		Use:   "fcpanel",
		Short: "fcpanel - microVM provisioning client",
		Long: `fcpanel is a command-line client for the microVM provisioning API.

Log in once; the session is kept in a local database until logout. Then
create, list, start, stop and delete your VMs, or run "fcpanel shell" for
an interactive session.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			app, err = NewApp(cmd.Context(), cfg, streams)
			return err
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)
	config.BindFlags(root.PersistentFlags())

	// PostRun hooks are skipped when RunE fails, so closing happens here.
	var run runFunc = func(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			defer func() {
				if app != nil {
					_ = app.Close()
				}
			}()
			return fn(cmd, args)
		}
	}

	root.AddCommand(
		newRegisterCmd(func() *App { return app }, run),
		newLoginCmd(func() *App { return app }, run),
		&cobra.Command{
			Use:   "logout",
			Short: "Forget the stored session",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, _ []string) error {
				return app.Logout(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Show the logged in user",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, _ []string) error {
				return app.WhoAmI(cmd.Context())
			}),
		},
		newVMCmd(func() *App { return app }, run),
		&cobra.Command{
			Use:   "catalog",
			Short: "List the available VM sizes and OS images",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, _ []string) error {
				return app.Catalog(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Show active VMs, total vCPUs and memory",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, _ []string) error {
				return app.RefreshStats(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "shell",
			Short: "Start an interactive session",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, _ []string) error {
				app.println("fcpanel shell (type 'help' for commands)")
				runREPL(cmd.Context(), app, app.status, app.reader)
				return nil
			}),
		},
	)

	return root
}

type runFunc func(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error

func newRegisterCmd(app func() *App, run runFunc) *cobra.Command {
	var form models.RegisterForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Long: `Create an account on the auth API, then log in with it.

Values not given as flags are prompted for. The password is always
prompted for, twice.`,
		Args: cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string) error {
			return app().registerWith(cmd.Context(), form)
		}),
	}
	cmd.Flags().StringVar(&form.Username, "username", "", "user name")
	cmd.Flags().StringVar(&form.Prenom, "prenom", "", "first name")
	cmd.Flags().StringVar(&form.Nom, "nom", "", "last name")
	cmd.Flags().StringVar(&form.Email, "email", "", "email address")
	return cmd
}

func newLoginCmd(app func() *App, run runFunc) *cobra.Command {
	var userName string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string) error {
			return app().loginAs(cmd.Context(), userName)
		}),
	}
	cmd.Flags().StringVarP(&userName, "username", "u", "", "user name (prompted for when empty)")
	return cmd
}

func newVMCmd(app func() *App, run runFunc) *cobra.Command {
	vm := &cobra.Command{
		Use:   "vm",
		Short: "Manage your virtual machines",
	}

	var (
		form dashboard.CreateForm
		file string
		yes  bool
	)

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a VM",
		Long: `Create a VM from a catalog size and OS image.

Either pass the fields as flags, or give a YAML request with -f:

  hostname: web-1
  ip_addr: 10.0.0.10/24
  gateway: 10.0.0.1
  ssh_key: ssh-ed25519 AAAA...
  template:
    cpu: 2
    ram: 2048
    storage: 5
    kernel_image: /images/hello-vmlinux.bin
    rootfs_image: /images/ubuntu-22.04.ext4

Without flags the values are prompted for.`,
		Args: cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string) error {
			a := app()
			switch {
			case file != "":
				return a.createVMFromFile(cmd.Context(), file)
			case form == dashboard.CreateForm{}:
				return a.CreateInteractive(cmd.Context())
			default:
				return a.createVM(cmd.Context(), form)
			}
		}),
	}
	create.Flags().StringVarP(&file, "file", "f", "", "YAML file with the create request")
	create.Flags().StringVar(&form.SizeID, "size", "", "catalog size id")
	create.Flags().StringVar(&form.OSID, "os", "", "catalog OS id")
	create.Flags().StringVar(&form.Hostname, "hostname", "", "VM hostname")
	create.Flags().StringVar(&form.IPAddr, "ip", "", "VM address, optionally with a prefix length")
	create.Flags().StringVar(&form.Gateway, "gateway", "", "default gateway")
	create.Flags().StringVar(&form.SSHKey, "ssh-key", "", "authorized SSH public key")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a VM",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string) error {
			return app().deleteVM(cmd.Context(), args[0], yes)
		}),
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	vm.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List your VMs",
			Args:    cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, _ []string) error {
				return app().List(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show a VM",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(cmd *cobra.Command, args []string) error {
				return app().Get(cmd.Context(), args[0])
			}),
		},
		create,
		del,
		&cobra.Command{
			Use:   "start <id>",
			Short: "Start a VM",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(cmd *cobra.Command, args []string) error {
				return app().Start(cmd.Context(), args[0])
			}),
		},
		&cobra.Command{
			Use:   "stop <id>",
			Short: "Stop a VM",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(cmd *cobra.Command, args []string) error {
				return app().Stop(cmd.Context(), args[0])
			}),
		},
	)
	return vm
}
