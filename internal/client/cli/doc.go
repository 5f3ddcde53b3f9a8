// Package cli provides the fcpanel command-line client.
//
// It wires configuration, the persisted session, the auth and VM API clients,
// one-shot cobra commands and an interactive shell. Typical flow: log in once,
// then list, create, start, stop and delete VMs until logout.
//
// Commands:
//   - register / login / logout / whoami
//   - vm list | get | create | delete | start | stop
//   - catalog / stats
//   - shell (the REPL, see runREPL)
package cli
