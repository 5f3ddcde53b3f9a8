package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Get(ctx context.Context, arg string) error
	CreateInteractive(ctx context.Context) error
	Delete(ctx context.Context, arg string) error
	Start(ctx context.Context, arg string) error
	Stop(ctx context.Context, arg string) error
	RefreshStats(ctx context.Context) error
	Catalog(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit", or until
// ctx is cancelled. The first token selects the command, the second one (if
// any) is passed as the VM id.
//
//	Not logged in: help, register, login, catalog, exit
//	Logged in:     help, (l)ist, get, create, delete, start, stop, stats,
//	               catalog, whoami, logout, exit
//
// Command errors are printed and never end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("fc> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, arg := parts[0], ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, get, create, delete, start, stop, stats, catalog, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, catalog, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "get":
			cmdErr = a.Get(ctx, arg)

		case "create":
			cmdErr = a.CreateInteractive(ctx)

		case "delete":
			cmdErr = a.Delete(ctx, arg)

		case "start":
			cmdErr = a.Start(ctx, arg)

		case "stop":
			cmdErr = a.Stop(ctx, arg)

		case "stats":
			cmdErr = a.RefreshStats(ctx)

		case "catalog":
			cmdErr = a.Catalog(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr.Error())
		}
		if err != nil {
			return
		}
	}
}
