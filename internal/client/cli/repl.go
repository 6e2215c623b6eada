package cli

import (
	"bufio"
	"context"
	"fmt"
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
	Movies(ctx context.Context) error
	ToggleFavorite(ctx context.Context, arg string) error
	ShowProfile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	StageField(ctx context.Context, name string) error
	SaveProfile(ctx context.Context) error
	CancelEdit(ctx context.Context) error
	Deregister(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the flixcli client.
//
// It reads a line from the shared reader, parses the first token as the
// command, and dispatches to methods on 'a'. Command handlers prompt for
// further input through the same reader, so no buffered input is lost
// between the loop and a handler. Unknown commands are reported back to
// the user; the loop exits on EOF or when the user types "exit" or
// "quit".
//
// Any errors returned by command handlers are ignored here; handlers
// print their own errors. This keeps the REPL loop focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("flix %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: movies, fav <n|id>, profile, edit, set <field>, save, cancel, deregister, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "m", "movies":
			_ = a.Movies(ctx)

		case "fav":
			if len(args) == 0 {
				printlnFn("Usage: fav <number|movie id>")
				continue
			}
			_ = a.ToggleFavorite(ctx, args[0])

		case "profile":
			_ = a.ShowProfile(ctx)

		case "edit":
			_ = a.EditProfile(ctx)

		case "set":
			if len(args) == 0 {
				printlnFn("Usage: set <username|password|email|birthday>")
				continue
			}
			_ = a.StageField(ctx, args[0])

		case "save":
			_ = a.SaveProfile(ctx)

		case "cancel":
			_ = a.CancelEdit(ctx)

		case "deregister":
			_ = a.Deregister(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
