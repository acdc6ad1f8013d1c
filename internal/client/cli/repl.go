package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Get(ctx context.Context, args []string) error
	GetOne(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the OnTrail CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Each command runs under its own timeout when
// timeout is positive. Login gets the loop context and applies the timeout
// itself once its prompts are answered. The loop exits on EOF or when the
// user types "exit" or "quit".
//
//	help                    show available commands
//	login                   authenticate with email and password
//	logout                  forget session and credentials
//	status                  show the stored session
//	get <path> [filters]    fetch rows
//	getone <path> [filters] fetch a single row as an object
//	exit | quit             leave the program
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, timeout time.Duration) {
	for {
		printlnFn(fmt.Sprintf("ontrail %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		cmdCtx, cancel := ctx, context.CancelFunc(func() {})
		if timeout > 0 {
			cmdCtx, cancel = context.WithTimeout(ctx, timeout)
		}

		switch cmd {
		case "help":
			if a.isLoggedIn(cmdCtx) {
				printlnFn("Available commands: get, getone, status, logout, exit")
			} else {
				printlnFn("Available commands: login, get, status, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(cmdCtx)

		case "status":
			_ = a.Status(cmdCtx)

		case "get":
			if len(args) == 0 {
				printlnFn("Usage: get <path> [filters]")
				break
			}
			_ = a.Get(cmdCtx, args)

		case "getone":
			if len(args) == 0 {
				printlnFn("Usage: getone <path> [filters]")
				break
			}
			_ = a.GetOne(cmdCtx, args)

		case "exit", "quit":
			cancel()
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
		cancel()
	}
}
