package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App implements it;
// tests substitute a recorder.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Open(ctx context.Context, path string) error
	Views(ctx context.Context) error
	Ping(ctx context.Context) error
	Avatar(ctx context.Context, file string) error
}

// runREPL reads commands line by line from reader and dispatches them to a
// until EOF, "exit"/"quit" or cancellation of ctx. Errors from commands are
// printed and the loop goes on.
//
// The prompt shows statusFn() and accepts:
//
//	help           show available commands
//	signup         create an account
//	login          authenticate
//	logout         end the session
//	whoami         show what the server knows about the current credential
//	open <path>    go to a view, e.g. open /student-dashboard/sessions
//	views          list the views available to you
//	avatar <file>  upload a profile picture
//	ping           check the server
//	exit | quit    leave the program
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("alumnilink %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, open <path>, views, avatar <file>, ping, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, open <path>, ping, exit")
			}

		case "signup":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <path>")
				continue
			}
			cmdErr = a.Open(ctx, args[0])

		case "views":
			cmdErr = a.Views(ctx)

		case "ping":
			cmdErr = a.Ping(ctx)

		case "avatar":
			if len(args) == 0 {
				printlnFn("Usage: avatar <file>")
				continue
			}
			cmdErr = a.Avatar(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
