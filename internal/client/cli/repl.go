package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	Check(ctx context.Context) error
	Ping(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit". Command
// errors are printed and the loop continues.
//
//	Not logged in: help, register, login, ping, exit
//	Logged in:     help, profile, check, logout, ping, exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	fmt.Fprintln(out, "habitauth CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(out, "habitauth %s> ", statusFn())

		// commands prompt through the same reader, so no read-ahead here
		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				return
			}
			continue
		}

		var err error
		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: profile, check, logout, ping, exit")
			} else {
				fmt.Fprintln(out, "Available commands: register, login, ping, exit")
			}
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "profile":
			err = a.Profile(ctx)
		case "check":
			err = a.Check(ctx)
		case "ping":
			err = a.Ping(ctx)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", parts[0])
		}

		if err != nil {
			fmt.Fprintln(out, "error:", err)
		}
		if readErr != nil {
			return
		}
	}
}
