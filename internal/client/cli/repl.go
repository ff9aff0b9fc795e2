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
	SwitchDomain(ctx context.Context) error
	List(ctx context.Context) error
	AddEntry(ctx context.Context) error
	DeleteEntry(ctx context.Context) error
	SetImage(ctx context.Context) error
	AddRecord(ctx context.Context) error
	EditRecord(ctx context.Context) error
	DeleteRecord(ctx context.Context) error
	ListRecords(ctx context.Context) error
	Stats(ctx context.Context) error
	Sync(ctx context.Context) error
	Pending(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the stockbook CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always available:
//	  - help           - show available commands
//	  - domain         - switch between the shoes and foods catalogs
//	  - list           - list catalog entries of the current domain
//	  - add            - add a catalog entry
//	  - delete         - delete an entry and its records
//	  - addrecord      - add a purchase/sale/inbound record
//	  - editrecord     - edit a record's date, price, count or memo
//	  - delrecord      - delete a single record
//	  - records        - list records of an entry
//	  - stats          - show the statistics summary for an entry
//	  - pending        - show how many local writes still wait for the server
//	  - exit | quit    - leave the program
//
//	Not logged in:
//	  - register       - create an account
//	  - login          - authenticate
//
//	Logged in:
//	  - sync           - drain the outbox now instead of waiting for the timer
//	  - image          - upload an image and attach it to an entry
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sb> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printlnFn("Available commands: domain, (l)ist, add, delete, addrecord, editrecord, delrecord, records, stats, pending, exit")
			if a.isLoggedIn() {
				printlnFn("Logged in: sync, image")
			} else {
				printlnFn("Not logged in: register, login")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "domain":
			_ = a.SwitchDomain(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "add":
			_ = a.AddEntry(ctx)

		case "delete":
			_ = a.DeleteEntry(ctx)

		case "image":
			_ = a.SetImage(ctx)

		case "addrecord":
			_ = a.AddRecord(ctx)

		case "editrecord":
			_ = a.EditRecord(ctx)

		case "delrecord":
			_ = a.DeleteRecord(ctx)

		case "records":
			_ = a.ListRecords(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "pending":
			_ = a.Pending(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
