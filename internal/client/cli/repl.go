package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Upload(ctx context.Context, args []string) error
	Wait(ctx context.Context) error
	ShowLog(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  upload <args...>  submit a form (path | @path | name=value | name=@path)
  wait              wait for uploads in flight
  log [html]        show the upload log
  exit | quit       wait for uploads in flight and leave`

// runREPL reads commands line by line and dispatches them to a. Uploads run
// in the background, so a new upload may be submitted while earlier ones are
// in flight. Errors returned by handlers are ignored here; handlers report
// their own errors. The loop ends on EOF, "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, out io.Writer) {
	for {
		fmt.Fprintf(out, "gophupload%s> ", statusFn())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(out, helpText)

		case "u", "upload":
			_ = a.Upload(ctx, args)

		case "wait":
			_ = a.Wait(ctx)

		case "log":
			_ = a.ShowLog(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}
