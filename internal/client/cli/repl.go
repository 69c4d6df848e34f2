package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is what the REPL needs from the App. Tests provide a stub.
type execIface interface {
	helpText(ctx context.Context) string
	exec(ctx context.Context, name string, args []string) error
	report(ctx context.Context, err error)
}

// runREPL reads commands line by line from reader until EOF, "exit" or
// "quit", or until ctx is done. The first word of a line names the command,
// the rest are its arguments. Command failures are reported and the loop
// carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(w, "storefront %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch name := parts[0]; name {
		case "help", "?":
			fmt.Fprintln(w, a.helpText(ctx))
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			if err := a.exec(ctx, name, parts[1:]); err != nil {
				if errors.Is(err, errUnknownCommand) {
					fmt.Fprintf(w, "Unknown command: %s (type 'help')\n", name)
					continue
				}
				a.report(ctx, err)
			}
		}
	}
}
