package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// shell reads commands line by line until EOF, "exit" or "quit". Command
// errors are reported and the loop continues.
func (a *App) shell(ctx context.Context) error {
	fmt.Fprintln(a.out, "recordvault shell (type 'help' for commands)")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(a.out, "rv> ")

		line, err := a.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil

		parts := strings.Fields(line)
		if len(parts) > 0 {
			switch parts[0] {
			case "exit", "quit":
				fmt.Fprintln(a.out, "Bye!")
				return nil
			case "shell":
				fmt.Fprintln(a.out, "already in the shell")
			default:
				if runErr := a.Run(ctx, parts); runErr != nil {
					fmt.Fprintf(a.out, "error: %v\n", runErr)
				}
			}
		}

		if eof {
			fmt.Fprintln(a.out)
			return nil
		}
	}
}
