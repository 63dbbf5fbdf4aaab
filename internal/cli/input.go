package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetPassword prints a prompt to w and reads the secret from the terminal
// without echo. The caller should wipe the result.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter secret: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// resolveSecret returns the configured secret, or prompts for one when it is
// empty and stdin is a terminal. An empty result selects the default secret.
func resolveSecret(configured string, w io.Writer) ([]byte, error) {
	if configured != "" {
		return []byte(configured), nil
	}
	if !isTerminal(int(os.Stdin.Fd())) {
		return nil, nil
	}
	return GetPassword(w)
}
