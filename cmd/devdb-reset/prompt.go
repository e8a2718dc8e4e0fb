package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI colors for interactive output; decorative only.
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
)

func colorize(color, msg string) string {
	return color + msg + colorReset
}

var (
	stdin     io.Reader = os.Stdin
	promptOut io.Writer = os.Stderr

	isTerminalFunc = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

	readPasswordFunc = func() (string, error) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		return string(b), err
	}
)

// promptPassword asks for the password with echo disabled.
func promptPassword(user string) (string, error) {
	fmt.Fprintf(promptOut, "Password for MySQL user %q (empty for none): ", user)
	pw, err := readPasswordFunc()
	fmt.Fprintln(promptOut)
	return pw, err
}

// confirm asks a yes/no question; anything but y/yes counts as no.
func confirm(in *bufio.Reader, question string) (bool, error) {
	fmt.Fprintf(promptOut, "%s [y/N] ", question)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// chooseSchema prints the candidate schemas and reads the typed name of
// the one to drop. Membership is re-validated by the caller.
func chooseSchema(in *bufio.Reader, schemas []string) (string, error) {
	fmt.Fprintln(promptOut, "Existing schemas:")
	for _, s := range schemas {
		fmt.Fprintf(promptOut, "  %s\n", colorize(colorYellow, s))
	}
	fmt.Fprint(promptOut, "Schema to drop: ")
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// systemSchemas ship with the server and are never offered for deletion.
var systemSchemas = map[string]bool{
	"mysql":              true,
	"information_schema": true,
	"performance_schema": true,
	"sys":                true,
}

func selectable(schemas []string) []string {
	var out []string
	for _, s := range schemas {
		if !systemSchemas[s] {
			out = append(out, s)
		}
	}
	return out
}
