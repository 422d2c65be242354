package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// promptLine reads one line of operator input with a visible label.
func (a *App) promptLine(label string) (string, error) {
	fmt.Fprintf(a.deps.Stderr, "%s: ", label)
	line, err := a.stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password with echo off when stdin is a
// terminal, falling back to a plain line read otherwise (tests, pipes).
func (a *App) promptPassword(label string) (string, error) {
	fmt.Fprintf(a.deps.Stderr, "%s: ", label)
	if file, ok := a.deps.Stdin.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		raw, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(a.deps.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	line, err := a.stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptNewPassword prompts twice and requires both entries to match.
func (a *App) promptNewPassword() (string, error) {
	password, err := a.promptPassword("Password")
	if err != nil {
		return "", err
	}
	confirm, err := a.promptPassword("Repeat for confirmation")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}
