package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompts go to stderr so that --json output on stdout stays clean.
var (
	stdin      = bufio.NewReader(os.Stdin)
	promptOut  = io.Writer(os.Stderr)
	isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

func readLine() (string, error) {
	line, err := stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptWithDefault shows a prompt with default value in brackets.
// Returns the user's input, or the default if input is empty.
func promptWithDefault(label, defaultVal string) (string, error) {
	if defaultVal != "" {
		fmt.Fprintf(promptOut, "%s [%s]: ", label, defaultVal)
	} else {
		fmt.Fprintf(promptOut, "%s: ", label)
	}
	input, err := readLine()
	if err != nil {
		return "", err
	}
	if input == "" {
		return defaultVal, nil
	}
	return input, nil
}

// promptRequired prompts until a non-empty value is provided.
func promptRequired(label string) (string, error) {
	for {
		fmt.Fprintf(promptOut, "%s: ", label)
		input, err := readLine()
		if err != nil {
			return "", err
		}
		if input != "" {
			return input, nil
		}
		fmt.Fprintln(promptOut, "  Value required")
	}
}

// promptPassword reads a password without echo when stdin is a terminal.
func promptPassword(label string) (string, error) {
	fmt.Fprintf(promptOut, "%s: ", label)
	if !isTerminal() {
		return readLine()
	}

	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(promptOut)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// promptConfirm asks a yes/no question. Anything but y or yes is no.
func promptConfirm(question string) (bool, error) {
	fmt.Fprintf(promptOut, "%s [y/N]: ", question)
	input, err := readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(input) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
