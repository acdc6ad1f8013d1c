package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// Terminal access is swapped out in tests.
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

// fder is implemented by *os.File.
type fder interface {
	Fd() uintptr
}

// readLine returns the next line without its line ending. A final line
// without a newline is returned as is; io.EOF is reported only when
// nothing was left to read.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// GetSimpleText writes prompt and a "> " marker to w and returns the next
// line of reader with surrounding whitespace removed.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n> ", prompt); err != nil {
		return "", err
	}
	line, err := readLine(reader)
	return strings.TrimSpace(line), err
}

// GetPassword prompts on w for a password. If in is a terminal the password
// is read from it without echo. Otherwise, for piped or redirected input,
// the next line of reader is taken verbatim, which keeps reader and in in
// step.
//
// The caller wipes the returned slice.
func GetPassword(reader *bufio.Reader, in io.Reader, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}

	if f, ok := in.(fder); ok && isTerminal(int(f.Fd())) {
		pw, err := readPassword(int(f.Fd()))
		fmt.Fprintln(w)
		return pw, err
	}

	line, err := readLine(reader)
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}
