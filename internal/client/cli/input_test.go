package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTTY looks like a terminal file to GetPassword.
type fakeTTY struct {
	io.Reader
}

func (fakeTTY) Fd() uintptr { return 7 }

func stubTerminal(t *testing.T, pw []byte, err error) *int {
	t.Helper()
	oldIs, oldRead := isTerminal, readPassword
	t.Cleanup(func() { isTerminal, readPassword = oldIs, oldRead })

	fd := -1
	isTerminal = func(int) bool { return true }
	readPassword = func(n int) ([]byte, error) {
		fd = n
		return pw, err
	}
	return &fd
}

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("  hello world \r\n"))
	var out bytes.Buffer

	got, err := GetSimpleText(in, "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleText_LastLineWithoutNewline(t *testing.T) {
	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("lastline")), "Name?", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)
}

func TestGetSimpleText_EmptyInput(t *testing.T) {
	_, err := GetSimpleText(bufio.NewReader(strings.NewReader("")), "Name?", io.Discard)
	require.ErrorIs(t, err, io.EOF)
}

func TestGetPassword_Terminal(t *testing.T) {
	fd := stubTerminal(t, []byte("s3cret"), nil)
	var out bytes.Buffer

	pw, err := GetPassword(bufio.NewReader(strings.NewReader("")), fakeTTY{}, &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Equal(t, 7, *fd)
	assert.Equal(t, "Enter password: \n", out.String())
}

func TestGetPassword_TerminalError(t *testing.T) {
	stubTerminal(t, nil, errors.New("boom"))

	_, err := GetPassword(bufio.NewReader(strings.NewReader("")), fakeTTY{}, io.Discard)
	require.EqualError(t, err, "boom")
}

func TestGetPassword_PipedInputReadsLine(t *testing.T) {
	oldRead := readPassword
	t.Cleanup(func() { readPassword = oldRead })
	readPassword = func(int) ([]byte, error) {
		t.Fatal("terminal read on piped input")
		return nil, nil
	}

	src := strings.NewReader(" pass word \nnext\n")
	reader := bufio.NewReader(src)
	var out bytes.Buffer

	pw, err := GetPassword(reader, src, &out)
	require.NoError(t, err)
	assert.Equal(t, []byte(" pass word "), pw)
	assert.Equal(t, "Enter password: ", out.String())

	rest, err := readLine(reader)
	require.NoError(t, err)
	assert.Equal(t, "next", rest)
}

func TestGetPassword_PipedInputExhausted(t *testing.T) {
	src := strings.NewReader("")
	_, err := GetPassword(bufio.NewReader(src), src, io.Discard)
	require.ErrorIs(t, err, io.EOF)
}
