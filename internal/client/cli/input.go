package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// ReadBody returns the message body. On a terminal it prompts on w and reads
// one line without echo; otherwise all of in is read. Surrounding whitespace
// is trimmed.
func ReadBody(in *os.File, w io.Writer) (string, error) {
	fd := int(in.Fd())
	if isTerminal(fd) {
		if _, err := fmt.Fprint(w, "Enter message (hidden): "); err != nil {
			return "", err
		}
		b, err := readPassword(fd)
		fmt.Fprintln(w)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	b, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// ParseRevealTime accepts unix seconds or an RFC 3339 timestamp.
func ParseRevealTime(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, fmt.Errorf("reveal time %q: want unix seconds or RFC 3339", s)
	}
	return t.Unix(), nil
}
