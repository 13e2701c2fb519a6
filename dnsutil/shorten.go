package dnsutil

import (
	"strings"
)

// shortenedError keeps the original error reachable via Unwrap for the rare caller
// which wants more than the terse message.
type shortenedError struct {
	msg string
	err error
}

func (t *shortenedError) Error() string {
	return t.msg
}

func (t *shortenedError) Unwrap() error {
	return t.err
}

// ShortenLookupError condenses the sprawling errors the net and dns packages return for
// the two failures which dominate operational logs - timeouts and refused connections.
// Everything else passes thru untouched.
func ShortenLookupError(err error) error {
	if err == nil {
		return err
	}
	m := err.Error() // Shorten up the error if we can
	switch {
	case strings.Contains(m, "i/o timeout"):
		err = &shortenedError{msg: "Timeout", err: err}
	case strings.Contains(m, "connection refused"):
		err = &shortenedError{msg: "Connection refused", err: err}
	}

	return err
}
