package start

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// DecodePolicy decides what happens to argument and environment bytes that
// are not valid UTF-8.
type DecodePolicy int

const (
	// DecodeStrict rejects ill-formed text with a *DecodeError.
	DecodeStrict DecodePolicy = iota
	// DecodeLossy replaces ill-formed sequences with U+FFFD.
	DecodeLossy
)

func (d DecodePolicy) String() string {
	switch d {
	case DecodeStrict:
		return "strict"
	case DecodeLossy:
		return "lossy"
	default:
		return fmt.Sprintf("DecodePolicy(%d)", int(d))
	}
}

// UnmarshalText parses "strict" or "lossy".
func (d *DecodePolicy) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "strict", "":
		*d = DecodeStrict
	case "lossy":
		*d = DecodeLossy
	default:
		return fmt.Errorf("unknown decode policy %q (want strict or lossy)", text)
	}
	return nil
}

// Decode errors wrapped by *DecodeError.
var (
	ErrInvalidText      = errors.New("invalid UTF-8 text")
	ErrMissingSeparator = errors.New("missing '=' separator")
)

// DecodeError reports a malformed slot in the argument or environment vector.
type DecodeError struct {
	Vector string // "argv" or "envp"
	Index  int
	Raw    []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s[%d]: %v: %q", e.Vector, e.Index, e.Err, e.Raw)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (d DecodePolicy) decode(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	if d != DecodeLossy {
		return "", ErrInvalidText
	}
	return decodeLossy(raw), nil
}

func decodeLossy(raw []byte) string {
	out, _, err := transform.Bytes(runes.ReplaceIllFormed(), raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
	}
	return string(out)
}
