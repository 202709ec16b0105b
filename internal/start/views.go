package start

import (
	"bytes"
	"io"

	"github.com/mrzor/lilium-tools/internal/kabi"
)

// Args is a forward-only cursor over the argument vector. Index 0 is
// conventionally the program name.
type Args struct {
	base   **byte
	index  int
	policy DecodePolicy
}

// Next returns the next argument. It returns io.EOF once the NULL sentinel
// is reached, and keeps returning io.EOF without reading past it. A slot
// that cannot be decoded yields a *DecodeError; the cursor has already moved
// past it, so the caller may keep iterating.
func (a *Args) Next() (string, error) {
	p := kabi.Slot(a.base, a.index)
	if p == nil {
		return "", io.EOF
	}
	i := a.index
	a.index++

	raw := kabi.CString(p)
	s, err := a.policy.decode(raw)
	if err != nil {
		return "", &DecodeError{Vector: "argv", Index: i, Raw: bytes.Clone(raw), Err: err}
	}
	return s, nil
}

// Collect drains the cursor. It stops at the first decode error.
func (a *Args) Collect() ([]string, error) {
	var out []string
	for {
		s, err := a.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
}

// Var is one decoded environment entry.
type Var struct {
	Name  string
	Value string
}

// Vars is a forward-only cursor over the environment vector.
type Vars struct {
	base   **byte
	index  int
	policy DecodePolicy
}

// Next returns the next environment entry, split on its first '='. It
// follows the same end-of-vector and error rules as Args.Next. An entry with
// no '=' is a *DecodeError wrapping ErrMissingSeparator.
func (v *Vars) Next() (Var, error) {
	p := kabi.Slot(v.base, v.index)
	if p == nil {
		return Var{}, io.EOF
	}
	i := v.index
	v.index++

	raw := kabi.CString(p)
	fail := func(err error) (Var, error) {
		return Var{}, &DecodeError{Vector: "envp", Index: i, Raw: bytes.Clone(raw), Err: err}
	}

	name, value, found := bytes.Cut(raw, []byte{'='})
	if !found {
		return fail(ErrMissingSeparator)
	}
	n, err := v.policy.decode(name)
	if err != nil {
		return fail(err)
	}
	val, err := v.policy.decode(value)
	if err != nil {
		return fail(err)
	}
	return Var{Name: n, Value: val}, nil
}

// Collect drains the cursor. It stops at the first decode error.
func (v *Vars) Collect() ([]Var, error) {
	var out []Var
	for {
		kv, err := v.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, kv)
	}
}
