// Package photonvalue decodes the self-describing typed value tree used as
// the Photon wire protocol's parameter language.
package photonvalue

import "strings"

// DecodeError carries a trail of context frames, the outermost added last,
// built up as a decode failure propagates out of nested containers.
type DecodeError struct {
	frames []string
}

func newDecodeError(msg string) *DecodeError {
	return &DecodeError{frames: []string{msg}}
}

// Wrap prepends a context frame describing the caller that observed err.
// Returns a *DecodeError so callers can keep chaining: `return nil, Wrap(err, "decode Foo")`.
func Wrap(err error, msg string) *DecodeError {
	de, ok := err.(*DecodeError)
	if !ok {
		return &DecodeError{frames: []string{msg, err.Error()}}
	}
	de.frames = append([]string{msg}, de.frames...)
	return de
}

func (e *DecodeError) Error() string {
	return strings.Join(e.frames, ": ")
}
