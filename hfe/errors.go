package hfe

import "fmt"

// HfeError reports a fatal, unrecoverable problem with an image: a bad
// magic, an unsupported encoding or interface mode, a sector count that
// doesn't add up, or a corrupt track. All five conditions are fatal and
// carry one of a small set of sentinel messages so callers can match on
// err.Error() the way the reference tooling does.
type HfeError struct {
	Msg string
	Err error
}

func (e *HfeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *HfeError) Unwrap() error {
	return e.Err
}

func newHfeError(msg string) error {
	return &HfeError{Msg: msg}
}

func wrapHfeError(msg string, err error) error {
	return &HfeError{Msg: msg, Err: err}
}
