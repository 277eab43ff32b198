package assets

import (
	"errors"
	"fmt"
)

// ErrClosed is reported when a load is requested after the pool was closed.
var ErrClosed = errors.New("asset pool closed")

// Kind identifies what a load was fetching.
type Kind int

const (
	KindMesh Kind = iota
	KindTexture
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindTexture:
		return "texture"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// LoadError describes a failed mesh or texture load.
type LoadError struct {
	Path string
	Kind Kind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
