package rewrite

import (
	"errors"
	"fmt"
)

var (
	ErrMissingMaterial     = errors.New("rewrite: missing material")
	ErrUnknownMaterialKind = errors.New("rewrite: unknown material kind")
)

// BlockError wraps a fatal rewrite error with the location of the offending
// block.
type BlockError struct {
	// Index of the block in the parsed document.
	Index int

	// The block header line.
	Header string

	// The material or light name being processed.
	Name string

	Err error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d (%s) [%s]: %s", e.Index, e.Header, e.Name, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}
