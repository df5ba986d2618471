package bipartition

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is matched by every error that rejects the shape of
	// the input: an empty edge list, non-positive ids or tip count, or node
	// ids outside the declared range.
	ErrMalformedInput = errors.New("malformed tree input")

	// ErrOrderingViolation is returned in OrderStrict mode when the edges are
	// not postorder-consistent.
	ErrOrderingViolation = errors.New("edge ordering violation")
)

// InputError describes why an input was rejected. It wraps ErrMalformedInput.
type InputError struct {
	// Index is the offending edge's position, or -1 when the problem is not
	// tied to a single edge.
	Index  int
	Parent int
	Child  int
	Reason string
}

func (e *InputError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", ErrMalformedInput, e.Reason)
	}
	return fmt.Sprintf("%s: edge %d (%d -> %d): %s", ErrMalformedInput, e.Index, e.Parent, e.Child, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrMalformedInput
}

// OrderError reports the first edge that adds a child to a node whose tip set
// was already copied into an ancestor. It wraps ErrOrderingViolation.
type OrderError struct {
	Index int
	Node  int
	// UsedAt is the index of the edge that consumed Node as a child.
	UsedAt int
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("%s: edge %d adds a child to node %d, which edge %d already consumed", ErrOrderingViolation, e.Index, e.Node, e.UsedAt)
}

func (e *OrderError) Unwrap() error {
	return ErrOrderingViolation
}
