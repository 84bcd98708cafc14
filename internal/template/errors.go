package template

import "errors"

var (
	// ErrUnmatchedBrace is returned when a "#{" placeholder is never closed.
	ErrUnmatchedBrace = errors.New("unmatched brace in template placeholder")

	// ErrMissingParameter is returned when a placeholder binds to a
	// parameter index past the end of the parameter list.
	ErrMissingParameter = errors.New("missing template parameter")

	// ErrParameterPosition is returned when a tree parameter lands in a
	// slot that cannot hold it, such as a method name.
	ErrParameterPosition = errors.New("template parameter in unsupported position")

	// ErrInvalidMode is returned for a coordinate mode outside before,
	// after and replace.
	ErrInvalidMode = errors.New("invalid coordinate mode")

	// ErrInvalidLocation is returned for an unknown coordinate location.
	ErrInvalidLocation = errors.New("invalid coordinate location")

	// ErrAnchorNotFound is returned when the anchor is not reachable from
	// the tree being edited.
	ErrAnchorNotFound = errors.New("anchor not found")

	// ErrFragmentShape is returned when the parsed template does not fit
	// the coordinate, such as two statements at an expression.
	ErrFragmentShape = errors.New("template does not fit coordinate")
)
