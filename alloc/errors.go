package alloc

import "errors"

var (
	// ErrInvalidRequest indicates an allocation size that is zero, negative,
	// or larger than the store's capacity.
	ErrInvalidRequest = errors.New("alloc: invalid request size")

	// ErrNoSpace indicates that the store cannot satisfy the request: no
	// contiguous free run of the needed length (bitmap) or not enough free
	// nodes (list).
	ErrNoSpace = errors.New("alloc: no space available")

	// ErrBadFree indicates a free of something that is not a currently
	// outstanding allocation - a double free, a ref never returned by Alloc,
	// or an out-of-range index.
	ErrBadFree = errors.New("alloc: ref is not an outstanding allocation")
)
