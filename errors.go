package vtio

import "errors"

// Caller-visible errors. Decode-time anomalies never produce one of these;
// per the error handling design they surface as Unknown or recovery
// events instead. Only encoder calls and registry/configuration mistakes
// return an error.
var (
	// ErrBufferOverflow is returned by an encoder when the destination
	// buffer is too small for the command's canonical byte form.
	ErrBufferOverflow = errors.New("vtio: buffer overflow")

	// ErrDuplicateDescriptor is returned by Register (and panics during
	// package init for the built-in descriptor set) when two descriptors
	// share the same (class, private, intermediates, final byte) key.
	ErrDuplicateDescriptor = errors.New("vtio: duplicate descriptor key")

	// ErrRegistryFrozen is returned by Register once the trie has been
	// built. The registry freezes at the first Parser construction.
	ErrRegistryFrozen = errors.New("vtio: descriptor registry already frozen")
)
