package smolcube

import (
	"io"
)

// Loader is the interface for codecs that can decode a collection from a
// stream.
type Loader interface {
	// Load reads an entire collection from `r`. On failure no partial
	// collection is returned.
	Load(r io.Reader) (*Collection, error)
}

// Saver is the interface for codecs that can encode a collection to a stream.
type Saver interface {
	// Save writes `coll` to `w`. Codecs that can't represent some LUTs of the
	// collection document whether they skip them or fail.
	Save(w io.Writer, coll *Collection) error
}

// Codec is the interface for file formats supporting both directions.
type Codec interface {
	Loader
	Saver

	// Name returns a short human-readable name for the format.
	Name() string

	// Extension returns the conventional file extension, including the dot.
	Extension() string
}
