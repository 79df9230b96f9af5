package smolcube

import (
	"fmt"

	bitmap "github.com/boljen/go-bitmap"
)

// Storage describes where the data of a LUT in a collection lives.
type Storage int

const (
	// StorageExternal means the buffer was supplied by the caller, e.g. via
	// [Collection.Append]. The collection never releases it.
	StorageExternal Storage = iota
	// StorageFile means the LUT is a view into the collection's file buffer.
	StorageFile
	// StorageOwned means the collection allocated the buffer itself, e.g. when
	// un-filtering data read from a file.
	StorageOwned
)

func (s Storage) String() string {
	switch s {
	case StorageExternal:
		return "external"
	case StorageFile:
		return "file"
	case StorageOwned:
		return "owned"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Domain gives the input range of the LUTs in a collection, per channel.
type Domain struct {
	Min []float32
	Max []float32
}

// Collection is an ordered list of LUTs plus optional metadata. Order matters:
// a shaper LUT comes before the LUT it feeds.
//
// When a collection is loaded from a container, unfiltered LUTs point directly
// into the loaded file buffer. Closing the collection releases that buffer and
// every buffer the collection allocated, and invalidates all LUT views.
type Collection struct {
	Title   string
	Comment string
	Domain  *Domain

	luts     []LUT
	fileData []byte
	// A LUT set in neither bitmap has caller-supplied data.
	owned    bitmap.Bitmap
	fileView bitmap.Bitmap
}

// NewCollection creates an empty collection with the given metadata.
func NewCollection(title, comment string) *Collection {
	return &Collection{Title: title, Comment: comment}
}

// NewCollectionFromFile creates an empty collection that takes ownership of
// `fileData`. LUTs are attached to it with [Collection.AppendFileView] and
// [Collection.AppendOwned].
func NewCollectionFromFile(fileData []byte) *Collection {
	return &Collection{fileData: fileData}
}

// Append adds a LUT whose buffer belongs to the caller.
func (c *Collection) Append(lut LUT) error {
	if err := lut.Validate(); err != nil {
		return err
	}
	if lut.Data == nil {
		return ErrInvalidArgument.WithMessage("LUT has no data")
	}
	c.push(lut, StorageExternal)
	return nil
}

// AppendFileView adds a LUT whose data is the byte range [offset, offset+length)
// of the collection's file buffer.
func (c *Collection) AppendFileView(lut LUT, offset, length int) error {
	if offset < 0 || length < 0 || offset+length > len(c.fileData) {
		return ErrInvalidContentData.WithMessage(
			fmt.Sprintf(
				"view [%d, %d) is outside the file buffer of %d bytes",
				offset,
				offset+length,
				len(c.fileData)))
	}
	lut.Data = c.fileData[offset : offset+length : offset+length]
	c.push(lut, StorageFile)
	return nil
}

// AppendOwned adds a LUT whose buffer was allocated for this collection. The
// collection takes ownership of lut.Data.
func (c *Collection) AppendOwned(lut LUT) {
	c.push(lut, StorageOwned)
}

// growBitmap returns `bm`, or a copy of it with room for at least `size` bits.
func growBitmap(bm bitmap.Bitmap, size int) bitmap.Bitmap {
	if size <= bm.Len() {
		return bm
	}
	grown := bitmap.New(size * 2)
	for i := 0; i < bm.Len(); i++ {
		grown.Set(i, bm.Get(i))
	}
	return grown
}

func (c *Collection) push(lut LUT, storage Storage) {
	index := len(c.luts)
	c.luts = append(c.luts, lut)

	c.owned = growBitmap(c.owned, index+1)
	c.fileView = growBitmap(c.fileView, index+1)
	c.owned.Set(index, storage == StorageOwned)
	c.fileView.Set(index, storage == StorageFile)
}

// Len returns the number of LUTs in the collection.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.luts)
}

// LUT returns the LUT at `index`, or a zero-valued LUT if the index is out of
// range.
func (c *Collection) LUT(index int) LUT {
	if c == nil || index < 0 || index >= len(c.luts) {
		return LUT{}
	}
	return c.luts[index]
}

// LUTs returns a copy of the list of LUTs. The data buffers are shared.
func (c *Collection) LUTs() []LUT {
	if c == nil {
		return nil
	}
	luts := make([]LUT, len(c.luts))
	copy(luts, c.luts)
	return luts
}

// StorageOf returns where the data of the LUT at `index` lives.
func (c *Collection) StorageOf(index int) Storage {
	if c == nil || index < 0 || index >= len(c.luts) {
		return StorageExternal
	}
	switch {
	case c.owned.Get(index):
		return StorageOwned
	case c.fileView.Get(index):
		return StorageFile
	default:
		return StorageExternal
	}
}

// IsOwned returns true if the collection allocated the buffer of the LUT at
// `index` and will release it on [Collection.Close].
func (c *Collection) IsOwned(index int) bool {
	if c == nil || index < 0 || index >= len(c.luts) {
		return false
	}
	return c.owned.Get(index)
}

// FileData returns the shared file buffer the collection was loaded from, or
// nil if it was built programmatically.
func (c *Collection) FileData() []byte {
	if c == nil {
		return nil
	}
	return c.fileData
}

// Close releases the file buffer and every buffer the collection owns. All
// LUTs obtained from the collection must not be used afterwards. Calling Close
// more than once is harmless.
func (c *Collection) Close() error {
	if c == nil {
		return nil
	}
	for i := range c.luts {
		if c.owned.Get(i) || c.fileView.Get(i) {
			c.luts[i].Data = nil
		}
	}
	c.fileData = nil
	c.luts = nil
	c.owned = nil
	c.fileView = nil
	return nil
}
