package smolcube

// SaveFlags control the optional transforms applied to each LUT when a
// collection is written to a container.
type SaveFlags uint32

const (
	// SaveUseFilter passes LUT data through the byte-delta filter.
	SaveUseFilter SaveFlags = 1 << iota
	// SaveConvertToFloat16 stores Float32 LUTs as Float16.
	SaveConvertToFloat16
	// SaveExpandTo4Channels appends a zero-filled fourth channel to 3-channel
	// LUTs.
	SaveExpandTo4Channels
)

const SaveDefault = SaveUseFilter

func (f SaveFlags) Has(flag SaveFlags) bool {
	return f&flag == flag
}

func (f SaveFlags) String() string {
	if f == 0 {
		return "none"
	}
	s := ""
	add := func(name string) {
		if s != "" {
			s += "|"
		}
		s += name
	}
	if f.Has(SaveUseFilter) {
		add("filter")
	}
	if f.Has(SaveConvertToFloat16) {
		add("float16")
	}
	if f.Has(SaveExpandTo4Channels) {
		add("rgba")
	}
	return s
}
