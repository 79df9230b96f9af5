package cube

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dargueta/smolcube"
)

// Max1DSize and Max3DSize are the largest LUT sizes the reader accepts.
const (
	Max1DSize = 65536
	Max3DSize = 4096

	// Headers can declare far more entries than the input holds, so the value
	// buffer starts no larger than this and grows with the data.
	maxPreallocValues = 1 << 20
)

type header struct {
	title      string
	comments   []string
	size1D     int
	size3D     int
	domainMin  []float32
	domainMax  []float32
	inputRange []float32
}

func parseFloats(fields []string, count int) ([]float32, error) {
	if len(fields) != count {
		return nil, fmt.Errorf("expected %d numbers, got %d", count, len(fields))
	}
	values := make([]float32, count)
	for i, field := range fields {
		value, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return nil, err
		}
		values[i] = float32(value)
	}
	return values, nil
}

func parseSize(fields []string) (int, error) {
	if len(fields) != 1 {
		return 0, fmt.Errorf("expected one size, got %d values", len(fields))
	}
	return strconv.Atoi(fields[0])
}

// parseKeyword handles a single non-data line of the header.
func (h *header) parseKeyword(line string) error {
	keyword, rest, _ := strings.Cut(line, " ")
	fields := strings.Fields(rest)

	var err error
	switch keyword {
	case "TITLE":
		h.title = strings.Trim(strings.TrimSpace(rest), `"`)
	case "LUT_1D_SIZE":
		h.size1D, err = parseSize(fields)
	case "LUT_3D_SIZE":
		h.size3D, err = parseSize(fields)
	case "DOMAIN_MIN":
		h.domainMin, err = parseFloats(fields, 3)
	case "DOMAIN_MAX":
		h.domainMax, err = parseFloats(fields, 3)
	case "LUT_1D_INPUT_RANGE", "LUT_3D_INPUT_RANGE":
		h.inputRange, err = parseFloats(fields, 2)
	}
	// Other keywords, e.g. LUT_IN_VIDEO_RANGE, don't affect the data.
	if err != nil {
		return smolcube.ErrInvalidHeaderData.WithMessage(
			fmt.Sprintf("bad %s line: %s", keyword, err.Error()))
	}
	return nil
}

func (h *header) domain() *smolcube.Domain {
	switch {
	case h.domainMin != nil || h.domainMax != nil:
		domain := &smolcube.Domain{
			Min: []float32{0, 0, 0},
			Max: []float32{1, 1, 1},
		}
		if h.domainMin != nil {
			domain.Min = h.domainMin
		}
		if h.domainMax != nil {
			domain.Max = h.domainMax
		}
		return domain
	case h.inputRange != nil:
		low, high := h.inputRange[0], h.inputRange[1]
		return &smolcube.Domain{
			Min: []float32{low, low, low},
			Max: []float32{high, high, high},
		}
	default:
		return nil
	}
}

func (h *header) validate() error {
	if h.size1D < 0 || h.size1D > Max1DSize {
		return smolcube.ErrInvalidHeaderData.WithMessage(
			fmt.Sprintf("1D size must not exceed %d, got %d", Max1DSize, h.size1D))
	}
	if h.size3D < 0 || h.size3D > Max3DSize {
		return smolcube.ErrInvalidHeaderData.WithMessage(
			fmt.Sprintf("3D size must not exceed %d, got %d", Max3DSize, h.size3D))
	}
	if h.size1D == 0 && h.size3D == 0 {
		return smolcube.ErrInvalidHeaderData.WithMessage("no LUT_1D_SIZE or LUT_3D_SIZE found")
	}
	return nil
}

func isDataLine(line string) bool {
	c := line[0]
	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.'
}

// Read parses a .cube file. The returned collection holds the 1D LUT first, if
// there is one, then the 3D LUT.
func Read(r io.Reader) (*smolcube.Collection, error) {
	if r == nil {
		return nil, smolcube.ErrInvalidArgument.WithMessage("reader is nil")
	}

	scanner := bufio.NewScanner(r)
	var h header
	var values []float32
	expected := 0
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line[0] == '#' {
			if values == nil {
				h.comments = append(h.comments, strings.TrimSpace(line[1:]))
			}
			continue
		}

		if !isDataLine(line) {
			if values != nil {
				return nil, smolcube.ErrInvalidContentData.WithMessage(
					fmt.Sprintf("line %d: keyword after table data", lineNumber))
			}
			if err := h.parseKeyword(line); err != nil {
				return nil, err
			}
			continue
		}

		if values == nil {
			if err := h.validate(); err != nil {
				return nil, err
			}
			expected = (h.size1D + h.size3D*h.size3D*h.size3D) * 3
			values = make([]float32, 0, min(expected, maxPreallocValues))
		}

		entry, err := parseFloats(strings.Fields(line), 3)
		if err != nil {
			return nil, smolcube.ErrInvalidContentData.WithMessage(
				fmt.Sprintf("line %d: %s", lineNumber, err.Error()))
		}
		if len(values) == expected {
			return nil, smolcube.ErrInvalidContentData.WithMessage(
				fmt.Sprintf("line %d: more than the %d declared entries", lineNumber, expected/3))
		}
		values = append(values, entry...)
	}
	if err := scanner.Err(); err != nil {
		return nil, smolcube.ErrFileAccess.Wrap(err)
	}

	if values == nil {
		if err := h.validate(); err != nil {
			return nil, err
		}
	}
	if len(values) != expected {
		return nil, smolcube.ErrInvalidContentData.WithMessage(
			fmt.Sprintf("expected %d entries, got %d", expected/3, len(values)/3))
	}

	coll := smolcube.NewCollection(h.title, strings.Join(h.comments, "\n"))
	coll.Domain = h.domain()

	offset := 0
	if h.size1D > 0 {
		count := h.size1D * 3
		lut, err := smolcube.NewFloat32LUT(3, 1, h.size1D, 1, 1, values[:count])
		if err != nil {
			return nil, err
		}
		coll.AppendOwned(lut)
		offset = count
	}
	if h.size3D > 0 {
		lut, err := smolcube.NewFloat32LUT(3, 3, h.size3D, h.size3D, h.size3D, values[offset:])
		if err != nil {
			return nil, err
		}
		coll.AppendOwned(lut)
	}
	return coll, nil
}

// LoadFile reads the .cube file at `path`.
func LoadFile(path string) (*smolcube.Collection, error) {
	if path == "" {
		return nil, smolcube.ErrInvalidArgument.WithMessage("path is empty")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, smolcube.ErrFileAccess.Wrap(err)
	}
	defer file.Close()
	return Read(file)
}
