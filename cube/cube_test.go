package cube_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dargueta/smolcube"
	"github.com/dargueta/smolcube/cube"
	sctest "github.com/dargueta/smolcube/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample3D = `# Created by hand
# second comment line
TITLE "Tiny cube"
DOMAIN_MIN 0 0 0
DOMAIN_MAX 1 1 1

LUT_3D_SIZE 2
0 0 0
1 0 0
0 1 0
1 1 0
0 0 1
1 0 1
0 1 1
1 1 1
`

func TestRead3D(t *testing.T) {
	coll, err := cube.Read(strings.NewReader(sample3D))
	require.NoError(t, err)

	assert.Equal(t, "Tiny cube", coll.Title)
	assert.Equal(t, "Created by hand\nsecond comment line", coll.Comment)
	require.NotNil(t, coll.Domain)
	assert.Equal(t, []float32{0, 0, 0}, coll.Domain.Min)
	assert.Equal(t, []float32{1, 1, 1}, coll.Domain.Max)

	require.Equal(t, 1, coll.Len())
	lut := coll.LUT(0)
	assert.Equal(t, 3, lut.Channels)
	assert.Equal(t, 3, lut.Dimension)
	assert.Equal(t, smolcube.Float32, lut.Type)
	assert.Equal(t, 2, lut.SizeX)
	assert.Equal(t, 2, lut.SizeY)
	assert.Equal(t, 2, lut.SizeZ)
	assert.Equal(t, sctest.CreateIdentityCube(t, 2).Float32s(), lut.Float32s())
}

func TestReadShaperAnd3D(t *testing.T) {
	text := "LUT_1D_SIZE 3\nLUT_3D_SIZE 2\nLUT_1D_INPUT_RANGE -0.5 2\n" +
		"0 0 0\n0.5 0.5 0.5\n1 1 1\n" +
		strings.Repeat("0.25 0.5 0.75\n", 8)

	coll, err := cube.Read(strings.NewReader(text))
	require.NoError(t, err)
	require.Equal(t, 2, coll.Len())

	shaper := coll.LUT(0)
	assert.Equal(t, 1, shaper.Dimension)
	assert.Equal(t, 3, shaper.SizeX)
	assert.Equal(t, []float32{0, 0, 0, 0.5, 0.5, 0.5, 1, 1, 1}, shaper.Float32s())

	lut3D := coll.LUT(1)
	assert.Equal(t, 3, lut3D.Dimension)
	assert.Equal(t, float32(0.75), lut3D.Float32At(7, 2))

	require.NotNil(t, coll.Domain)
	assert.Equal(t, []float32{-0.5, -0.5, -0.5}, coll.Domain.Min)
	assert.Equal(t, []float32{2, 2, 2}, coll.Domain.Max)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		Name     string
		Text     string
		Expected error
	}{
		{"no_size", "TITLE \"x\"\n0 0 0\n", smolcube.ErrInvalidHeaderData},
		{"empty", "", smolcube.ErrInvalidHeaderData},
		{"bad_size", "LUT_3D_SIZE abc\n", smolcube.ErrInvalidHeaderData},
		{"negative_size", "LUT_1D_SIZE -4\n0 0 0\n", smolcube.ErrInvalidHeaderData},
		{"huge_size", "LUT_3D_SIZE 5000\n0 0 0\n", smolcube.ErrInvalidHeaderData},
		{"short_body_large_size", "LUT_3D_SIZE 4096\n0 0 0\n", smolcube.ErrInvalidContentData},
		{"short_body_large_1d", "LUT_1D_SIZE 65536\nLUT_3D_SIZE 2\n0 0 0\n", smolcube.ErrInvalidContentData},
		{"too_few", "LUT_1D_SIZE 3\n0 0 0\n1 1 1\n", smolcube.ErrInvalidContentData},
		{"too_many", "LUT_1D_SIZE 1\n0 0 0\n1 1 1\n", smolcube.ErrInvalidContentData},
		{"two_values", "LUT_1D_SIZE 1\n0 0\n", smolcube.ErrInvalidContentData},
		{"not_a_number", "LUT_1D_SIZE 1\n0 x 0\n", smolcube.ErrInvalidContentData},
		{"keyword_after_data", "LUT_1D_SIZE 1\n0 0 0\nTITLE \"late\"\n", smolcube.ErrInvalidContentData},
		{"bad_domain", "DOMAIN_MIN 0 0\nLUT_1D_SIZE 1\n0 0 0\n", smolcube.ErrInvalidHeaderData},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			coll, err := cube.Read(strings.NewReader(test.Text))
			assert.ErrorIs(t, err, test.Expected)
			assert.Nil(t, coll)
		})
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	shaper := sctest.CreateRampLUT(t, 3, 1, 16)
	lut3D := sctest.CreateRampLUT(t, 3, 3, 5)
	coll := sctest.CreateCollection(t, "Round trip", "line one\nline two", shaper, lut3D)
	coll.Domain = &smolcube.Domain{Min: []float32{0, 0.1, 0}, Max: []float32{1, 1, 1.25}}

	var buffer bytes.Buffer
	require.NoError(t, cube.Write(&buffer, coll))

	decoded, err := cube.Read(&buffer)
	require.NoError(t, err)
	assert.Equal(t, coll.Title, decoded.Title)
	assert.Equal(t, coll.Comment, decoded.Comment)
	assert.Equal(t, coll.Domain, decoded.Domain)
	require.Equal(t, 2, decoded.Len())
	assert.True(t, shaper.Equal(decoded.LUT(0)), "shaper changed in round trip")
	assert.True(t, lut3D.Equal(decoded.LUT(1)), "3D LUT changed in round trip")
}

func TestWriteSkipsUnsupported(t *testing.T) {
	rgba := sctest.CreateRampLUT(t, 4, 3, 3)
	lut2D := sctest.CreateRampLUT(t, 3, 2, 3)
	half := sctest.CreateRandomLUT(t, 3, 3, smolcube.Float16, 3)
	lut3D := sctest.CreateIdentityCube(t, 3)
	second3D := sctest.CreateIdentityCube(t, 4)
	coll := sctest.CreateCollection(t, "", "", rgba, lut2D, half, lut3D, second3D)

	var buffer bytes.Buffer
	require.NoError(t, cube.Write(&buffer, coll))

	decoded, err := cube.Read(&buffer)
	require.NoError(t, err)
	require.Equal(t, 1, decoded.Len())
	assert.True(t, lut3D.Equal(decoded.LUT(0)))
}

func TestSupported(t *testing.T) {
	assert.True(t, cube.Supported(sctest.CreateIdentityCube(t, 2)))
	assert.True(t, cube.Supported(sctest.CreateRampLUT(t, 3, 1, 8)))
	assert.False(t, cube.Supported(sctest.CreateRampLUT(t, 1, 1, 8)))
	assert.False(t, cube.Supported(smolcube.NewLUT(3, 3, smolcube.Float32, 2, 3, 2)))
}

func TestWriteRejectsBadArguments(t *testing.T) {
	var buffer bytes.Buffer
	assert.ErrorIs(t, cube.Write(&buffer, nil), smolcube.ErrInvalidArgument)
	assert.ErrorIs(t, cube.Write(&buffer, smolcube.NewCollection("", "")), smolcube.ErrInvalidArgument)
}

func TestSaveAndLoadFile(t *testing.T) {
	coll := sctest.CreateCollection(t, "file", "", sctest.CreateIdentityCube(t, 4))
	path := filepath.Join(t.TempDir(), "identity.cube")

	require.NoError(t, cube.SaveFile(path, coll))
	decoded, err := cube.LoadFile(path)
	require.NoError(t, err)
	assert.True(t, coll.LUT(0).Equal(decoded.LUT(0)))

	_, err = cube.LoadFile(filepath.Join(t.TempDir(), "missing.cube"))
	assert.ErrorIs(t, err, smolcube.ErrFileAccess)
	_, err = cube.LoadFile("")
	assert.ErrorIs(t, err, smolcube.ErrInvalidArgument)
}
