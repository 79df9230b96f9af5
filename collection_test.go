package smolcube_test

import (
	"testing"

	"github.com/dargueta/smolcube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionAppend(t *testing.T) {
	coll := smolcube.NewCollection("title", "comment")
	require.NoError(t, coll.Append(smolcube.NewLUT(3, 1, smolcube.Float32, 16, 1, 1)))
	require.NoError(t, coll.Append(smolcube.NewLUT(3, 3, smolcube.Float32, 4, 4, 4)))

	assert.Equal(t, 2, coll.Len())
	assert.Equal(t, 1, coll.LUT(0).Dimension)
	assert.Equal(t, 3, coll.LUT(1).Dimension)
	assert.Equal(t, smolcube.StorageExternal, coll.StorageOf(0))
	assert.False(t, coll.IsOwned(1))

	assert.Equal(t, smolcube.LUT{}, coll.LUT(2), "out of range index should give a zero LUT")
	assert.Equal(t, smolcube.LUT{}, coll.LUT(-1))
}

func TestCollectionAppendRejectsInvalid(t *testing.T) {
	coll := smolcube.NewCollection("", "")

	lut := smolcube.NewLUT(3, 1, smolcube.Float32, 16, 1, 1)
	lut.Data = nil
	assert.ErrorIs(t, coll.Append(lut), smolcube.ErrInvalidArgument)

	lut = smolcube.NewLUT(6, 1, smolcube.Float32, 16, 1, 1)
	assert.ErrorIs(t, coll.Append(lut), smolcube.ErrInvalidArgument)
	assert.Equal(t, 0, coll.Len())
}

func TestCollectionStorageTracking(t *testing.T) {
	fileData := make([]byte, 100)
	for i := range fileData {
		fileData[i] = byte(i)
	}
	coll := smolcube.NewCollectionFromFile(fileData)

	// Push enough LUTs to force the ownership bitmap to grow a few times.
	for i := 0; i < 20; i++ {
		lut := smolcube.NewLUT(1, 1, smolcube.Float32, 1, 1, 1)
		if i%2 == 0 {
			require.NoError(t, coll.AppendFileView(lut, i*4, 4))
		} else {
			coll.AppendOwned(lut)
		}
	}

	require.Equal(t, 20, coll.Len())
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			assert.Equal(t, smolcube.StorageFile, coll.StorageOf(i), "LUT %d", i)
			assert.False(t, coll.IsOwned(i), "LUT %d", i)
			assert.Equal(t, fileData[i*4:i*4+4], coll.LUT(i).Data)
		} else {
			assert.Equal(t, smolcube.StorageOwned, coll.StorageOf(i), "LUT %d", i)
			assert.True(t, coll.IsOwned(i), "LUT %d", i)
		}
	}
}

func TestCollectionFileViewOutOfRange(t *testing.T) {
	coll := smolcube.NewCollectionFromFile(make([]byte, 16))
	lut := smolcube.NewLUT(1, 1, smolcube.Float32, 4, 1, 1)
	assert.ErrorIs(t, coll.AppendFileView(lut, 4, 16), smolcube.ErrInvalidContentData)
	assert.ErrorIs(t, coll.AppendFileView(lut, -1, 4), smolcube.ErrInvalidContentData)
}

func TestCollectionClose(t *testing.T) {
	coll := smolcube.NewCollectionFromFile(make([]byte, 64))
	require.NoError(t, coll.AppendFileView(smolcube.NewLUT(1, 1, smolcube.Float32, 4, 1, 1), 0, 16))
	coll.AppendOwned(smolcube.NewLUT(1, 1, smolcube.Float32, 4, 1, 1))

	require.NoError(t, coll.Close())
	assert.Equal(t, 0, coll.Len())
	assert.Nil(t, coll.FileData())
	assert.False(t, coll.IsOwned(1))

	assert.NoError(t, coll.Close(), "second Close should be harmless")

	var nilCollection *smolcube.Collection
	assert.Equal(t, 0, nilCollection.Len())
	assert.NoError(t, nilCollection.Close())
}

func TestCollectionMixedStorage(t *testing.T) {
	coll := smolcube.NewCollectionFromFile(make([]byte, 64))
	kinds := []smolcube.Storage{
		smolcube.StorageExternal,
		smolcube.StorageFile,
		smolcube.StorageOwned,
	}

	// Cycle the three kinds so both bitmaps grow past their first allocation.
	for i := 0; i < 30; i++ {
		lut := smolcube.NewLUT(1, 1, smolcube.Float32, 1, 1, 1)
		switch kinds[i%3] {
		case smolcube.StorageExternal:
			require.NoError(t, coll.Append(lut))
		case smolcube.StorageFile:
			require.NoError(t, coll.AppendFileView(lut, 0, 4))
		case smolcube.StorageOwned:
			coll.AppendOwned(lut)
		}
	}

	for i := 0; i < 30; i++ {
		assert.Equal(t, kinds[i%3], coll.StorageOf(i), "LUT %d", i)
		assert.Equal(t, kinds[i%3] == smolcube.StorageOwned, coll.IsOwned(i), "LUT %d", i)
	}
	assert.Equal(t, smolcube.StorageExternal, coll.StorageOf(30), "out of range index")
}
