package profiles_test

import (
	"testing"

	"github.com/dargueta/smolcube"
	"github.com/dargueta/smolcube/profiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfile(t *testing.T) {
	profile, err := profiles.Get(profiles.DefaultSlug)
	require.NoError(t, err)
	assert.Equal(t, smolcube.SaveDefault, profile.Flags())
}

func TestProfileFlags(t *testing.T) {
	tests := []struct {
		Slug  string
		Flags smolcube.SaveFlags
	}{
		{"raw", 0},
		{"half", smolcube.SaveConvertToFloat16},
		{"half_filtered", smolcube.SaveUseFilter | smolcube.SaveConvertToFloat16},
		{
			"rgba_half_filtered",
			smolcube.SaveUseFilter | smolcube.SaveConvertToFloat16 | smolcube.SaveExpandTo4Channels,
		},
	}

	for _, test := range tests {
		t.Run(test.Slug, func(t *testing.T) {
			profile, err := profiles.Get(test.Slug)
			require.NoError(t, err)
			assert.Equal(t, test.Flags, profile.Flags())
			assert.NotEmpty(t, profile.Name)
		})
	}
}

func TestUnknownProfile(t *testing.T) {
	_, err := profiles.Get("nope")
	assert.Error(t, err)
}

func TestAllIsSorted(t *testing.T) {
	slugs := profiles.Slugs()
	require.Len(t, slugs, 6)
	assert.IsIncreasing(t, slugs)
	assert.Contains(t, slugs, profiles.DefaultSlug)
}
