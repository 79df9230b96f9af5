// Package profiles holds the predefined combinations of save flags that the
// command-line tools expose by name.
package profiles

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/dargueta/smolcube"
	"github.com/gocarina/gocsv"
)

// Profile is a named set of save options.
type Profile struct {
	Slug       string `csv:"slug"`
	Name       string `csv:"name"`
	UseFilter  uint   `csv:"filter"`
	ToFloat16  uint   `csv:"float16"`
	ExpandRGBA uint   `csv:"rgba"`
	Notes      string `csv:"notes"`
}

// Flags returns the save flags the profile stands for.
func (p Profile) Flags() smolcube.SaveFlags {
	var flags smolcube.SaveFlags
	if p.UseFilter != 0 {
		flags |= smolcube.SaveUseFilter
	}
	if p.ToFloat16 != 0 {
		flags |= smolcube.SaveConvertToFloat16
	}
	if p.ExpandRGBA != 0 {
		flags |= smolcube.SaveExpandTo4Channels
	}
	return flags
}

// DefaultSlug names the profile used when none is given.
const DefaultSlug = "filtered"

//go:embed profiles.csv
var profilesRawCSV string
var profiles map[string]Profile

// Get returns the profile with the given slug.
func Get(slug string) (Profile, error) {
	profile, ok := profiles[slug]
	if ok {
		return profile, nil
	}

	err := fmt.Errorf("no predefined profile exists with slug %q", slug)
	return Profile{}, err
}

// All returns every predefined profile, sorted by slug.
func All() []Profile {
	result := make([]Profile, 0, len(profiles))
	for _, profile := range profiles {
		result = append(result, profile)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Slug < result[j].Slug })
	return result
}

// Slugs returns the slugs of every predefined profile, sorted.
func Slugs() []string {
	all := All()
	slugs := make([]string, len(all))
	for i, profile := range all {
		slugs[i] = profile.Slug
	}
	return slugs
}

func parseProfiles(rawCSV string) (map[string]Profile, error) {
	csvReader := csv.NewReader(strings.NewReader(rawCSV))
	csvReader.Comma = '|'

	var rows []Profile
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}

	result := make(map[string]Profile, len(rows))
	for i, row := range rows {
		if _, exists := result[row.Slug]; exists {
			return nil, fmt.Errorf(
				"duplicate definition for profile %q found on row %d", row.Slug, i+1)
		}
		result[row.Slug] = row
	}
	return result, nil
}

func init() {
	var err error
	profiles, err = parseProfiles(profilesRawCSV)
	if err != nil {
		panic(err)
	}
}
