// Package disks holds named disk-size presets for `sfs format`, so a caller
// doesn't have to work out a raw block count by hand.
//
// SFS only cares about one dimension -- the number of 4096-byte blocks --
// so the preset table here has a single size column, loaded from an
// embedded CSV via gocsv.
package disks

import (
	"fmt"
	"strings"

	_ "embed"

	"github.com/gocarina/gocsv"
)

// Preset names a disk-size preset loaded from presets.csv.
type Preset struct {
	Slug        string `csv:"slug"`
	Description string `csv:"description"`
	TotalBlocks uint32 `csv:"total_blocks"`
}

//go:embed presets.csv
var presetsRawCSV string

var presets map[string]Preset

func init() {
	presets = make(map[string]Preset)

	rows := []Preset{}
	if err := gocsv.UnmarshalString(presetsRawCSV, &rows); err != nil {
		panic(fmt.Sprintf("disks: malformed embedded presets.csv: %s", err))
	}

	for _, row := range rows {
		if _, exists := presets[row.Slug]; exists {
			panic(fmt.Sprintf("disks: duplicate preset slug %q", row.Slug))
		}
		presets[row.Slug] = row
	}
}

// Get returns the named preset. The error message lists every known slug,
// which is the detail a CLI user actually needs when they typo a name.
func Get(slug string) (Preset, error) {
	preset, ok := presets[slug]
	if ok {
		return preset, nil
	}

	known := make([]string, 0, len(presets))
	for s := range presets {
		known = append(known, s)
	}
	return Preset{}, fmt.Errorf(
		"no preset named %q; known presets: %s", slug, strings.Join(known, ", "))
}

// Names returns every known preset slug.
func Names() []string {
	names := make([]string, 0, len(presets))
	for s := range presets {
		names = append(names, s)
	}
	return names
}
