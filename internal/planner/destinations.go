package planner

import (
	_ "embed"
	"encoding/json"
	"strings"
)

// destinationsJSON is the built-in airport directory, embedded at compile
// time so the table ships with the binary. A real deployment would source
// this from a dedicated airport database; the directory type keeps that swap
// local to construction.
//
//go:embed destinations.json
var destinationsJSON []byte

// Destination is one entry of the airport directory: a display name for
// report rendering and the country whose visa rules apply.
type Destination struct {
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
}

// Directory maps airport codes to destination metadata.
// Lookups are case-insensitive; unknown codes are a valid state, not an error.
type Directory struct {
	entries map[string]Destination
}

// NewDirectory builds a Directory from an explicit table. Keys are
// normalized to upper case.
func NewDirectory(entries map[string]Destination) *Directory {
	normalized := make(map[string]Destination, len(entries))
	for code, dest := range entries {
		normalized[strings.ToUpper(code)] = dest
	}
	return &Directory{entries: normalized}
}

// DefaultDirectory returns the directory backed by the embedded table.
func DefaultDirectory() *Directory {
	var entries map[string]Destination
	if err := json.Unmarshal(destinationsJSON, &entries); err != nil {
		// The embedded file is fixed at compile time; a parse failure is a
		// build defect, not a runtime condition.
		panic("planner: embedded destinations.json is invalid: " + err.Error())
	}
	return NewDirectory(entries)
}

// Lookup returns the destination for an airport code.
// The boolean is false for codes the directory does not know.
func (d *Directory) Lookup(code string) (Destination, bool) {
	dest, ok := d.entries[strings.ToUpper(code)]
	return dest, ok
}
