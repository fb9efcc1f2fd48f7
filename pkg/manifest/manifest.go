// Package manifest loads item manifests: the measured item sizes plus
// optional layout defaults that feed a solve.
//
// Two formats are supported, selected by file extension:
//
//   - TOML (.toml): the native format, human-editable
//   - JSON (.json): for machine-produced manifests
//
// A TOML manifest looks like:
//
//	column_limit = 3
//	width_limit = 800
//
//	[spacing]
//	row = 4
//	column = 8
//
//	[[items]]
//	width = 120
//	height = 80
//
//	[[items]]
//	width = 90
//	height = 140
//
// Every item size is validated on load: sizes must be finite and
// non-negative, and validation failures carry the index of the offending
// item.
package manifest

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mhartvig/colstack/pkg/column"
	"github.com/mhartvig/colstack/pkg/errors"
)

// Manifest is a parsed item manifest.
type Manifest struct {
	// Items are the measured sizes, in layout order.
	Items []column.Item `json:"items" toml:"items"`

	// Spacing holds the row and column gaps. Defaults to zero.
	Spacing column.Spacing `json:"spacing" toml:"spacing"`

	// ColumnLimit bounds the column count. Defaults to DefaultColumnLimit
	// when omitted.
	ColumnLimit int `json:"column_limit" toml:"column_limit"`

	// WidthLimit is the available width. Zero or omitted means unbounded.
	WidthLimit float64 `json:"width_limit" toml:"width_limit"`
}

// DefaultColumnLimit applies when a manifest does not specify one.
const DefaultColumnLimit = 4

// Load reads and validates a manifest file. The format is chosen by
// extension: .toml or .json.
func Load(path string) (*Manifest, error) {
	if err := errors.ValidateManifestPath(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "reading manifest %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported manifest extension %q (must be .toml or .json)", filepath.Ext(path))
	}
}

// ParseTOML parses a TOML manifest.
func ParseTOML(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parsing TOML manifest")
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseJSON parses a JSON manifest.
func ParseJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parsing JSON manifest")
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// EffectiveWidthLimit returns the width limit as the engine expects it:
// +Inf when the manifest leaves it unset.
func (m *Manifest) EffectiveWidthLimit() float64 {
	if m.WidthLimit <= 0 {
		return math.Inf(1)
	}
	return m.WidthLimit
}

// Engine constructs a column engine from the manifest.
func (m *Manifest) Engine() (*column.Engine, error) {
	return column.NewEngine(m.Items, m.Spacing, m.ColumnLimit)
}

func (m *Manifest) validate() error {
	if len(m.Items) == 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "manifest has no items")
	}
	for i, it := range m.Items {
		if err := errors.ValidateItemSize(it.Width, it.Height); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidManifest, err, "item %d", i)
		}
	}
	if err := errors.ValidateSpacing(m.Spacing.Row, m.Spacing.Column); err != nil {
		return err
	}
	if m.ColumnLimit == 0 {
		m.ColumnLimit = DefaultColumnLimit
	}
	if err := errors.ValidateColumnLimit(m.ColumnLimit); err != nil {
		return err
	}
	if m.WidthLimit < 0 || math.IsNaN(m.WidthLimit) {
		return errors.New(errors.ErrCodeInvalidManifest, "width_limit must be >= 0, got %g", m.WidthLimit)
	}
	return nil
}
