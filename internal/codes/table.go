// Package codes holds the enumerated code tables of the NF-e layout.
//
// A table is data: an ordered, closed mapping between wire codes and the
// symbolic variants declared in the model package, tagged with the schema
// version that defines it. Unknown codes are always an error.
package codes

import (
	"strings"

	"github.com/rezonia/nfe-mapper/internal/model"
)

// Entry pairs a wire code with its variant
type Entry[T ~string] struct {
	Code    string
	Variant T
}

// E is shorthand for building entries
func E[T ~string](code string, v T) Entry[T] {
	return Entry[T]{Code: code, Variant: v}
}

// Table is a bidirectional code table for one enumerated field
type Table[T ~string] struct {
	name      string
	version   model.VersaoLayout
	entries   []Entry[T]
	byCode    map[string]T
	byVariant map[T]string
	def       *T
}

// NewTable builds a table; duplicate codes or variants panic since tables
// are package-level data
func NewTable[T ~string](name string, version model.VersaoLayout, entries ...Entry[T]) *Table[T] {
	t := &Table[T]{
		name:      name,
		version:   version,
		entries:   entries,
		byCode:    make(map[string]T, len(entries)),
		byVariant: make(map[T]string, len(entries)),
	}
	for _, e := range entries {
		if _, dup := t.byCode[e.Code]; dup {
			panic("codes: duplicate code " + e.Code + " in " + name)
		}
		if _, dup := t.byVariant[e.Variant]; dup {
			panic("codes: duplicate variant " + string(e.Variant) + " in " + name)
		}
		t.byCode[e.Code] = e.Variant
		t.byVariant[e.Variant] = e.Code
	}
	return t
}

// WithDefault records the documented default variant of the table. The
// default is metadata only; Decode never falls back to it.
func (t *Table[T]) WithDefault(v T) *Table[T] {
	if _, ok := t.byVariant[v]; !ok {
		panic("codes: default " + string(v) + " not in " + t.name)
	}
	t.def = &v
	return t
}

// Name returns the wire tag the table serves
func (t *Table[T]) Name() string { return t.name }

// Version returns the schema version the table belongs to
func (t *Table[T]) Version() model.VersaoLayout { return t.version }

// Default returns the documented default variant, if any
func (t *Table[T]) Default() (T, bool) {
	if t.def == nil {
		var zero T
		return zero, false
	}
	return *t.def, true
}

// Decode maps a wire code to its variant
func (t *Table[T]) Decode(code string) (T, error) {
	c := strings.TrimSpace(code)
	v, ok := t.byCode[c]
	if !ok {
		var zero T
		return zero, model.NewUnknownCodeError(t.name, c)
	}
	return v, nil
}

// Encode maps a variant to its wire code
func (t *Table[T]) Encode(v T) (string, error) {
	c, ok := t.byVariant[v]
	if !ok {
		return "", model.NewInvalidVariantError("", t.name, string(v), "variant not in code table")
	}
	return c, nil
}

// Entries returns the entries in declared order
func (t *Table[T]) Entries() []Entry[T] {
	out := make([]Entry[T], len(t.entries))
	copy(out, t.entries)
	return out
}

// Describe lists the table without its type parameter
func (t *Table[T]) Describe() TableInfo {
	info := TableInfo{Name: t.name, Version: t.version}
	for _, e := range t.entries {
		info.Entries = append(info.Entries, EntryInfo{Code: e.Code, Variant: string(e.Variant)})
	}
	if t.def != nil {
		info.Default = string(*t.def)
	}
	return info
}

// TableInfo is a type-erased view of a table, for listings
type TableInfo struct {
	Name    string             `json:"name" yaml:"name"`
	Version model.VersaoLayout `json:"version" yaml:"version"`
	Default string             `json:"default,omitempty" yaml:"default,omitempty"`
	Entries []EntryInfo        `json:"entries" yaml:"entries"`
}

// EntryInfo is one row of a TableInfo
type EntryInfo struct {
	Code    string `json:"code" yaml:"code"`
	Variant string `json:"variant" yaml:"variant"`
}
