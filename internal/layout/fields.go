// Package layout maps between flat wire sections and their domain grouping.
//
// Several NF-e sections interleave fields of different concerns in a
// schema-fixed order (<ide> mixes access-key parts with emission and
// operation data, <prod> mixes commercial and fiscal fields). The adapter
// structs here mirror that wire order exactly; the parser regroups them.
package layout

import (
	"github.com/beevik/etree"

	"github.com/rezonia/nfe-mapper/internal/model"
)

// Field is one leaf element
type Field struct {
	Tag  string
	Text string
}

// Fields is an ordered list of leaf elements
type Fields []Field

// FromElement collects the leaf children of el in document order. Children
// that have element children of their own are skipped.
func FromElement(el *etree.Element) Fields {
	if el == nil {
		return nil
	}
	var f Fields
	for _, c := range el.ChildElements() {
		if len(c.ChildElements()) > 0 {
			continue
		}
		f = append(f, Field{Tag: c.Tag, Text: c.Text()})
	}
	return f
}

// Get returns the text of the first field with tag
func (f Fields) Get(tag string) (string, bool) {
	for _, fd := range f {
		if fd.Tag == tag {
			return fd.Text, true
		}
	}
	return "", false
}

// Tags returns the tags in order
func (f Fields) Tags() []string {
	tags := make([]string, len(f))
	for i, fd := range f {
		tags[i] = fd.Tag
	}
	return tags
}

// Add appends a mandatory field
func (f *Fields) Add(tag, text string) {
	*f = append(*f, Field{Tag: tag, Text: text})
}

// AddOpt appends a field only when text is present
func (f *Fields) AddOpt(tag string, text *string) {
	if text != nil {
		f.Add(tag, *text)
	}
}

// AppendTo writes the fields as child elements of parent
func (f Fields) AppendTo(parent *etree.Element) {
	for _, fd := range f {
		parent.CreateElement(fd.Tag).SetText(fd.Text)
	}
}

// reader pulls fields out of a Fields list, keeping the first error
type reader struct {
	section string
	fields  Fields
	err     error
}

func newReader(section string, f Fields) *reader {
	return &reader{section: section, fields: f}
}

func (r *reader) req(tag string) string {
	text, ok := r.fields.Get(tag)
	if !ok && r.err == nil {
		r.err = model.NewMissingFieldError(r.section, tag)
	}
	return text
}

func (r *reader) opt(tag string) *string {
	text, ok := r.fields.Get(tag)
	if !ok {
		return nil
	}
	return &text
}
