package xml

import (
	"errors"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/rezonia/nfe-mapper/internal/codes"
	"github.com/rezonia/nfe-mapper/internal/layout"
	"github.com/rezonia/nfe-mapper/internal/model"
	"github.com/rezonia/nfe-mapper/internal/scalar"
)

// reader converts the leaf fields of one section, keeping the first error.
// Every failure is tagged with the section name and the wire tag.
type reader struct {
	section string
	fields  layout.Fields
	err     error
}

func newReader(section string, el *etree.Element) *reader {
	return &reader{section: section, fields: layout.FromElement(el)}
}

// fail records err unless an earlier error is already held
func (r *reader) fail(tag string, err error) {
	if r.err != nil || err == nil {
		return
	}
	var de *model.DecodeError
	if errors.As(err, &de) {
		r.err = de.InSection(r.section, tag)
		return
	}
	r.err = err
}

func (r *reader) require(tag string) (string, bool) {
	text, ok := r.fields.Get(tag)
	if !ok {
		r.fail(tag, model.NewMissingFieldError(r.section, tag))
	}
	return text, ok
}

func (r *reader) text(tag string) string {
	text, _ := r.require(tag)
	return scalar.DecodeText(text)
}

func (r *reader) optText(tag string) *string {
	text, ok := r.fields.Get(tag)
	if !ok {
		return nil
	}
	t := scalar.DecodeText(text)
	return &t
}

func (r *reader) integer(tag string) int {
	text, ok := r.require(tag)
	if !ok {
		return 0
	}
	return r.parseInt(tag, text)
}

func (r *reader) optInteger(tag string) *int {
	text, ok := r.fields.Get(tag)
	if !ok {
		return nil
	}
	v := r.parseInt(tag, text)
	return &v
}

func (r *reader) amount(tag string) decimal.Decimal {
	text, ok := r.require(tag)
	if !ok {
		return decimal.Zero
	}
	return r.parseAmount(tag, text)
}

func (r *reader) optAmount(tag string) *decimal.Decimal {
	text, ok := r.fields.Get(tag)
	if !ok {
		return nil
	}
	return r.parseOptAmount(tag, &text)
}

// conversions of text already pulled out by a layout adapter

func (r *reader) parseInt(tag, text string) int {
	v, err := scalar.DecodeInt(text)
	r.fail(tag, err)
	return v
}

func (r *reader) parseAmount(tag, text string) decimal.Decimal {
	v, err := scalar.DecodeAmount(text)
	r.fail(tag, err)
	return v
}

func (r *reader) parseOptAmount(tag string, text *string) *decimal.Decimal {
	if text == nil {
		return nil
	}
	v := r.parseAmount(tag, *text)
	return &v
}

func (r *reader) parseDateTime(tag, text string) time.Time {
	v, err := scalar.DecodeDateTime(text)
	r.fail(tag, err)
	return v
}

func (r *reader) parseOptDateTime(tag string, text *string) *time.Time {
	if text == nil {
		return nil
	}
	v := r.parseDateTime(tag, *text)
	return &v
}

func (r *reader) parseFlag(tag, text string) bool {
	v, err := scalar.DecodeFlag(text)
	r.fail(tag, err)
	return v
}

func (r *reader) parseOptText(text *string) *string {
	if text == nil {
		return nil
	}
	t := scalar.DecodeText(*text)
	return &t
}

func (r *reader) parseOptBarcode(text *string) *string {
	if text == nil {
		return nil
	}
	return scalar.DecodeBarcode(*text)
}

// code decodes a mandatory enumerated field through its table
func code[T ~string](r *reader, table *codes.Table[T], tag string) T {
	text, ok := r.require(tag)
	if !ok {
		var zero T
		return zero
	}
	return parseCode(r, table, tag, text)
}

func parseCode[T ~string](r *reader, table *codes.Table[T], tag, text string) T {
	v, err := table.Decode(text)
	r.fail(tag, err)
	return v
}

func parseOptCode[T ~string](r *reader, table *codes.Table[T], tag string, text *string) *T {
	if text == nil {
		return nil
	}
	v := parseCode(r, table, tag, *text)
	return &v
}

// encoder renders model values as wire text, keeping the first error
type encoder struct {
	section string
	err     error
}

func (e *encoder) fail(field string, err error) {
	if e.err != nil || err == nil {
		return
	}
	var de *model.DecodeError
	if errors.As(err, &de) {
		e.err = de.InSection(e.section, field)
		return
	}
	e.err = err
}

func encodeCode[T ~string](e *encoder, table *codes.Table[T], v T) string {
	c, err := table.Encode(v)
	e.fail(table.Name(), err)
	return c
}

func encodeOptCode[T ~string](e *encoder, table *codes.Table[T], v *T) *string {
	if v == nil {
		return nil
	}
	c := encodeCode(e, table, *v)
	return &c
}

func encodeAmount(e *encoder, tag string, d decimal.Decimal) string {
	text, err := scalar.EncodeAmount(d)
	e.fail(tag, err)
	return text
}

func encodeOptAmount(e *encoder, tag string, d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	text := encodeAmount(e, tag, *d)
	return &text
}

func encodeOptInt(v *int, width int) *string {
	if v == nil {
		return nil
	}
	s := scalar.EncodeInt(*v, width)
	return &s
}

func encodeOptDateTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := scalar.EncodeDateTime(*t)
	return &s
}

// child returns the first direct child with tag, or reports it missing
func child(r *reader, el *etree.Element, tag string) *etree.Element {
	c := el.SelectElement(tag)
	if c == nil {
		r.fail(tag, model.NewMissingFieldError(r.section, tag))
	}
	return c
}
