// Package variant picks one of several mutually exclusive child elements.
//
// Candidates are tried in declared order and the first one present wins;
// later candidates are ignored even when they are present too.
package variant

import (
	"github.com/beevik/etree"
)

// Candidate is one possible child element and its decoder
type Candidate[T any] struct {
	Tag    string
	Decode func(el *etree.Element) (T, error)
}

// Resolver holds an ordered candidate list for one group
type Resolver[T any] struct {
	name       string
	candidates []Candidate[T]
}

// New creates a resolver; order of candidates is the precedence order
func New[T any](name string, candidates ...Candidate[T]) *Resolver[T] {
	return &Resolver[T]{name: name, candidates: candidates}
}

// Name returns the group name, e.g. "ICMS"
func (r *Resolver[T]) Name() string { return r.name }

// Tags returns candidate tags in precedence order
func (r *Resolver[T]) Tags() []string {
	tags := make([]string, len(r.candidates))
	for i, c := range r.candidates {
		tags[i] = c.Tag
	}
	return tags
}

// Match returns the first candidate tag present under parent and its element
func (r *Resolver[T]) Match(parent *etree.Element) (string, *etree.Element) {
	if parent == nil {
		return "", nil
	}
	for _, c := range r.candidates {
		if el := parent.SelectElement(c.Tag); el != nil {
			return c.Tag, el
		}
	}
	return "", nil
}

// Resolve decodes the first candidate present under parent. When no
// candidate is present it returns ok == false and no error.
func (r *Resolver[T]) Resolve(parent *etree.Element) (value T, ok bool, err error) {
	tag, el := r.Match(parent)
	if el == nil {
		return value, false, nil
	}
	for _, c := range r.candidates {
		if c.Tag == tag {
			value, err = c.Decode(el)
			break
		}
	}
	return value, true, err
}
