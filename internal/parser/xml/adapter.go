package xml

import (
	"github.com/beevik/etree"

	"github.com/rezonia/nfe-mapper/internal/model"
)

// Envelope locates the infNFe information root inside a wrapper element
type Envelope interface {
	// Locate returns infNFe when root is this kind of envelope, nil otherwise
	Locate(root *etree.Element) *etree.Element

	// Name identifies the envelope
	Name() string
}

// Registry holds all registered envelopes
type Registry struct {
	envelopes []Envelope
}

// NewRegistry creates registry with the standard envelopes
// Order matters: outer wrappers come before the bare root
func NewRegistry() *Registry {
	return &Registry{
		envelopes: []Envelope{
			NewProcEnvelope(), // <nfeProc><NFe><infNFe>, authorised document with protocol
			NewNFeEnvelope(),  // <NFe><infNFe>, signed or unsigned document
			NewBareEnvelope(), // <infNFe> alone
		},
	}
}

// Detect finds the envelope of root and returns it with the infNFe element
func (r *Registry) Detect(root *etree.Element) (Envelope, *etree.Element, error) {
	if root == nil {
		return nil, nil, model.NewMissingSubstructureError("", "document has no root element")
	}
	for _, e := range r.envelopes {
		if inf := e.Locate(root); inf != nil {
			return e, inf, nil
		}
	}
	return nil, nil, model.NewMissingSubstructureError(root.Tag, "no infNFe information root found")
}

// Register adds a custom envelope to the registry
func (r *Registry) Register(e Envelope) {
	// Add at the beginning so custom envelopes take priority
	r.envelopes = append([]Envelope{e}, r.envelopes...)
}

// Get returns the envelope with the given name
func (r *Registry) Get(name string) Envelope {
	for _, e := range r.envelopes {
		if e.Name() == name {
			return e
		}
	}
	return nil
}

// tagEnvelope walks a fixed path of tags from the root down to infNFe
type tagEnvelope struct {
	name string
	path []string // root tag first, infNFe last
}

func (e *tagEnvelope) Name() string { return e.name }

func (e *tagEnvelope) Locate(root *etree.Element) *etree.Element {
	if root.Tag != e.path[0] {
		return nil
	}
	el := root
	for _, tag := range e.path[1:] {
		if el = el.SelectElement(tag); el == nil {
			return nil
		}
	}
	return el
}

// NewProcEnvelope matches <nfeProc>
func NewProcEnvelope() Envelope {
	return &tagEnvelope{name: "nfeProc", path: []string{"nfeProc", "NFe", "infNFe"}}
}

// NewNFeEnvelope matches <NFe>
func NewNFeEnvelope() Envelope {
	return &tagEnvelope{name: "NFe", path: []string{"NFe", "infNFe"}}
}

// NewBareEnvelope matches a root that is infNFe itself
func NewBareEnvelope() Envelope {
	return &tagEnvelope{name: "infNFe", path: []string{"infNFe"}}
}
