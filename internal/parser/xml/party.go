package xml

import (
	"github.com/beevik/etree"

	"github.com/rezonia/nfe-mapper/internal/layout"
	"github.com/rezonia/nfe-mapper/internal/model"
	"github.com/rezonia/nfe-mapper/internal/scalar"
	"github.com/rezonia/nfe-mapper/internal/variant"
)

// Party identifier tags in precedence order
var identificadorTags = []struct {
	tag  string
	tipo model.TipoIdentificador
}{
	{"CNPJ", model.IdentificadorCNPJ},
	{"CPF", model.IdentificadorCPF},
	{"idEstrangeiro", model.IdentificadorEstrangeiro},
}

func partyIDResolver() *variant.Resolver[model.Identificador] {
	candidates := make([]variant.Candidate[model.Identificador], 0, len(identificadorTags))
	for _, it := range identificadorTags {
		tipo := it.tipo
		candidates = append(candidates, variant.Candidate[model.Identificador]{
			Tag: it.tag,
			Decode: func(el *etree.Element) (model.Identificador, error) {
				return model.Identificador{Tipo: tipo, Numero: scalar.DecodeText(el.Text())}, nil
			},
		})
	}
	return variant.New("documento", candidates...)
}

func identificadorTag(t model.TipoIdentificador) (string, bool) {
	for _, it := range identificadorTags {
		if it.tipo == t {
			return it.tag, true
		}
	}
	return "", false
}

func (m *mapper) decodeIdentificador(r *reader, el *etree.Element) model.Identificador {
	id, ok, err := m.partyID.Resolve(el)
	if err != nil {
		r.fail("CNPJ", err)
	}
	if !ok {
		r.fail("CNPJ", model.NewMissingFieldError(r.section, "CNPJ"))
	}
	return id
}

func (m *mapper) encodeIdentificador(e *encoder, f *layout.Fields, id model.Identificador) {
	tag, ok := identificadorTag(id.Tipo)
	if !ok {
		e.fail("documento", model.NewInvalidVariantError(e.section, "documento", string(id.Tipo), "unknown identifier kind"))
		return
	}
	f.Add(tag, id.Numero)
}

func (m *mapper) decodeEmitente(el *etree.Element) (model.Emitente, error) {
	r := newReader("emit", el)
	e := model.Emitente{
		Documento:           m.decodeIdentificador(r, el),
		RazaoSocial:         r.text("xNome"),
		NomeFantasia:        r.optText("xFant"),
		InscricaoEstadual:   r.text("IE"),
		InscricaoEstadualST: r.optText("IEST"),
		Regime:              code(r, m.codes.Regime, "CRT"),
	}
	ender := child(r, el, "enderEmit")
	if r.err != nil {
		return e, r.err
	}

	var err error
	e.Endereco, err = m.decodeEndereco("emit/enderEmit", ender)
	return e, err
}

func (m *mapper) encodeEmitente(parent *etree.Element, e model.Emitente) error {
	enc := &encoder{section: "emit"}
	el := parent.CreateElement("emit")

	var head layout.Fields
	m.encodeIdentificador(enc, &head, e.Documento)
	head.Add("xNome", e.RazaoSocial)
	head.AddOpt("xFant", e.NomeFantasia)
	head.AppendTo(el)

	m.encodeEndereco(el, "enderEmit", e.Endereco)

	var tail layout.Fields
	tail.Add("IE", e.InscricaoEstadual)
	tail.AddOpt("IEST", e.InscricaoEstadualST)
	tail.Add("CRT", encodeCode(enc, m.codes.Regime, e.Regime))
	tail.AppendTo(el)

	return enc.err
}

func (m *mapper) decodeDestinatario(el *etree.Element) (*model.Destinatario, error) {
	r := newReader("dest", el)
	d := &model.Destinatario{
		Documento:         m.decodeIdentificador(r, el),
		RazaoSocial:       r.optText("xNome"),
		IndicadorIE:       code(r, m.codes.IndicadorIEDest, "indIEDest"),
		InscricaoEstadual: r.optText("IE"),
		Email:             r.optText("email"),
	}
	if r.err != nil {
		return nil, r.err
	}

	if ender := el.SelectElement("enderDest"); ender != nil {
		a, err := m.decodeEndereco("dest/enderDest", ender)
		if err != nil {
			return nil, err
		}
		d.Endereco = &a
	}
	return d, nil
}

func (m *mapper) encodeDestinatario(parent *etree.Element, d *model.Destinatario) error {
	enc := &encoder{section: "dest"}
	el := parent.CreateElement("dest")

	var head layout.Fields
	m.encodeIdentificador(enc, &head, d.Documento)
	head.AddOpt("xNome", d.RazaoSocial)
	head.AppendTo(el)

	if d.Endereco != nil {
		m.encodeEndereco(el, "enderDest", *d.Endereco)
	}

	var tail layout.Fields
	tail.Add("indIEDest", encodeCode(enc, m.codes.IndicadorIEDest, d.IndicadorIE))
	tail.AddOpt("IE", d.InscricaoEstadual)
	tail.AddOpt("email", d.Email)
	tail.AppendTo(el)

	return enc.err
}
