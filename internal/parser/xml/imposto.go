package xml

import (
	"github.com/beevik/etree"

	"github.com/rezonia/nfe-mapper/internal/layout"
	"github.com/rezonia/nfe-mapper/internal/model"
	"github.com/rezonia/nfe-mapper/internal/variant"
)

// ICMS variants in precedence order
const (
	tagICMS00    = "ICMS00"
	tagICMS60    = "ICMS60"
	tagICMSSN102 = "ICMSSN102"
	tagICMSSN202 = "ICMSSN202"
)

// family names a contribution group; PIS and COFINS share one shape
type family string

const (
	familyPIS    family = "PIS"
	familyCOFINS family = "COFINS"
)

func (f family) outr() string  { return string(f) + "Outr" }
func (f family) nt() string    { return string(f) + "NT" }
func (f family) aliq() string  { return string(f) + "Aliq" }
func (f family) rate() string  { return "p" + string(f) }
func (f family) value() string { return "v" + string(f) }

func (m *mapper) decodeImposto(el *etree.Element) (model.Imposto, error) {
	r := newReader(itemSection("imposto"), el)
	imp := model.Imposto{ValorTotalTributos: r.optAmount("vTotTrib")}
	if r.err != nil {
		return imp, r.err
	}

	var err error

	if imp.ICMS, err = resolveGroup(m, m.icms, el.SelectElement("ICMS")); err != nil {
		return imp, err
	}
	if imp.PIS, err = resolveGroup(m, m.pis, el.SelectElement(string(familyPIS))); err != nil {
		return imp, err
	}
	if imp.COFINS, err = resolveGroup(m, m.cofins, el.SelectElement(string(familyCOFINS))); err != nil {
		return imp, err
	}
	return imp, nil
}

// resolveGroup decodes the winning variant of a tax group. A group holding
// only unmodelled variants (ICMS10, PISST, ...) decodes as absent.
func resolveGroup[T any](m *mapper, r *variant.Resolver[T], group *etree.Element) (*T, error) {
	if group == nil {
		return nil, nil
	}
	tag, _ := r.Match(group)
	if tag == "" {
		m.log.Debug().Str("group", r.Name()).Strs("candidates", r.Tags()).Msg("no modelled variant in tax group")
		return nil, nil
	}
	v, _, err := r.Resolve(group)
	if err != nil {
		return nil, err
	}
	m.log.Debug().Str("group", r.Name()).Str("variant", tag).Msg("resolved tax group")
	return &v, nil
}

func (m *mapper) encodeImposto(parent *etree.Element, imp model.Imposto) error {
	el := parent.CreateElement("imposto")
	if imp.ValorTotalTributos != nil {
		enc := &encoder{section: itemSection("imposto")}
		text := encodeAmount(enc, "vTotTrib", *imp.ValorTotalTributos)
		if enc.err != nil {
			return enc.err
		}
		el.CreateElement("vTotTrib").SetText(text)
	}
	if imp.ICMS != nil {
		if err := m.encodeICMS(el, *imp.ICMS); err != nil {
			return err
		}
	}
	if imp.PIS != nil {
		if err := m.encodeContribuicao(el, familyPIS, *imp.PIS); err != nil {
			return err
		}
	}
	if imp.COFINS != nil {
		if err := m.encodeContribuicao(el, familyCOFINS, *imp.COFINS); err != nil {
			return err
		}
	}
	return nil
}

func (m *mapper) icmsResolver() *variant.Resolver[model.ICMS] {
	return variant.New("ICMS",
		variant.Candidate[model.ICMS]{Tag: tagICMS00, Decode: m.decodeICMS00},
		variant.Candidate[model.ICMS]{Tag: tagICMSSN202, Decode: m.decodeICMSSN202},
		variant.Candidate[model.ICMS]{Tag: tagICMS60, Decode: m.decodeICMS60},
		variant.Candidate[model.ICMS]{Tag: tagICMSSN102, Decode: m.decodeICMSSN102},
	)
}

func (m *mapper) decodeICMS00(el *etree.Element) (model.ICMS, error) {
	r := newReader(itemSection("imposto", "ICMS", tagICMS00), el)
	v := &model.ICMS00{
		Origem:       code(r, m.codes.Origem, "orig"),
		CST:          r.text("CST"),
		ModalidadeBC: code(r, m.codes.ModalidadeBC, "modBC"),
		BaseCalculo:  r.amount("vBC"),
		Aliquota:     r.amount("pICMS"),
		Valor:        r.amount("vICMS"),
	}
	return model.ICMS{ICMS00: v}, r.err
}

func (m *mapper) decodeICMS60(el *etree.Element) (model.ICMS, error) {
	r := newReader(itemSection("imposto", "ICMS", tagICMS60), el)
	v := &model.ICMS60{
		Origem:              code(r, m.codes.Origem, "orig"),
		CST:                 r.text("CST"),
		BaseCalculoRetido:   r.amount("vBCSTRet"),
		AliquotaSuportada:   r.amount("pST"),
		ValorICMSSubstituto: r.optAmount("vICMSSubstituto"),
		ValorRetido:         r.amount("vICMSSTRet"),
	}
	return model.ICMS{ICMS60: v}, r.err
}

func (m *mapper) decodeICMSSN102(el *etree.Element) (model.ICMS, error) {
	r := newReader(itemSection("imposto", "ICMS", tagICMSSN102), el)
	v := &model.ICMSSN102{
		Origem: code(r, m.codes.Origem, "orig"),
		CSOSN:  r.text("CSOSN"),
	}
	return model.ICMS{ICMSSN102: v}, r.err
}

func (m *mapper) decodeICMSSN202(el *etree.Element) (model.ICMS, error) {
	r := newReader(itemSection("imposto", "ICMS", tagICMSSN202), el)
	v := &model.ICMSSN202{
		Origem:                code(r, m.codes.Origem, "orig"),
		CSOSN:                 r.text("CSOSN"),
		ModalidadeBCST:        code(r, m.codes.ModalidadeBCST, "modBCST"),
		PercentualMVAST:       r.optAmount("pMVAST"),
		PercentualReducaoBCST: r.optAmount("pRedBCST"),
		BaseCalculoST:         r.amount("vBCST"),
		AliquotaST:            r.amount("pICMSST"),
		ValorST:               r.amount("vICMSST"),
	}
	return model.ICMS{ICMSSN202: v}, r.err
}

func (m *mapper) encodeICMS(parent *etree.Element, icms model.ICMS) error {
	section := itemSection("imposto", "ICMS")
	if n := icms.Set(); n != 1 {
		return model.NewInvalidVariantError(section, "ICMS", "", "exactly one ICMS variant must be set")
	}
	enc := &encoder{section: section}
	group := parent.CreateElement("ICMS")

	var f layout.Fields
	var tag string
	switch {
	case icms.ICMS00 != nil:
		v := icms.ICMS00
		tag = tagICMS00
		f.Add("orig", encodeCode(enc, m.codes.Origem, v.Origem))
		f.Add("CST", v.CST)
		f.Add("modBC", encodeCode(enc, m.codes.ModalidadeBC, v.ModalidadeBC))
		f.Add("vBC", encodeAmount(enc, "vBC", v.BaseCalculo))
		f.Add("pICMS", encodeAmount(enc, "pICMS", v.Aliquota))
		f.Add("vICMS", encodeAmount(enc, "vICMS", v.Valor))
	case icms.ICMS60 != nil:
		v := icms.ICMS60
		tag = tagICMS60
		f.Add("orig", encodeCode(enc, m.codes.Origem, v.Origem))
		f.Add("CST", v.CST)
		f.Add("vBCSTRet", encodeAmount(enc, "vBCSTRet", v.BaseCalculoRetido))
		f.Add("pST", encodeAmount(enc, "pST", v.AliquotaSuportada))
		f.AddOpt("vICMSSubstituto", encodeOptAmount(enc, "vICMSSubstituto", v.ValorICMSSubstituto))
		f.Add("vICMSSTRet", encodeAmount(enc, "vICMSSTRet", v.ValorRetido))
	case icms.ICMSSN102 != nil:
		v := icms.ICMSSN102
		tag = tagICMSSN102
		f.Add("orig", encodeCode(enc, m.codes.Origem, v.Origem))
		f.Add("CSOSN", v.CSOSN)
	case icms.ICMSSN202 != nil:
		v := icms.ICMSSN202
		tag = tagICMSSN202
		f.Add("orig", encodeCode(enc, m.codes.Origem, v.Origem))
		f.Add("CSOSN", v.CSOSN)
		f.Add("modBCST", encodeCode(enc, m.codes.ModalidadeBCST, v.ModalidadeBCST))
		f.AddOpt("pMVAST", encodeOptAmount(enc, "pMVAST", v.PercentualMVAST))
		f.AddOpt("pRedBCST", encodeOptAmount(enc, "pRedBCST", v.PercentualReducaoBCST))
		f.Add("vBCST", encodeAmount(enc, "vBCST", v.BaseCalculoST))
		f.Add("pICMSST", encodeAmount(enc, "pICMSST", v.AliquotaST))
		f.Add("vICMSST", encodeAmount(enc, "vICMSST", v.ValorST))
	}
	if enc.err != nil {
		return enc.err
	}
	f.AppendTo(group.CreateElement(tag))
	return nil
}

func (m *mapper) contribuicaoResolver(fam family) *variant.Resolver[model.Contribuicao] {
	return variant.New(string(fam),
		variant.Candidate[model.Contribuicao]{Tag: fam.outr(), Decode: func(el *etree.Element) (model.Contribuicao, error) {
			r := newReader(itemSection("imposto", string(fam), fam.outr()), el)
			v := &model.ContribuicaoOutr{
				CST:         r.text("CST"),
				BaseCalculo: r.amount("vBC"),
				Aliquota:    r.amount(fam.rate()),
				Valor:       r.amount(fam.value()),
			}
			return model.Contribuicao{Outr: v}, r.err
		}},
		variant.Candidate[model.Contribuicao]{Tag: fam.nt(), Decode: func(el *etree.Element) (model.Contribuicao, error) {
			r := newReader(itemSection("imposto", string(fam), fam.nt()), el)
			v := &model.ContribuicaoNT{CST: r.text("CST")}
			return model.Contribuicao{NT: v}, r.err
		}},
		variant.Candidate[model.Contribuicao]{Tag: fam.aliq(), Decode: func(el *etree.Element) (model.Contribuicao, error) {
			r := newReader(itemSection("imposto", string(fam), fam.aliq()), el)
			v := &model.ContribuicaoAliq{
				CST:         r.text("CST"),
				BaseCalculo: r.amount("vBC"),
				Aliquota:    r.amount(fam.rate()),
				Valor:       r.amount(fam.value()),
			}
			return model.Contribuicao{Aliq: v}, r.err
		}},
	)
}

func (m *mapper) encodeContribuicao(parent *etree.Element, fam family, c model.Contribuicao) error {
	if n := c.Set(); n != 1 {
		return model.NewInvalidVariantError(itemSection("imposto", string(fam)), string(fam), "",
			"exactly one "+string(fam)+" variant must be set")
	}
	enc := &encoder{section: itemSection("imposto", string(fam))}
	group := parent.CreateElement(string(fam))

	var f layout.Fields
	var tag string
	switch {
	case c.Aliq != nil:
		tag = fam.aliq()
		f.Add("CST", c.Aliq.CST)
		f.Add("vBC", encodeAmount(enc, "vBC", c.Aliq.BaseCalculo))
		f.Add(fam.rate(), encodeAmount(enc, fam.rate(), c.Aliq.Aliquota))
		f.Add(fam.value(), encodeAmount(enc, fam.value(), c.Aliq.Valor))
	case c.NT != nil:
		tag = fam.nt()
		f.Add("CST", c.NT.CST)
	case c.Outr != nil:
		tag = fam.outr()
		f.Add("CST", c.Outr.CST)
		f.Add("vBC", encodeAmount(enc, "vBC", c.Outr.BaseCalculo))
		f.Add(fam.rate(), encodeAmount(enc, fam.rate(), c.Outr.Aliquota))
		f.Add(fam.value(), encodeAmount(enc, fam.value(), c.Outr.Valor))
	}
	if enc.err != nil {
		return enc.err
	}
	f.AppendTo(group.CreateElement(tag))
	return nil
}
