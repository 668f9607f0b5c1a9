package xml

import (
	"github.com/beevik/etree"

	"github.com/rezonia/nfe-mapper/internal/layout"
	"github.com/rezonia/nfe-mapper/internal/model"
	"github.com/rezonia/nfe-mapper/internal/scalar"
)

func (m *mapper) decodeEndereco(section string, el *etree.Element) (model.Endereco, error) {
	r := newReader(section, el)
	a := model.Endereco{
		Logradouro:      r.text("xLgr"),
		Numero:          r.text("nro"),
		Complemento:     r.optText("xCpl"),
		Bairro:          r.text("xBairro"),
		CodigoMunicipio: r.integer("cMun"),
		Municipio:       r.text("xMun"),
		UF:              r.text("UF"),
		CEP:             r.text("CEP"),
		CodigoPais:      r.optInteger("cPais"),
		Pais:            r.optText("xPais"),
		Telefone:        r.optText("fone"),
	}
	return a, r.err
}

func (m *mapper) encodeEndereco(parent *etree.Element, tag string, a model.Endereco) {
	var f layout.Fields
	f.Add("xLgr", a.Logradouro)
	f.Add("nro", a.Numero)
	f.AddOpt("xCpl", a.Complemento)
	f.Add("xBairro", a.Bairro)
	f.Add("cMun", scalar.EncodeInt(a.CodigoMunicipio, 7))
	f.Add("xMun", a.Municipio)
	f.Add("UF", a.UF)
	f.Add("CEP", a.CEP)
	f.AddOpt("cPais", encodeOptInt(a.CodigoPais, 4))
	f.AddOpt("xPais", a.Pais)
	f.AddOpt("fone", a.Telefone)
	f.AppendTo(parent.CreateElement(tag))
}
