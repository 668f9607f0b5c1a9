package xml

import (
	"github.com/beevik/etree"

	"github.com/rezonia/nfe-mapper/internal/layout"
	"github.com/rezonia/nfe-mapper/internal/model"
	"github.com/rezonia/nfe-mapper/internal/scalar"
)

// decodeIdentificacao regroups the flat <ide> fields into access-key,
// emission and operation parts
func (m *mapper) decodeIdentificacao(el *etree.Element) (model.Identificacao, error) {
	w, err := layout.UnflattenIde(layout.FromElement(el))
	if err != nil {
		return model.Identificacao{}, err
	}

	r := &reader{section: "ide"}
	ide := model.Identificacao{
		CodigoUF:                   r.parseInt("cUF", w.CUF),
		Modelo:                     parseCode(r, m.codes.Modelo, "mod", w.Mod),
		Serie:                      r.parseInt("serie", w.Serie),
		Numero:                     r.parseInt("nNF", w.NNF),
		CodigoMunicipioFatoGerador: r.parseInt("cMunFG", w.CMunFG),
		FormatoImpressao:           parseCode(r, m.codes.FormatoImpressao, "tpImp", w.TpImp),
		Ambiente:                   parseCode(r, m.codes.Ambiente, "tpAmb", w.TpAmb),
		Chave: model.ComposicaoChave{
			CodigoNumerico:    r.parseInt("cNF", w.CNF),
			DigitoVerificador: r.parseInt("cDV", w.CDV),
		},
		Emissao: model.Emissao{
			DataHora:       r.parseDateTime("dhEmi", w.DhEmi),
			Tipo:           parseCode(r, m.codes.TipoEmissao, "tpEmis", w.TpEmis),
			Finalidade:     parseCode(r, m.codes.Finalidade, "finNFe", w.FinNFe),
			Processo:       parseCode(r, m.codes.Processo, "procEmi", w.ProcEmi),
			VersaoProcesso: scalar.DecodeText(w.VerProc),
		},
		Operacao: model.Operacao{
			DataHoraSaidaEntrada: r.parseOptDateTime("dhSaiEnt", w.DhSaiEnt),
			Tipo:                 parseCode(r, m.codes.TipoOperacao, "tpNF", w.TpNF),
			Destino:              parseCode(r, m.codes.Destino, "idDest", w.IdDest),
			Natureza:             scalar.DecodeText(w.NatOp),
			Consumidor:           parseCode(r, m.codes.Consumidor, "indFinal", w.IndFinal),
			Presenca:             parseCode(r, m.codes.Presenca, "indPres", w.IndPres),
			Intermediador:        parseOptCode(r, m.codes.Intermediador, "indIntermed", w.IndIntermed),
		},
	}
	return ide, r.err
}

func (m *mapper) encodeIdentificacao(parent *etree.Element, ide model.Identificacao) error {
	enc := &encoder{section: "ide"}
	w := layout.Ide{
		CUF:         scalar.EncodeInt(ide.CodigoUF, 2),
		CNF:         scalar.EncodeInt(ide.Chave.CodigoNumerico, 8),
		NatOp:       ide.Operacao.Natureza,
		Mod:         encodeCode(enc, m.codes.Modelo, ide.Modelo),
		Serie:       scalar.EncodeInt(ide.Serie, 0),
		NNF:         scalar.EncodeInt(ide.Numero, 0),
		DhEmi:       scalar.EncodeDateTime(ide.Emissao.DataHora),
		DhSaiEnt:    encodeOptDateTime(ide.Operacao.DataHoraSaidaEntrada),
		TpNF:        encodeCode(enc, m.codes.TipoOperacao, ide.Operacao.Tipo),
		IdDest:      encodeCode(enc, m.codes.Destino, ide.Operacao.Destino),
		CMunFG:      scalar.EncodeInt(ide.CodigoMunicipioFatoGerador, 7),
		TpImp:       encodeCode(enc, m.codes.FormatoImpressao, ide.FormatoImpressao),
		TpEmis:      encodeCode(enc, m.codes.TipoEmissao, ide.Emissao.Tipo),
		CDV:         scalar.EncodeInt(ide.Chave.DigitoVerificador, 0),
		TpAmb:       encodeCode(enc, m.codes.Ambiente, ide.Ambiente),
		FinNFe:      encodeCode(enc, m.codes.Finalidade, ide.Emissao.Finalidade),
		IndFinal:    encodeCode(enc, m.codes.Consumidor, ide.Operacao.Consumidor),
		IndPres:     encodeCode(enc, m.codes.Presenca, ide.Operacao.Presenca),
		IndIntermed: encodeOptCode(enc, m.codes.Intermediador, ide.Operacao.Intermediador),
		ProcEmi:     encodeCode(enc, m.codes.Processo, ide.Emissao.Processo),
		VerProc:     ide.Emissao.VersaoProcesso,
	}
	if enc.err != nil {
		return enc.err
	}
	w.Flatten().AppendTo(parent.CreateElement("ide"))
	return nil
}
