package xml

import (
	"github.com/beevik/etree"

	"github.com/rezonia/nfe-mapper/internal/layout"
	"github.com/rezonia/nfe-mapper/internal/model"
)

func (m *mapper) decodeTotal(el *etree.Element) (model.Total, error) {
	r := &reader{section: "total"}
	icmsTot := child(r, el, "ICMSTot")
	if r.err != nil {
		return model.Total{}, r.err
	}

	w, err := layout.UnflattenICMSTot(layout.FromElement(icmsTot))
	if err != nil {
		return model.Total{}, err
	}

	r = &reader{section: "total/ICMSTot"}
	t := model.Total{
		BaseCalculo:    r.parseAmount("vBC", w.VBC),
		ValorICMS:      r.parseAmount("vICMS", w.VICMS),
		ICMSDesonerado: r.parseOptAmount("vICMSDeson", w.VICMSDeson),
		FCP:            r.parseOptAmount("vFCP", w.VFCP),
		BaseCalculoST:  r.parseOptAmount("vBCST", w.VBCST),
		ValorST:        r.parseOptAmount("vST", w.VST),
		FCPST:          r.parseOptAmount("vFCPST", w.VFCPST),
		FCPSTRetido:    r.parseOptAmount("vFCPSTRet", w.VFCPSTRet),
		ValorProdutos:  r.parseAmount("vProd", w.VProd),
		Frete:          r.parseAmount("vFrete", w.VFrete),
		Seguro:         r.parseAmount("vSeg", w.VSeg),
		Desconto:       r.parseAmount("vDesc", w.VDesc),
		II:             r.parseOptAmount("vII", w.VII),
		IPI:            r.parseOptAmount("vIPI", w.VIPI),
		IPIDevolvido:   r.parseOptAmount("vIPIDevol", w.VIPIDevol),
		PIS:            r.parseAmount("vPIS", w.VPIS),
		COFINS:         r.parseAmount("vCOFINS", w.VCOFINS),
		OutrasDespesas: r.parseAmount("vOutro", w.VOutro),
		ValorNota:      r.parseAmount("vNF", w.VNF),
		TotalTributos:  r.parseAmount("vTotTrib", w.VTotTrib),
	}
	return t, r.err
}

func (m *mapper) encodeTotal(parent *etree.Element, t model.Total) error {
	enc := &encoder{section: "total/ICMSTot"}
	w := layout.ICMSTot{
		VBC:        encodeAmount(enc, "vBC", t.BaseCalculo),
		VICMS:      encodeAmount(enc, "vICMS", t.ValorICMS),
		VICMSDeson: encodeOptAmount(enc, "vICMSDeson", t.ICMSDesonerado),
		VFCP:       encodeOptAmount(enc, "vFCP", t.FCP),
		VBCST:      encodeOptAmount(enc, "vBCST", t.BaseCalculoST),
		VST:        encodeOptAmount(enc, "vST", t.ValorST),
		VFCPST:     encodeOptAmount(enc, "vFCPST", t.FCPST),
		VFCPSTRet:  encodeOptAmount(enc, "vFCPSTRet", t.FCPSTRetido),
		VProd:      encodeAmount(enc, "vProd", t.ValorProdutos),
		VFrete:     encodeAmount(enc, "vFrete", t.Frete),
		VSeg:       encodeAmount(enc, "vSeg", t.Seguro),
		VDesc:      encodeAmount(enc, "vDesc", t.Desconto),
		VII:        encodeOptAmount(enc, "vII", t.II),
		VIPI:       encodeOptAmount(enc, "vIPI", t.IPI),
		VIPIDevol:  encodeOptAmount(enc, "vIPIDevol", t.IPIDevolvido),
		VPIS:       encodeAmount(enc, "vPIS", t.PIS),
		VCOFINS:    encodeAmount(enc, "vCOFINS", t.COFINS),
		VOutro:     encodeAmount(enc, "vOutro", t.OutrasDespesas),
		VNF:        encodeAmount(enc, "vNF", t.ValorNota),
		VTotTrib:   encodeAmount(enc, "vTotTrib", t.TotalTributos),
	}
	if enc.err != nil {
		return enc.err
	}
	w.Flatten().AppendTo(parent.CreateElement("total").CreateElement("ICMSTot"))
	return nil
}

func (m *mapper) decodeTransporte(el *etree.Element) (model.Transporte, error) {
	r := newReader("transp", el)
	t := model.Transporte{Modalidade: code(r, m.codes.ModalidadeFrete, "modFrete")}
	return t, r.err
}

func (m *mapper) encodeTransporte(parent *etree.Element, t model.Transporte) error {
	enc := &encoder{section: "transp"}
	modFrete := encodeCode(enc, m.codes.ModalidadeFrete, t.Modalidade)
	if enc.err != nil {
		return enc.err
	}
	parent.CreateElement("transp").CreateElement("modFrete").SetText(modFrete)
	return nil
}

// decodeInfAdic returns infCpl when present
func (m *mapper) decodeInfAdic(el *etree.Element) *string {
	r := newReader("infAdic", el)
	return r.optText("infCpl")
}

func (m *mapper) encodeInfAdic(parent *etree.Element, infCpl *string) {
	if infCpl == nil {
		return
	}
	parent.CreateElement("infAdic").CreateElement("infCpl").SetText(*infCpl)
}
