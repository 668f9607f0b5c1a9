package xml

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/rezonia/nfe-mapper/internal/layout"
	"github.com/rezonia/nfe-mapper/internal/model"
	"github.com/rezonia/nfe-mapper/internal/scalar"
)

// decodeItens reads every <det> of infNFe in document order
func (m *mapper) decodeItens(inf *etree.Element) ([]model.Item, error) {
	dets := inf.SelectElements("det")
	if len(dets) == 0 {
		return nil, model.NewMissingFieldError("infNFe", "det")
	}

	items := make([]model.Item, 0, len(dets))
	seen := make(map[int]bool, len(dets))
	for _, det := range dets {
		item, err := m.decodeItem(det)
		if err != nil {
			return nil, err
		}
		if seen[item.Numero] {
			return nil, model.NewDuplicateItemError(scalar.EncodeInt(item.Numero, 0))
		}
		seen[item.Numero] = true
		items = append(items, item)
	}
	return items, nil
}

func (m *mapper) decodeItem(el *etree.Element) (model.Item, error) {
	r := newReader("det", el)

	var item model.Item
	attr := el.SelectAttr("nItem")
	if attr == nil {
		return item, model.NewMissingFieldError("det", "nItem")
	}
	item.Numero = r.parseInt("nItem", attr.Value)
	if r.err == nil && item.Numero < 1 {
		r.fail("nItem", model.NewTypeConversionError("det", "nItem", "positive integer", attr.Value, nil))
	}
	item.InformacaoAdicional = r.optText("infAdProd")

	prod := child(r, el, "prod")
	imposto := child(r, el, "imposto")
	if r.err != nil {
		return item, r.err
	}

	var err error
	if item.Produto, err = m.decodeProduto(prod); err != nil {
		return item, err
	}
	if item.Imposto, err = m.decodeImposto(imposto); err != nil {
		return item, err
	}

	m.log.Debug().
		Int("item", item.Numero).
		Str("codigo", item.Produto.Codigo).
		Msg("decoded line item")
	return item, nil
}

func (m *mapper) encodeItem(parent *etree.Element, item model.Item) error {
	el := parent.CreateElement("det")
	el.CreateAttr("nItem", scalar.EncodeInt(item.Numero, 0))

	if err := m.encodeProduto(el, item.Produto); err != nil {
		return err
	}
	if err := m.encodeImposto(el, item.Imposto); err != nil {
		return err
	}
	if item.InformacaoAdicional != nil {
		el.CreateElement("infAdProd").SetText(*item.InformacaoAdicional)
	}
	return nil
}

// decodeProduto splits the flat <prod> fields into the commercial product
// and its nested fiscal part
func (m *mapper) decodeProduto(el *etree.Element) (model.Produto, error) {
	w, err := layout.UnflattenProd(layout.FromElement(el))
	if err != nil {
		return model.Produto{}, err
	}

	r := &reader{section: "det/prod"}
	p := model.Produto{
		Codigo:         scalar.DecodeText(w.CProd),
		GTIN:           r.parseOptBarcode(w.CEAN),
		Descricao:      scalar.DecodeText(w.XProd),
		NCM:            scalar.DecodeText(w.NCM),
		CNPJFabricante: r.parseOptText(w.CNPJFab),
		Unidade:        scalar.DecodeText(w.UCom),
		Quantidade:     r.parseAmount("qCom", w.QCom),
		ValorUnitario:  r.parseAmount("vUnCom", w.VUnCom),
		ValorTotal:     r.parseAmount("vProd", w.VProd),
		Frete:          r.parseOptAmount("vFrete", w.VFrete),
		Seguro:         r.parseOptAmount("vSeg", w.VSeg),
		Desconto:       r.parseOptAmount("vDesc", w.VDesc),
		OutrasDespesas: r.parseOptAmount("vOutro", w.VOutro),
		CompoeTotal:    r.parseFlag("indTot", w.IndTot),
		Tributacao: model.ProdutoTributacao{
			CEST:            r.parseOptText(w.CEST),
			EscalaRelevante: parseOptCode(r, m.codes.EscalaRelevante, "indEscala", w.IndEsc),
			BeneficioFiscal: r.parseOptText(w.CBenef),
			ExcecaoTIPI:     r.parseOptText(w.EXTIPI),
			CFOP:            scalar.DecodeText(w.CFOP),
			GTIN:            r.parseOptBarcode(w.CEANTrib),
			Unidade:         scalar.DecodeText(w.UTrib),
			Quantidade:      r.parseAmount("qTrib", w.QTrib),
			ValorUnitario:   r.parseAmount("vUnTrib", w.VUnTrib),
		},
	}
	return p, r.err
}

func (m *mapper) encodeProduto(parent *etree.Element, p model.Produto) error {
	enc := &encoder{section: "det/prod"}
	t := p.Tributacao
	gtin := scalar.EncodeBarcode(p.GTIN)
	gtinTrib := scalar.EncodeBarcode(t.GTIN)

	w := layout.Prod{
		CProd:    p.Codigo,
		CEAN:     &gtin,
		XProd:    p.Descricao,
		NCM:      p.NCM,
		CEST:     t.CEST,
		IndEsc:   encodeOptCode(enc, m.codes.EscalaRelevante, t.EscalaRelevante),
		CNPJFab:  p.CNPJFabricante,
		CBenef:   t.BeneficioFiscal,
		EXTIPI:   t.ExcecaoTIPI,
		CFOP:     t.CFOP,
		UCom:     p.Unidade,
		QCom:     encodeAmount(enc, "qCom", p.Quantidade),
		VUnCom:   encodeAmount(enc, "vUnCom", p.ValorUnitario),
		VProd:    encodeAmount(enc, "vProd", p.ValorTotal),
		CEANTrib: &gtinTrib,
		UTrib:    t.Unidade,
		QTrib:    encodeAmount(enc, "qTrib", t.Quantidade),
		VUnTrib:  encodeAmount(enc, "vUnTrib", t.ValorUnitario),
		VFrete:   encodeOptAmount(enc, "vFrete", p.Frete),
		VSeg:     encodeOptAmount(enc, "vSeg", p.Seguro),
		VDesc:    encodeOptAmount(enc, "vDesc", p.Desconto),
		VOutro:   encodeOptAmount(enc, "vOutro", p.OutrasDespesas),
		IndTot:   scalar.EncodeFlag(p.CompoeTotal),
	}
	if enc.err != nil {
		return enc.err
	}
	w.Flatten().AppendTo(parent.CreateElement("prod"))
	return nil
}

// itemSection names a nested section for error messages
func itemSection(parts ...string) string {
	return strings.Join(append([]string{"det"}, parts...), "/")
}
