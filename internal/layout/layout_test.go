package layout_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/nfe-mapper/internal/layout"
	"github.com/rezonia/nfe-mapper/internal/model"
)

func element(t *testing.T, s string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(s))
	return doc.Root()
}

func ptr(s string) *string { return &s }

const ideXML = `<ide>` +
	`<cUF>43</cUF><cNF>00001030</cNF><natOp>Venda de producao do estabelecimento</natOp>` +
	`<mod>55</mod><serie>1</serie><nNF>26</nNF><dhEmi>2018-09-25T03:00:00+00:00</dhEmi>` +
	`<dhSaiEnt>2018-09-25T18:14:00+00:00</dhSaiEnt><tpNF>1</tpNF><idDest>2</idDest>` +
	`<cMunFG>4307609</cMunFG><tpImp>1</tpImp><tpEmis>1</tpEmis><cDV>1</cDV><tpAmb>2</tpAmb>` +
	`<finNFe>1</finNFe><indFinal>0</indFinal><indPres>1</indPres><procEmi>0</procEmi>` +
	`<verProc>fernando</verProc></ide>`

func TestFromElement(t *testing.T) {
	el := element(t, `<emit><CNPJ>1</CNPJ><enderEmit><xLgr>Rua</xLgr></enderEmit><IE>2</IE></emit>`)
	f := layout.FromElement(el)

	// nested elements are not leaf fields
	assert.Equal(t, []string{"CNPJ", "IE"}, f.Tags())

	v, ok := f.Get("IE")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = f.Get("xLgr")
	assert.False(t, ok)

	assert.Nil(t, layout.FromElement(nil))
}

func TestIde_Unflatten(t *testing.T) {
	w, err := layout.UnflattenIde(layout.FromElement(element(t, ideXML)))
	require.NoError(t, err)

	assert.Equal(t, "43", w.CUF)
	assert.Equal(t, "00001030", w.CNF)
	assert.Equal(t, "1", w.CDV)
	require.NotNil(t, w.DhSaiEnt)
	assert.Equal(t, "2018-09-25T18:14:00+00:00", *w.DhSaiEnt)
	assert.Nil(t, w.IndIntermed)
	assert.Equal(t, "fernando", w.VerProc)
}

func TestIde_UnflattenAnyOrder(t *testing.T) {
	// field order on input does not matter; Flatten restores schema order
	shuffled := `<ide><verProc>v</verProc><cDV>1</cDV><cUF>43</cUF><nNF>26</nNF><serie>1</serie>` +
		`<mod>55</mod><cMunFG>4307609</cMunFG><tpImp>1</tpImp><tpAmb>2</tpAmb><cNF>00001030</cNF>` +
		`<dhEmi>2018-09-25T03:00:00+00:00</dhEmi><tpEmis>1</tpEmis><finNFe>1</finNFe>` +
		`<procEmi>0</procEmi><tpNF>1</tpNF><idDest>2</idDest><natOp>Venda</natOp>` +
		`<indFinal>0</indFinal><indPres>1</indPres></ide>`

	w, err := layout.UnflattenIde(layout.FromElement(element(t, shuffled)))
	require.NoError(t, err)

	expected := []string{
		"cUF", "cNF", "natOp", "mod", "serie", "nNF", "dhEmi", "tpNF", "idDest", "cMunFG",
		"tpImp", "tpEmis", "cDV", "tpAmb", "finNFe", "indFinal", "indPres", "procEmi", "verProc",
	}
	assert.Equal(t, expected, w.Flatten().Tags())
}

func TestIde_RoundTrip(t *testing.T) {
	f := layout.FromElement(element(t, ideXML))
	w, err := layout.UnflattenIde(f)
	require.NoError(t, err)
	assert.Equal(t, f, w.Flatten())

	out := etree.NewElement("ide")
	w.Flatten().AppendTo(out)
	doc := etree.NewDocument()
	doc.SetRoot(out)
	s, err := doc.WriteToString()
	require.NoError(t, err)
	assert.Equal(t, ideXML, s)
}

func TestIde_MissingField(t *testing.T) {
	el := element(t, ideXML)
	el.RemoveChild(el.SelectElement("tpAmb"))

	_, err := layout.UnflattenIde(layout.FromElement(el))
	require.Error(t, err)

	var de *model.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, model.KindMissingField, de.Kind)
	assert.Equal(t, "ide", de.Section)
	assert.Equal(t, "tpAmb", de.Field)
}

func TestProd_Flatten(t *testing.T) {
	w := layout.Prod{
		CProd: "11007", CEAN: ptr("SEM GTIN"), XProd: "UM PRODUTO TESTE QUALQUER", NCM: "64011000",
		CEST: ptr("1234567"), CFOP: "6101", UCom: "UN", QCom: "10.0000", VUnCom: "50",
		VProd: "500.00", CEANTrib: ptr("SEM GTIN"), UTrib: "UN", QTrib: "10.0000", VUnTrib: "50",
		VDesc: ptr("1.00"), IndTot: "1",
	}

	expected := []string{
		"cProd", "cEAN", "xProd", "NCM", "CEST", "CFOP", "uCom", "qCom", "vUnCom", "vProd",
		"cEANTrib", "uTrib", "qTrib", "vUnTrib", "vDesc", "indTot",
	}
	f := w.Flatten()
	assert.Equal(t, expected, f.Tags())

	back, err := layout.UnflattenProd(f)
	require.NoError(t, err)
	assert.Equal(t, w, back)
}

func TestProd_MissingField(t *testing.T) {
	_, err := layout.UnflattenProd(layout.Fields{{Tag: "cProd", Text: "1"}})
	require.Error(t, err)

	var de *model.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "det/prod", de.Section)
	assert.Equal(t, "xProd", de.Field)
}

func TestICMSTot_RoundTrip(t *testing.T) {
	w := layout.ICMSTot{
		VBC: "0.00", VICMS: "0.00", VICMSDeson: ptr("0.00"), VProd: "150.00", VFrete: "0.00",
		VSeg: "0.00", VDesc: "0.00", VIPI: ptr("0.00"), VPIS: "0.89", VCOFINS: "4.09",
		VOutro: "0.00", VNF: "150.00", VTotTrib: "35.75",
	}
	f := w.Flatten()
	assert.Equal(t, []string{
		"vBC", "vICMS", "vICMSDeson", "vProd", "vFrete", "vSeg", "vDesc", "vIPI",
		"vPIS", "vCOFINS", "vOutro", "vNF", "vTotTrib",
	}, f.Tags())

	back, err := layout.UnflattenICMSTot(f)
	require.NoError(t, err)
	assert.Equal(t, w, back)
}

func TestFields_AddOpt(t *testing.T) {
	var f layout.Fields
	f.Add("a", "1")
	f.AddOpt("b", nil)
	f.AddOpt("c", ptr(""))
	assert.Equal(t, []string{"a", "c"}, f.Tags())
}
