package xml_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/nfe-mapper/internal/model"
	xmlparser "github.com/rezonia/nfe-mapper/internal/parser/xml"
)

func parseRoot(t *testing.T, s string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(s))
	return doc.Root()
}

func TestRegistry_Detect(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		envelope string
	}{
		{"authorised", `<nfeProc><NFe><infNFe Id="a"/></NFe><protNFe/></nfeProc>`, "nfeProc"},
		{"signed", `<NFe xmlns="http://www.portalfiscal.inf.br/nfe"><infNFe Id="a"/><Signature/></NFe>`, "NFe"},
		{"bare", `<infNFe Id="a"/>`, "infNFe"},
	}

	registry := xmlparser.NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, inf, err := registry.Detect(parseRoot(t, tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.envelope, env.Name())
			assert.Equal(t, "infNFe", inf.Tag)
			assert.Equal(t, "a", inf.SelectAttrValue("Id", ""))
		})
	}
}

func TestRegistry_DetectFailure(t *testing.T) {
	registry := xmlparser.NewRegistry()

	_, _, err := registry.Detect(parseRoot(t, `<nfeProc><protNFe/></nfeProc>`))
	assert.ErrorIs(t, err, model.ErrMissingSubstructure)

	_, _, err = registry.Detect(nil)
	assert.ErrorIs(t, err, model.ErrMissingSubstructure)
}

// loteEnvelope finds the first infNFe of an <enviNFe> submission batch
type loteEnvelope struct{}

func (loteEnvelope) Name() string { return "enviNFe" }

func (loteEnvelope) Locate(root *etree.Element) *etree.Element {
	if root.Tag != "enviNFe" {
		return nil
	}
	return root.FindElement("NFe/infNFe")
}

func TestRegistry_Register(t *testing.T) {
	registry := xmlparser.NewRegistry()
	assert.Nil(t, registry.Get("enviNFe"))
	assert.NotNil(t, registry.Get("nfeProc"))

	registry.Register(loteEnvelope{})
	require.NotNil(t, registry.Get("enviNFe"))

	canonical := string(readFixture(t, "nfe_canonical.xml"))
	tree := etree.NewDocument()
	require.NoError(t, tree.ReadFromString(canonical))

	lote := etree.NewDocument()
	envi := lote.CreateElement("enviNFe")
	envi.CreateElement("idLote").SetText("1")
	envi.AddChild(tree.Root().Copy())

	_, err := xmlparser.DecodeDocument(lote)
	assert.ErrorIs(t, err, model.ErrMissingSubstructure)

	doc, err := xmlparser.DecodeDocument(lote, xmlparser.WithRegistry(registry))
	require.NoError(t, err)
	assert.Equal(t, accessKey, doc.ChaveAcesso)
}
