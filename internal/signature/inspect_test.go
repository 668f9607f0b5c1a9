package signature_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/nfe-mapper/internal/signature"
)

const chave = "43180906929383000163550010000000261000010301"

func TestInspect_Proc(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "parser", "xml", "testdata", "nfe_proc.xml"))
	require.NoError(t, err)

	report, err := signature.Inspect(data)
	require.NoError(t, err)

	assert.Equal(t, "NFe"+chave, report.InfNFeID)
	assert.True(t, report.Signed)
	assert.Empty(t, report.ReferenceURI)
	assert.False(t, report.HasCertificate)
	require.NotNil(t, report.Protocol)
	assert.Equal(t, chave, report.Protocol.ChNFe)
	assert.Equal(t, "100", report.Protocol.CStat)
	assert.True(t, report.Protocol.Authorised)
	assert.Empty(t, report.Warnings(chave))
}

func TestInspect_Unsigned(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "parser", "xml", "testdata", "nfe_canonical.xml"))
	require.NoError(t, err)

	report, err := signature.Inspect(data)
	require.NoError(t, err)
	assert.False(t, report.Signed)
	assert.Nil(t, report.Protocol)
	assert.False(t, signature.HasSignature(data))
}

func TestInspect_Reference(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		matches bool
	}{
		{"matching", "#NFe" + chave, true},
		{"other id", "#NFe00000000000000000000000000000000000000000000", false},
		{"whole document", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(`<NFe><infNFe Id="NFe` + chave + `"/>` +
				`<ds:Signature xmlns:ds="http://www.w3.org/2000/09/xmldsig#"><ds:SignedInfo>` +
				`<ds:Reference URI="` + tt.uri + `"/></ds:SignedInfo>` +
				`<ds:KeyInfo><ds:X509Data><ds:X509Certificate>MIIB</ds:X509Certificate></ds:X509Data></ds:KeyInfo>` +
				`</ds:Signature></NFe>`)

			report, err := signature.Inspect(data)
			require.NoError(t, err)
			assert.True(t, report.Signed)
			assert.True(t, report.HasCertificate)
			assert.Equal(t, tt.uri, report.ReferenceURI)
			assert.Equal(t, tt.matches, report.ReferenceMatches)
			if tt.uri != "" && !tt.matches {
				assert.Len(t, report.Warnings(chave), 1)
			} else {
				assert.Empty(t, report.Warnings(chave))
			}
			assert.True(t, signature.HasSignature(data))
		})
	}
}

func TestInspect_ProtocolMismatch(t *testing.T) {
	data := []byte(`<nfeProc><NFe><infNFe Id="NFe` + chave + `"/></NFe>` +
		`<protNFe><infProt><chNFe>35180906929383000163550010000000261000010309</chNFe>` +
		`<cStat>302</cStat><xMotivo>Uso Denegado</xMotivo></infProt></protNFe></nfeProc>`)

	report, err := signature.Inspect(data)
	require.NoError(t, err)
	require.NotNil(t, report.Protocol)
	assert.False(t, report.Protocol.Authorised)
	assert.Equal(t, "Uso Denegado", report.Protocol.XMotivo)
	warns := report.Warnings(chave)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "differs from access key")
}

func TestInspect_NotXML(t *testing.T) {
	_, err := signature.Inspect([]byte(`{"json": true}`))
	assert.ErrorIs(t, err, signature.ErrNotXML)

	_, err = signature.Inspect(nil)
	assert.ErrorIs(t, err, signature.ErrNotXML)
}
