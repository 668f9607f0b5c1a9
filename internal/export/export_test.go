package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rezonia/nfe-mapper/internal/export"
	"github.com/rezonia/nfe-mapper/internal/model"
	xmlparser "github.com/rezonia/nfe-mapper/internal/parser/xml"
)

func loadDocs(t *testing.T) []*model.Document {
	t.Helper()
	var docs []*model.Document
	for _, name := range []string{"nfe_canonical.xml", "nfe_proc.xml"} {
		data, err := readTestdata(name)
		require.NoError(t, err)
		doc, err := xmlparser.Decode(data)
		require.NoError(t, err)
		docs = append(docs, doc)
	}
	return docs
}

func TestItemRows(t *testing.T) {
	rows := export.ItemRows(loadDocs(t))
	require.Len(t, rows, 3)

	for _, row := range rows {
		assert.Len(t, row, len(export.ItemHeader))
	}

	assert.Equal(t, []string{
		"43180906929383000163550010000000261000010301", "1", "11007", "",
		"UM PRODUTO TESTE QUALQUER", "64011000", "6101", "UN",
		"10.0000", "50", "500.00", "ICMS00", "PISAliq", "COFINSAliq",
	}, rows[0])

	second := rows[2]
	assert.Equal(t, "2", second[1])
	assert.Equal(t, "7891234567895", second[3])
	assert.Equal(t, "ICMSSN202", second[11])
	assert.Equal(t, "PISOutr", second[12])
}

func TestDocumentRows(t *testing.T) {
	rows := export.DocumentRows(loadDocs(t))
	require.Len(t, rows, 2)

	assert.Equal(t, "2018-09-25T03:00:00+00:00", rows[0][4])
	assert.Equal(t, "58716523000119", rows[0][8])
	assert.Equal(t, "1", rows[0][10])
	assert.Equal(t, "500.00", rows[0][12])

	// recipient without name
	assert.Equal(t, "12345678909", rows[1][8])
	assert.Equal(t, "", rows[1][9])
	assert.Equal(t, "2", rows[1][10])
}

func TestWriteXLSX(t *testing.T) {
	docs := loadDocs(t)

	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, docs))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.SheetDocumentos, export.SheetItens}, f.GetSheetList())

	items, err := f.GetRows(export.SheetItens)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, export.ItemHeader, items[0])
	assert.Equal(t, "10.0000", items[1][8])

	header, err := f.GetRows(export.SheetDocumentos)
	require.NoError(t, err)
	require.Len(t, header, 3)
	assert.Equal(t, export.DocumentHeader, header[0])
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetItens)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
