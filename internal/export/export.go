// Package export flattens decoded documents into tabular rows and XLSX
// workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rezonia/nfe-mapper/internal/model"
	"github.com/rezonia/nfe-mapper/internal/scalar"
)

// Sheet names of the workbook
const (
	SheetDocumentos = "Documentos"
	SheetItens      = "Itens"
)

// DocumentHeader labels the columns of DocumentRows
var DocumentHeader = []string{
	"chave", "modelo", "serie", "numero", "emissao", "ambiente",
	"emitente_doc", "emitente_nome", "destinatario_doc", "destinatario_nome",
	"itens", "valor_produtos", "valor_nota", "total_tributos",
}

// ItemHeader labels the columns of ItemRows
var ItemHeader = []string{
	"chave", "item", "codigo", "gtin", "descricao", "ncm", "cfop", "unidade",
	"quantidade", "valor_unitario", "valor_total", "icms", "pis", "cofins",
}

// DocumentRows returns one row per document
func DocumentRows(docs []*model.Document) [][]string {
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		var destDoc, destNome string
		if d.Destinatario != nil {
			destDoc = d.Destinatario.Documento.Numero
			destNome = deref(d.Destinatario.RazaoSocial)
		}
		ide := d.Identificacao
		rows = append(rows, []string{
			d.ChaveAcesso,
			string(ide.Modelo),
			scalar.EncodeInt(ide.Serie, 0),
			scalar.EncodeInt(ide.Numero, 0),
			scalar.EncodeDateTime(ide.Emissao.DataHora),
			string(ide.Ambiente),
			d.Emitente.Documento.Numero,
			d.Emitente.RazaoSocial,
			destDoc,
			destNome,
			scalar.EncodeInt(len(d.Itens), 0),
			scalar.EncodeDecimal(d.Total.ValorProdutos),
			scalar.EncodeDecimal(d.Total.ValorNota),
			scalar.EncodeDecimal(d.Total.TotalTributos),
		})
	}
	return rows
}

// ItemRows returns one row per line item of every document
func ItemRows(docs []*model.Document) [][]string {
	var rows [][]string
	for _, d := range docs {
		for _, it := range d.Itens {
			p := it.Produto
			rows = append(rows, []string{
				d.ChaveAcesso,
				scalar.EncodeInt(it.Numero, 0),
				p.Codigo,
				deref(p.GTIN),
				p.Descricao,
				p.NCM,
				p.Tributacao.CFOP,
				p.Unidade,
				scalar.EncodeDecimal(p.Quantidade),
				scalar.EncodeDecimal(p.ValorUnitario),
				scalar.EncodeDecimal(p.ValorTotal),
				icmsVariant(it.Imposto.ICMS),
				contribuicaoVariant("PIS", it.Imposto.PIS),
				contribuicaoVariant("COFINS", it.Imposto.COFINS),
			})
		}
	}
	return rows
}

// WriteXLSX writes a workbook with a document sheet and a line item sheet
func WriteXLSX(w io.Writer, docs []*model.Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetDocumentos); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetItens); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := writeSheet(f, SheetDocumentos, DocumentHeader, DocumentRows(docs)); err != nil {
		return err
	}
	if err := writeSheet(f, SheetItens, ItemHeader, ItemRows(docs)); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string) error {
	all := append([][]string{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func icmsVariant(icms *model.ICMS) string {
	switch {
	case icms == nil:
		return ""
	case icms.ICMS00 != nil:
		return "ICMS00"
	case icms.ICMS60 != nil:
		return "ICMS60"
	case icms.ICMSSN102 != nil:
		return "ICMSSN102"
	case icms.ICMSSN202 != nil:
		return "ICMSSN202"
	}
	return ""
}

func contribuicaoVariant(family string, c *model.Contribuicao) string {
	switch {
	case c == nil:
		return ""
	case c.Outr != nil:
		return family + "Outr"
	case c.NT != nil:
		return family + "NT"
	case c.Aliq != nil:
		return family + "Aliq"
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
