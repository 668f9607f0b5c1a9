// Package nfelib provides a public API for mapping NF-e layout 4.00 XML to
// and from a typed document model.
//
// Example usage:
//
//	doc, err := nfelib.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.Total.ValorNota)
//
//	out, err := nfelib.Encode(doc)
package nfelib

import "github.com/rezonia/nfe-mapper/internal/model"

// Re-export core types for public API
type (
	Document          = model.Document
	Identificacao     = model.Identificacao
	Emitente          = model.Emitente
	Destinatario      = model.Destinatario
	Endereco          = model.Endereco
	Identificador     = model.Identificador
	Item              = model.Item
	Produto           = model.Produto
	ProdutoTributacao = model.ProdutoTributacao
	Imposto           = model.Imposto
	ICMS              = model.ICMS
	Contribuicao      = model.Contribuicao
	Total             = model.Total
	Transporte        = model.Transporte
)

// Re-export error types
type (
	DecodeError = model.DecodeError
	ErrorKind   = model.ErrorKind
)

// Error sentinels, matched by kind with errors.Is
var (
	ErrIO                  = model.ErrIO
	ErrMissingField        = model.ErrMissingField
	ErrTypeConversion      = model.ErrTypeConversion
	ErrUnknownCode         = model.ErrUnknownCode
	ErrUnsupportedVersion  = model.ErrUnsupportedVersion
	ErrMissingSubstructure = model.ErrMissingSubstructure
	ErrDuplicateItem       = model.ErrDuplicateItem
	ErrInvalidVariant      = model.ErrInvalidVariant
)

// VersaoLayout400 is the only supported schema version
const VersaoLayout400 = model.VersaoLayout400
