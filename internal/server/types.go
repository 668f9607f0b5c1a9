package server

import (
	"github.com/rezonia/nfe-mapper/internal/accesskey"
	"github.com/rezonia/nfe-mapper/internal/model"
	"github.com/rezonia/nfe-mapper/internal/signature"
)

// DecodeResponse is the response for the decode endpoint
type DecodeResponse struct {
	Document *model.Document `json:"document"`
	Warnings []string        `json:"warnings,omitempty"`
}

// CheckResponse is the response for the round-trip check endpoint
type CheckResponse struct {
	Valid     bool           `json:"valid"`
	Canonical bool           `json:"canonical"`
	Stable    bool           `json:"stable"`
	Error     *ErrorResponse `json:"error,omitempty"`
	Warnings  []string       `json:"warnings,omitempty"`
}

// InfoResponse is the response for the info endpoint
type InfoResponse struct {
	Versao       string            `json:"versao"`
	Chave        string            `json:"chave"`
	ChaveDetalhe accesskey.Key     `json:"chave_detalhe"`
	DigitoValido bool              `json:"digito_valido"`
	Modelo       string            `json:"modelo"`
	Ambiente     string            `json:"ambiente"`
	Emitente     string            `json:"emitente"`
	Itens        int               `json:"itens"`
	ValorNota    string            `json:"valor_nota"`
	Size         int               `json:"size"`
	Assinatura   *signature.Report `json:"assinatura,omitempty"`
	Warnings     []string          `json:"warnings,omitempty"`
}

// ErrorResponse is the standard error response. Kind, Section and Field
// are filled for mapping errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Section string `json:"section,omitempty"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}
