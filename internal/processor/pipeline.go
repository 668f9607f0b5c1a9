// Package processor runs decode, encode and round-trip checks over raw NF-e
// XML, one document or a batch at a time.
package processor

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	dec "github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/rezonia/nfe-mapper/internal/accesskey"
	"github.com/rezonia/nfe-mapper/internal/codes"
	"github.com/rezonia/nfe-mapper/internal/decimal"
	"github.com/rezonia/nfe-mapper/internal/model"
	xmlparser "github.com/rezonia/nfe-mapper/internal/parser/xml"
	"github.com/rezonia/nfe-mapper/internal/scalar"
)

// Format represents the detected input format
type Format int

const (
	FormatUnknown Format = iota
	FormatXML
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	default:
		return "unknown"
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectFormat reports whether data looks like XML
func DetectFormat(data []byte) Format {
	data = bytes.TrimLeft(bytes.TrimPrefix(data, utf8BOM), " \t\r\n")
	if len(data) > 0 && data[0] == '<' {
		return FormatXML
	}
	return FormatUnknown
}

// Result is the outcome of decoding one input
type Result struct {
	Document *model.Document
	Error    error
	Warnings []string
}

// CheckResult is the outcome of a decode, encode, decode cycle
type CheckResult struct {
	Result

	// Canonical is set when re-encoding reproduces the input bytes
	Canonical bool
	// Stable is set when the second decode equals the first
	Stable bool
	Encoded []byte
}

// Pipeline decodes and encodes documents with shared options
type Pipeline struct {
	logger         zerolog.Logger
	indent         int
	workers        int
	requireModel55 bool
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger sets the logger passed down to the mapper
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithIndent indents encoded output
func WithIndent(n int) Option {
	return func(p *Pipeline) {
		p.indent = n
	}
}

// WithWorkers bounds batch concurrency
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithModel55 rejects documents that do not satisfy the model 55 profile
func WithModel55(enabled bool) Option {
	return func(p *Pipeline) {
		p.requireModel55 = enabled
	}
}

// NewPipeline creates a pipeline
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{logger: zerolog.Nop(), workers: 4}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) decodeOptions() []xmlparser.Option {
	return []xmlparser.Option{xmlparser.WithLogger(p.logger)}
}

// ProcessXML reads r fully and decodes it
func (p *Pipeline) ProcessXML(ctx context.Context, r io.Reader) *Result {
	data, err := io.ReadAll(r)
	if err != nil {
		return &Result{Error: model.NewIOError("failed to read input", err)}
	}
	return p.ProcessXMLBytes(ctx, data)
}

// ProcessXMLBytes decodes one document
func (p *Pipeline) ProcessXMLBytes(ctx context.Context, data []byte) *Result {
	if err := ctx.Err(); err != nil {
		return &Result{Error: err}
	}
	if DetectFormat(data) != FormatXML {
		return &Result{Error: model.NewIOError("input is not XML", nil)}
	}

	doc, err := xmlparser.Decode(data, p.decodeOptions()...)
	if err != nil {
		return &Result{Error: err}
	}
	if p.requireModel55 {
		if err := xmlparser.RequireModel55(doc); err != nil {
			return &Result{Error: err}
		}
	}
	warnings := append(KeyWarnings(doc), TotalWarnings(doc)...)
	return &Result{Document: doc, Warnings: warnings}
}

// ProcessBatch decodes every input concurrently. Results keep the input
// order and a failing input does not stop the others.
func (p *Pipeline) ProcessBatch(ctx context.Context, inputs [][]byte) []*Result {
	results := make([]*Result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, data := range inputs {
		i, data := i, data
		g.Go(func() error {
			results[i] = p.ProcessXMLBytes(ctx, data)
			return nil
		})
	}
	_ = g.Wait() // workers never return an error

	p.logger.Debug().Int("inputs", len(inputs)).Int("workers", p.workers).Msg("batch decoded")
	return results
}

// Encode renders a document as XML
func (p *Pipeline) Encode(doc *model.Document) ([]byte, error) {
	if p.requireModel55 && doc != nil {
		if err := xmlparser.RequireModel55(doc); err != nil {
			return nil, err
		}
	}
	return xmlparser.Encode(doc, xmlparser.WithLogger(p.logger), xmlparser.WithIndent(p.indent))
}

// Check decodes data, encodes the result and decodes that again
func (p *Pipeline) Check(ctx context.Context, data []byte) *CheckResult {
	first := p.ProcessXMLBytes(ctx, data)
	res := &CheckResult{Result: *first}
	if first.Error != nil {
		return res
	}

	out, err := xmlparser.Encode(first.Document, xmlparser.WithLogger(p.logger))
	if err != nil {
		res.Error = fmt.Errorf("re-encode failed: %w", err)
		return res
	}
	res.Encoded = out
	res.Canonical = bytes.Equal(bytes.TrimSpace(data), out)

	second, err := xmlparser.Decode(out, p.decodeOptions()...)
	if err != nil {
		res.Error = fmt.Errorf("decode of re-encoded document failed: %w", err)
		return res
	}
	res.Stable, err = Equivalent(first.Document, second)
	if err != nil {
		res.Error = fmt.Errorf("re-encode failed: %w", err)
		return res
	}
	if !res.Stable {
		res.Warnings = append(res.Warnings, "document changed after re-encoding")
	}
	return res
}

// Equivalent reports whether a and b encode to the same canonical XML.
// Decimals compare by value and scale, not by their in-memory form.
func Equivalent(a, b *model.Document) (bool, error) {
	ea, err := xmlparser.Encode(a)
	if err != nil {
		return false, err
	}
	eb, err := xmlparser.Encode(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ea, eb), nil
}

// KeyWarnings compares the access key with the fields it is built from.
// Mismatches are reported, never enforced.
func KeyWarnings(doc *model.Document) []string {
	var warnings []string
	if err := accesskey.Validate(doc.ChaveAcesso); err != nil {
		warnings = append(warnings, "access key: "+err.Error())
	}
	key, err := accesskey.Parse(doc.ChaveAcesso)
	if err != nil {
		return warnings
	}

	ide := doc.Identificacao
	mismatch := func(field, inKey, inDoc string) {
		if inKey != inDoc {
			warnings = append(warnings, fmt.Sprintf("access key %s %s differs from document %s", field, inKey, inDoc))
		}
	}
	mismatch("cUF", scalar.EncodeInt(key.UF, 2), scalar.EncodeInt(ide.CodigoUF, 2))
	if mod, err := codes.V400.Modelo.Encode(ide.Modelo); err == nil {
		mismatch("mod", key.Modelo, mod)
	}
	mismatch("serie", scalar.EncodeInt(key.Serie, 0), scalar.EncodeInt(ide.Serie, 0))
	mismatch("nNF", scalar.EncodeInt(key.Numero, 0), scalar.EncodeInt(ide.Numero, 0))
	if tpEmis, err := codes.V400.TipoEmissao.Encode(ide.Emissao.Tipo); err == nil {
		mismatch("tpEmis", key.TipoEmissao, tpEmis)
	}
	mismatch("cNF", key.CodigoNumerico, scalar.EncodeInt(ide.Chave.CodigoNumerico, 8))
	mismatch("cDV", scalar.EncodeInt(key.DV, 0), scalar.EncodeInt(ide.Chave.DigitoVerificador, 0))
	if doc.Emitente.Documento.Tipo == model.IdentificadorCNPJ {
		mismatch("CNPJ", key.CNPJ, doc.Emitente.Documento.Numero)
	}
	return warnings
}

// TotalWarnings compares ICMSTot vProd with the sum of the item values
// flagged to compose the total (indTot = 1). Amounts are not validated.
func TotalWarnings(doc *model.Document) []string {
	var values []dec.Decimal
	for _, item := range doc.Itens {
		if item.Produto.CompoeTotal {
			values = append(values, item.Produto.ValorTotal)
		}
	}
	sum := decimal.Sum(values)
	if sum.Equal(doc.Total.ValorProdutos) {
		return nil
	}
	return []string{fmt.Sprintf("total vProd %s differs from item sum %s",
		decimal.Format(doc.Total.ValorProdutos), decimal.Format(sum))}
}
