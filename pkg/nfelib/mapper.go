package nfelib

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	xmlparser "github.com/rezonia/nfe-mapper/internal/parser/xml"
	"github.com/rezonia/nfe-mapper/internal/processor"
)

// Options configures the mapper
type Options struct {
	// Logger receives per-section debug output; zero value disables it
	Logger *zerolog.Logger
	// Indent indents encoded XML by this many spaces
	Indent int
	// Workers bounds DecodeBatch concurrency (default 4)
	Workers int
	// RequireModel55 rejects documents without a named, addressed recipient
	RequireModel55 bool
}

// Mapper decodes and encodes documents; it is safe for concurrent use
type Mapper struct {
	pipeline *processor.Pipeline
}

// BatchResult is the outcome of one DecodeBatch input
type BatchResult struct {
	Document *Document
	Err      error
	Warnings []string
}

// NewMapper creates a mapper with the given options
func NewMapper(opts Options) *Mapper {
	popts := []processor.Option{
		processor.WithIndent(opts.Indent),
		processor.WithWorkers(opts.Workers),
		processor.WithModel55(opts.RequireModel55),
	}
	if opts.Logger != nil {
		popts = append(popts, processor.WithLogger(*opts.Logger))
	}
	return &Mapper{pipeline: processor.NewPipeline(popts...)}
}

// NewDefaultMapper creates a mapper with default options
func NewDefaultMapper() *Mapper {
	return NewMapper(Options{})
}

// Decode parses one document
func (m *Mapper) Decode(ctx context.Context, data []byte) (*Document, error) {
	res := m.pipeline.ProcessXMLBytes(ctx, data)
	return res.Document, res.Error
}

// DecodeReader parses one document read from r
func (m *Mapper) DecodeReader(ctx context.Context, r io.Reader) (*Document, error) {
	res := m.pipeline.ProcessXML(ctx, r)
	return res.Document, res.Error
}

// Encode renders a document as XML
func (m *Mapper) Encode(doc *Document) ([]byte, error) {
	return m.pipeline.Encode(doc)
}

// DecodeBatch decodes every input concurrently; results keep input order
func (m *Mapper) DecodeBatch(ctx context.Context, inputs [][]byte) []BatchResult {
	results := m.pipeline.ProcessBatch(ctx, inputs)
	out := make([]BatchResult, len(results))
	for i, r := range results {
		out[i] = BatchResult{Document: r.Document, Err: r.Error, Warnings: r.Warnings}
	}
	return out
}

// Decode parses one document with default options
func Decode(data []byte) (*Document, error) {
	return xmlparser.Decode(data)
}

// DecodeReader parses one document from r with default options
func DecodeReader(r io.Reader) (*Document, error) {
	return xmlparser.DecodeReader(r)
}

// Encode renders a document as compact canonical XML
func Encode(doc *Document) ([]byte, error) {
	return xmlparser.Encode(doc)
}

// RequireModel55 checks that doc is a model 55 NF-e with a named,
// addressed recipient
func RequireModel55(doc *Document) error {
	return xmlparser.RequireModel55(doc)
}
