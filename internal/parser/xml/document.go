// Package xml decodes NF-e layout 4.00 XML into the typed model and encodes
// the model back into canonical XML.
package xml

import (
	"io"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"github.com/rezonia/nfe-mapper/internal/accesskey"
	"github.com/rezonia/nfe-mapper/internal/codes"
	"github.com/rezonia/nfe-mapper/internal/model"
	"github.com/rezonia/nfe-mapper/internal/scalar"
)

// Namespace is the NF-e XML namespace
const Namespace = "http://www.portalfiscal.inf.br/nfe"

type options struct {
	logger   zerolog.Logger
	indent   int
	registry *Registry
}

// Option configures decoding and encoding
type Option func(*options)

// WithLogger sets the logger used for per-section debug output
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithIndent makes Encode indent its output by n spaces; the default is
// compact canonical output
func WithIndent(n int) Option {
	return func(o *options) {
		o.indent = n
	}
}

// WithRegistry replaces the envelope registry used on decode
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = NewRegistry()
	}
	return o
}

// Decode parses XML bytes into a Document
func Decode(data []byte, opts ...Option) (*model.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, model.NewIOError("failed to parse XML", err)
	}
	return DecodeDocument(doc, opts...)
}

// DecodeReader parses XML from r into a Document
func DecodeReader(r io.Reader, opts ...Option) (*model.Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, model.NewIOError("failed to read XML", err)
	}
	return DecodeDocument(doc, opts...)
}

// DecodeDocument maps an already parsed tree into a Document
func DecodeDocument(doc *etree.Document, opts ...Option) (*model.Document, error) {
	o := newOptions(opts)

	env, inf, err := o.registry.Detect(doc.Root())
	if err != nil {
		return nil, err
	}
	o.logger.Debug().Str("envelope", env.Name()).Msg("located infNFe")

	return decodeInfNFe(inf, o)
}

// DecodeElement maps an infNFe element into a Document
func DecodeElement(inf *etree.Element, opts ...Option) (*model.Document, error) {
	return decodeInfNFe(inf, newOptions(opts))
}

func decodeInfNFe(inf *etree.Element, o *options) (*model.Document, error) {
	versao := inf.SelectAttr("versao")
	if versao == nil {
		return nil, model.NewMissingFieldError("infNFe", "versao")
	}
	version, err := codes.DecodeVersion(versao.Value)
	if err != nil {
		return nil, err
	}
	set, err := codes.ForVersion(version)
	if err != nil {
		return nil, err
	}

	id := inf.SelectAttr("Id")
	if id == nil {
		return nil, model.NewMissingFieldError("infNFe", "Id")
	}
	key, err := accesskey.Strip(id.Value)
	if err != nil {
		return nil, model.NewTypeConversionError("infNFe", "Id", "access key", id.Value, err)
	}

	log := o.logger.With().Str("chave", key).Logger()
	m := newMapper(set, log)
	doc := &model.Document{Versao: version, ChaveAcesso: key}

	r := &reader{section: "infNFe"}
	ide := child(r, inf, "ide")
	emit := child(r, inf, "emit")
	total := child(r, inf, "total")
	transp := child(r, inf, "transp")
	if r.err != nil {
		return nil, r.err
	}

	if doc.Identificacao, err = m.decodeIdentificacao(ide); err != nil {
		return nil, err
	}
	if doc.Emitente, err = m.decodeEmitente(emit); err != nil {
		return nil, err
	}
	if dest := inf.SelectElement("dest"); dest != nil {
		if doc.Destinatario, err = m.decodeDestinatario(dest); err != nil {
			return nil, err
		}
	}
	if doc.Itens, err = m.decodeItens(inf); err != nil {
		return nil, err
	}
	if doc.Total, err = m.decodeTotal(total); err != nil {
		return nil, err
	}
	if doc.Transporte, err = m.decodeTransporte(transp); err != nil {
		return nil, err
	}
	if infAdic := inf.SelectElement("infAdic"); infAdic != nil {
		doc.InformacaoComplementar = m.decodeInfAdic(infAdic)
	}

	log.Debug().
		Int("itens", len(doc.Itens)).
		Bool("destinatario", doc.Destinatario != nil).
		Msg("decoded document")
	return doc, nil
}

// Encode renders a Document as XML bytes
func Encode(doc *model.Document, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	out, err := encodeDocument(doc, o)
	if err != nil {
		return nil, err
	}
	if o.indent > 0 {
		out.Indent(o.indent)
	}
	return out.WriteToBytes()
}

// EncodeDocument renders a Document as an XML tree rooted at <NFe>
func EncodeDocument(doc *model.Document, opts ...Option) (*etree.Document, error) {
	return encodeDocument(doc, newOptions(opts))
}

func encodeDocument(doc *model.Document, o *options) (*etree.Document, error) {
	inf, err := encodeInfNFe(doc, o)
	if err != nil {
		return nil, err
	}

	out := etree.NewDocument()
	out.WriteSettings.CanonicalText = true
	out.WriteSettings.CanonicalAttrVal = true
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	nfe := out.CreateElement("NFe")
	nfe.CreateAttr("xmlns", Namespace)
	nfe.AddChild(inf)
	return out, nil
}

// EncodeElement renders a Document as a detached infNFe element
func EncodeElement(doc *model.Document, opts ...Option) (*etree.Element, error) {
	return encodeInfNFe(doc, newOptions(opts))
}

func encodeInfNFe(doc *model.Document, o *options) (*etree.Element, error) {
	if doc == nil {
		return nil, model.NewMissingSubstructureError("infNFe", "nil document")
	}
	if len(doc.Itens) == 0 {
		return nil, model.NewMissingSubstructureError("det", "document has no line items")
	}
	versao, err := codes.Versions.Encode(doc.Versao)
	if err != nil {
		return nil, model.NewUnsupportedVersionError(string(doc.Versao))
	}
	set, err := codes.ForVersion(doc.Versao)
	if err != nil {
		return nil, err
	}

	m := newMapper(set, o.logger.With().Str("chave", doc.ChaveAcesso).Logger())

	inf := etree.NewElement("infNFe")
	inf.CreateAttr("versao", versao)
	inf.CreateAttr("Id", accesskey.WithPrefix(doc.ChaveAcesso))

	if err := m.encodeIdentificacao(inf, doc.Identificacao); err != nil {
		return nil, err
	}
	if err := m.encodeEmitente(inf, doc.Emitente); err != nil {
		return nil, err
	}
	if doc.Destinatario != nil {
		if err := m.encodeDestinatario(inf, doc.Destinatario); err != nil {
			return nil, err
		}
	}
	seen := make(map[int]bool, len(doc.Itens))
	for _, item := range doc.Itens {
		number := scalar.EncodeInt(item.Numero, 0)
		if item.Numero <= 0 {
			return nil, model.NewInvalidVariantError("det", "nItem", number, "item number must be positive")
		}
		if seen[item.Numero] {
			return nil, model.NewInvalidVariantError("det", "nItem", number, "duplicate item number")
		}
		seen[item.Numero] = true
		if err := m.encodeItem(inf, item); err != nil {
			return nil, err
		}
	}
	if err := m.encodeTotal(inf, doc.Total); err != nil {
		return nil, err
	}
	if err := m.encodeTransporte(inf, doc.Transporte); err != nil {
		return nil, err
	}
	m.encodeInfAdic(inf, doc.InformacaoComplementar)

	m.log.Debug().Int("itens", len(doc.Itens)).Msg("encoded document")
	return inf, nil
}

// RequireModel55 checks the model 55 profile: the document must be an NF-e
// and carry a recipient with name and address
func RequireModel55(doc *model.Document) error {
	if doc.Identificacao.Modelo != model.ModeloNFe {
		return model.NewInvalidVariantError("ide", "mod", string(doc.Identificacao.Modelo), "model 55 required")
	}
	dest := doc.Destinatario
	if dest == nil {
		return model.NewMissingSubstructureError("dest", "model 55 requires a recipient")
	}
	if dest.RazaoSocial == nil {
		return model.NewMissingSubstructureError("dest", "model 55 requires the recipient name")
	}
	if dest.Endereco == nil {
		return model.NewMissingSubstructureError("dest/enderDest", "model 55 requires the recipient address")
	}
	return nil
}
