// Package signature reports the XMLDSig and authorisation protocol elements
// that travel alongside an NF-e. It does not verify signatures.
package signature

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// XMLDSigNamespace is the namespace of the enveloped signature.
const XMLDSigNamespace = "http://www.w3.org/2000/09/xmldsig#"

// ErrNotXML is returned when the input cannot be tokenized as XML.
var ErrNotXML = errors.New("input is not XML")

// Report describes the signature and protocol found around an infNFe.
type Report struct {
	// InfNFeID is the Id attribute of infNFe, empty when not found.
	InfNFeID string `json:"inf_nfe_id,omitempty"`
	Signed   bool   `json:"signed"`
	// ReferenceURI is Signature/SignedInfo/Reference/@URI.
	ReferenceURI string `json:"reference_uri,omitempty"`
	// ReferenceMatches is true when ReferenceURI is "#" followed by InfNFeID.
	ReferenceMatches bool      `json:"reference_matches"`
	HasCertificate   bool      `json:"has_certificate"`
	Protocol         *Protocol `json:"protocol,omitempty"`
}

// Protocol is the authorisation receipt carried by nfeProc.
type Protocol struct {
	ChNFe   string `json:"ch_nfe"`
	CStat   string `json:"c_stat"`
	XMotivo string `json:"x_motivo,omitempty"`
	NProt   string `json:"n_prot,omitempty"`
	// Authorised is true for cStat 100 and 150.
	Authorised bool `json:"authorised"`
}

// Warnings lists the inconsistencies between the report and the given
// access key.
func (r *Report) Warnings(chave string) []string {
	var warns []string
	if r.ReferenceURI != "" && r.InfNFeID != "" && !r.ReferenceMatches {
		warns = append(warns, fmt.Sprintf("signature reference %q does not point at %q", r.ReferenceURI, r.InfNFeID))
	}
	if r.Protocol != nil && chave != "" && r.Protocol.ChNFe != chave {
		warns = append(warns, fmt.Sprintf("protocol chNFe %s differs from access key %s", r.Protocol.ChNFe, chave))
	}
	return warns
}

// Inspect parses data and reports on its signature and protocol elements.
func Inspect(data []byte) (*Report, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotXML, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: empty document", ErrNotXML)
	}

	report := &Report{}
	if inf := findElement(root, "infNFe"); inf != nil {
		report.InfNFeID = inf.SelectAttrValue("Id", "")
	}

	if sig := findSignatureElement(root); sig != nil {
		report.Signed = true
		if ref := findElement(sig, "Reference"); ref != nil {
			report.ReferenceURI = ref.SelectAttrValue("URI", "")
		}
		report.ReferenceMatches = report.InfNFeID != "" && report.ReferenceURI == "#"+report.InfNFeID
		if cert := findElement(sig, "X509Certificate"); cert != nil {
			report.HasCertificate = strings.TrimSpace(cert.Text()) != ""
		}
	}

	if inf := findElement(root, "infProt"); inf != nil {
		p := &Protocol{
			ChNFe:   childText(inf, "chNFe"),
			CStat:   childText(inf, "cStat"),
			XMotivo: childText(inf, "xMotivo"),
			NProt:   childText(inf, "nProt"),
		}
		p.Authorised = p.CStat == "100" || p.CStat == "150"
		report.Protocol = p
	}
	return report, nil
}

// findSignatureElement looks in the usual NFe and nfeProc positions before
// falling back to a recursive search.
func findSignatureElement(root *etree.Element) *etree.Element {
	searchPaths := []string{
		"Signature",
		"ds:Signature",
		"NFe/Signature",
		"NFe/ds:Signature",
	}
	for _, path := range searchPaths {
		if elem := root.FindElement(path); elem != nil {
			return elem
		}
	}
	return findElement(root, "Signature")
}

// findElement searches depth first for an element by local name.
func findElement(elem *etree.Element, localName string) *etree.Element {
	if hasLocalName(elem, localName) {
		return elem
	}
	for _, child := range elem.ChildElements() {
		if found := findElement(child, localName); found != nil {
			return found
		}
	}
	return nil
}

func hasLocalName(elem *etree.Element, localName string) bool {
	tag := elem.Tag
	if idx := strings.IndexByte(tag, ':'); idx >= 0 {
		tag = tag[idx+1:]
	}
	return tag == localName
}

func childText(elem *etree.Element, localName string) string {
	for _, child := range elem.ChildElements() {
		if hasLocalName(child, localName) {
			return strings.TrimSpace(child.Text())
		}
	}
	return ""
}

// HasSignature is a quick byte-level check for an enveloped signature.
func HasSignature(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if !bytes.HasPrefix(trimmed, []byte("<")) {
		return false
	}
	return bytes.Contains(data, []byte("<Signature")) ||
		bytes.Contains(data, []byte(":Signature"))
}
