// Package signature detects whether a document embeds an XMLDSig
// signature. Detection only: verification is out of scope.
package signature

import (
	"bytes"

	"github.com/beevik/etree"

	"github.com/rezonia/eracun/internal/model"
)

// XMLDSigNamespace identifies signature elements.
const XMLDSigNamespace = "http://www.w3.org/2000/09/xmldsig#"

// Info describes a detected signature.
type Info struct {
	// Present is true when a Signature element was found.
	Present bool
	// Path is the slash-joined local-name path to the signature element.
	Path string
	// HasCertificate is true when the signature carries an X509Certificate.
	HasCertificate bool
}

// Detector inspects documents for embedded signatures.
type Detector struct{}

// NewDetector creates a signature detector.
func NewDetector() *Detector {
	return &Detector{}
}

// CanInspect returns true if the data looks like an XML document.
func (d *Detector) CanInspect(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '<'
}

// Detect reports signature presence in XML data. Malformed input yields
// an error result.
func (d *Detector) Detect(data []byte) (*Info, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, model.NewParseError("xml", "failed to parse document", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, model.NewParseError("xml", "document has no root element", nil)
	}

	sig := findSignature(root)
	if sig == nil {
		return &Info{}, nil
	}

	return &Info{
		Present:        true,
		Path:           elementPath(sig),
		HasCertificate: findCertificate(sig) != nil,
	}, nil
}

// findSignature searches the tree for a Signature element, matching the
// local name so any prefix works.
func findSignature(elem *etree.Element) *etree.Element {
	if elem.Tag == "Signature" {
		return elem
	}
	for _, c := range elem.ChildElements() {
		if found := findSignature(c); found != nil {
			return found
		}
	}
	return nil
}

func findCertificate(sig *etree.Element) *etree.Element {
	if sig.Tag == "X509Certificate" {
		return sig
	}
	for _, c := range sig.ChildElements() {
		if found := findCertificate(c); found != nil {
			return found
		}
	}
	return nil
}

func elementPath(elem *etree.Element) string {
	path := elem.Tag
	for p := elem.Parent(); p != nil; p = p.Parent() {
		if p.Tag == "" {
			break
		}
		path = p.Tag + "/" + path
	}
	return path
}
