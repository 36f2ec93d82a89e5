// Package attachment extracts and decodes embedded binary attachments
// from an already-parsed invoice document.
package attachment

import (
	"encoding/base64"

	"github.com/rezonia/eracun/internal/model"
	"github.com/rezonia/eracun/internal/parser"
)

// File is a decoded attachment.
type File struct {
	ID       string
	Filename string
	MimeType string
	Data     []byte
}

// Extract decodes every embedded attachment in the given XML document.
// An undecodable payload is reported as an error naming the attachment.
func Extract(data []byte) ([]File, error) {
	inv, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	return FromInvoice(inv)
}

// FromInvoice decodes the attachments of an already-parsed model.
func FromInvoice(inv *model.Invoice) ([]File, error) {
	var files []File
	for _, att := range inv.Attachments {
		decoded, err := base64.StdEncoding.DecodeString(att.Data)
		if err != nil {
			return nil, model.NewParseError("attachment", "attachment "+att.ID+" is not valid base64", err)
		}
		files = append(files, File{
			ID:       att.ID,
			Filename: att.Filename,
			MimeType: att.MimeType,
			Data:     decoded,
		})
	}
	return files, nil
}
