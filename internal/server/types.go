package server

import "github.com/rezonia/eracun/internal/model"

// ParseResponse is the result of parsing an XML document.
type ParseResponse struct {
	Invoice  *model.Invoice `json:"invoice"`
	Warnings []string       `json:"warnings,omitempty"`
}

// ValidationResponse reports the outcome of parameter validation.
type ValidationResponse struct {
	Valid    bool          `json:"valid"`
	Errors   *model.Errors `json:"errors,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
}

// InspectResponse describes signature presence and embedded attachments.
type InspectResponse struct {
	SignaturePresent bool             `json:"signature_present"`
	SignaturePath    string           `json:"signature_path,omitempty"`
	HasCertificate   bool             `json:"has_certificate"`
	Attachments      []AttachmentInfo `json:"attachments"`
}

// AttachmentInfo lists one embedded attachment without its payload.
type AttachmentInfo struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Size     int    `json:"size"`
}
