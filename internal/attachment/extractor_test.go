package attachment_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/eracun/internal/attachment"
	"github.com/rezonia/eracun/internal/model"
)

func TestFromInvoice_DecodesPayload(t *testing.T) {
	payload := []byte("%PDF-1.7 fake content")
	inv := &model.Invoice{
		Attachments: []model.Attachment{
			{
				ID:       "ATT-1",
				Filename: "invoice.pdf",
				MimeType: "application/pdf",
				Data:     base64.StdEncoding.EncodeToString(payload),
			},
		},
	}

	files, err := attachment.FromInvoice(inv)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "ATT-1", files[0].ID)
	assert.Equal(t, "invoice.pdf", files[0].Filename)
	assert.Equal(t, "application/pdf", files[0].MimeType)
	assert.Equal(t, payload, files[0].Data)
}

func TestFromInvoice_InvalidBase64(t *testing.T) {
	inv := &model.Invoice{
		Attachments: []model.Attachment{
			{ID: "ATT-1", Filename: "x.pdf", MimeType: "application/pdf", Data: "!!not-base64!!"},
		},
	}

	_, err := attachment.FromInvoice(inv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ATT-1")
}

func TestExtract_FromDocument(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("a,b,c\n1,2,3\n"))
	content := `<Invoice xmlns:cac="urn:c" xmlns:cbc="urn:b">
		<cbc:ID>R-1</cbc:ID>
		<cac:AdditionalDocumentReference>
			<cbc:ID>ATT-1</cbc:ID>
			<cac:Attachment>
				<cbc:EmbeddedDocumentBinaryObject mimeCode="text/csv" filename="data.csv">` + encoded + `</cbc:EmbeddedDocumentBinaryObject>
			</cac:Attachment>
		</cac:AdditionalDocumentReference>
	</Invoice>`

	files, err := attachment.Extract([]byte(content))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "data.csv", files[0].Filename)
	assert.Equal(t, []byte("a,b,c\n1,2,3\n"), files[0].Data)
}

func TestExtract_MalformedXML(t *testing.T) {
	_, err := attachment.Extract([]byte("not xml"))
	require.Error(t, err)
}
