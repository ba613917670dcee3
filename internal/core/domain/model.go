package domain

import (
	"encoding/base64"
	"fmt"
)

// ResultFilename is the name under which a transformed image is offered for download.
const ResultFilename = "transformed-image.png"

type Message struct {
	ID             int
	ChatID         int64
	Username       string
	ImageURL       string
	ImageMediaType string
	Text           string
}

type Action string

const (
	Typing       Action = "typing"
	SendingPhoto Action = "upload_photo"
)

// ImagePayload is an image in transport-safe form: base64 bytes without any data-URL framing,
// plus the media type that framing declared.
type ImagePayload struct {
	EncodedData string
	MediaType   string
}

// DataURL returns the payload as an embeddable data URL.
func (p ImagePayload) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", p.MediaType, p.EncodedData)
}

// Bytes decodes the payload.
func (p ImagePayload) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(p.EncodedData)
}

// SourceImage is a reference to the image a user uploaded, fetched again when a transform runs.
type SourceImage struct {
	URL       string
	MediaType string
}
