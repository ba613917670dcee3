package encoder

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
	"github.com/vincent-petithory/dataurl"

	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/adapters/file"
	"github.com/Shivankgoura/Photorealistic-Image-tranformer/internal/core/domain"
)

// AcceptedImageTypes maps the file extensions offered for upload to their media types. The list is
// a hint for users and the CLI; nothing rejects other types.
var AcceptedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
	".heic": "image/heic",
	".heif": "image/heif",
}

// DataURL turns raw image files into payloads by framing them as data URLs and stripping the
// framing again, the same shape a browser file reader produces.
type DataURL struct {
	download func(ctx context.Context, url string) ([]byte, error)
}

func NewDataURL() *DataURL {
	return &DataURL{download: file.DownloadFile}
}

// Encode downloads the image at url and encodes it.
func (e *DataURL) Encode(ctx context.Context, url string, declaredType string) (domain.ImagePayload, error) {
	data, err := e.download(ctx, url)
	if err != nil {
		return domain.ImagePayload{}, &domain.ReadError{Err: err}
	}

	return encodeBytes(data, declaredType)
}

// EncodeFile reads a local image, taking the media type from its extension when known.
func (e *DataURL) EncodeFile(path string) (domain.ImagePayload, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.ImagePayload{}, &domain.ReadError{Err: err}
	}
	defer f.Close()

	return e.EncodeReader(f, AcceptedImageTypes[strings.ToLower(filepath.Ext(path))])
}

// EncodeReader reads r to the end and encodes its content.
func (e *DataURL) EncodeReader(r io.Reader, declaredType string) (domain.ImagePayload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.ImagePayload{}, &domain.ReadError{Err: err}
	}

	return encodeBytes(data, declaredType)
}

func encodeBytes(data []byte, declaredType string) (domain.ImagePayload, error) {
	mediaType := strings.TrimSpace(declaredType)
	if strings.Count(mediaType, "/") != 1 {
		mediaType = DetectMediaType(data)
	}

	log.Debug().Int("bytes", len(data)).Str("mediaType", mediaType).Msg("encoding image")

	return ParseDataURL(dataurl.New(data, mediaType).String())
}

// DetectMediaType sniffs the media type of data, without parameters.
func DetectMediaType(data []byte) string {
	mediaType, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return strings.TrimSpace(mediaType)
}

// ParseDataURL splits a data URL into its media type and base64 payload.
func ParseDataURL(s string) (domain.ImagePayload, error) {
	if !strings.HasPrefix(s, "data:") || !strings.Contains(s, ",") {
		return domain.ImagePayload{}, &domain.ReadError{Err: errors.New("not a data URL")}
	}

	du, err := dataurl.DecodeString(s)
	if err != nil {
		return domain.ImagePayload{}, &domain.ReadError{Err: fmt.Errorf("malformed data URL: %w", err)}
	}

	encoded := s[strings.Index(s, ",")+1:]
	if du.Encoding != dataurl.EncodingBase64 {
		encoded = base64.StdEncoding.EncodeToString(du.Data)
	}

	return domain.ImagePayload{
		EncodedData: encoded,
		MediaType:   du.MediaType.ContentType(),
	}, nil
}
