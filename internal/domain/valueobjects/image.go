package valueobjects

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"

	"mannequin/internal/domain"
)

type MediaType string

const (
	MediaTypePNG         MediaType = "image/png"
	MediaTypeJPEG        MediaType = "image/jpeg"
	MediaTypeWEBP        MediaType = "image/webp"
	MediaTypeOctetStream MediaType = "application/octet-stream"
)

// AcceptedMediaTypes is the accept filter of the file-selection control.
var AcceptedMediaTypes = []MediaType{MediaTypePNG, MediaTypeJPEG, MediaTypeWEBP}

func (m MediaType) IsAccepted() bool {
	for _, accepted := range AcceptedMediaTypes {
		if m == accepted {
			return true
		}
	}
	return false
}

// AcceptAttribute renders the accept filter for an HTML file input.
func AcceptAttribute() string {
	values := make([]string, len(AcceptedMediaTypes))
	for i, m := range AcceptedMediaTypes {
		values[i] = string(m)
	}
	return strings.Join(values, ", ")
}

// UploadedImage is a user-selected picture held as base64 text plus its media type.
type UploadedImage struct {
	data      []byte
	base64    string
	mediaType MediaType
	dataURL   DataURL
}

// EncodeImage reads r to the end and builds an UploadedImage. declared is the
// media type reported by the file-selection control and may be empty.
func EncodeImage(r io.Reader, declared string) (*UploadedImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFileRead, err)
	}
	return NewUploadedImage(data, ResolveMediaType(declared, data)), nil
}

func NewUploadedImage(data []byte, mediaType MediaType) *UploadedImage {
	if mediaType == "" {
		mediaType = MediaTypeOctetStream
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	return &UploadedImage{
		data:      data,
		base64:    encoded,
		mediaType: mediaType,
		dataURL:   NewDataURL(mediaType, encoded),
	}
}

// ResolveMediaType prefers a specific declared type and falls back to content sniffing.
func ResolveMediaType(declared string, data []byte) MediaType {
	if mt := normalizeMediaType(declared); mt != "" && mt != MediaTypeOctetStream {
		return mt
	}
	if len(data) == 0 {
		return MediaTypeOctetStream
	}
	if mt := normalizeMediaType(mimetype.Detect(data).String()); mt != "" {
		return mt
	}
	return MediaTypeOctetStream
}

func normalizeMediaType(value string) MediaType {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	parsed, _, err := mime.ParseMediaType(value)
	if err != nil {
		return ""
	}
	return MediaType(strings.ToLower(parsed))
}

func (i *UploadedImage) Data() []byte {
	return i.data
}

func (i *UploadedImage) Base64() string {
	return i.base64
}

func (i *UploadedImage) MediaType() MediaType {
	return i.mediaType
}

func (i *UploadedImage) DataURL() DataURL {
	return i.dataURL
}

func (i *UploadedImage) Size() int {
	return len(i.data)
}

// Dimensions reports the pixel size when the payload is a decodable png, jpeg or webp.
func (i *UploadedImage) Dimensions() (width, height int, ok bool) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(i.data))
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
