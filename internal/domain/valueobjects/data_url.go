package valueobjects

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DataURL is a self-describing image reference: data:<media type>;base64,<payload>.
type DataURL string

func NewDataURL(mediaType MediaType, payload string) DataURL {
	return DataURL("data:" + string(mediaType) + ";base64," + payload)
}

func (d DataURL) String() string {
	return string(d)
}

// Decode splits the reference back into its media type and raw bytes.
func (d DataURL) Decode() (MediaType, []byte, error) {
	rest, ok := strings.CutPrefix(string(d), "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data url")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data url has no payload separator")
	}
	mediaType, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("data url is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return MediaType(mediaType), data, nil
}
