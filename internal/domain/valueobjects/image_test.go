package valueobjects

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"mannequin/internal/domain"
)

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func createTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to create test PNG: %v", err)
	}
	return buf.Bytes()
}

func createTestJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("Failed to create test JPEG: %v", err)
	}
	return buf.Bytes()
}

func TestEncodeImage_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		declared string
		want     MediaType
	}{
		{name: "png declared", data: createTestPNG(t, 4, 4), declared: "image/png", want: MediaTypePNG},
		{name: "jpeg sniffed", data: createTestJPEG(t), declared: "", want: MediaTypeJPEG},
		{name: "octet-stream declared is sniffed", data: createTestPNG(t, 2, 2), declared: "application/octet-stream", want: MediaTypePNG},
		{name: "declared with params", data: []byte("not really webp"), declared: "image/webp; q=1", want: MediaTypeWEBP},
		{name: "empty file", data: []byte{}, declared: "", want: MediaTypeOctetStream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := EncodeImage(bytes.NewReader(tt.data), tt.declared)
			if err != nil {
				t.Fatalf("EncodeImage() error = %v", err)
			}
			if img.MediaType() != tt.want {
				t.Errorf("MediaType() = %s, want %s", img.MediaType(), tt.want)
			}

			mediaType, decoded, err := img.DataURL().Decode()
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if mediaType != tt.want {
				t.Errorf("decoded media type = %s, want %s", mediaType, tt.want)
			}
			if !bytes.Equal(decoded, tt.data) {
				t.Errorf("round trip changed the payload")
			}
			if string(img.DataURL()) != "data:"+string(tt.want)+";base64,"+img.Base64() {
				t.Errorf("DataURL() = %s", img.DataURL())
			}
		})
	}
}

func TestEncodeImage_ReadError(t *testing.T) {
	_, err := EncodeImage(failingReader{}, "image/png")
	if !errors.Is(err, domain.ErrFileRead) {
		t.Errorf("Expected ErrFileRead, got %v", err)
	}
}

func TestMediaType_IsAccepted(t *testing.T) {
	for _, m := range []MediaType{MediaTypePNG, MediaTypeJPEG, MediaTypeWEBP} {
		if !m.IsAccepted() {
			t.Errorf("%s should be accepted", m)
		}
	}
	for _, m := range []MediaType{"image/gif", MediaTypeOctetStream, "text/plain"} {
		if m.IsAccepted() {
			t.Errorf("%s should not be accepted", m)
		}
	}
	if got := AcceptAttribute(); got != "image/png, image/jpeg, image/webp" {
		t.Errorf("AcceptAttribute() = %q", got)
	}
}

func TestUploadedImage_Dimensions(t *testing.T) {
	img := NewUploadedImage(createTestPNG(t, 7, 3), MediaTypePNG)
	w, h, ok := img.Dimensions()
	if !ok || w != 7 || h != 3 {
		t.Errorf("Dimensions() = %d, %d, %v", w, h, ok)
	}

	junk := NewUploadedImage([]byte{0x00, 0x01}, MediaTypePNG)
	if _, _, ok := junk.Dimensions(); ok {
		t.Errorf("Dimensions() should fail for junk payload")
	}
}

func TestDataURL_DecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		url  DataURL
	}{
		{name: "missing scheme", url: "image/png;base64,AAAA"},
		{name: "missing comma", url: "data:image/png;base64"},
		{name: "not base64", url: "data:image/png,AAAA"},
		{name: "bad payload", url: "data:image/png;base64,***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := tt.url.Decode(); err == nil {
				t.Errorf("Decode() expected error for %q", tt.url)
			}
		})
	}
}
