package i18n

import (
	"testing"

	"golang.org/x/text/language"

	"mannequin/internal/domain/entities"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name        string
		fallback    string
		preferences []string
		want        language.Tag
	}{
		{"no preferences uses fallback", "fa", nil, Persian},
		{"query wins", "en", []string{"fa", "en-US"}, Persian},
		{"accept-language header", "en", []string{"", "fa-IR,fa;q=0.9,en;q=0.8"}, Persian},
		{"unsupported falls through", "en", []string{"de", "fa"}, Persian},
		{"regional english", "fa", []string{"en-GB"}, English},
		{"garbage", "en", []string{"!!"}, English},
		{"unsupported fallback", "ja", []string{"de"}, English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.fallback, tt.preferences...); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLocalizer_Translations(t *testing.T) {
	en := New(English)
	fa := New(Persian)

	if got := en.T(AppTitle); got != "Digital Mannequin" {
		t.Errorf("en title = %q", got)
	}
	if got := fa.T(AppTitle); got != "مانکن دیجیتال" {
		t.Errorf("fa title = %q", got)
	}
	if en.Dir() != "ltr" || fa.Dir() != "rtl" {
		t.Errorf("unexpected text direction")
	}
	if fa.Lang() != "fa" {
		t.Errorf("fa Lang() = %q", fa.Lang())
	}
	if fa.Name() == "" {
		t.Errorf("expected a language name")
	}

	for tag, entries := range translations {
		for _, key := range keysOf(translations[English]) {
			if _, ok := entries[key]; !ok {
				t.Errorf("%v is missing %s", tag, key)
			}
		}
	}
}

func TestLocalizer_StatusMessages(t *testing.T) {
	messages := New(English).StatusMessages()
	if len(messages) != 4 {
		t.Fatalf("expected 4 status messages, got %d", len(messages))
	}
	if messages[0] != "Preparing your new style..." || messages[3] != "Blending images..." {
		t.Errorf("unexpected order: %v", messages)
	}
}

func TestLocalizer_Failure(t *testing.T) {
	l := New(English)

	if l.Failure("") != "" {
		t.Errorf("no failure should render empty")
	}
	if got := l.Failure(entities.FailureMissingImages); got != "Please upload both the model and the garment photo." {
		t.Errorf("missing images = %q", got)
	}
	if got := l.Failure(entities.FailureNoImage); got != l.T(ErrNoImage) {
		t.Errorf("no image = %q", got)
	}
	if got := l.Failure(entities.FailureKind("mystery")); got != l.T(ErrUnknown) {
		t.Errorf("unknown kind = %q", got)
	}
}

func keysOf(m map[Key]string) []Key {
	keys := make([]Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
