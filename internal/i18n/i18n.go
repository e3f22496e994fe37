package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"mannequin/internal/domain/entities"
)

type Key string

const (
	AppTitle        Key = "app.title"
	AppSubtitle     Key = "app.subtitle"
	ModelTitle      Key = "upload.model.title"
	GarmentTitle    Key = "upload.garment.title"
	UploadPrompt    Key = "upload.prompt"
	UploadFormats   Key = "upload.formats"
	SubmitLabel     Key = "submit.label"
	SubmitBusy      Key = "submit.busy"
	ResultTitle     Key = "result.title"
	ResultDownload  Key = "result.download"
	ResultStartOver Key = "result.start_over"

	ErrModelRead        Key = "error.model_read"
	ErrGarmentRead      Key = "error.garment_read"
	ErrUnsupportedType  Key = "error.unsupported_type"
	ErrMissingImages    Key = "error.missing_images"
	ErrProcessingFailed Key = "error.processing_failed"
	ErrNoImage          Key = "error.no_image"
	ErrUnknown          Key = "error.unknown"

	StatusPreparing Key = "status.preparing"
	StatusStylist   Key = "status.stylist"
	StatusMoments   Key = "status.moments"
	StatusBlending  Key = "status.blending"
)

// StatusKeys is the ordered rotation shown while a try-on is in flight.
var StatusKeys = []Key{StatusPreparing, StatusStylist, StatusMoments, StatusBlending}

var (
	English = language.English
	Persian = language.Persian
)

var Supported = []language.Tag{English, Persian}

var (
	matcher = language.NewMatcher(Supported)
	cat     = newCatalog()
)

var translations = map[language.Tag]map[Key]string{
	English: {
		AppTitle:            "Digital Mannequin",
		AppSubtitle:         "Try on clothes virtually",
		ModelTitle:          "1. Upload the model photo",
		GarmentTitle:        "2. Upload the garment photo",
		UploadPrompt:        "Click to choose a photo",
		UploadFormats:       "PNG, JPG, WEBP",
		SubmitLabel:         "Virtual try-on",
		SubmitBusy:          "Processing...",
		ResultTitle:         "Your new style is ready!",
		ResultDownload:      "Download image",
		ResultStartOver:     "Start over",
		ErrModelRead:        "Error loading the model photo.",
		ErrGarmentRead:      "Error loading the garment photo.",
		ErrUnsupportedType:  "Unsupported file type. Please choose a PNG, JPG or WEBP image.",
		ErrMissingImages:    "Please upload both the model and the garment photo.",
		ErrProcessingFailed: "Failed to process images with AI. Please try again.",
		ErrNoImage:          "AI did not return an image. Please try again with different images.",
		ErrUnknown:          "An unknown error occurred.",
		StatusPreparing:     "Preparing your new style...",
		StatusStylist:       "Our AI stylist is at work...",
		StatusMoments:       "Just a few more moments...",
		StatusBlending:      "Blending images...",
	},
	Persian: {
		AppTitle:            "مانکن دیجیتال",
		AppSubtitle:         "لباس‌ها را به صورت مجازی پرو کنید",
		ModelTitle:          "۱. عکس مدل را بارگذاری کنید",
		GarmentTitle:        "۲. عکس لباس را بارگذاری کنید",
		UploadPrompt:        "برای انتخاب عکس کلیک کنید",
		UploadFormats:       "PNG, JPG, WEBP",
		SubmitLabel:         "پرو مجازی",
		SubmitBusy:          "در حال پردازش...",
		ResultTitle:         "استایل جدید شما آماده است!",
		ResultDownload:      "دانلود تصویر",
		ResultStartOver:     "شروع مجدد",
		ErrModelRead:        "خطا در بارگذاری عکس مدل.",
		ErrGarmentRead:      "خطا در بارگذاری عکس لباس.",
		ErrUnsupportedType:  "نوع فایل پشتیبانی نمی‌شود. لطفاً یک تصویر PNG، JPG یا WEBP انتخاب کنید.",
		ErrMissingImages:    "لطفاً هر دو عکس مدل و لباس را بارگذاری کنید.",
		ErrProcessingFailed: "پردازش تصاویر با هوش مصنوعی ناموفق بود. لطفاً دوباره تلاش کنید.",
		ErrNoImage:          "هوش مصنوعی تصویری برنگرداند. لطفاً با تصاویر دیگری دوباره تلاش کنید.",
		ErrUnknown:          "یک خطای ناشناخته رخ داد.",
		StatusPreparing:     "در حال آماده‌سازی استایل جدید شما...",
		StatusStylist:       "استایلیست هوش مصنوعی ما در حال کار است...",
		StatusMoments:       "فقط چند لحظه دیگر...",
		StatusBlending:      "ترکیب تصاویر...",
	},
}

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(English))
	for tag, entries := range translations {
		for key, msg := range entries {
			if err := b.SetString(tag, string(key), msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Match picks the best supported language for the given preferences, in
// order. Each preference may be a single tag or a full Accept-Language
// header. Preferences that match nothing fall through to the next one and
// finally to fallback.
func Match(fallback string, preferences ...string) language.Tag {
	for _, pref := range preferences {
		if pref == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		if _, index, confidence := matcher.Match(tags...); confidence != language.No {
			return Supported[index]
		}
	}
	if tag, err := language.Parse(fallback); err == nil {
		if _, index, confidence := matcher.Match(tag); confidence != language.No {
			return Supported[index]
		}
	}
	return English
}

type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

func New(tag language.Tag) *Localizer {
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}
}

func (l *Localizer) T(key Key) string {
	return l.printer.Sprintf(string(key))
}

func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// Lang is the BCP 47 base language, suitable for an HTML lang attribute.
func (l *Localizer) Lang() string {
	base, _ := l.tag.Base()
	return base.String()
}

func (l *Localizer) Dir() string {
	if l.tag == Persian {
		return "rtl"
	}
	return "ltr"
}

// Name is the language's name in its own script, for the language switcher.
func (l *Localizer) Name() string {
	return display.Self.Name(l.tag)
}

func (l *Localizer) StatusMessages() []string {
	out := make([]string, len(StatusKeys))
	for i, key := range StatusKeys {
		out[i] = l.T(key)
	}
	return out
}

// Failure renders a failure kind as the message shown to the user.
func (l *Localizer) Failure(kind entities.FailureKind) string {
	switch kind {
	case "":
		return ""
	case entities.FailureModelRead:
		return l.T(ErrModelRead)
	case entities.FailureGarmentRead:
		return l.T(ErrGarmentRead)
	case entities.FailureUnsupportedType:
		return l.T(ErrUnsupportedType)
	case entities.FailureMissingImages:
		return l.T(ErrMissingImages)
	case entities.FailureProcessingFailed:
		return l.T(ErrProcessingFailed)
	case entities.FailureNoImage:
		return l.T(ErrNoImage)
	default:
		return l.T(ErrUnknown)
	}
}
