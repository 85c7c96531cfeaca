package language

import (
	"context"
	"strings"

	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/pemistahl/lingua-go"
)

// Языки, между которыми выбирает детектор. Всё, кроме ar, роутер считает en.
var candidates = []lingua.Language{
	lingua.English,
	lingua.Arabic,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Persian,
	lingua.Urdu,
}

// Detector определяет язык текста офлайн, по n-граммным моделям lingua.
type Detector struct {
	detector lingua.LanguageDetector
}

func NewDetector() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidates...).
			WithMinimumRelativeDistance(0.05).
			Build(),
	}
}

// Detect возвращает ISO 639-1 код в нижнем регистре.
func (d *Detector) Detect(_ context.Context, text string) (string, error) {
	const op = "Detector.Detect"

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", e.Wrap(op, e.ErrLanguageUndetected)
	}

	return strings.ToLower(lang.IsoCode639_1().String()), nil
}
