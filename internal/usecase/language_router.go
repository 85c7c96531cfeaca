package usecase

import (
	"context"
	"strings"
	"unicode"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
)

// minDetectableRunes: меньше видимых символов детектор не вызывается.
const minDetectableRunes = 2

// LanguageRouter определяет язык запроса и переводит текст на рабочий язык и обратно.
// Все ошибки детектора и переводчика поглощаются: роутер никогда не прерывает пайплайн.
type LanguageRouter struct {
	detector   LanguageDetector
	translator Translator
	logger     logger.Logger
}

func NewLanguageRouter(detector LanguageDetector, translator Translator, logger logger.Logger) *LanguageRouter {
	return &LanguageRouter{
		detector:   detector,
		translator: translator,
		logger:     logger,
	}
}

// Detect возвращает язык текста. Короткий ввод и ошибки детектора дают английский.
func (r *LanguageRouter) Detect(ctx context.Context, text string) domain.Language {
	const op = "LanguageRouter.Detect"

	if visibleRunes(text) < minDetectableRunes {
		return domain.WorkingLanguage
	}

	code, err := r.detector.Detect(ctx, text)
	if err != nil {
		r.logger.Warnf("%s: language detection failed, falling back to %s: %v", op, domain.WorkingLanguage, err)
		return domain.WorkingLanguage
	}

	return domain.ParseLanguage(code)
}

// ToWorkingLanguage переводит запрос на рабочий язык, если это нужно.
func (r *LanguageRouter) ToWorkingLanguage(ctx context.Context, text string, lang domain.Language) string {
	if !lang.NeedsTranslation() {
		return text
	}

	return r.translate(ctx, text, lang, domain.WorkingLanguage)
}

// FromWorkingLanguage переводит ответ обратно на язык пользователя, если это нужно.
func (r *LanguageRouter) FromWorkingLanguage(ctx context.Context, text string, lang domain.Language) string {
	if !lang.NeedsTranslation() {
		return text
	}

	return r.translate(ctx, text, domain.WorkingLanguage, lang)
}

func (r *LanguageRouter) translate(ctx context.Context, text string, from, to domain.Language) string {
	const op = "LanguageRouter.translate"

	translated, err := r.translator.Translate(ctx, text, from, to)
	if err != nil {
		r.logger.Warnf("%s: %s->%s translation failed, keeping original text: %v", op, from, to, err)
		return text
	}

	if strings.TrimSpace(translated) == "" {
		r.logger.Warnf("%s: %s->%s translation is empty, keeping original text", op, from, to)
		return text
	}

	return translated
}

func visibleRunes(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}

	return n
}
