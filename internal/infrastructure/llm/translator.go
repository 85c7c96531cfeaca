package llm

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/internal/metrics"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	openai "github.com/sashabaranov/go-openai"
)

const translationInstruction = "You are a professional technical translator. " +
	"Translate the user's text from %s to %s. " +
	"Keep product names, SKUs, units and numbers unchanged. " +
	"Reply with the translation only."

var languageNames = map[domain.Language]string{
	domain.LanguageEN: "English",
	domain.LanguageAR: "Arabic",
}

// Translator переводит текст между поддерживаемыми языками через chat completion.
type Translator struct {
	client *openai.Client
	model  string
}

func NewTranslator(client *openai.Client, model string) *Translator {
	return &Translator{
		client: client,
		model:  model,
	}
}

func (t *Translator) Translate(ctx context.Context, text string, from, to domain.Language) (string, error) {
	const op = "Translator.Translate"

	if from == to || text == "" {
		return text, nil
	}

	out, err := complete(ctx, t.client, metrics.OperationTranslate, openai.ChatCompletionRequest{
		Model:       t.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fmt.Sprintf(translationInstruction, languageName(from), languageName(to))},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", e.Wrap(op, err)
	}

	if out == "" {
		return "", e.Wrap(op, e.ErrEmptyTranslation)
	}

	return out, nil
}

func languageName(l domain.Language) string {
	if name, ok := languageNames[l]; ok {
		return name
	}

	return l.String()
}
