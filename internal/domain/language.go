package domain

import "strings"

// Language: язык запроса. Рабочий язык пайплайна английский.
type Language string

const (
	LanguageEN Language = "en"
	LanguageAR Language = "ar"
)

// WorkingLanguage: язык, на котором работают поиск и генерация.
const WorkingLanguage = LanguageEN

// ParseLanguage приводит ISO 639-1 код к поддерживаемому языку. Всё, кроме "ar", считается английским.
func ParseLanguage(code string) Language {
	if strings.EqualFold(strings.TrimSpace(code), string(LanguageAR)) {
		return LanguageAR
	}

	return LanguageEN
}

// NeedsTranslation сообщает, нужно ли переводить текст на рабочий язык и обратно.
func (l Language) NeedsTranslation() bool {
	return l == LanguageAR
}

func (l Language) String() string {
	return string(l)
}
