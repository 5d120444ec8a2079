package faq

import "time"

// Translation is the translated question/answer pair for one language.
type Translation struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// IsComplete reports whether both fields are populated.
func (t Translation) IsComplete() bool {
	return t.Question != "" && t.Answer != ""
}

// FAQ is a stored question with its canonical text and cached translations.
type FAQ struct {
	ID           int64
	Question     string
	Answer       string
	Translations map[Language]Translation
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Translation returns the stored pair for lang. Non-target languages yield an empty pair.
func (f FAQ) Translation(lang Language) Translation {
	if !IsTarget(lang) || f.Translations == nil {
		return Translation{}
	}
	return f.Translations[lang]
}

// SetTranslation stores the pair for a target language; other languages are ignored.
func (f *FAQ) SetTranslation(lang Language, tr Translation) {
	if !IsTarget(lang) {
		return
	}
	if f.Translations == nil {
		f.Translations = make(map[Language]Translation, len(targetLanguages))
	}
	f.Translations[lang] = tr
}

// TranslatedQuestion returns the question in lang, falling back to the canonical question.
func (f FAQ) TranslatedQuestion(lang Language) string {
	if q := f.Translation(lang).Question; q != "" {
		return q
	}
	return f.Question
}

// TranslatedAnswer returns the answer in lang, falling back to the canonical answer.
func (f FAQ) TranslatedAnswer(lang Language) string {
	if a := f.Translation(lang).Answer; a != "" {
		return a
	}
	return f.Answer
}

// Clone returns a copy that shares no map with f.
func (f FAQ) Clone() FAQ {
	out := f
	if f.Translations != nil {
		out.Translations = make(map[Language]Translation, len(f.Translations))
		for lang, tr := range f.Translations {
			out.Translations[lang] = tr
		}
	}
	return out
}

func (f FAQ) String() string {
	return f.Question
}

// Input is the client-supplied canonical text for a new FAQ.
type Input struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

// Patch carries optional canonical fields for an update; nil keeps the stored value.
type Patch struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

// View is the API representation of an FAQ in a single language.
type View struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Render resolves f into lang.
func Render(f FAQ, lang Language) View {
	return View{
		ID:       f.ID,
		Question: f.TranslatedQuestion(lang),
		Answer:   f.TranslatedAnswer(lang),
	}
}
