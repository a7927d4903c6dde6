package domain

type Language string

const (
	LanguageRussian Language = "ru"
	LanguageKazakh  Language = "kk"
)

func (l Language) String() string {
	return string(l)
}

func (l Language) IsValid() bool {
	switch l {
	case LanguageRussian, LanguageKazakh:
		return true
	default:
		return false
	}
}

// InLanguage returns the localized "in <language>" phrase used in
// translation titles.
func (l Language) InLanguage() string {
	switch l {
	case LanguageRussian:
		return "по-русски"
	case LanguageKazakh:
		return "по-казахски"
	default:
		return ""
	}
}

// Translation is a single dictionary lookup result for one language-pair
// direction. Immutable once produced; FromLang and ToLang always differ.
type Translation struct {
	Query    string   `json:"query"`
	Text     string   `json:"text"` // markdown-flavored body
	FromLang Language `json:"from_lang"`
	ToLang   Language `json:"to_lang"`
	URL      string   `json:"url"`
	Title    string   `json:"title"`
}

// HasTranslationTo reports whether any record in the list targets the given
// language.
func HasTranslationTo(translations []*Translation, lang Language) bool {
	for _, t := range translations {
		if t != nil && t.ToLang == lang {
			return true
		}
	}
	return false
}
