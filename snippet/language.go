package snippet

import (
	"errors"
	"fmt"
)

// ErrUnknownLanguage is returned when a language name has no fence tag.
var ErrUnknownLanguage = errors.New("unknown language")

// Language identifies the fence tag a snippet is written under.
type Language string

// Supported languages.
const (
	LanguagePython     Language = "python"
	LanguageTypeScript Language = "typescript"
)

// DefaultLanguage is used when no language is requested.
const DefaultLanguage = LanguageTypeScript

// fenceTags maps each language to the tag following the opening fence.
// Tags are exact: no aliases, no case folding.
var fenceTags = map[Language]string{
	LanguagePython:     "python",
	LanguageTypeScript: "typescript",
}

// fence is the bare marker that closes a block.
const fence = "```"

// Languages returns the supported languages in a stable order.
func Languages() []Language {
	return []Language{LanguageTypeScript, LanguagePython}
}

// IsValid reports whether l is a supported language.
func (l Language) IsValid() bool {
	_, ok := fenceTags[l]
	return ok
}

// Fence returns the opening marker for l, e.g. "```python".
func (l Language) Fence() string {
	return fence + fenceTags[l]
}

// String returns the language name.
func (l Language) String() string {
	return string(l)
}

// ParseLanguage resolves a language name. An empty name yields DefaultLanguage.
func ParseLanguage(name string) (Language, error) {
	if name == "" {
		return DefaultLanguage, nil
	}
	l := Language(name)
	if !l.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
	}
	return l, nil
}
