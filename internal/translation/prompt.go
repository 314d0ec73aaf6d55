package translation

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const systemPromptTemplate = `You are a professional software localizer translating user interface strings of a web application.

Rules:
1. Translate from %s to %s.
2. Preserve ALL placeholders like {{var_1}}, {{var_2}} exactly as they appear.
3. Preserve line breaks, punctuation at the edges and HTML tags.
4. Output ONLY the translation, without quotes, notes or explanations.
5. Keep UI text concise and natural for a native speaker.`

// systemPrompt returns the instruction sent with every Gemini request.
func systemPrompt(source, target string) string {
	return fmt.Sprintf(systemPromptTemplate, languageName(source), languageName(target))
}

// userPrompt wraps the text to translate.
func userPrompt(text string) string {
	var sb strings.Builder

	sb.WriteString("Text to translate:\n")
	sb.WriteString(text)

	return sb.String()
}

// languageName renders a canonical locale as an English language name,
// falling back to the code itself.
func languageName(locale string) string {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return locale
	}

	name := display.English.Tags().Name(tag)
	if name == "" {
		return locale
	}

	return fmt.Sprintf("%s (%s)", name, locale)
}
