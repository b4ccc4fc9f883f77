package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9_\-]`)

// Normalize dobra o texto para comparações sem distinção de caixa ou acentos:
// minúsculas, sem espaços nas pontas e sem marcas diacríticas (NFKD).
func Normalize(text string) string {
	text = strings.TrimSpace(strings.ToLower(text))

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, text)
	if err != nil {
		return text
	}

	return folded
}

// Slugify gera o identificador de campanha usado como chave do histórico
func Slugify(name string) string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	return slugInvalidChars.ReplaceAllString(slug, "")
}
