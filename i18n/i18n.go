// Package i18n holds the translation tables for the supported languages.
// Keys are typed constants; every table must define every key, which the
// package tests enforce. Lookups that miss fall back to the default language
// and then to the key itself.
package i18n

import (
	"context"
	"fmt"
	"strings"
)

// Lang is a supported UI language.
type Lang string

const (
	NO Lang = "no"
	EN Lang = "en"
	PL Lang = "pl"

	Default = NO
)

// Key identifies one translatable text.
type Key string

// Table maps every Key to its text in one language.
type Table map[Key]string

var tables = map[Lang]Table{
	NO: norwegian,
	EN: english,
	PL: polish,
}

// Supported lists the languages in display order.
func Supported() []Lang { return []Lang{NO, EN, PL} }

// Parse maps a language tag to a supported language. Norwegian Bokmål and
// Nynorsk tags map to NO.
func Parse(tag string) (Lang, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	switch tag {
	case "no", "nb", "nn":
		return NO, true
	case "en":
		return EN, true
	case "pl":
		return PL, true
	}
	return "", false
}

// Normalize returns the supported language for tag, or Default.
func Normalize(tag string) Lang {
	if l, ok := Parse(tag); ok {
		return l
	}
	return Default
}

// DetectLanguage picks the first supported language from an Accept-Language
// header value.
func DetectLanguage(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.SplitN(part, ";", 2)[0]
		if l, ok := Parse(tag); ok {
			return string(l)
		}
	}
	return string(Default)
}

// Text returns the translation of key in lang.
func Text(lang Lang, key Key) string {
	if s, ok := tables[lang][key]; ok {
		return s
	}
	if s, ok := tables[Default][key]; ok {
		return s
	}
	return string(key)
}

// Textf formats the translation of key with args.
func Textf(lang Lang, key Key, args ...any) string {
	return fmt.Sprintf(Text(lang, key), args...)
}

// T is the template-facing lookup with plain string arguments.
func T(lang, code string) string {
	return Text(Normalize(lang), Key(code))
}

type ctxKey struct{}

func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, Normalize(lang))
}

// FromContext returns the request language, Default when unset.
func FromContext(ctx context.Context) Lang {
	if l, ok := ctx.Value(ctxKey{}).(Lang); ok {
		return l
	}
	return Default
}
