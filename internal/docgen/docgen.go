// Package docgen renders the printable documents: the evacuation and guest
// list PDFs and the visitor badge. Layout is computed first as plain data so
// it can be inspected without parsing PDF bytes; rendering uses maroto.
package docgen

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/diewo77/go-visitors/i18n"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ListKind selects the title and file name of a visitor list document.
type ListKind int

const (
	Evacuation ListKind = iota
	GuestList
)

func (k ListKind) titleKey() i18n.Key {
	if k == GuestList {
		return i18n.GuestList
	}
	return i18n.EvacuationList
}

func (k ListKind) fileKey() i18n.Key {
	if k == GuestList {
		return i18n.FileGuestList
	}
	return i18n.FileEvacuation
}

// FileName returns "<base>-YYYY-MM-DD.<ext>" with the base translated.
func FileName(kind ListKind, lang i18n.Lang, date time.Time, ext string) string {
	return fmt.Sprintf("%s-%s.%s", i18n.Text(lang, kind.fileKey()), date.Format("2006-01-02"), ext)
}

// Truncate shortens s to keep runes, then appends "...", when s is longer
// than max runes.
func Truncate(s string, max, keep int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:keep]) + "..."
}

var letterFolds = map[rune]string{
	'ł': "l", 'Ł': "L",
	'ø': "o", 'Ø': "O",
	'æ': "ae", 'Æ': "AE",
	'đ': "d", 'Đ': "D",
	'ß': "ss",
}

// Transliterate folds letters the core PDF fonts cannot draw to plain
// ASCII: diacritics are stripped and a few standalone letters are spelled
// out ("Łukasz Østby" becomes "Lukasz Ostby").
func Transliterate(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	var b strings.Builder
	for _, r := range out {
		if f, ok := letterFolds[r]; ok {
			b.WriteString(f)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
