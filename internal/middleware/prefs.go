package middleware

import (
	"net/http"
	"net/url"

	"github.com/diewo77/go-visitors/i18n"
)

const (
	langCookie  = "lang"
	flashCookie = "flash"
	prefsMaxAge = 86400 * 30
)

// Prefs resolves the UI language (cookie > query > Accept-Language > fallback)
// and stores it in the request context. A query-provided language is
// persisted in a cookie for about 30 days.
func Prefs(fallback string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var lang string
			if c, err := r.Cookie(langCookie); err == nil && c.Value != "" {
				lang = c.Value
			}
			if ql := r.URL.Query().Get("lang"); ql != "" {
				if l, ok := i18n.Parse(ql); ok {
					lang = string(l)
					http.SetCookie(w, &http.Cookie{Name: langCookie, Value: lang, Path: "/", MaxAge: prefsMaxAge, SameSite: http.SameSiteLaxMode})
				}
			}
			if _, ok := i18n.Parse(lang); !ok && r.Header.Get("Accept-Language") != "" {
				lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
			}
			if _, ok := i18n.Parse(lang); !ok {
				lang = fallback
			}
			next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
		})
	}
}

// Flash stores a translation code shown once on the next rendered page.
func Flash(w http.ResponseWriter, code i18n.Key) {
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: url.QueryEscape(string(code)), Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// TakeFlash returns the pending flash text in the request language and
// clears the cookie.
func TakeFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})
	code, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return i18n.Text(i18n.FromContext(r.Context()), i18n.Key(code))
}
