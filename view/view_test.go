package view

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/diewo77/go-visitors/i18n"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layout.html":                {Data: []byte(`<!doctype html><html lang="{{lang}}"><title>{{block "title" .}}{{t "app_name"}}{{end}}</title>{{template "errors-alert" .}}{{template "content" .}}</html>`)},
		"partials/errors-alert.html": {Data: []byte(`{{define "errors-alert"}}{{with .Error}}<div class="err">{{t .}}</div>{{end}}{{end}}`)},
		"page.html":                  {Data: []byte(`{{define "content"}}<p>{{t "nav_dashboard"}} {{.Name}} {{tf "people_count" 3}}</p>{{end}}`)},
		"titled.html":                {Data: []byte(`{{define "title"}}Custom{{end}}{{define "content"}}x{{end}}`)},
		"standalone.html":            {Data: []byte(`<!DOCTYPE html><p>{{.Year}} {{lang}}</p>`)},
		"broken.html":                {Data: []byte(`{{define "content"}}{{.Missing.Field}}{{end}}`)},
		"logo.html":                  {Data: []byte(`{{define "content"}}<img src="{{safeURL .Logo}}">{{range split .Codes ","}}[{{.}}]{{end}}{{end}}`)},
	}
}

func request(lang string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	return r.WithContext(i18n.WithLang(r.Context(), lang))
}

func TestRender_LayoutAndTranslations(t *testing.T) {
	v := New(testFS())
	rec := httptest.NewRecorder()
	if err := v.Render(rec, request("en"), "page.html", map[string]any{"Name": "<Fjord>", "Error": "access_denied"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := rec.Body.String()
	for _, want := range []string{`lang="en"`, "<title>SafeVisit</title>", "Dashboard &lt;Fjord&gt; 3 people", `<div class="err">Access denied</div>`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRender_LanguagePerRequest(t *testing.T) {
	v := New(testFS())
	for lang, want := range map[string]string{"no": i18n.Text(i18n.NO, i18n.NavDashboard), "pl": i18n.Text(i18n.PL, i18n.NavDashboard)} {
		rec := httptest.NewRecorder()
		if err := v.Render(rec, request(lang), "page.html", nil); err != nil {
			t.Fatalf("Render(%s) error = %v", lang, err)
		}
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("lang %s: body missing %q", lang, want)
		}
	}
}

func TestRender_TitleOverride(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := New(testFS()).Render(rec, request("en"), "titled.html", nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rec.Body.String(), "<title>Custom</title>") {
		t.Errorf("title not overridden: %s", rec.Body.String())
	}
}

func TestRender_StandaloneSkipsLayout(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := New(testFS()).Render(rec, request("pl"), "standalone.html", nil); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(rec.Body.String(), "<title>") {
		t.Error("standalone page was wrapped in the layout")
	}
	if !strings.Contains(rec.Body.String(), " pl</p>") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRenderStatus_ErrorWritesNothing(t *testing.T) {
	rec := httptest.NewRecorder()
	err := New(testFS()).RenderStatus(rec, request("en"), http.StatusTeapot, "broken.html", map[string]any{"Missing": nil})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if rec.Body.Len() != 0 {
		t.Errorf("partial output written: %q", rec.Body.String())
	}
}

func TestRender_MissingTemplate(t *testing.T) {
	if err := New(testFS()).Render(httptest.NewRecorder(), request("en"), "nope.html", nil); err == nil {
		t.Fatal("expected error for missing template")
	}
}

func TestRender_DefaultsHook(t *testing.T) {
	v := New(testFS(), WithDefaults(func(r *http.Request, data map[string]any) {
		if _, ok := data["Name"]; !ok {
			data["Name"] = "from-hook"
		}
	}))
	rec := httptest.NewRecorder()
	if err := v.Render(rec, request("en"), "page.html", nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rec.Body.String(), "from-hook") {
		t.Errorf("defaults hook not applied: %s", rec.Body.String())
	}
}

func TestSafeURL_OnlyImages(t *testing.T) {
	v := New(testFS())
	rec := httptest.NewRecorder()
	data := map[string]any{"Logo": "javascript:alert(1)", "Codes": "a,b"}
	if err := v.Render(rec, request("en"), "logo.html", data); err != nil {
		t.Fatal(err)
	}
	body := rec.Body.String()
	if strings.Contains(body, "javascript") {
		t.Errorf("unsafe URL rendered: %s", body)
	}
	if !strings.Contains(body, "[a][b]") {
		t.Errorf("split helper output missing: %s", body)
	}

	rec = httptest.NewRecorder()
	data["Logo"] = "data:image/png;base64,AAAA"
	if err := v.Render(rec, request("en"), "logo.html", data); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rec.Body.String(), `src="data:image/png;base64,AAAA"`) {
		t.Errorf("data URI not rendered: %s", rec.Body.String())
	}
}
