package i18n

import (
	"context"
	"strings"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"en-US,en;q=0.9", "en"},
		{"EN-gb", "en"},
		{"nb-NO,nb;q=0.9,en;q=0.8", "no"},
		{"nn", "no"},
		{"pl-PL", "pl"},
		{"fr-FR,fr;q=0.8,pl;q=0.5", "pl"},
		{"fr-FR,fr;q=0.8", "no"},
		{"", "no"},
	}
	for _, tt := range tests {
		if got := DetectLanguage(tt.header); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("no", "required") != "Påkrevd" {
		t.Fatalf("expected Påkrevd")
	}
	if T("pl", "required") != "Wymagane" {
		t.Fatalf("expected Wymagane")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> default language
	if T("es", "required") != "Påkrevd" {
		t.Fatalf("expected no fallback for es lang")
	}
}

func TestTablesAreComplete(t *testing.T) {
	for _, lang := range Supported() {
		table := tables[lang]
		for _, k := range AllKeys {
			if strings.TrimSpace(table[k]) == "" {
				t.Errorf("%s: missing translation for %q", lang, k)
			}
		}
		if len(table) != len(AllKeys) {
			t.Errorf("%s: table has %d entries, AllKeys has %d", lang, len(table), len(AllKeys))
		}
	}
}

func TestTextf(t *testing.T) {
	if got := Textf(EN, PeopleCount, 0); got != "0 people" {
		t.Errorf("Textf(PeopleCount, 0) = %q", got)
	}
	if got := Textf(EN, AlarmNotificationsSent, 2, 3); got != "Notifications sent: 2/3" {
		t.Errorf("Textf(AlarmNotificationsSent) = %q", got)
	}
	msg := Textf(NO, EmergencyMessage, "Elektryk AS")
	if !strings.Contains(msg, "BRANNALARM - Elektryk AS!") {
		t.Errorf("emergency message = %q", msg)
	}
}

func TestLangContext(t *testing.T) {
	if FromContext(context.Background()) != Default {
		t.Error("expected default language for empty context")
	}
	ctx := WithLang(context.Background(), "pl-PL")
	if FromContext(ctx) != PL {
		t.Errorf("FromContext() = %q, want pl", FromContext(ctx))
	}
}
