package handlers

import (
	"encoding/base64"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/diewo77/go-visitors/httpx"
	"github.com/diewo77/go-visitors/i18n"
	"github.com/diewo77/go-visitors/internal/alarm"
	"github.com/diewo77/go-visitors/internal/session"
)

// AlarmHandler walks the fire alarm through confirm, trigger and summary.
type AlarmHandler struct {
	base
	alarm *alarm.Service
}

func NewAlarmHandler(d Deps, svc *alarm.Service) *AlarmHandler {
	return &AlarmHandler{base: newBase(d), alarm: svc}
}

// Confirm shows the confirmation step. Cancelling is a plain link back.
func (h *AlarmHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "alarm.html", nil)
}

// Trigger fires the alarm when confirm=yes. Anything else is a cancel and
// goes back to the dashboard without side effects.
func (h *AlarmHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Confirm string `json:"confirm"`
	}
	vals, err := decode(w, r, &body)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	if vals != nil {
		body.Confirm = vals.Get("confirm")
	}
	if body.Confirm != "yes" {
		if httpx.WantsJSON(r) {
			httpx.JSON(w, http.StatusOK, map[string]any{"cancelled": true})
			return
		}
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	s := session.FromContext(r.Context())
	sum, err := h.alarm.Trigger(r.Context(), alarm.Request{
		Company:     s.Company,
		TriggeredBy: s.Email,
		Lang:        i18n.FromContext(r.Context()),
	})
	if err != nil && sum == nil {
		h.storeFailed(w, r, "fire alarm", err)
		return
	}
	if err != nil {
		// Alert recorded and guests notified; only the list failed.
		h.log.Error("evacuation list failed", zap.Error(err))
	}

	switch {
	case httpx.WantsJSON(r):
		httpx.JSON(w, http.StatusOK, map[string]any{"summary": sum, "pdf": sum.PDF})
	case r.URL.Query().Get("download") == "1" && len(sum.PDF) > 0:
		httpx.Attachment(w, contentTypePDF, sum.FileName, false, sum.PDF)
	default:
		data := map[string]any{"Summary": sum}
		if len(sum.PDF) > 0 {
			data["PDFURL"] = template.URL("data:" + contentTypePDF + ";base64," + base64.StdEncoding.EncodeToString(sum.PDF))
		}
		h.render(w, r, http.StatusOK, "alarm.html", data)
	}
}
