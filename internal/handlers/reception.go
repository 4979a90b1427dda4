package handlers

import (
	"net/http"

	"github.com/diewo77/go-visitors/httpx"
	"github.com/diewo77/go-visitors/internal/forms"
	"github.com/diewo77/go-visitors/internal/registry"
	"github.com/diewo77/go-visitors/internal/session"
	"github.com/diewo77/go-visitors/validation"
)

// ReceptionHandler registers visitors on behalf of the signed-in company.
type ReceptionHandler struct {
	base
}

func NewReceptionHandler(d Deps) *ReceptionHandler {
	return &ReceptionHandler{base: newBase(d)}
}

func (h *ReceptionHandler) page(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	s := session.FromContext(r.Context())
	visitors, err := h.reg.VisitorsForCompany(r.Context(), s.CompanyID())
	if err != nil {
		h.storeFailed(w, r, "reception visitors", err)
		return
	}
	data["Stats"] = registry.ComputeStats(visitors, h.now())
	if _, ok := data["Form"]; !ok {
		data["Form"] = forms.Visitor{}
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = validation.Violations{}
	}
	h.render(w, r, status, "reception.html", data)
}

func (h *ReceptionHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, map[string]any{})
}

// Register checks a visitor in for the session company.
func (h *ReceptionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var f forms.Visitor
	vals, err := decode(w, r, &f)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	var errs validation.Violations
	if vals != nil {
		f, errs = forms.ParseVisitor(vals)
	} else {
		errs = f.Validate()
	}
	if !errs.Empty() {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", errs)
			return
		}
		h.page(w, r, http.StatusUnprocessableEntity, map[string]any{"Form": f, "Errors": errs})
		return
	}

	company := session.FromContext(r.Context()).Company
	v := f.Model(company.ID)
	if err := h.reg.CheckIn(r.Context(), v); err != nil {
		h.storeFailed(w, r, "reception check-in", err)
		return
	}
	h.metrics.CheckIn("reception")
	h.notifyHost(r.Context(), company, v)

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, v)
		return
	}
	h.page(w, r, http.StatusOK, map[string]any{"Registered": v})
}
