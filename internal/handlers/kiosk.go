package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/diewo77/go-visitors/httpx"
	"github.com/diewo77/go-visitors/i18n"
	"github.com/diewo77/go-visitors/internal/forms"
	"github.com/diewo77/go-visitors/internal/models"
	"github.com/diewo77/go-visitors/internal/registry"
	"github.com/diewo77/go-visitors/validation"
)

// KioskHandler serves the public self-service pages. The company comes from
// the URL; no session is involved.
type KioskHandler struct {
	base
}

func NewKioskHandler(d Deps) *KioskHandler {
	return &KioskHandler{base: newBase(d)}
}

// company resolves the path company and answers 404 or 500 itself when it
// cannot.
func (h *KioskHandler) company(w http.ResponseWriter, r *http.Request) (*models.Company, bool) {
	c, err := h.companyFromPath(r.Context(), r)
	if errors.Is(err, registry.ErrNotFound) {
		h.fail(w, r, http.StatusNotFound, i18n.NotFound)
		return nil, false
	}
	if err != nil {
		h.storeFailed(w, r, "kiosk company", err)
		return nil, false
	}
	return c, true
}

func (h *KioskHandler) GuestPage(w http.ResponseWriter, r *http.Request) {
	c, ok := h.company(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, "guest.html", map[string]any{
		"Company": c,
		"Form":    forms.Visitor{},
		"Errors":  validation.Violations{},
	})
}

// GuestRegister is visitor self-registration.
func (h *KioskHandler) GuestRegister(w http.ResponseWriter, r *http.Request) {
	c, ok := h.company(w, r)
	if !ok {
		return
	}
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
	data := map[string]any{"Company": c, "Form": f, "Errors": validation.Violations{}}
	if !errs.Empty() {
		h.invalid(w, r, "guest.html", data, errs)
		return
	}

	v := f.Model(c.ID)
	if err := h.reg.CheckIn(r.Context(), v); err != nil {
		h.storeFailed(w, r, "kiosk check-in", err)
		return
	}
	h.metrics.CheckIn("kiosk")
	h.notifyHost(r.Context(), c, v)

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, v)
		return
	}
	data["Registered"] = v
	data["Form"] = forms.Visitor{}
	h.render(w, r, http.StatusOK, "guest.html", data)
}

// GuestBadge prints the badge of a visitor who just registered at the kiosk.
func (h *KioskHandler) GuestBadge(w http.ResponseWriter, r *http.Request) {
	c, ok := h.company(w, r)
	if !ok {
		return
	}
	v, err := h.reg.VisitorByID(r.Context(), c.ID, r.PathValue("visitorID"))
	if errors.Is(err, registry.ErrNotFound) {
		h.fail(w, r, http.StatusNotFound, i18n.NotFound)
		return
	}
	if err != nil {
		h.storeFailed(w, r, "kiosk badge", err)
		return
	}
	h.writeBadge(w, r, v)
}

// CheckoutPage searches checked-in visitors by a phone fragment given as
// ?phone=.
func (h *KioskHandler) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	c, ok := h.company(w, r)
	if !ok {
		return
	}
	data := map[string]any{"Company": c, "Errors": validation.Violations{}, "Phone": ""}
	if !r.URL.Query().Has("phone") {
		if httpx.WantsJSON(r) {
			httpx.JSON(w, http.StatusOK, map[string]any{"visitors": []checkoutCandidate{}})
			return
		}
		h.render(w, r, http.StatusOK, "checkout.html", data)
		return
	}
	f, errs := forms.ParsePhoneSearch(r.URL.Query())
	data["Phone"] = f.Phone
	if !errs.Empty() {
		h.invalid(w, r, "checkout.html", data, errs)
		return
	}
	matches, err := h.reg.FindCheckedInByPhone(r.Context(), c.ID, f.Phone)
	if err != nil {
		h.storeFailed(w, r, "kiosk search", err)
		return
	}
	if httpx.WantsJSON(r) {
		out := make([]checkoutCandidate, 0, len(matches))
		for _, v := range matches {
			out = append(out, candidateOf(v))
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"visitors": out})
		return
	}
	data["Matches"] = matches
	data["Searched"] = true
	h.render(w, r, http.StatusOK, "checkout.html", data)
}

// checkoutCandidate is what the public checkout picker shows of a visitor.
// Contact details and the badge code stay private.
type checkoutCandidate struct {
	ID          string     `json:"id"`
	FullName    string     `json:"full_name"`
	CompanyName string     `json:"company_name"`
	CheckInTime time.Time  `json:"check_in_time"`
	Status      string     `json:"status,omitempty"`
	CheckOut    *time.Time `json:"check_out_time,omitempty"`
}

func candidateOf(v models.Visitor) checkoutCandidate {
	return checkoutCandidate{
		ID:          v.ID,
		FullName:    v.FullName,
		CompanyName: v.CompanyName,
		CheckInTime: v.CheckInTime,
		Status:      string(v.Status),
		CheckOut:    v.CheckOutTime,
	}
}

// CheckoutSubmit checks out the visitor picked from the search results.
func (h *KioskHandler) CheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	c, ok := h.company(w, r)
	if !ok {
		return
	}
	var body struct {
		VisitorID string `json:"visitor_id"`
	}
	vals, err := decode(w, r, &body)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	if vals != nil {
		body.VisitorID = vals.Get("visitor_id")
	}
	if body.VisitorID == "" {
		h.fail(w, r, http.StatusBadRequest, i18n.Required)
		return
	}
	v, err := h.reg.CheckOut(r.Context(), c.ID, body.VisitorID)
	switch {
	case errors.Is(err, registry.ErrNotFound):
		h.fail(w, r, http.StatusNotFound, i18n.NotFound)
		return
	case errors.Is(err, models.ErrAlreadyCheckedOut):
		h.fail(w, r, http.StatusConflict, i18n.NoResults)
		return
	case err != nil:
		h.storeFailed(w, r, "kiosk checkout", err)
		return
	}
	h.metrics.CheckOut("kiosk")
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, candidateOf(*v))
		return
	}
	h.render(w, r, http.StatusOK, "checkout.html", map[string]any{
		"Company": c,
		"Done":    v,
		"Errors":  validation.Violations{},
	})
}

func (h *KioskHandler) Panel(w http.ResponseWriter, r *http.Request) {
	c, ok := h.company(w, r)
	if !ok {
		return
	}
	n, err := h.reg.CountCheckedIn(r.Context(), c.ID)
	if err != nil {
		h.storeFailed(w, r, "panel count", err)
		return
	}
	h.render(w, r, http.StatusOK, "panel.html", map[string]any{"Company": c, "Count": n})
}

// PanelCount is polled by the panel page.
func (h *KioskHandler) PanelCount(w http.ResponseWriter, r *http.Request) {
	c, ok := h.company(w, r)
	if !ok {
		return
	}
	n, err := h.reg.CountCheckedIn(r.Context(), c.ID)
	if err != nil {
		h.log.Error("panel count failed", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, string(i18n.InternalError), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"company_id": c.ID, "count": n})
}

func (h *KioskHandler) Lobby(w http.ResponseWriter, r *http.Request) {
	c, ok := h.company(w, r)
	if !ok {
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"company_id": c.ID, "name": c.Name, "logo_url": c.LogoURL})
		return
	}
	h.render(w, r, http.StatusOK, "lobby.html", map[string]any{"Company": c})
}

func (h *KioskHandler) Privacy(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "privacy.html", nil)
}
