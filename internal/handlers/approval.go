package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/diewo77/go-visitors/httpx"
	"github.com/diewo77/go-visitors/i18n"
	"github.com/diewo77/go-visitors/internal/models"
	"github.com/diewo77/go-visitors/internal/registry"
	"github.com/diewo77/go-visitors/internal/session"
)

// ApprovalHandler lets the super admin approve or reject signed-up companies.
// Routes must be wrapped in session.Manager.RequireSuperAdmin.
type ApprovalHandler struct {
	base
	sessions *session.Manager
}

func NewApprovalHandler(d Deps, sessions *session.Manager) *ApprovalHandler {
	return &ApprovalHandler{base: newBase(d), sessions: sessions}
}

func (h *ApprovalHandler) List(w http.ResponseWriter, r *http.Request) {
	pending, err := h.reg.CompaniesByStatus(r.Context(), models.CompanyStatusPending)
	if err != nil {
		h.storeFailed(w, r, "pending companies", err)
		return
	}
	approved, err := h.reg.CompaniesByStatus(r.Context(), models.CompanyStatusApproved)
	if err != nil {
		h.storeFailed(w, r, "approved companies", err)
		return
	}
	if httpx.WantsJSON(r) {
		if pending == nil {
			pending = []models.Company{}
		}
		if approved == nil {
			approved = []models.Company{}
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"pending": pending, "approved": approved})
		return
	}
	h.render(w, r, http.StatusOK, "approval.html", map[string]any{
		"Pending":  pending,
		"Approved": approved,
	})
}

var decisions = map[string]models.CompanyStatus{
	"approve": models.CompanyStatusApproved,
	"reject":  models.CompanyStatusRejected,
}

// Decide handles POST /admin/approval/{id}/{action}. The company admin's
// cached gate decision is dropped so the change applies on their next request.
func (h *ApprovalHandler) Decide(w http.ResponseWriter, r *http.Request) {
	status, ok := decisions[r.PathValue("action")]
	if !ok {
		h.fail(w, r, http.StatusNotFound, i18n.NotFound)
		return
	}
	c, err := h.reg.SetCompanyStatus(r.Context(), r.PathValue("id"), status)
	if errors.Is(err, registry.ErrNotFound) {
		h.fail(w, r, http.StatusNotFound, i18n.NotFound)
		return
	}
	if err != nil {
		h.storeFailed(w, r, "company decision", err)
		return
	}
	h.sessions.Refresh(c.AdminEmail)
	h.log.Info("company reviewed",
		zap.String("company_id", c.ID),
		zap.String("status", string(c.Status)),
		zap.String("by", session.FromContext(r.Context()).Email),
	)
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, c)
		return
	}
	http.Redirect(w, r, "/admin/approval", http.StatusSeeOther)
}
