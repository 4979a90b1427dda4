package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/diewo77/go-visitors/httpx"
	"github.com/diewo77/go-visitors/i18n"
	"github.com/diewo77/go-visitors/internal/docgen"
	"github.com/diewo77/go-visitors/internal/export"
	"github.com/diewo77/go-visitors/internal/middleware"
	"github.com/diewo77/go-visitors/internal/models"
	"github.com/diewo77/go-visitors/internal/registry"
	"github.com/diewo77/go-visitors/internal/session"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DashboardHandler serves the company's visitor overview and its exports.
type DashboardHandler struct {
	base
}

func NewDashboardHandler(d Deps) *DashboardHandler {
	return &DashboardHandler{base: newBase(d)}
}

// Dashboard sweeps expired visitors, then lists the visible ones with the
// day's counters.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	ctx := r.Context()
	if n, err := h.reg.SweepExpired(ctx, s.CompanyID()); err != nil {
		h.log.Warn("dashboard sweep failed", zap.String("company_id", s.CompanyID()), zap.Error(err))
	} else {
		h.metrics.Swept(n)
	}
	visitors, err := h.reg.VisitorsForCompany(ctx, s.CompanyID())
	if err != nil {
		h.storeFailed(w, r, "dashboard visitors", err)
		return
	}
	stats := registry.ComputeStats(visitors, h.now())
	if httpx.WantsJSON(r) {
		if visitors == nil {
			visitors = []models.Visitor{}
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"stats": stats, "visitors": visitors})
		return
	}
	h.render(w, r, http.StatusOK, "dashboard.html", map[string]any{
		"Stats":    stats,
		"Visitors": visitors,
	})
}

// CheckOut checks a visitor of the session company out from the dashboard.
func (h *DashboardHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	v, err := h.reg.CheckOut(r.Context(), s.CompanyID(), r.PathValue("id"))
	switch {
	case errors.Is(err, registry.ErrNotFound):
		h.fail(w, r, http.StatusNotFound, i18n.NotFound)
		return
	case errors.Is(err, models.ErrAlreadyCheckedOut):
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusConflict, err.Error(), nil)
			return
		}
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	case err != nil:
		h.storeFailed(w, r, "checkout", err)
		return
	}
	h.metrics.CheckOut("dashboard")
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, v)
		return
	}
	middleware.Flash(w, i18n.CheckedOutNotice)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Badge renders the visitor's badge PDF inline so it opens in a new window.
func (h *DashboardHandler) Badge(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	v, err := h.reg.VisitorByID(r.Context(), s.CompanyID(), r.PathValue("id"))
	if errors.Is(err, registry.ErrNotFound) {
		h.fail(w, r, http.StatusNotFound, i18n.NotFound)
		return
	}
	if err != nil {
		h.storeFailed(w, r, "badge visitor", err)
		return
	}
	h.writeBadge(w, r, v)
}

func (b *base) writeBadge(w http.ResponseWriter, r *http.Request, v *models.Visitor) {
	lang := i18n.FromContext(r.Context())
	pdf, err := docgen.RenderBadge(docgen.BuildBadge(*v, lang, b.reg.Now(), b.loc))
	if err != nil {
		b.log.Error("render badge", zap.String("visitor_id", v.ID), zap.Error(err))
		b.fail(w, r, http.StatusInternalServerError, i18n.InternalError)
		return
	}
	httpx.Attachment(w, contentTypePDF, "badge-"+v.ID+".pdf", true, pdf)
}

// GuestsPDF downloads the guest list. With ?kind=evacuation it lists only
// checked-in visitors under the evacuation title.
func (h *DashboardHandler) GuestsPDF(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	ctx := r.Context()
	kind := docgen.GuestList
	list := h.reg.VisitorsForCompany
	if r.URL.Query().Get("kind") == "evacuation" {
		kind = docgen.Evacuation
		list = h.reg.CurrentVisitors
	}
	visitors, err := list(ctx, s.CompanyID())
	if err != nil {
		h.storeFailed(w, r, "guest list", err)
		return
	}
	lang := i18n.FromContext(ctx)
	now := h.reg.Now()
	pdf, err := docgen.RenderList(docgen.BuildList(docgen.ListInput{
		Kind:        kind,
		Lang:        lang,
		CompanyName: s.Company.Name,
		Visitors:    visitors,
		GeneratedAt: now,
		Location:    h.loc,
	}))
	if err != nil {
		h.log.Error("render guest list", zap.Error(err))
		h.fail(w, r, http.StatusInternalServerError, i18n.InternalError)
		return
	}
	httpx.Attachment(w, contentTypePDF, docgen.FileName(kind, lang, now.In(h.loc), "pdf"), false, pdf)
}

func (h *DashboardHandler) GuestsXLSX(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	visitors, err := h.reg.VisitorsForCompany(r.Context(), s.CompanyID())
	if err != nil {
		h.storeFailed(w, r, "guest export", err)
		return
	}
	lang := i18n.FromContext(r.Context())
	data, err := export.GuestListXLSX(visitors, lang, h.loc)
	if err != nil {
		h.log.Error("render guest workbook", zap.Error(err))
		h.fail(w, r, http.StatusInternalServerError, i18n.InternalError)
		return
	}
	httpx.Attachment(w, contentTypeXLSX, docgen.FileName(docgen.GuestList, lang, h.now(), "xlsx"), false, data)
}
