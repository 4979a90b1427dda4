package handlers

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/diewo77/go-visitors/httpx"
	"github.com/diewo77/go-visitors/i18n"
	"github.com/diewo77/go-visitors/internal/forms"
	"github.com/diewo77/go-visitors/internal/middleware"
	"github.com/diewo77/go-visitors/internal/session"
	"github.com/diewo77/go-visitors/validation"
)

// MaxLogoBytes caps an uploaded logo.
const MaxLogoBytes = 2 << 20

// SettingsHandler edits the signed-in company's profile and logo.
type SettingsHandler struct {
	base
}

func NewSettingsHandler(d Deps) *SettingsHandler {
	return &SettingsHandler{base: newBase(d)}
}

func (h *SettingsHandler) Page(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, s.Company)
		return
	}
	h.render(w, r, http.StatusOK, "settings.html", map[string]any{
		"Form":   forms.Settings{Name: s.Company.Name, Phone: s.Company.Phone},
		"Errors": validation.Violations{},
	})
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	var f forms.Settings
	vals, err := decode(w, r, &f)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	var errs validation.Violations
	if vals != nil {
		f, errs = forms.ParseSettings(vals)
	} else {
		errs = f.Validate()
	}
	if !errs.Empty() {
		h.invalid(w, r, "settings.html", map[string]any{"Form": f}, errs)
		return
	}
	if err := h.reg.UpdateCompanyProfile(r.Context(), s.CompanyID(), f.Name, f.Phone); err != nil {
		h.storeFailed(w, r, "update profile", err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"name": f.Name, "phone": f.Phone})
		return
	}
	middleware.Flash(w, i18n.Saved)
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

var errLogoTooLarge = errors.New("logo too large")

// UploadLogo stores the multipart "logo" file as a data URI on the company.
// Only images up to MaxLogoBytes are accepted.
func (h *SettingsHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	uri, code := h.readLogo(w, r)
	if code != "" {
		h.logoRejected(w, r, code)
		return
	}
	if err := h.reg.SetCompanyLogo(r.Context(), s.CompanyID(), &uri); err != nil {
		h.storeFailed(w, r, "set logo", err)
		return
	}
	h.log.Info("company logo updated", zap.String("company_id", s.CompanyID()), zap.Int("size", len(uri)))
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"logo_url": uri})
		return
	}
	middleware.Flash(w, i18n.Saved)
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

// readLogo returns the data URI or the error code to show.
func (h *SettingsHandler) readLogo(w http.ResponseWriter, r *http.Request) (string, i18n.Key) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxLogoBytes+64<<10)
	if err := r.ParseMultipartForm(MaxLogoBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return "", i18n.LogoTooLarge
		}
		return "", i18n.Required
	}
	file, hdr, err := r.FormFile("logo")
	if err != nil {
		return "", i18n.Required
	}
	defer file.Close()
	if hdr.Size > MaxLogoBytes {
		return "", i18n.LogoTooLarge
	}
	data, err := readLimited(file, MaxLogoBytes)
	if errors.Is(err, errLogoTooLarge) {
		return "", i18n.LogoTooLarge
	}
	if err != nil {
		return "", i18n.Required
	}
	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		ct = hdr.Header.Get("Content-Type")
	}
	// SVG is sniffed as text; trust the declared type only for images.
	if !strings.HasPrefix(ct, "image/") {
		return "", i18n.LogoInvalidType
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data), ""
}

func readLimited(rd io.Reader, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(rd, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, errLogoTooLarge
	}
	return data, nil
}

func (h *SettingsHandler) logoRejected(w http.ResponseWriter, r *http.Request, code i18n.Key) {
	status := http.StatusUnprocessableEntity
	if code == i18n.LogoTooLarge {
		status = http.StatusRequestEntityTooLarge
	}
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, status, string(code), nil)
		return
	}
	s := session.FromContext(r.Context())
	h.render(w, r, status, "settings.html", map[string]any{
		"Form":   forms.Settings{Name: s.Company.Name, Phone: s.Company.Phone},
		"Errors": validation.Violations{"logo": string(code)},
	})
}

func (h *SettingsHandler) DeleteLogo(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if err := h.reg.SetCompanyLogo(r.Context(), s.CompanyID(), nil); err != nil {
		h.storeFailed(w, r, "delete logo", err)
		return
	}
	if httpx.WantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	middleware.Flash(w, i18n.Saved)
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}
