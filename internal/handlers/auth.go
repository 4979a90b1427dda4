package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/diewo77/go-visitors/auth"
	"github.com/diewo77/go-visitors/httpx"
	"github.com/diewo77/go-visitors/i18n"
	"github.com/diewo77/go-visitors/internal/forms"
	"github.com/diewo77/go-visitors/internal/middleware"
	"github.com/diewo77/go-visitors/internal/registry"
	"github.com/diewo77/go-visitors/internal/session"
	"github.com/diewo77/go-visitors/validation"
)

type AuthHandler struct {
	base
	sessions *session.Manager
}

func NewAuthHandler(d Deps, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{base: newBase(d), sessions: sessions}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", map[string]any{
		"Form":   forms.Login{},
		"Errors": validation.Violations{},
	})
}

// Login checks the password, then the company gate. Pending, rejected and
// company-less accounts get the same generic denial.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var f forms.Login
	vals, err := decode(w, r, &f)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	var errs validation.Violations
	if vals != nil {
		f, errs = forms.ParseLogin(vals)
	} else {
		errs = f.Validate()
	}
	data := map[string]any{"Form": forms.Login{Email: f.Email}, "Errors": validation.Violations{}}
	if !errs.Empty() {
		h.invalid(w, r, "login.html", data, errs)
		return
	}

	u, err := h.reg.UserByEmail(r.Context(), f.Email)
	if err != nil {
		h.storeFailed(w, r, "login lookup", err)
		return
	}
	if u == nil || !auth.CheckPassword(u.PasswordHash, f.Password) {
		h.denied(w, r, http.StatusUnauthorized, i18n.InvalidCredentials, data)
		return
	}
	s, err := h.sessions.Begin(r.Context(), w, u)
	if err != nil {
		h.storeFailed(w, r, "login session", err)
		return
	}
	if !s.Access.Allowed {
		h.log.Info("login denied", zap.String("email", u.Email), zap.NamedError("reason", s.Access.Reason))
		h.denied(w, r, http.StatusForbidden, i18n.AccessDenied, data)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"user_id":     u.ID,
			"company_id":  s.CompanyID(),
			"super_admin": s.IsSuperAdmin(),
		})
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) denied(w http.ResponseWriter, r *http.Request, status int, code i18n.Key, data map[string]any) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, status, string(code), nil)
		return
	}
	data["Error"] = string(code)
	h.render(w, r, status, "login.html", data)
}

func (h *AuthHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "signup.html", map[string]any{
		"Form":   forms.Signup{},
		"Errors": validation.Violations{},
	})
}

// Signup registers a pending company and its admin login. No session is
// started: the company must be approved first.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var f forms.Signup
	vals, err := decode(w, r, &f)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	var errs validation.Violations
	if vals != nil {
		f, errs = forms.ParseSignup(vals)
	} else {
		errs = f.Validate()
	}
	echo := f
	echo.Password, echo.ConfirmPassword = "", ""
	data := map[string]any{"Form": echo, "Errors": validation.Violations{}}
	if !errs.Empty() {
		h.invalid(w, r, "signup.html", data, errs)
		return
	}

	hash, err := auth.HashPassword(f.Password)
	if err != nil {
		h.log.Error("hash password", zap.Error(err))
		h.fail(w, r, http.StatusInternalServerError, i18n.InternalError)
		return
	}
	company := f.Company()
	u, err := h.reg.SignUp(r.Context(), company, hash)
	if errors.Is(err, registry.ErrEmailTaken) {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusConflict, string(i18n.EmailTaken), nil)
			return
		}
		data["Errors"] = validation.Violations{"email": string(i18n.EmailTaken)}
		h.render(w, r, http.StatusConflict, "signup.html", data)
		return
	}
	if err != nil {
		h.storeFailed(w, r, "signup", err)
		return
	}
	h.log.Info("company signed up", zap.String("company_id", company.ID), zap.String("email", u.Email))
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, map[string]any{
			"user_id":    u.ID,
			"company_id": company.ID,
			"status":     company.Status,
		})
		return
	}
	middleware.Flash(w, i18n.SignupPending)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.End(w, r)
	if httpx.WantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
