// Package forms turns submitted kiosk, reception, sign-up and settings forms
// into typed inputs plus field violations. Parsing never touches the store.
package forms

import (
	"net/url"
	"strings"

	"github.com/diewo77/go-visitors/internal/models"
	"github.com/diewo77/go-visitors/validation"
)

// Visitor is the registration form shared by the kiosk and reception.
type Visitor struct {
	FullName    string `form:"full_name" json:"full_name" validate:"required"`
	CompanyName string `form:"company_name" json:"company_name"`
	Phone       string `form:"phone" json:"phone" validate:"required,kphone"`
	Email       string `form:"email" json:"email" validate:"kemail"`
	HostName    string `form:"host_name" json:"host_name" validate:"required"`
	HostEmail   string `form:"host_email" json:"host_email" validate:"kemail"`
	Privacy     bool   `form:"privacy" json:"privacy_accepted" validate:"required"`
}

func (f *Visitor) normalize() {
	f.FullName = strings.TrimSpace(f.FullName)
	f.CompanyName = strings.TrimSpace(f.CompanyName)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.HostName = strings.TrimSpace(f.HostName)
	f.HostEmail = strings.ToLower(strings.TrimSpace(f.HostEmail))
}

// Validate trims the fields in place and reports violations.
func (f *Visitor) Validate() validation.Violations {
	f.normalize()
	return validation.Struct(f)
}

// Model builds a visitor record for companyID. Status and times are set by
// the registry on check-in.
func (f Visitor) Model(companyID string) *models.Visitor {
	return &models.Visitor{
		FullName:    f.FullName,
		CompanyName: f.CompanyName,
		Phone:       f.Phone,
		Email:       f.Email,
		HostName:    f.HostName,
		HostEmail:   f.HostEmail,
		CompanyID:   companyID,
	}
}

func ParseVisitor(vals url.Values) (Visitor, validation.Violations) {
	f := Visitor{
		FullName:    vals.Get("full_name"),
		CompanyName: vals.Get("company_name"),
		Phone:       vals.Get("phone"),
		Email:       vals.Get("email"),
		HostName:    vals.Get("host_name"),
		HostEmail:   vals.Get("host_email"),
		Privacy:     checked(vals.Get("privacy")),
	}
	return f, f.Validate()
}

// Signup registers a company together with its admin login.
type Signup struct {
	Email           string `form:"email" json:"email" validate:"required,kemail"`
	Password        string `form:"password" json:"password" validate:"required,kpassword"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password" validate:"eqfield=Password"`
	CompanyName     string `form:"company_name" json:"company_name" validate:"required,min=2"`
	CompanyAddress  string `form:"company_address" json:"company_address" validate:"required,min=5"`
	CompanyPhone    string `form:"company_phone" json:"company_phone" validate:"required,kphone"`
}

// Validate trims everything except the passwords and reports violations.
func (f *Signup) Validate() validation.Violations {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.CompanyName = strings.TrimSpace(f.CompanyName)
	f.CompanyAddress = strings.TrimSpace(f.CompanyAddress)
	f.CompanyPhone = strings.TrimSpace(f.CompanyPhone)
	return validation.Struct(f)
}

func (f Signup) Company() *models.Company {
	return &models.Company{
		Name:       f.CompanyName,
		Address:    f.CompanyAddress,
		Phone:      f.CompanyPhone,
		AdminEmail: f.Email,
	}
}

func ParseSignup(vals url.Values) (Signup, validation.Violations) {
	f := Signup{
		Email:           vals.Get("email"),
		Password:        vals.Get("password"),
		ConfirmPassword: vals.Get("confirm_password"),
		CompanyName:     vals.Get("company_name"),
		CompanyAddress:  vals.Get("company_address"),
		CompanyPhone:    vals.Get("company_phone"),
	}
	return f, f.Validate()
}

type Login struct {
	Email    string `form:"email" json:"email" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

func (f *Login) Validate() validation.Violations {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	return validation.Struct(f)
}

func ParseLogin(vals url.Values) (Login, validation.Violations) {
	f := Login{Email: vals.Get("email"), Password: vals.Get("password")}
	return f, f.Validate()
}

// Settings is the company profile form.
type Settings struct {
	Name  string `form:"name" json:"name" validate:"required,min=2"`
	Phone string `form:"phone" json:"phone" validate:"required,kphone"`
}

func (f *Settings) Validate() validation.Violations {
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	return validation.Struct(f)
}

func ParseSettings(vals url.Values) (Settings, validation.Violations) {
	f := Settings{Name: vals.Get("name"), Phone: vals.Get("phone")}
	return f, f.Validate()
}

// PhoneSearch is the kiosk checkout lookup. Any fragment of the number is
// accepted, so only presence is checked.
type PhoneSearch struct {
	Phone string `form:"phone" json:"phone" validate:"required"`
}

func (f *PhoneSearch) Validate() validation.Violations {
	f.Phone = strings.TrimSpace(f.Phone)
	return validation.Struct(f)
}

func ParsePhoneSearch(vals url.Values) (PhoneSearch, validation.Violations) {
	f := PhoneSearch{Phone: vals.Get("phone")}
	return f, f.Validate()
}

// checked interprets an HTML checkbox value.
func checked(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
