package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/diewo77/go-visitors/internal/models"
	"github.com/diewo77/go-visitors/internal/registry"
)

func TestDashboard_RequiresApprovedSession(t *testing.T) {
	e := newTestEnv(t, false)
	_, pending := e.company(t, "wait@fjord.no", models.CompanyStatusPending)

	w := e.do(http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = e.do(http.MethodGet, "/dashboard", nil, asJSON)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(http.MethodGet, "/dashboard", nil, withCookie(e.cookie(pending)))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, sessionCookie(w))
}

func TestDashboard_ListsCompanyVisitorsOnly(t *testing.T) {
	e := newTestEnv(t, false)
	c, u := e.company(t, "ok@fjord.no", models.CompanyStatusApproved)
	other, _ := e.company(t, "other@fjord.no", models.CompanyStatusApproved)
	e.checkIn(t, c.ID, "Ola Nordmann", "98765432")
	gone := e.checkIn(t, c.ID, "Per Hansen", "98765433")
	e.checkIn(t, other.ID, "Someone Else", "98765434")
	_, err := e.reg.CheckOut(context.Background(), c.ID, gone.ID)
	require.NoError(t, err)

	w := e.do(http.MethodGet, "/dashboard", nil, withCookie(e.cookie(u)), asJSON)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	visitors := body["visitors"].([]any)
	assert.Len(t, visitors, 2)
	stats := body["stats"].(map[string]any)
	assert.EqualValues(t, 1, stats["current"])
	assert.EqualValues(t, 2, stats["checked_in_today"])
	assert.EqualValues(t, 1, stats["checked_out_today"])

	w = e.do(http.MethodGet, "/dashboard", nil, withCookie(e.cookie(u)))
	require.Equal(t, http.StatusOK, w.Code)
	html := w.Body.String()
	assert.Contains(t, html, "Ola Nordmann")
	assert.NotContains(t, html, "Someone Else")
	assert.Contains(t, html, "/panel/"+c.ID)
}

func TestDashboard_SweepsExpiredVisitorsOnLoad(t *testing.T) {
	e := newTestEnv(t, false)
	c, u := e.company(t, "ok@fjord.no", models.CompanyStatusApproved)
	ctx := context.Background()
	gone := e.checkIn(t, c.ID, "Per Hansen", "98765433")
	_, err := e.reg.CheckOut(ctx, c.ID, gone.ID)
	require.NoError(t, err)
	e.checkIn(t, c.ID, "Ola Nordmann", "98765432")

	e.skew = 25 * time.Hour
	w := e.do(http.MethodGet, "/dashboard", nil, withCookie(e.cookie(u)), asJSON)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	visitors := decodeBody(t, w)["visitors"].([]any)
	require.Len(t, visitors, 1)
	assert.Equal(t, "Ola Nordmann", visitors[0].(map[string]any)["full_name"])
	assert.EqualValues(t, 1, e.metrics.swept)

	_, err = e.reg.VisitorByID(ctx, c.ID, gone.ID)
	assert.ErrorIs(t, err, registry.ErrNotFound, "the expired row is deleted, not just hidden")
}

func TestDashboard_CheckOut(t *testing.T) {
	e := newTestEnv(t, false)
	c, u := e.company(t, "ok@fjord.no", models.CompanyStatusApproved)
	other, _ := e.company(t, "other@fjord.no", models.CompanyStatusApproved)
	v := e.checkIn(t, c.ID, "Ola Nordmann", "98765432")
	foreign := e.checkIn(t, other.ID, "Someone Else", "98765434")
	cookie := e.cookie(u)

	w := e.do(http.MethodPost, "/visitors/"+v.ID+"/checkout", nil, withCookie(cookie))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, 1, e.metrics.checkOuts["dashboard"])

	got, err := e.reg.VisitorByID(context.Background(), c.ID, v.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VisitorStatusOut, got.Status)
	require.NotNil(t, got.CheckOutTime)

	w = e.do(http.MethodPost, "/visitors/"+v.ID+"/checkout", nil, withCookie(cookie), asJSON)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.do(http.MethodPost, "/visitors/"+foreign.ID+"/checkout", nil, withCookie(cookie), asJSON)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboard_Downloads(t *testing.T) {
	e := newTestEnv(t, false)
	c, u := e.company(t, "ok@fjord.no", models.CompanyStatusApproved)
	v := e.checkIn(t, c.ID, "Ola Nordmann", "98765432")
	cookie := withCookie(e.cookie(u))

	w := e.do(http.MethodGet, "/visitors/"+v.ID+"/badge.pdf", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, contentTypePDF, w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), "inline"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	for _, target := range []string{"/guests.pdf", "/guests.pdf?kind=evacuation"} {
		w = e.do(http.MethodGet, target, nil, cookie)
		require.Equal(t, http.StatusOK, w.Code, target)
		assert.Equal(t, contentTypePDF, w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
	}

	w = e.do(http.MethodGet, "/guests.xlsx", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, contentTypeXLSX, w.Header().Get("Content-Type"))
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Contains(t, rows[1], "Ola Nordmann")
}

func TestReception_Register(t *testing.T) {
	e := newTestEnv(t, false)
	c, u := e.company(t, "ok@fjord.no", models.CompanyStatusApproved)
	cookie := withCookie(e.cookie(u))

	w := e.do(http.MethodGet, "/reception", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.postForm("/reception", visitorForm(), cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Welcome! You are now checked in.")
	assert.Equal(t, 1, e.metrics.checkIns["reception"])

	visitors, err := e.reg.CurrentVisitors(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, visitors, 1)
	assert.Equal(t, "ola@example.com", visitors[0].Email)

	require.Len(t, e.notifier.hosts, 1)
	assert.Equal(t, "kari@fjord.no", e.notifier.hosts[0].HostEmail)
	assert.Equal(t, "Fjord AS", e.notifier.hosts[0].CompanyName)
}

func TestReception_RejectsInvalidForm(t *testing.T) {
	e := newTestEnv(t, false)
	c, u := e.company(t, "ok@fjord.no", models.CompanyStatusApproved)
	cookie := withCookie(e.cookie(u))

	form := visitorForm()
	form.Set("phone", "12")
	form.Del("privacy")
	w := e.postForm("/reception", form, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Ola Nordmann", "form values are kept")

	w = e.postJSON("/reception", map[string]any{"full_name": "Ola"}, cookie)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	details := decodeBody(t, w)["details"].(map[string]any)
	assert.Contains(t, details, "phone")
	assert.Contains(t, details, "host_name")
	assert.Contains(t, details, "privacy")

	n, err := e.reg.CountCheckedIn(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, e.notifier.hosts)
}

func TestAlarm_ConfirmCancelTrigger(t *testing.T) {
	e := newTestEnv(t, false)
	c, u := e.company(t, "ok@fjord.no", models.CompanyStatusApproved)
	e.checkIn(t, c.ID, "Ola Nordmann", "98765432")
	e.checkIn(t, c.ID, "Per Hansen", "98765433")
	e.notifier.failTo = "per.hansen@guest.no"
	cookie := withCookie(e.cookie(u))

	w := e.do(http.MethodGet, "/alarm", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.postForm("/alarm", url.Values{"confirm": {"no"}}, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, e.notifier.sent, "cancel sends nothing")

	w = e.postJSON("/alarm", map[string]string{"confirm": "yes"}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sum := decodeBody(t, w)["summary"].(map[string]any)
	assert.EqualValues(t, 2, sum["guests"])
	assert.EqualValues(t, 2, sum["attempted"])
	assert.EqualValues(t, 1, sum["succeeded"])
	assert.Contains(t, sum["file_name"], ".pdf")
	assert.Len(t, e.notifier.sent, 2)

	w = e.postForm("/alarm?download=1", url.Values{"confirm": {"yes"}}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, contentTypePDF, w.Header().Get("Content-Type"))

	w = e.postForm("/alarm", url.Values{"confirm": {"yes"}}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Fire alarm triggered")
	assert.Contains(t, w.Body.String(), "data:application/pdf;base64,")
}
