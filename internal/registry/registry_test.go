package registry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/diewo77/go-visitors/internal/logging"
	"github.com/diewo77/go-visitors/internal/models"
	"github.com/diewo77/go-visitors/internal/store"
	"github.com/diewo77/go-visitors/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newRegistry(t *testing.T) (*Registry, *fakeClock, store.Store) {
	t.Helper()
	s := storetest.New(t)
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	n := 0
	ids := func() string { n++; return fmt.Sprintf("id-%03d", n) }
	return New(s, logging.NewNoopLogger(), WithClock(clock.Now), WithIDs(ids)), clock, s
}

func TestCompanyByEmail_MissIsNotAnError(t *testing.T) {
	r, _, _ := newRegistry(t)
	c, err := r.CompanyByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestCreateCompany(t *testing.T) {
	r, _, _ := newRegistry(t)
	ctx := context.Background()

	c := &models.Company{Name: " Elektryk AS ", Address: "ul. Młotkowa 2", Phone: "+4712345678", AdminEmail: "Admin@Elektryk.no"}
	require.NoError(t, r.CreateCompany(ctx, c))
	assert.Equal(t, models.CompanyStatusPending, c.Status)
	assert.Equal(t, models.CompanyRoleAdmin, c.Role)
	assert.Equal(t, "Elektryk AS", c.Name)

	got, err := r.CompanyByEmail(ctx, "admin@elektryk.no")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.ID, got.ID)

	err = r.CreateCompany(ctx, &models.Company{Name: "Dup", AdminEmail: "ADMIN@elektryk.no"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignUpAndStatus(t *testing.T) {
	r, _, _ := newRegistry(t)
	ctx := context.Background()

	u, err := r.SignUp(ctx, &models.Company{Name: "Acme", Address: "Storgata 1", AdminEmail: "boss@acme.no", Status: models.CompanyStatusApproved}, "hash")
	require.NoError(t, err)
	assert.Equal(t, "boss@acme.no", u.Email)

	c, err := r.CompanyByEmail(ctx, "boss@acme.no")
	require.NoError(t, err)
	assert.Equal(t, models.CompanyStatusPending, c.Status, "sign-up always starts pending")

	_, err = r.SignUp(ctx, &models.Company{Name: "Acme 2", AdminEmail: "boss@acme.no"}, "hash")
	assert.ErrorIs(t, err, ErrEmailTaken)

	updated, err := r.SetCompanyStatus(ctx, c.ID, models.CompanyStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.CompanyStatusApproved, updated.Status)

	_, err = r.SetCompanyStatus(ctx, c.ID, "archived")
	assert.Error(t, err)
	_, err = r.SetCompanyStatus(ctx, "missing", models.CompanyStatusRejected)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompaniesByStatus_ExcludesSuperAdmin(t *testing.T) {
	r, clock, _ := newRegistry(t)
	ctx := context.Background()

	require.NoError(t, r.EnsureSuperAdmin(ctx, "root@safevisit.no", "hash", "SafeVisit"))
	require.NoError(t, r.EnsureSuperAdmin(ctx, "root@safevisit.no", "hash", "SafeVisit"), "seed is idempotent")
	for _, e := range []string{"a@a.no", "b@b.no"} {
		clock.Advance(time.Minute)
		require.NoError(t, r.CreateCompany(ctx, &models.Company{Name: e, AdminEmail: e}))
	}
	pending, err := r.CompaniesByStatus(ctx, models.CompanyStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "b@b.no", pending[0].AdminEmail, "newest first")

	approved, err := r.CompaniesByStatus(ctx, models.CompanyStatusApproved)
	require.NoError(t, err)
	assert.Empty(t, approved, "super admin is not listed")

	u, err := r.UserByEmail(ctx, "root@safevisit.no")
	require.NoError(t, err)
	require.NotNil(t, u)
}

func TestResolveDemoCompany(t *testing.T) {
	r, clock, _ := newRegistry(t)
	ctx := context.Background()

	c, err := r.ResolveDemoCompany(ctx)
	require.NoError(t, err)
	assert.Nil(t, c)

	require.NoError(t, r.EnsureSuperAdmin(ctx, "root@safevisit.no", "hash", "Platform"))
	clock.Advance(time.Hour)
	require.NoError(t, r.CreateCompany(ctx, &models.Company{Name: "Waiting", AdminEmail: "waiting@x.no"}))

	c, err = r.ResolveDemoCompany(ctx)
	require.NoError(t, err)
	assert.Nil(t, c, "neither the super admin nor a pending company qualifies")

	for _, name := range []string{"First", "Second"} {
		clock.Advance(time.Hour)
		tenant := &models.Company{Name: name, AdminEmail: name + "@x.no", Status: models.CompanyStatusApproved}
		require.NoError(t, r.CreateCompany(ctx, tenant))
	}

	c, err = r.ResolveDemoCompany(ctx)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "First", c.Name)
	assert.Equal(t, models.CompanyRoleAdmin, c.Role)
}

// flakyUsersStore fails the next n inserts into the users table.
type flakyUsersStore struct {
	store.Store
	failures int
}

func (s *flakyUsersStore) Insert(ctx context.Context, table string, record any) error {
	if table == tableUsers && s.failures > 0 {
		s.failures--
		return errors.New("network blip")
	}
	return s.Store.Insert(ctx, table, record)
}

func TestSignUp_FailedUserInsertLeavesNoCompany(t *testing.T) {
	_, _, base := newRegistry(t)
	s := &flakyUsersStore{Store: base, failures: 1}
	r := New(s, logging.NewNoopLogger())
	ctx := context.Background()

	_, err := r.SignUp(ctx, &models.Company{Name: "Acme", AdminEmail: "boss@acme.no"}, "hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailTaken)

	c, err := r.CompanyByEmail(ctx, "boss@acme.no")
	require.NoError(t, err)
	assert.Nil(t, c, "company is rolled back")
	pending, err := r.CompaniesByStatus(ctx, models.CompanyStatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	u, err := r.SignUp(ctx, &models.Company{Name: "Acme", AdminEmail: "boss@acme.no"}, "hash")
	require.NoError(t, err, "a retry succeeds")
	assert.Equal(t, "boss@acme.no", u.Email)
}

func TestCompanyProfileAndLogo(t *testing.T) {
	r, _, _ := newRegistry(t)
	ctx := context.Background()
	c := &models.Company{Name: "Old", AdminEmail: "x@x.no"}
	require.NoError(t, r.CreateCompany(ctx, c))

	require.NoError(t, r.UpdateCompanyProfile(ctx, c.ID, "New Name", "+47 12345678"))
	logo := "data:image/png;base64,iVBORw0KGgo="
	require.NoError(t, r.SetCompanyLogo(ctx, c.ID, &logo))
	got, err := r.CompanyByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.True(t, got.HasLogo())

	require.NoError(t, r.SetCompanyLogo(ctx, c.ID, nil))
	got, err = r.CompanyByID(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, got.HasLogo())

	assert.ErrorIs(t, r.UpdateCompanyProfile(ctx, "nope", "x", "y"), ErrNotFound)
}

func TestCheckInAndCheckOut(t *testing.T) {
	r, clock, _ := newRegistry(t)
	ctx := context.Background()

	v := &models.Visitor{FullName: "Ola Nordmann", Phone: "+47 12345678", Email: "Ola@Example.no", CompanyID: "c1", Status: models.VisitorStatusOut}
	require.NoError(t, r.CheckIn(ctx, v))
	assert.Equal(t, models.VisitorStatusIn, v.Status)
	assert.Nil(t, v.CheckOutTime)
	assert.Equal(t, "ola@example.no", v.Email)
	assert.Regexp(t, `^SAFEVISIT_`+v.ID+`_\d+$`, v.QRCodeID)

	clock.Advance(2 * time.Hour)
	out, err := r.CheckOut(ctx, "c1", v.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VisitorStatusOut, out.Status)
	require.NotNil(t, out.CheckOutTime)
	assert.True(t, out.CheckOutTime.Equal(clock.Now()))

	stored, err := r.VisitorByID(ctx, "c1", v.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VisitorStatusOut, stored.Status, "checkout retains the record")

	_, err = r.CheckOut(ctx, "c1", v.ID)
	assert.ErrorIs(t, err, models.ErrAlreadyCheckedOut)
	_, err = r.CheckOut(ctx, "other-company", v.ID)
	assert.ErrorIs(t, err, ErrNotFound, "checkout is scoped to the company")
}

func TestVisitorsForCompany_RetentionWindow(t *testing.T) {
	r, clock, _ := newRegistry(t)
	ctx := context.Background()

	early := &models.Visitor{FullName: "Early Leaver", Phone: "11111111", CompanyID: "c1"}
	require.NoError(t, r.CheckIn(ctx, early))
	_, err := r.CheckOut(ctx, "c1", early.ID)
	require.NoError(t, err)

	clock.Advance(23 * time.Hour)
	stay := &models.Visitor{FullName: "Still Here", Phone: "22222222", CompanyID: "c1"}
	require.NoError(t, r.CheckIn(ctx, stay))

	visible, err := r.VisitorsForCompany(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, visible, 2, "checked out 23h ago is still visible")

	clock.Advance(2 * time.Hour)
	visible, err = r.VisitorsForCompany(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, stay.ID, visible[0].ID)

	n, err := r.SweepExpired(ctx, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	_, err = r.VisitorByID(ctx, "c1", early.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	n, err = r.SweepExpired(ctx, "c1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSweepExpired_LegacyWithoutCheckoutTime(t *testing.T) {
	r, clock, s := newRegistry(t)
	ctx := context.Background()

	legacy := &models.Visitor{ID: "legacy", FullName: "Legacy", CompanyID: "c1", Status: models.VisitorStatusOut,
		CheckInTime: clock.Now().Add(-48 * time.Hour), CreatedAt: clock.Now().Add(-48 * time.Hour)}
	require.NoError(t, s.Insert(ctx, "visitors", legacy))

	n, err := r.SweepExpired(ctx, "c1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestFindCheckedInByPhone(t *testing.T) {
	r, _, _ := newRegistry(t)
	ctx := context.Background()

	for _, v := range []*models.Visitor{
		{FullName: "A", Phone: "+47 12345678", CompanyID: "c1"},
		{FullName: "B", Phone: "87654321", CompanyID: "c1"},
		{FullName: "C", Phone: "12345678", CompanyID: "c2"},
	} {
		require.NoError(t, r.CheckIn(ctx, v))
	}

	got, err := r.FindCheckedInByPhone(ctx, "c1", " 5678 ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].FullName)

	got, err = r.FindCheckedInByPhone(ctx, "c1", "")
	require.NoError(t, err)
	assert.Empty(t, got)

	count, err := r.CountCheckedIn(ctx, "c1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	current, err := r.CurrentVisitors(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, current, 2)
}

func TestRecordAlert(t *testing.T) {
	r, _, s := newRegistry(t)
	ctx := context.Background()

	a, err := r.RecordAlert(ctx, "c1", "Admin@Acme.no", models.AlertTypeFire)
	require.NoError(t, err)
	assert.Equal(t, "admin@acme.no", a.TriggeredBy)

	var stored []models.Alert
	require.NoError(t, s.FindMany(ctx, store.From("alerts"), &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, models.AlertTypeFire, stored[0].Type)
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2025, 3, 2, 15, 0, 0, 0, time.UTC)
	out := now.Add(-time.Hour)
	visitors := []models.Visitor{
		{Status: models.VisitorStatusIn, CheckInTime: now.Add(-2 * time.Hour)},
		{Status: models.VisitorStatusIn, CheckInTime: now.Add(-20 * time.Hour)},
		{Status: models.VisitorStatusOut, CheckInTime: now.Add(-3 * time.Hour), CheckOutTime: &out},
	}
	got := ComputeStats(visitors, now)
	assert.Equal(t, Stats{Current: 2, CheckedInToday: 2, CheckedOutToday: 1}, got)
}

type failingStore struct{ store.Store }

func (failingStore) FindOne(context.Context, store.Query, any) error {
	return errors.New("connection refused")
}

func TestCompanyByEmail_StoreErrorPropagates(t *testing.T) {
	r := New(failingStore{}, logging.NewNoopLogger())
	c, err := r.CompanyByEmail(context.Background(), "x@x.no")
	assert.Error(t, err)
	assert.Nil(t, c)
}
