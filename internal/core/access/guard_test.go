package access

import (
	"testing"

	"github.com/cabrix/dispatch-api/internal/core/domain"
	"github.com/cabrix/dispatch-api/internal/core/session"
)

func authedSession(t *testing.T, role domain.Role, email string) *session.Session {
	t.Helper()
	s := session.New("cabrix.co.ke")
	s.Login(&domain.User{ID: 1, Email: email, Role: role}, "tok")
	return s
}

func TestDecide_Initializing_Suspends(t *testing.T) {
	s := session.New("cabrix.co.ke")
	d := Decide(StateInitializing, s, domain.RoleAdmin)
	if d.Kind != Suspend {
		t.Fatalf("expected Suspend, got %+v", d)
	}
}

func TestDecide_Anonymous_RedirectsToLogin(t *testing.T) {
	s := session.New("cabrix.co.ke")

	for _, roles := range [][]domain.Role{
		nil,
		{domain.RoleEmployee},
		{domain.RoleDriver},
		{domain.RoleAdmin},
	} {
		d := Decide(StateAnonymous, s, roles...)
		if d.Kind != Redirect || d.Target != DestLogin {
			t.Fatalf("anonymous with roles %v: expected redirect to %s, got %+v", roles, DestLogin, d)
		}
	}
}

func TestDecide_WrongRole_RedirectsToRoleHome(t *testing.T) {
	driver := authedSession(t, domain.RoleDriver, "d@acme.com")
	d := Decide(StateAuthenticated, driver, domain.RoleAdmin)
	if d.Kind != Redirect || d.Target != DestDriverDashboard {
		t.Fatalf("driver requesting admin destination: got %+v", d)
	}

	employee := authedSession(t, domain.RoleEmployee, "e@acme.com")
	d = Decide(StateAuthenticated, employee, domain.RoleDriver)
	if d.Kind != Redirect || d.Target != DestEmployeeDashboard {
		t.Fatalf("employee requesting driver destination: got %+v", d)
	}
}

func TestDecide_AllowedRole_Renders(t *testing.T) {
	admin := authedSession(t, domain.RoleAdmin, "ops@cabrix.co.ke")
	d := Decide(StateAuthenticated, admin, domain.RoleEmployee, domain.RoleAdmin)
	if d.Kind != Render {
		t.Fatalf("admin in allowed set: got %+v", d)
	}
}

func TestDecide_EmptyRoles_AnyAuthenticated(t *testing.T) {
	driver := authedSession(t, domain.RoleDriver, "d@acme.com")
	if d := Decide(StateAuthenticated, driver); d.Kind != Render {
		t.Fatalf("empty allowed roles should render for any authenticated role, got %+v", d)
	}
}

func TestDecide_Idempotent(t *testing.T) {
	driver := authedSession(t, domain.RoleDriver, "d@acme.com")
	first := Decide(StateAuthenticated, driver, domain.RoleAdmin)
	second := Decide(StateAuthenticated, driver, domain.RoleAdmin)
	if first != second {
		t.Fatalf("decision not idempotent: %+v vs %+v", first, second)
	}
}

func TestDecideAdminEntry_TwoTier(t *testing.T) {
	platform := authedSession(t, domain.RoleAdmin, "admin1@cabrix.co.ke")
	if d := DecideAdminEntry(StateAuthenticated, platform); d.Kind != Render {
		t.Fatalf("platform admin should render admin dashboard, got %+v", d)
	}

	// Company admin passes the role check but fails the domain check.
	company := authedSession(t, domain.RoleAdmin, "boss@acme.com")
	d := DecideAdminEntry(StateAuthenticated, company)
	if d.Kind != Redirect || d.Target != DestEmployeeDashboard {
		t.Fatalf("company admin should be redirected to employee dashboard, got %+v", d)
	}

	driver := authedSession(t, domain.RoleDriver, "d@cabrix.co.ke")
	d = DecideAdminEntry(StateAuthenticated, driver)
	if d.Kind != Redirect || d.Target != DestDriverDashboard {
		t.Fatalf("driver should be redirected to driver dashboard, got %+v", d)
	}

	anon := session.New("cabrix.co.ke")
	d = DecideAdminEntry(StateAnonymous, anon)
	if d.Kind != Redirect || d.Target != DestLogin {
		t.Fatalf("anonymous should be redirected to login, got %+v", d)
	}
}

func TestHomeFor(t *testing.T) {
	cases := []struct {
		role  domain.Role
		email string
		want  string
	}{
		{domain.RoleEmployee, "e@acme.com", DestEmployeeDashboard},
		{domain.RoleDriver, "d@acme.com", DestDriverDashboard},
		{domain.RoleAdmin, "ops@cabrix.co.ke", DestAdminDashboard},
		{domain.RoleAdmin, "boss@acme.com", DestEmployeeDashboard},
	}
	for _, tc := range cases {
		s := authedSession(t, tc.role, tc.email)
		if got := HomeFor(s); got != tc.want {
			t.Errorf("HomeFor(%s %s) = %s, want %s", tc.role, tc.email, got, tc.want)
		}
	}
}
