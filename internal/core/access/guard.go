// Package access decides, per navigation, whether an identity may view a
// destination and where to redirect otherwise. Decisions are pure functions
// of the session state and the destination's allowed roles.
package access

import "github.com/cabrix/dispatch-api/internal/core/domain"

// Well-known destinations.
const (
	DestLogin             = "/login"
	DestCompanyRegister   = "/company-register"
	DestEmployeeDashboard = "/employee-dashboard"
	DestDriverDashboard   = "/driver-dashboard"
	DestAdminDashboard    = "/admin-dashboard"
)

// State describes what the guard knows about the session at decision time.
type State int

const (
	// StateInitializing means the session is still loading; the decision is
	// suspended, never turned into a redirect.
	StateInitializing State = iota
	StateAnonymous
	StateAuthenticated
)

// DecisionKind is the outcome of a guard check.
type DecisionKind int

const (
	// Suspend renders a neutral placeholder while the session initializes.
	Suspend DecisionKind = iota
	Render
	Redirect
)

// Decision is the guard's verdict. Target is set only for Redirect.
type Decision struct {
	Kind   DecisionKind
	Target string
}

func suspend() Decision           { return Decision{Kind: Suspend} }
func render() Decision            { return Decision{Kind: Render} }
func redirect(to string) Decision { return Decision{Kind: Redirect, Target: to} }

// SessionInfo is the slice of session state the guard needs. It is satisfied
// by *session.Session.
type SessionInfo interface {
	IsAuthenticated() bool
	Identity() *domain.User
	IsPlatformAdmin() bool
}

// RoleHome returns the destination canonically associated with a role.
func RoleHome(role domain.Role) string {
	switch role {
	case domain.RoleEmployee:
		return DestEmployeeDashboard
	case domain.RoleDriver:
		return DestDriverDashboard
	case domain.RoleAdmin:
		return DestAdminDashboard
	default:
		return DestLogin
	}
}

// Decide evaluates a navigation to a destination declared with allowedRoles.
// An empty allowedRoles means any authenticated role may view it.
func Decide(state State, sess SessionInfo, allowedRoles ...domain.Role) Decision {
	if state == StateInitializing {
		return suspend()
	}
	if state == StateAnonymous || !sess.IsAuthenticated() {
		return redirect(DestLogin)
	}

	identity := sess.Identity()
	if identity == nil {
		return redirect(DestLogin)
	}

	if len(allowedRoles) == 0 {
		return render()
	}
	for _, r := range allowedRoles {
		if identity.Role == r {
			return render()
		}
	}
	return redirect(RoleHome(identity.Role))
}

// DecideAdminEntry applies the secondary guard on the admin dashboard entry
// point: role admin is necessary but not sufficient — only a platform admin
// (operator email domain) may enter; a company admin is sent to the employee
// destination instead.
func DecideAdminEntry(state State, sess SessionInfo) Decision {
	d := Decide(state, sess, domain.RoleAdmin)
	if d.Kind != Render {
		return d
	}
	if !sess.IsPlatformAdmin() {
		return redirect(DestEmployeeDashboard)
	}
	return render()
}

// HomeFor resolves the post-login landing destination for a session: platform
// admins land on the admin dashboard, company admins on the employee
// dashboard, everyone else on their role home.
func HomeFor(sess SessionInfo) string {
	identity := sess.Identity()
	if identity == nil {
		return DestLogin
	}
	if identity.Role == domain.RoleAdmin && !sess.IsPlatformAdmin() {
		return DestEmployeeDashboard
	}
	return RoleHome(identity.Role)
}
