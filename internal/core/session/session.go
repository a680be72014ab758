// Package session holds the authenticated identity and bearer credential for
// one active sign-in. The session is an explicit value threaded through the
// components that need it, never ambient global state.
package session

import (
	"strings"
	"sync"

	"github.com/cabrix/dispatch-api/internal/core/domain"
)

// Session is the identity + credential pair established at login. The
// platform-admin capability is derived once here, at establishment time,
// instead of being re-checked ad hoc by every consumer.
type Session struct {
	mu sync.RWMutex

	identity        *domain.User
	credential      string
	isPlatformAdmin bool

	operatorDomain string
}

// New returns an empty (anonymous) session. operatorDomain is the email
// domain that distinguishes a platform admin from a company admin sharing
// the same role tag (e.g. "cabrix.co.ke").
func New(operatorDomain string) *Session {
	return &Session{operatorDomain: strings.ToLower(operatorDomain)}
}

// Login installs the identity and credential for the rest of the session.
func (s *Session) Login(identity *domain.User, credential string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
	s.credential = credential
	s.isPlatformAdmin = identity != nil &&
		identity.Role == domain.RoleAdmin &&
		identity.EmailDomain() == s.operatorDomain
}

// Logout clears the identity and credential.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	s.credential = ""
	s.isPlatformAdmin = false
}

// IsAuthenticated reports whether a credential is present.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential != ""
}

// HasRole reports whether the current identity's role is one of roles.
// An anonymous session has no role.
func (s *Session) HasRole(roles ...domain.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return false
	}
	for _, r := range roles {
		if s.identity.Role == r {
			return true
		}
	}
	return false
}

// Identity returns the current identity, or nil when anonymous.
func (s *Session) Identity() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Credential returns the opaque bearer credential attached to every
// authenticated request.
func (s *Session) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// IsPlatformAdmin reports whether the identity is an admin belonging to the
// operator's own email domain. Role alone is necessary but not sufficient
// for platform-admin destinations.
func (s *Session) IsPlatformAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isPlatformAdmin
}
