package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vimalrajaj/ayusconnect/internal/platform/auth"
)

// Validation errors, reported before any verifier call and never audited as
// authentication failures.
var (
	ErrConsentRequired      = errors.New("audit consent is required for healthcare data access")
	ErrInvalidLicense       = errors.New("invalid medical license number format")
	ErrConfirmationRequired = errors.New("logout requires confirmation")
	ErrNotAuthenticated     = errors.New("no active session")
)

const (
	defaultTimeout          = 30 * time.Minute
	defaultWarningThreshold = 5 * time.Minute
	defaultCheckInterval    = time.Minute
)

// AuditRecorder is the slice of the audit recorder the manager needs.
// Decoupled as an interface so tests can capture transitions.
type AuditRecorder interface {
	Record(action, sessionID string, data map[string]any)
}

// Option configures a Manager.
type Option func(*Manager)

// WithTimeout sets the session lifetime granted at login.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

// WithWarningThreshold sets how long before expiry the one-shot warning fires.
func WithWarningThreshold(d time.Duration) Option {
	return func(m *Manager) { m.warningThreshold = d }
}

// WithCheckInterval sets the cadence of the authoritative expiry check.
func WithCheckInterval(d time.Duration) Option {
	return func(m *Manager) { m.checkInterval = d }
}

// WithClock injects the time source. Tests use this to simulate expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithWarningFunc registers a callback fired once per warning window.
func WithWarningFunc(fn func(s *Session, remaining time.Duration)) Option {
	return func(m *Manager) { m.onWarning = fn }
}

// WithExpiryFunc registers a callback fired when the session expires, so the
// caller can redirect to the unauthenticated entry point.
func WithExpiryFunc(fn func(s *Session)) Option {
	return func(m *Manager) { m.onExpiry = fn }
}

// LoginRequest carries a login attempt.
type LoginRequest struct {
	Method        auth.Method `json:"authMethod"`
	ABHAID        string      `json:"abhaId,omitempty"`
	Password      string      `json:"abhaPassword,omitempty"`
	OAuthToken    string      `json:"authToken,omitempty"`
	LicenseNumber string      `json:"licenseNumber"`
	AuditConsent  bool        `json:"auditConsent"`
}

// Manager owns the single session slot and drives its lifecycle:
// Unauthenticated -> Authenticating -> Active (with a Warning sub-state) ->
// Expired/LoggedOut -> Unauthenticated. It is an explicit instance with a
// defined lifetime: construct at app start, Close on shutdown.
//
// Every transition that creates, mutates, or destroys a session emits
// exactly one audit entry.
type Manager struct {
	store    Store
	verifier auth.Verifier
	issuer   *auth.TokenIssuer
	audit    AuditRecorder

	timeout          time.Duration
	warningThreshold time.Duration
	checkInterval    time.Duration
	now              func() time.Time
	onWarning        func(*Session, time.Duration)
	onExpiry         func(*Session)

	mu           sync.Mutex
	current      *Session
	warningShown bool

	stop chan struct{}
	done chan struct{}
}

// NewManager creates a session manager. Call Start to run the periodic
// expiry check and Close to stop it.
func NewManager(store Store, verifier auth.Verifier, issuer *auth.TokenIssuer, rec AuditRecorder, opts ...Option) *Manager {
	m := &Manager{
		store:            store,
		verifier:         verifier,
		issuer:           issuer,
		audit:            rec,
		timeout:          defaultTimeout,
		warningThreshold: defaultWarningThreshold,
		checkInterval:    defaultCheckInterval,
		now:              time.Now,
		stop:             make(chan struct{}),
		done:             make(chan struct{}),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Resume loads a previously stored session. An expired one is cleared and
// audited; a corrupt one surfaces as no session from the store itself.
func (m *Manager) Resume(ctx context.Context) (*Session, error) {
	s, err := m.store.Load(ctx)
	if errors.Is(err, ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !m.now().Before(s.ExpiresAt) {
		m.store.Clear(ctx)
		m.audit.Record("session_expired", s.ID, map[string]any{"detected": "resume"})
		return nil, nil
	}

	s.LastActivity = m.now().UTC()
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("refresh session activity: %w", err)
	}

	m.mu.Lock()
	m.current = s
	m.warningShown = false
	m.mu.Unlock()
	return m.snapshot(), nil
}

// Login validates the request, verifies credentials through the injected
// verifier, and on success creates and persists a new session, atomically
// overwriting any prior one.
func (m *Manager) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	if !req.AuditConsent {
		return nil, ErrConsentRequired
	}
	if !auth.ValidLicense(req.LicenseNumber) {
		return nil, ErrInvalidLicense
	}

	identity, err := m.verifier.Verify(ctx, auth.Credentials{
		Method:     req.Method,
		ABHAID:     req.ABHAID,
		Password:   req.Password,
		OAuthToken: req.OAuthToken,
	})
	if err != nil {
		m.audit.Record("authentication_failed", "", map[string]any{
			"authType": string(req.Method),
			"license":  auth.MaskLicense(req.LicenseNumber),
		})
		return nil, err
	}

	now := m.now().UTC()
	s := &Session{
		ID:            "sid_" + uuid.New().String(),
		AuthType:      req.Method,
		User:          *identity,
		LicenseNumber: req.LicenseNumber,
		AuditConsent:  true,
		Scopes:        identity.Scopes,
		CreatedAt:     now,
		ExpiresAt:     now.Add(m.timeout),
		LastActivity:  now,
	}

	subject := identity.ID
	if subject == "" {
		subject = identity.ABHAID
	}
	token, err := m.issuer.Issue(s.ID, subject, s.Scopes, s.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	s.Token = token

	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	m.mu.Lock()
	m.current = s
	m.warningShown = false
	m.mu.Unlock()

	m.audit.Record("authentication_successful", s.ID, map[string]any{
		"authType": string(s.AuthType),
		"user":     subject,
		"license":  auth.MaskLicense(s.LicenseNumber),
	})
	return m.snapshot(), nil
}

// Logout destroys the session on explicit user action. The confirmation
// step is required before anything is cleared.
func (m *Manager) Logout(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	m.mu.Lock()
	s := m.current
	m.current = nil
	m.warningShown = false
	m.mu.Unlock()

	if s == nil {
		return ErrNotAuthenticated
	}

	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.audit.Record("user_initiated_logout", s.ID, map[string]any{
		"duration_ms": m.now().Sub(s.CreatedAt).Milliseconds(),
	})
	return nil
}

// Extend pushes expiry to now+minutes, persists, and re-arms the one-shot
// warning.
func (m *Manager) Extend(ctx context.Context, minutes int) (*Session, error) {
	if minutes <= 0 {
		minutes = int(defaultTimeout / time.Minute)
	}

	m.mu.Lock()
	s := m.current
	if s == nil || !m.now().Before(s.ExpiresAt) {
		m.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	s.ExpiresAt = m.now().UTC().Add(time.Duration(minutes) * time.Minute)
	s.LastActivity = m.now().UTC()
	m.warningShown = false
	m.mu.Unlock()

	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("persist extended session: %w", err)
	}
	m.audit.Record("session_extended", s.ID, map[string]any{
		"additionalMinutes": minutes,
		"newExpiry":         s.ExpiresAt,
	})
	return m.snapshot(), nil
}

// Touch refreshes lastActivity. Throttling is the caller's concern.
func (m *Manager) Touch(ctx context.Context) error {
	m.mu.Lock()
	s := m.current
	if s == nil {
		m.mu.Unlock()
		return ErrNotAuthenticated
	}
	s.LastActivity = m.now().UTC()
	m.mu.Unlock()

	if err := m.store.Save(ctx, s); err != nil {
		return fmt.Errorf("persist session activity: %w", err)
	}
	m.audit.Record("user_activity", s.ID, nil)
	return nil
}

// Check is the single authoritative expiry evaluation. Called by the
// periodic loop; exported so tests (and callers without the loop) can drive
// it directly.
func (m *Manager) Check(ctx context.Context) State {
	m.mu.Lock()
	s := m.current
	if s == nil {
		m.mu.Unlock()
		return StateUnauthenticated
	}

	now := m.now()
	if !now.Before(s.ExpiresAt) {
		m.current = nil
		m.warningShown = false
		m.mu.Unlock()

		m.store.Clear(ctx)
		m.audit.Record("session_expired", s.ID, nil)
		if m.onExpiry != nil {
			m.onExpiry(s)
		}
		return StateExpired
	}

	remaining := s.ExpiresAt.Sub(now)
	if remaining <= m.warningThreshold {
		if !m.warningShown {
			m.warningShown = true
			m.mu.Unlock()

			m.audit.Record("session_warning_shown", s.ID, map[string]any{
				"minutesRemaining": int(remaining.Minutes()) + 1,
			})
			if m.onWarning != nil {
				m.onWarning(s, remaining)
			}
			return StateWarning
		}
		m.mu.Unlock()
		return StateWarning
	}

	m.mu.Unlock()
	return StateActive
}

// IsAuthenticated reports whether an unexpired session is held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil && m.now().Before(m.current.ExpiresAt)
}

// Current returns a copy of the held session, or nil.
func (m *Manager) Current() *Session {
	return m.snapshot()
}

// Remaining is the presentational countdown until expiry. Zero when no
// session is held or it has already lapsed.
func (m *Manager) Remaining() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return 0
	}
	d := m.current.ExpiresAt.Sub(m.now())
	if d < 0 {
		return 0
	}
	return d
}

// Start runs the periodic expiry check until Close.
func (m *Manager) Start() {
	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.checkInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Check(context.Background())
			case <-m.stop:
				return
			}
		}
	}()
}

// Close stops the periodic check. The stored session is left intact.
func (m *Manager) Close() {
	close(m.stop)
	<-m.done
}

func (m *Manager) snapshot() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	cp := *m.current
	cp.Scopes = append([]string(nil), m.current.Scopes...)
	return &cp
}
