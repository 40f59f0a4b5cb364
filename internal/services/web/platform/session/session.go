// Package session keeps the signed-in state of a browser: the backend bearer
// token, the cached user record and the role name. Values live in the web
// session store keyed by an opaque cookie, and route gates redirect by role.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
	"github.com/louisbranch/retina.care/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
	"github.com/louisbranch/retina.care/internal/services/web/storage"
)

// ErrUnknownRole reports a sign-in reply whose role_id is not in the role
// table. Nothing is stored for it.
var ErrUnknownRole = errors.New("session: unknown role")

// DefaultTTL bounds a session when the token carries no earlier expiry.
const DefaultTTL = 24 * time.Hour

// User is the account record cached at sign-in.
type User struct {
	AccountID apiclient.ID `json:"account_id"`
	Email     string       `json:"email"`
	RoleID    int          `json:"role_id"`
	ClinicID  apiclient.ID `json:"clinic_id,omitempty"`
}

// State is the session as seen by one request.
type State struct {
	ID        string
	Token     string
	User      *User
	Role      role.Role
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Options configures a Manager.
type Options struct {
	TTL    time.Duration
	Policy requestmeta.Policy
}

// Manager reads and writes browser sessions.
type Manager struct {
	store  storage.SessionStore
	ttl    time.Duration
	policy requestmeta.Policy
	now    func() time.Time
	newID  func() string
}

// NewManager builds a Manager over store.
func NewManager(store storage.SessionStore, opts Options) *Manager {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		store:  store,
		ttl:    ttl,
		policy: opts.Policy,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

type contextKey struct{}

// Middleware loads the session once per request into the request context.
func (m *Manager) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := m.read(r)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, state)))
		})
	}
}

// FromContext returns the session state loaded by Middleware.
func FromContext(ctx context.Context) (*State, bool) {
	if ctx == nil {
		return nil, false
	}
	state, ok := ctx.Value(contextKey{}).(*State)
	return state, ok && state != nil
}

// TokenFromContext returns the bearer token of the session in ctx.
func TokenFromContext(ctx context.Context) string {
	state, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return state.Token
}

// TokenSource feeds the API client with the request's session token.
func TokenSource() apiclient.TokenSource {
	return apiclient.TokenSourceFunc(TokenFromContext)
}

// Token returns the stored bearer token.
func (m *Manager) Token(r *http.Request) string {
	return m.state(r).Token
}

// SetToken stores the bearer token.
func (m *Manager) SetToken(w http.ResponseWriter, r *http.Request, token string) error {
	return m.update(w, r, func(s *State) { s.Token = strings.TrimSpace(token) })
}

// ClearToken removes the bearer token.
func (m *Manager) ClearToken(w http.ResponseWriter, r *http.Request) error {
	return m.update(w, r, func(s *State) { s.Token = "" })
}

// User returns the cached user record.
func (m *Manager) User(r *http.Request) (User, bool) {
	state := m.state(r)
	if state.User == nil {
		return User{}, false
	}
	return *state.User, true
}

// SetUser caches the user record.
func (m *Manager) SetUser(w http.ResponseWriter, r *http.Request, user User) error {
	return m.update(w, r, func(s *State) { s.User = &user })
}

// ClearUser drops the cached user record.
func (m *Manager) ClearUser(w http.ResponseWriter, r *http.Request) error {
	return m.update(w, r, func(s *State) { s.User = nil })
}

// Role returns the stored role, role.None when unset.
func (m *Manager) Role(r *http.Request) role.Role {
	return m.state(r).Role
}

// SetRole stores the role name.
func (m *Manager) SetRole(w http.ResponseWriter, r *http.Request, value role.Role) error {
	return m.update(w, r, func(s *State) { s.Role = value })
}

// ClearRole removes the role name.
func (m *Manager) ClearRole(w http.ResponseWriter, r *http.Request) error {
	return m.update(w, r, func(s *State) { s.Role = role.None })
}

// Clear signs the browser out: the row is deleted and the cookie expired.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	state := m.state(r)
	id := state.ID
	*state = State{}
	sessioncookie.Clear(w, r, m.policy)
	if id == "" || m.store == nil {
		return nil
	}
	if err := m.store.DeleteSession(httpx.RequestContext(r), id); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// IsLoggedIn reports whether a bearer token is stored.
func (m *Manager) IsLoggedIn(r *http.Request) bool {
	return m.Token(r) != ""
}

// Authenticated reports whether a bearer token and a known role are stored.
// A token without a role has no dashboard and counts as signed out.
func (m *Manager) Authenticated(r *http.Request) bool {
	return m.IsLoggedIn(r) && m.Role(r).Valid()
}

// RequireLogin redirects to the login page, remembering the requested page,
// and returns false when no one is signed in. A session without a known role
// is dropped first.
func (m *Manager) RequireLogin(w http.ResponseWriter, r *http.Request) bool {
	if m.Authenticated(r) {
		return true
	}
	if m.IsLoggedIn(r) {
		if err := m.Clear(w, r); err != nil {
			log.Printf("clear role-less session failed err=%v", err)
		}
	}
	next := ""
	if r != nil && r.URL != nil && r.Method == http.MethodGet {
		next = r.URL.RequestURI()
	}
	httpx.WriteRedirect(w, r, routepath.LoginWithNext(next))
	return false
}

// RequireRole gates a page on want. Signed-out browsers go to login; a
// signed-in browser with another role goes to its own dashboard.
func (m *Manager) RequireRole(w http.ResponseWriter, r *http.Request, want role.Role) bool {
	if !m.RequireLogin(w, r) {
		return false
	}
	current := m.Role(r)
	if current == want {
		return true
	}
	httpx.WriteRedirect(w, r, current.DashboardPath())
	return false
}

// RedirectByRole sends the browser to its role dashboard, or to the landing
// page when no role is stored.
func (m *Manager) RedirectByRole(w http.ResponseWriter, r *http.Request) {
	httpx.WriteRedirect(w, r, m.Role(r).DashboardPath())
}

// RequireLoginMiddleware applies RequireLogin to every request.
func (m *Manager) RequireLoginMiddleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.RequireLogin(w, r) {
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireRoleMiddleware applies RequireRole to every request.
func (m *Manager) RequireRoleMiddleware(want role.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.RequireRole(w, r, want) {
				next.ServeHTTP(w, r)
			}
		})
	}
}

type authPayload struct {
	AccessToken string          `json:"access_token"`
	AccountID   apiclient.ID    `json:"account_id"`
	Email       string          `json:"email"`
	RoleID      int             `json:"role_id"`
	ClinicID    apiclient.ID    `json:"clinic_id"`
	Data        json.RawMessage `json:"data"`
}

// SetAuthFromResponse stores token, user and role from a login or
// registration reply. The token is read from data.access_token, then from the
// top level. Without a token nothing is stored and false is returned; a
// role_id outside the role table returns ErrUnknownRole.
func (m *Manager) SetAuthFromResponse(w http.ResponseWriter, r *http.Request, body []byte) (bool, error) {
	var outer authPayload
	if err := json.Unmarshal(body, &outer); err != nil {
		return false, nil
	}
	payload := outer
	if len(outer.Data) > 0 && string(outer.Data) != "null" {
		var inner authPayload
		if err := json.Unmarshal(outer.Data, &inner); err == nil && strings.TrimSpace(inner.AccessToken) != "" {
			payload = inner
		}
	}
	token := strings.TrimSpace(payload.AccessToken)
	if token == "" {
		return false, nil
	}
	resolved, ok := role.FromID(payload.RoleID)
	if !ok {
		return false, fmt.Errorf("%w: role_id %d", ErrUnknownRole, payload.RoleID)
	}
	user := User{
		AccountID: payload.AccountID,
		Email:     strings.TrimSpace(payload.Email),
		RoleID:    payload.RoleID,
		ClinicID:  payload.ClinicID,
	}
	err := m.update(w, r, func(s *State) {
		s.Token = token
		s.User = &user
		s.Role = resolved
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Sweep prunes expired rows every interval until ctx ends.
func (m *Manager) Sweep(ctx context.Context, interval time.Duration) {
	if m.store == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := m.store.DeleteExpiredSessions(ctx, m.now().UTC())
			if err != nil {
				log.Printf("session sweep failed err=%v", err)
				continue
			}
			if deleted > 0 {
				log.Printf("session sweep removed=%d", deleted)
			}
		}
	}
}

// state returns the request's session, from context when Middleware ran.
func (m *Manager) state(r *http.Request) *State {
	if r != nil {
		if state, ok := FromContext(r.Context()); ok {
			return state
		}
	}
	return m.read(r)
}

func (m *Manager) read(r *http.Request) *State {
	state := &State{}
	if m.store == nil {
		return state
	}
	id, ok := sessioncookie.Read(r)
	if !ok {
		return state
	}
	record, found, err := m.store.GetSession(r.Context(), id)
	if err != nil {
		log.Printf("session load failed err=%v", err)
		return state
	}
	if !found {
		return state
	}
	state.ID = record.ID
	state.Token = record.Token
	state.Role, _ = role.Parse(record.Role)
	state.CreatedAt = record.CreatedAt
	state.ExpiresAt = record.ExpiresAt
	if len(record.UserJSON) > 0 {
		var user User
		if err := json.Unmarshal(record.UserJSON, &user); err == nil {
			state.User = &user
		}
	}
	return state
}

// update applies change to the request's session and persists it, creating
// the session and its cookie on first write.
func (m *Manager) update(w http.ResponseWriter, r *http.Request, change func(*State)) error {
	if m.store == nil {
		return fmt.Errorf("session store is not configured")
	}
	state := m.state(r)
	next := *state
	now := m.now().UTC()
	if next.ID == "" {
		next.ID = m.newID()
		next.CreatedAt = now
	}
	change(&next)
	next.ExpiresAt = m.expiry(next.Token, now)

	record := storage.SessionRecord{
		ID:        next.ID,
		Token:     next.Token,
		Role:      string(next.Role),
		CreatedAt: next.CreatedAt,
		ExpiresAt: next.ExpiresAt,
	}
	if next.User != nil {
		encoded, err := json.Marshal(next.User)
		if err != nil {
			return fmt.Errorf("encode session user: %w", err)
		}
		record.UserJSON = encoded
	}
	if err := m.store.PutSession(httpx.RequestContext(r), record); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	*state = next
	sessioncookie.Write(w, r, next.ID, next.ExpiresAt, m.policy)
	return nil
}

// expiry is the earlier of the token's exp claim and now+TTL. The claim is
// read without verification; the backend verifies the token on every call.
func (m *Manager) expiry(token string, now time.Time) time.Time {
	limit := now.Add(m.ttl)
	if token == "" {
		return limit
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return limit
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return limit
	}
	if exp.Time.Before(limit) {
		return exp.Time.UTC()
	}
	return limit
}
