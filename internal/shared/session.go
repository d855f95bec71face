package shared

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "console:session:"

// SessionManager keeps session state in Redis behind a signed cookie that
// carries only the session id.
type SessionManager struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
	secure     bool
	secret     []byte
}

// Session is the per-request view of the stored state. The access token and
// user are only reachable through SignIn, AccessToken, CurrentUser and SignOut.
type Session struct {
	ID string

	// mu guards the token and user; a backend fan-out may refresh the token
	// while sibling calls read it.
	mu          sync.Mutex
	values      map[string]string
	accessToken string
	user        *CurrentUser
	flashes     []FlashMessage

	retiredID string
	isNew     bool
	dirty     bool
	destroyed bool
}

type storedSession struct {
	Values      map[string]string `json:"values"`
	AccessToken string            `json:"access_token,omitempty"`
	User        *CurrentUser      `json:"user,omitempty"`
	Flashes     []FlashMessage    `json:"flashes,omitempty"`
}

// NewSessionManager constructs a SessionManager. secret signs the cookie.
func NewSessionManager(client *redis.Client, cookieName, secret string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{
		client:     client,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
		secret:     []byte(secret),
	}
}

// CookieName returns the session cookie name.
func (sm *SessionManager) CookieName() string { return sm.cookieName }

// Load returns the session named by the request cookie. A missing, unsigned
// or expired cookie yields a fresh session rather than an error.
func (sm *SessionManager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(sm.cookieName)
	if errors.Is(err, http.ErrNoCookie) {
		return newSession(), nil
	}
	if err != nil {
		return nil, err
	}
	id, ok := sm.verify(cookie.Value)
	if !ok {
		return newSession(), nil
	}

	raw, err := sm.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return newSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var stored storedSession
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	sess := &Session{
		ID:          id,
		values:      stored.Values,
		accessToken: stored.AccessToken,
		user:        stored.User,
		flashes:     stored.Flashes,
	}
	if sess.values == nil {
		sess.values = map[string]string{}
	}
	return sess, nil
}

// Commit writes changed state back to Redis and refreshes the cookie. An
// unchanged session only has its expiry extended.
func (sm *SessionManager) Commit(ctx context.Context, w http.ResponseWriter, r *http.Request, sess *Session) error {
	if sess == nil {
		return nil
	}
	if sess.retiredID != "" {
		if err := sm.client.Del(ctx, sessionKeyPrefix+sess.retiredID).Err(); err != nil {
			return fmt.Errorf("drop retired session: %w", err)
		}
		sess.retiredID = ""
	}
	if sess.destroyed {
		if err := sm.client.Del(ctx, sessionKeyPrefix+sess.ID).Err(); err != nil {
			return fmt.Errorf("destroy session: %w", err)
		}
		sm.setCookie(w, "", -1)
		return nil
	}

	key := sessionKeyPrefix + sess.ID
	if sess.dirty || sess.isNew {
		data, err := json.Marshal(storedSession{
			Values:      sess.values,
			AccessToken: sess.accessToken,
			User:        sess.user,
			Flashes:     sess.flashes,
		})
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		if err := sm.client.Set(ctx, key, data, sm.ttl).Err(); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		sess.dirty, sess.isNew = false, false
	} else if err := sm.client.Expire(ctx, key, sm.ttl).Err(); err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	sm.setCookie(w, sm.sign(sess.ID), int(sm.ttl.Seconds()))
	return nil
}

// Destroy drops the session and its cookie on the next Commit.
func (sm *SessionManager) Destroy(sess *Session) {
	if sess != nil {
		sess.destroyed = true
	}
}

func (sm *SessionManager) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sm.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (sm *SessionManager) mac(id string) string {
	h := hmac.New(sha256.New, sm.secret)
	h.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil)[:18])
}

func (sm *SessionManager) sign(id string) string {
	return id + "." + sm.mac(id)
}

func (sm *SessionManager) verify(value string) (string, bool) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", false
	}
	return id, hmac.Equal([]byte(sig), []byte(sm.mac(id)))
}

func newSession() *Session {
	return &Session{ID: uuid.NewString(), values: map[string]string{}, isNew: true}
}

// Set stores a string value.
func (s *Session) Set(key, value string) {
	if s.values == nil {
		s.values = map[string]string{}
	}
	s.values[key] = value
	s.dirty = true
}

// Get returns the value stored under key or "".
func (s *Session) Get(key string) string {
	return s.values[key]
}

// Delete removes key.
func (s *Session) Delete(key string) {
	if _, ok := s.values[key]; ok {
		delete(s.values, key)
		s.dirty = true
	}
}

// SetJSON stores v encoded as JSON under key.
func (s *Session) SetJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.Set(key, string(data))
	return nil
}

// GetJSON decodes the value under key into dest and reports whether one was
// stored.
func (s *Session) GetJSON(key string, dest any) (bool, error) {
	raw := s.Get(key)
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SignIn stores the bearer token and its user. A session that was already
// persisted moves to a new id so a planted cookie cannot ride the login.
func (s *Session) SignIn(token string, user CurrentUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isNew && s.ID != "" && s.retiredID == "" {
		s.retiredID = s.ID
		s.ID = uuid.NewString()
	}
	s.accessToken = token
	s.user = &user
	s.dirty = true
}

// ReplaceToken swaps the bearer token of a signed-in session, as after a
// backend refresh. The session id is kept.
func (s *Session) ReplaceToken(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return false
	}
	s.accessToken = token
	s.dirty = true
	return true
}

// SignOut forgets the token and user. Other values survive.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.user = nil
	s.dirty = true
}

// AccessToken returns the bearer token, empty when signed out.
func (s *Session) AccessToken() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// CurrentUser returns a copy of the cached user, or nil.
func (s *Session) CurrentUser() *CurrentUser {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether both token and user are present.
func (s *Session) Authenticated() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken != "" && s.user != nil
}

// AddFlash queues a flash message.
func (s *Session) AddFlash(msg FlashMessage) {
	s.flashes = append(s.flashes, msg)
	s.dirty = true
}

// PopFlash removes and returns the oldest flash message.
func (s *Session) PopFlash() *FlashMessage {
	if len(s.flashes) == 0 {
		return nil
	}
	msg := s.flashes[0]
	s.flashes = s.flashes[1:]
	s.dirty = true
	return &msg
}
