// internal/httpserver/auth.go
//
// Player accounts: signup/login/logout, JWT cookies, anonymous identity and
// the gated profile endpoints (/auth/me, /stats/me, /rounds/mine).

package httpserver

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordscramble/internal/store"
)

const anonCookieName = "wordscramble_anon"

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// mountAuthRoutes registers authentication + gated routes.
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)

	s.r.With(s.requireAuth()).Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(currentUser(r))
	})

	s.r.With(s.requireAuth()).Get("/stats/me", func(w http.ResponseWriter, r *http.Request) {
		u, err := s.db.FindUserByID(r.Context(), currentUser(r).ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "not_found")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":           u.ID,
			"roundsPlayed": u.RoundsPlayed,
			"bestScore":    u.BestScore,
		})
	})

	s.r.With(s.requireAuth()).Get("/rounds/mine", func(w http.ResponseWriter, r *http.Request) {
		rows, err := s.db.RoundsByUser(r.Context(), currentUser(r).ID, 50)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}
		_ = json.NewEncoder(w).Encode(rows)
	})

	s.r.With(s.requireAuth()).Get("/rounds/mine/{id}/words", s.handleRoundWords)
}

// handleSignup creates a user, signs a JWT, sets the cookie and claims
// any anonymous rounds played from this browser.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "no_database")
		return
	}
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	username := normalizeUsername(body.Username)
	if err := validateSignup(username, body.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hash_failed")
		return
	}
	u, err := s.db.CreateUser(r.Context(), genID(), username, string(h))
	if errors.Is(err, store.ErrUsernameTaken) {
		writeError(w, http.StatusConflict, "Username taken")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("create user")
		writeError(w, http.StatusInternalServerError, "create_failed")
		return
	}
	if !s.issueToken(w, u.ID, u.Username) {
		return
	}
	s.claimAnon(r, u.ID)
	_ = json.NewEncoder(w).Encode(map[string]any{"id": u.ID, "username": u.Username, "createdAt": u.CreatedAt})
}

// handleLogin authenticates a user and sets the cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "no_database")
		return
	}
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.db.FindUserByUsername(r.Context(), normalizeUsername(body.Username))
	if err != nil || !checkPassword(u.PasswordHash, body.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if !s.issueToken(w, u.ID, u.Username) {
		return
	}
	s.claimAnon(r, u.ID)
	_ = json.NewEncoder(w).Encode(map[string]any{"id": u.ID, "username": u.Username})
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearAuthCookie(w)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleRoundWords lists accepted words of one of the caller's rounds.
func (s *Server) handleRoundWords(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	owned, err := s.db.RoundOwnedBy(r.Context(), id, currentUser(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if !owned {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	ws, err := s.db.RoundWords(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(ws)
}

func (s *Server) issueToken(w http.ResponseWriter, id, username string) bool {
	tok, exp, err := s.signJWT(id, username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return false
	}
	s.setAuthCookie(w, tok, exp)
	return true
}

// claimAnon moves rounds played under the anonymous cookie to userID.
func (s *Server) claimAnon(r *http.Request, userID string) {
	c, err := r.Cookie(anonCookieName)
	if err != nil || c.Value == "" {
		return
	}
	if err := s.db.ClaimAnonRounds(r.Context(), c.Value, userID); err != nil {
		log.Warn().Err(err).Msg("claim anon rounds")
	}
}

// ensureAnonID returns an existing anon cookie or sets a new one.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := genID()
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Auth.Production,
		SameSite: s.sameSite(),
		Expires:  time.Now().Add(180 * 24 * time.Hour),
	})
	return id
}

// ------------------------------ JWT & cookies ------------------------------

// signJWT creates an HS256 JWT with id/username and the configured expiry.
func (s *Server) signJWT(id, username string) (string, time.Time, error) {
	days := s.cfg.Auth.JWTExpiresDays
	if days <= 0 {
		days = 14
	}
	now := time.Now()
	exp := now.Add(time.Duration(days) * 24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       id,
		"username": username,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.cfg.Auth.JWTSecret))
	return ss, exp, err
}

func (s *Server) sameSite() http.SameSite {
	if s.cfg.Auth.Production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func (s *Server) cookieName() string {
	if s.cfg.Auth.CookieName == "" {
		return "wordscramble_token"
	}
	return s.cfg.Auth.CookieName
}

// setAuthCookie writes the auth token cookie.
func (s *Server) setAuthCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Auth.Production,
		SameSite: s.sameSite(),
		Expires:  exp,
	})
}

// clearAuthCookie deletes the auth token cookie.
func (s *Server) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Auth.Production,
		SameSite: s.sameSite(),
		MaxAge:   -1,
	})
}

// bearerOrCookie extracts a token from the Authorization header or cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cookieName()); err == nil {
		return c.Value
	}
	return ""
}

// ------------------------------- small util --------------------------------

func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

func normalizeUsername(u string) string {
	return strings.TrimSpace(u)
}

// validateSignup enforces basic username/password rules.
func validateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return errors.New("username must be 3-24 chars")
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return errors.New("username: letters, numbers, underscore only")
		}
	}
	if len(p) < 8 || len(p) > 100 {
		return errors.New("password must be 8-100 chars")
	}
	return nil
}

// genID creates a 22-char URL-safe, crypto-random identifier.
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
