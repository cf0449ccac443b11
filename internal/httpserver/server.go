// internal/httpserver/server.go
//
// HTTP server wiring for the Word Scramble backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Round endpoints (optional auth): POST /round/new, POST /round/submit, GET /round/{id}.
//   - Daily endpoints (optional auth): mounted under /daily.
//   - Auth + profile endpoints: /auth/*, /stats/me, /rounds/mine.
//
// Notes:
//   - Rejected words are normal game events: they come back as 200 with an
//     "error" object holding {reason, title, message}. Transport problems use
//     4xx/5xx with {"error":"<code>"}.
//   - History writes are best effort; a failing database never blocks play.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/store"
	"github.com/robalobadob/wordscramble/internal/words"
)

// Server bundles router, live sessions, word lists and history DB.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	sessions store.Sessions
	db       *store.DB
	lists    *words.Lists
	engine   *game.Engine
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, lists *words.Lists, sessions store.Sessions, db *store.DB) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		sessions: sessions,
		db:       db,
		lists:    lists,
		engine:   game.NewEngine(lists.Dict),
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.ClientOrigin))

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordscramble","endpoints":["/health","POST /round/new","POST /round/submit","GET /round/{id}","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		roots, dict := s.lists.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"roots": roots, "dictionary": dict})
	})

	// Rounds: guests can play.
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/round/new", s.handleNewRound)
		r.Post("/round/submit", s.handleSubmit)
		r.Get("/round/{id}", s.handleGetRound)
	})

	s.mountDaily(s.r.With(s.withOptionalAuth()))
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ ROUNDS -------------------------------------

// wordView is one accepted word as displayed: the word and its length.
type wordView struct {
	Word   string `json:"word"`
	Length int    `json:"length"`
}

// roundRes is the presentation view of a round.
type roundRes struct {
	RoundID string     `json:"roundId"`
	Root    string     `json:"root"`
	Words   []wordView `json:"words"` // newest first
	Score   int        `json:"score"`
	Status  string     `json:"status"`
}

func viewOf(id string, rd game.Round, st game.Status) roundRes {
	ws := make([]wordView, 0, len(rd.Used))
	for _, w := range rd.Used {
		ws = append(ws, wordView{Word: w, Length: len([]rune(w))})
	}
	return roundRes{RoundID: id, Root: rd.Root, Words: ws, Score: rd.Score, Status: string(st)}
}

// newRoundReq is the payload for POST /round/new.
type newRoundReq struct {
	Root     string `json:"root"`     // optional fixed root (testing)
	Previous string `json:"previous"` // optional round being replaced
}

// handleNewRound starts (or restarts) a round with a fresh root word.
func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	sess := game.NewSession(s.engine, s.lists.Language)
	if req.Root != "" {
		if err := sess.StartWith(req.Root); err != nil {
			writeError(w, http.StatusBadRequest, "bad_root")
			return
		}
	} else if err := sess.Start(s.lists.Roots); err != nil {
		log.Error().Err(err).Msg("start round")
		writeError(w, http.StatusServiceUnavailable, "no_root_words")
		return
	}
	o := s.owner(w, r)
	sess.Owner = o.Key()
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	if req.Previous != "" {
		s.dropPrevious(r, req.Previous, o)
	}

	rd, st := sess.Snapshot()
	s.recordRound(r.Context(), sess.ID, sess.Mode, rd.Root, o)
	_ = json.NewEncoder(w).Encode(viewOf(sess.ID, rd, st))
}

// dropPrevious removes a replaced round from the live store when the caller
// owns it. Rounds owned by someone else are left alone.
func (s *Server) dropPrevious(r *http.Request, id string, o store.Owner) {
	prev, err := s.sessions.Get(r.Context(), id)
	if err != nil || prev.Mode == game.ModeDaily {
		return
	}
	if !owns(r, prev, o) {
		log.Debug().Str("roundId", id).Msg("previous round not owned by caller")
		return
	}
	_ = s.sessions.Delete(r.Context(), id)
}

// submitReq is the payload for POST /round/submit.
type submitReq struct {
	RoundID string `json:"roundId"`
	Word    string `json:"word"`
}

// submitRes extends the round view with the submission's outcome.
type submitRes struct {
	roundRes
	Accepted   bool            `json:"accepted"`
	Ignored    bool            `json:"ignored"`
	Points     int             `json:"points"`
	Error      *game.Rejection `json:"error,omitempty"`
	Suggestion string          `json:"suggestion,omitempty"`
}

// handleSubmit validates one candidate word against a live round.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, err := s.sessions.Get(r.Context(), req.RoundID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if sess.Mode == game.ModeDaily {
		writeError(w, http.StatusConflict, "daily_round")
		return
	}
	res, err := s.apply(r.Context(), sess, req.Word)
	if err != nil {
		writeError(w, http.StatusConflict, "not_started")
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// apply runs the engine, records accepted words and attaches a suggestion
// to not-recognized rejections.
func (s *Server) apply(ctx context.Context, sess *game.Session, word string) (submitRes, error) {
	rd, out, err := sess.Submit(word)
	if err != nil {
		return submitRes{}, err
	}
	_, st := sess.Snapshot()
	res := submitRes{
		roundRes: viewOf(sess.ID, rd, st),
		Accepted: out.Accepted,
		Ignored:  out.Ignored,
		Points:   out.Points,
		Error:    out.Rejection,
	}

	switch {
	case out.Accepted:
		if s.db != nil {
			if err := s.db.RecordWord(ctx, sess.ID, out.Word, len(rd.Used), out.Points, rd.Score); err != nil {
				log.Warn().Err(err).Str("roundId", sess.ID).Msg("record word")
			}
		}
	case out.Rejection != nil && out.Rejection.Reason == game.ReasonNotRecognized:
		if sug, ok := s.lists.Dict.Suggest(out.Word, rd.Language, playable(rd)); ok {
			res.Suggestion = sug
		}
	}
	return res, nil
}

// playable reports whether a dictionary word would be accepted in rd.
func playable(rd game.Round) func(string) bool {
	return func(w string) bool {
		return game.LongEnough(w) &&
			game.IsOriginal(rd.Used, w) &&
			game.IsPossible(rd.Root, w) &&
			!game.StartsLikeRoot(rd.Root, w)
	}
}

// handleGetRound returns the current state of a live round.
func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.sessions.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "lookup_failed")
		return
	}
	rd, st := sess.Snapshot()
	_ = json.NewEncoder(w).Encode(viewOf(sess.ID, rd, st))
}

// recordRound persists the round's owner row. Failures are logged only.
func (s *Server) recordRound(ctx context.Context, id, mode, root string, o store.Owner) {
	if s.db == nil {
		return
	}
	if err := s.db.CreateRound(ctx, id, mode, root, o); err != nil {
		log.Warn().Err(err).Str("roundId", id).Msg("insert round row")
	}
}

// owner returns the signed-in user, or the anonymous cookie identity.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) store.Owner {
	if me := currentUser(r); me != nil {
		return store.Owner{UserID: me.ID}
	}
	return store.Owner{AnonID: s.ensureAnonID(w, r)}
}

// owns reports whether the caller o started sess, either as the signed-in
// user or from the same anonymous cookie.
func owns(r *http.Request, sess *game.Session, o store.Owner) bool {
	if sess.Owner == "" {
		return false
	}
	if sess.Owner == o.Key() {
		return true
	}
	c, err := r.Cookie(anonCookieName)
	return err == nil && c.Value != "" && sess.Owner == (store.Owner{AnonID: c.Value}).Key()
}

// writeError sends {"error": code} with status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
