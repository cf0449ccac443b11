// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily challenge.
//   - POST /daily/new         → start (or resume) today's round on the shared root
//   - POST /daily/submit      → submit a word to today's round
//   - GET  /daily/leaderboard → top 20 scores for today (or ?date=YYYY-MM-DD)
//
// Everyone gets the same root for a UTC date (HMAC of date + salt). A player
// has one live daily round per date; its best score is persisted after each
// accepted word.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/daily"
	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/store"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv   *Server
	store *daily.Store
	salt  string
	now   func() time.Time

	mu     sync.Mutex
	rounds map[string]*dailyRound // keyed by playerID|date
}

// dailyRound ties a live session to its player and date.
type dailyRound struct {
	sess      *game.Session
	playerID  string
	date      string
	wordIndex int
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:    s,
		salt:   s.cfg.DailySalt,
		now:    time.Now,
		rounds: make(map[string]*dailyRound),
	}
	if s.db != nil {
		dd.store = daily.NewStore(s.db.SQL)
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/submit", dd.handleSubmit)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// player returns the caller's identity and the id daily results are keyed by.
func (d *dailyServer) player(w http.ResponseWriter, r *http.Request) (store.Owner, string) {
	o := d.srv.owner(w, r)
	if o.UserID != "" {
		return o, o.UserID
	}
	return o, o.AnonID
}

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	roundRes
	Date      string `json:"date"`
	BestScore int    `json:"bestScore"`
}

// handleNew creates or resumes today's round for the caller.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	o, pid := d.player(w, r)
	now := d.now()
	date := daily.DateKey(now)
	root, idx, ok := daily.Root(now, d.salt, d.srv.lists.Roots)
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no_root_words")
		return
	}

	best := 0
	if d.store != nil {
		if prev, found, err := d.store.Get(r.Context(), pid, date); err != nil {
			log.Warn().Err(err).Msg("daily lookup")
		} else if found {
			best = prev.Score
		}
	}

	key := pid + "|" + date
	d.mu.Lock()
	dr, found := d.rounds[key]
	if !found {
		sess := game.NewSession(d.srv.engine, d.srv.lists.Language)
		if err := sess.StartWith(root); err != nil {
			d.mu.Unlock()
			log.Error().Err(err).Str("date", date).Msg("start daily round")
			writeError(w, http.StatusServiceUnavailable, "no_root_words")
			return
		}
		sess.Mode = game.ModeDaily
		sess.Owner = o.Key()
		dr = &dailyRound{sess: sess, playerID: pid, date: date, wordIndex: idx}
		d.rounds[key] = dr
	}
	d.mu.Unlock()

	if !found {
		// Saved for GET /round/{id}; /round/submit refuses daily rounds.
		if err := d.srv.sessions.Save(r.Context(), dr.sess); err != nil {
			log.Warn().Err(err).Msg("save daily session")
		}
		d.srv.recordRound(r.Context(), dr.sess.ID, dr.sess.Mode, root, o)
	}

	rd, st := dr.sess.Snapshot()
	_ = json.NewEncoder(w).Encode(dailyNewRes{roundRes: viewOf(dr.sess.ID, rd, st), Date: date, BestScore: best})
}

// handleSubmit validates a word against today's round and persists the
// running score when the word is accepted.
func (d *dailyServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	_, pid := d.player(w, r)
	date := daily.DateKey(d.now())

	d.mu.Lock()
	dr, ok := d.rounds[pid+"|"+date]
	d.mu.Unlock()
	if !ok || dr.sess.ID != req.RoundID {
		writeError(w, http.StatusConflict, "no_session")
		return
	}

	res, err := d.srv.apply(r.Context(), dr.sess, req.Word)
	if err != nil {
		writeError(w, http.StatusConflict, "not_started")
		return
	}
	if res.Accepted && d.store != nil {
		if err := d.store.Upsert(r.Context(), daily.Result{
			UserID: pid, Date: date, WordIndex: dr.wordIndex, Score: res.Score, Words: len(res.Words),
		}); err != nil {
			log.Warn().Err(err).Str("roundId", dr.sess.ID).Msg("daily upsert")
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for ?date= (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(d.now())
	}
	if d.store == nil {
		_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: []daily.LBRow{}})
		return
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
