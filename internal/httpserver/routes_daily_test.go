package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordscramble/internal/daily"
)

type dailyNewResp struct {
	RoundID   string `json:"roundId"`
	Root      string `json:"root"`
	Score     int    `json:"score"`
	Date      string `json:"date"`
	BestScore int    `json:"bestScore"`
}

type lbResp struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

func TestDailyFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	alice := newClient(t, srv)
	bob := newClient(t, srv)

	var a dailyNewResp
	require.Equal(t, http.StatusOK, alice.do(http.MethodPost, "/daily/new", nil, &a))
	assert.Equal(t, "garden", a.Root, "single root in the test list")
	assert.Equal(t, 0, a.BestScore)

	// Resuming returns the same round.
	var again dailyNewResp
	require.Equal(t, http.StatusOK, alice.do(http.MethodPost, "/daily/new", nil, &again))
	assert.Equal(t, a.RoundID, again.RoundID)

	var res submitResp
	require.Equal(t, http.StatusOK, alice.do(http.MethodPost, "/daily/submit", submitReq{RoundID: a.RoundID, Word: "den"}, &res))
	require.True(t, res.Accepted)
	require.Equal(t, http.StatusOK, alice.do(http.MethodPost, "/daily/submit", submitReq{RoundID: a.RoundID, Word: "danger"}, &res))
	require.True(t, res.Accepted)
	assert.Equal(t, 12, res.Score)

	var b dailyNewResp
	require.Equal(t, http.StatusOK, bob.do(http.MethodPost, "/daily/new", nil, &b))
	assert.NotEqual(t, a.RoundID, b.RoundID)
	assert.Equal(t, a.Root, b.Root)
	require.Equal(t, http.StatusOK, bob.do(http.MethodPost, "/daily/submit", submitReq{RoundID: b.RoundID, Word: "end"}, &res))
	require.True(t, res.Accepted)

	// Bob cannot post into Alice's round.
	var e map[string]string
	assert.Equal(t, http.StatusConflict, bob.do(http.MethodPost, "/daily/submit", submitReq{RoundID: a.RoundID, Word: "grand"}, &e))

	var lb lbResp
	require.Equal(t, http.StatusOK, alice.do(http.MethodGet, "/daily/leaderboard", nil, &lb))
	assert.Equal(t, a.Date, lb.Date)
	require.Len(t, lb.Top, 2)
	assert.Equal(t, 12, lb.Top[0].Score)
	assert.Equal(t, 2, lb.Top[0].Words)
	assert.Equal(t, 4, lb.Top[1].Score)

	// Daily rounds only take words through /daily/submit.
	assert.Equal(t, http.StatusConflict, alice.do(http.MethodPost, "/round/submit", submitReq{RoundID: a.RoundID, Word: "grand"}, &e))
	assert.Equal(t, "daily_round", e["error"])

	// Neither can a new free round drop it.
	require.Equal(t, http.StatusOK, alice.do(http.MethodPost, "/round/new", newRoundReq{Previous: a.RoundID}, nil))

	// The daily round is also reachable through the generic round view.
	var view roundRes
	require.Equal(t, http.StatusOK, alice.do(http.MethodGet, "/round/"+a.RoundID, nil, &view))
	assert.Equal(t, 12, view.Score)
}

func TestDailyLeaderboard_OtherDate(t *testing.T) {
	srv, _ := newTestServer(t)
	var lb lbResp
	require.Equal(t, http.StatusOK, newClient(t, srv).do(http.MethodGet, "/daily/leaderboard?date=2001-01-01", nil, &lb))
	assert.Equal(t, "2001-01-01", lb.Date)
	assert.Empty(t, lb.Top)
}
