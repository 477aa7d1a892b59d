package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/santaworkshop/internal/api"
	"github.com/mcoot/santaworkshop/internal/api/apierr"
	"github.com/mcoot/santaworkshop/internal/api/response"
	"github.com/mcoot/santaworkshop/internal/factory"
	"github.com/mcoot/santaworkshop/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	app.MockRandom.DefaultFloat = 0.99 // no catcher spawns unless queued
	t.Cleanup(func() { _ = app.Close() })

	router := api.NewRouter(api.RouterConfig{
		Logger:     testutil.NopLogger(),
		Identity:   app.Identity,
		Economy:    app.Economy,
		Shop:       app.Shop,
		Planner:    app.Planner,
		Maze:       app.Maze,
		Catcher:    app.Catcher,
		Snowball:   app.Snowball,
		Trivia:     app.Trivia,
		Memory:     app.Memory,
		HubManager: app.HubManager,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) login(t *testing.T, name string) {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/session/login", map[string]string{"name": name})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func requireErrorCode(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, rr.Code, rr.Body.String())
	resp := decodeBody[apierr.ErrorResponse](t, rr)
	assert.Equal(t, code, resp.Error.Code)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decodeBody[response.Health](t, rr).Status)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestAddProfiles(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/profiles", map[string]string{"name": "  Alice "})
	assert.Equal(t, http.StatusCreated, rr.Code)
	added := decodeBody[response.AddProfile](t, rr)
	assert.True(t, added.Added)
	assert.Equal(t, []string{"Alice"}, added.Roster.Profiles)

	rr = ts.request(http.MethodPost, "/api/v1/profiles", map[string]string{"name": "Alice"})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, decodeBody[response.AddProfile](t, rr).Added)

	rr = ts.request(http.MethodPost, "/api/v1/profiles", map[string]string{})
	requireErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)

	rr = ts.request(http.MethodGet, "/api/v1/profiles", nil)
	roster := decodeBody[response.Roster](t, rr)
	assert.Equal(t, []string{"Alice"}, roster.Profiles)
	assert.False(t, roster.LoggedIn)
}

func TestLoginAndLogout(t *testing.T) {
	ts := newTestServer(t)

	ts.login(t, "Bob")

	rr := ts.request(http.MethodGet, "/api/v1/session", nil)
	roster := decodeBody[response.Roster](t, rr)
	assert.True(t, roster.LoggedIn)
	assert.Equal(t, "Bob", roster.Active)

	rr = ts.request(http.MethodPost, "/api/v1/session/login", map[string]string{"name": "   "})
	requireErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidProfileName)

	rr = ts.request(http.MethodPost, "/api/v1/session/logout", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, decodeBody[response.Roster](t, rr).LoggedIn)

	rr = ts.request(http.MethodGet, "/api/v1/wallet", nil)
	requireErrorCode(t, rr, http.StatusUnauthorized, apierr.CodeNoActiveProfile)
}

func TestProfileGate(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{
		"/api/v1/wallet",
		"/api/v1/games/catcher",
		"/api/v1/games/trivia",
	} {
		rr := ts.request(http.MethodGet, path, nil)
		requireErrorCode(t, rr, http.StatusUnauthorized, apierr.CodeNoActiveProfile)
	}

	rr := ts.request(http.MethodPost, "/api/v1/shop/hat/buy", nil)
	requireErrorCode(t, rr, http.StatusUnauthorized, apierr.CodeNoActiveProfile)

	rr = ts.request(http.MethodGet, "/api/v1/shop", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestWalletEarnSpendAndInventory(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/wallet/earn", map[string]int{"amount": 80})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 80, decodeBody[response.Wallet](t, rr).Points)

	rr = ts.request(http.MethodPost, "/api/v1/wallet/spend", map[string]int{"amount": 30})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 50, decodeBody[response.Wallet](t, rr).Points)

	// Overspending clamps at zero
	rr = ts.request(http.MethodPost, "/api/v1/wallet/spend", map[string]int{"amount": 100})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, decodeBody[response.Wallet](t, rr).Points)

	rr = ts.request(http.MethodPost, "/api/v1/wallet/earn", map[string]int{"amount": -5})
	requireErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)

	ts.request(http.MethodPost, "/api/v1/wallet/inventory", map[string]string{"item_id": "star"})
	rr = ts.request(http.MethodPost, "/api/v1/wallet/inventory", map[string]string{"item_id": "star"})
	wallet := decodeBody[response.Wallet](t, rr)
	assert.Equal(t, []string{"star"}, wallet.Inventory)
	assert.Equal(t, "Alice", wallet.Profile)
}

func TestShopPurchase(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t, "Alice")
	ts.request(http.MethodPost, "/api/v1/wallet/earn", map[string]int{"amount": 200})

	rr := ts.request(http.MethodPost, "/api/v1/shop/tree/buy", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	wallet := decodeBody[response.Wallet](t, rr)
	assert.Equal(t, 50, wallet.Points)
	assert.Equal(t, []string{"tree"}, wallet.Inventory)

	rr = ts.request(http.MethodPost, "/api/v1/shop/tree/buy", nil)
	requireErrorCode(t, rr, http.StatusConflict, apierr.CodeAlreadyOwned)

	rr = ts.request(http.MethodPost, "/api/v1/shop/sleigh/buy", nil)
	requireErrorCode(t, rr, http.StatusConflict, apierr.CodeInsufficientPoints)

	rr = ts.request(http.MethodPost, "/api/v1/shop/pony/buy", nil)
	requireErrorCode(t, rr, http.StatusNotFound, apierr.CodeItemNotFound)

	rr = ts.request(http.MethodGet, "/api/v1/shop", nil)
	shop := decodeBody[response.Shop](t, rr)
	assert.Equal(t, 50, shop.Points)
	require.Len(t, shop.Items, 6)
	assert.Equal(t, "hat", shop.Items[0].ID)
	assert.True(t, shop.Items[0].Affordable)
	assert.True(t, shop.Items[1].Owned)
	assert.Equal(t, 250, shop.Items[2].Shortfall)
}

func TestPlannerSuggestions(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"child": map[string]any{
			"name":      "Mia",
			"age":       7,
			"gender":    "girl",
			"interests": []string{"books"},
		},
		"wishlist": []map[string]string{
			{"id": "w1", "name": "Sled", "price": "500"},
		},
		"behavior_score": 5,
		"budget":         "1000",
	}
	rr := ts.request(http.MethodPost, "/api/v1/planner/suggestions", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	plan := decodeBody[response.Plan](t, rr)
	require.Len(t, plan.Gifts, 3)
	assert.Equal(t, "Sled", plan.Gifts[0].Name)
	assert.False(t, plan.Gifts[0].IsSuggested)
	assert.Equal(t, "Chocolates", plan.Gifts[1].Name)
	assert.Equal(t, "Story Book", plan.Gifts[2].Name)
	assert.InDelta(t, 950, plan.Total, 0.001)
	assert.InDelta(t, 50, plan.Remaining, 0.001)
	assert.Contains(t, plan.Message, "Angel")
	assert.Equal(t, "😇 Absolute Angel!", plan.RatingLabel)

	body["behavior_score"] = 9
	rr = ts.request(http.MethodPost, "/api/v1/planner/suggestions", body)
	requireErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
}

func TestPlannerUnparseableBudgetIsZero(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"child":          map[string]any{"name": "Leo"},
		"behavior_score": 3,
		"budget":         "lots",
	}
	rr := ts.request(http.MethodPost, "/api/v1/planner/suggestions", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	plan := decodeBody[response.Plan](t, rr)
	assert.Empty(t, plan.Gifts)
	assert.Zero(t, plan.Total)
}

func TestMaze(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/maze", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	maze := decodeBody[response.Maze](t, rr)
	assert.Equal(t, 15, maze.Rows)
	assert.Equal(t, response.Point{X: 1, Y: 1}, maze.Player)
	assert.Equal(t, "start", maze.Cells[1][1])

	// The border is always wall
	rr = ts.request(http.MethodPost, "/api/v1/maze/move", map[string]string{"direction": "up"})
	require.Equal(t, http.StatusOK, rr.Code)
	move := decodeBody[response.MazeMove](t, rr)
	assert.False(t, move.Moved)
	assert.Equal(t, 0, move.Maze.Moves)

	rr = ts.request(http.MethodPost, "/api/v1/maze/move", map[string]string{"direction": "north"})
	requireErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
}

func TestCatcherRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t, "Alice")

	ts.app.MockRandom.QueueFloat(0.0, 0.1, 0.5, 0.0) // one gift
	rr := ts.request(http.MethodPost, "/api/v1/games/catcher/start", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	started := decodeBody[response.Catcher](t, rr)
	assert.Equal(t, "running", started.Status)
	assert.Equal(t, 30, started.Remaining)
	assert.NotEmpty(t, started.RunID)

	ts.app.MockClock.Advance(16 * time.Millisecond)

	rr = ts.request(http.MethodPost, "/api/v1/games/catcher/catch", map[string]int{"item_id": 1})
	require.Equal(t, http.StatusOK, rr.Code)
	caught := decodeBody[response.Interaction[response.Catcher]](t, rr)
	assert.True(t, caught.Hit)
	assert.Equal(t, 10, caught.State.Score)

	rr = ts.request(http.MethodPost, "/api/v1/games/catcher/finish", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	summary := decodeBody[response.Summary](t, rr)
	assert.Equal(t, 10, summary.FinalScore)
	assert.Equal(t, 10, summary.Awarded)

	rr = ts.request(http.MethodPost, "/api/v1/games/catcher/finish", nil)
	requireErrorCode(t, rr, http.StatusConflict, apierr.CodeSessionNotRunning)

	rr = ts.request(http.MethodGet, "/api/v1/wallet", nil)
	assert.Equal(t, 10, decodeBody[response.Wallet](t, rr).Points)
}

func TestSnowballStopDoesNotAward(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t, "Alice")

	ts.app.MockRandom.QueueIntn(3, 0)
	rr := ts.request(http.MethodPost, "/api/v1/games/snowball/start", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, 3, decodeBody[response.Snowball](t, rr).ActiveSlot)

	rr = ts.request(http.MethodPost, "/api/v1/games/snowball/whack", map[string]int{"slot": 3})
	assert.True(t, decodeBody[response.Interaction[response.Snowball]](t, rr).Hit)

	rr = ts.request(http.MethodPost, "/api/v1/games/snowball/stop", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "idle", decodeBody[response.Snowball](t, rr).Status)

	rr = ts.request(http.MethodGet, "/api/v1/wallet", nil)
	assert.Zero(t, decodeBody[response.Wallet](t, rr).Points)
}

func TestTriviaAnswer(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/games/trivia/answer", map[string]int{"option": 1})
	requireErrorCode(t, rr, http.StatusConflict, apierr.CodeSessionNotRunning)

	rr = ts.request(http.MethodPost, "/api/v1/games/trivia/start", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	trivia := decodeBody[response.Trivia](t, rr)
	require.NotNil(t, trivia.Question)
	assert.Nil(t, trivia.Question.Answer)
	assert.Equal(t, 5, trivia.QuestionCount)

	rr = ts.request(http.MethodPost, "/api/v1/games/trivia/answer", map[string]int{"option": 7})
	requireErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidOption)

	rr = ts.request(http.MethodPost, "/api/v1/games/trivia/answer", map[string]int{"option": 1})
	require.Equal(t, http.StatusOK, rr.Code)
	trivia = decodeBody[response.Trivia](t, rr)
	assert.True(t, trivia.Answered)
	assert.Equal(t, 1, trivia.Correct)
	require.NotNil(t, trivia.Question.Answer)
	assert.Equal(t, 1, *trivia.Question.Answer)
}

func TestMemoryReveal(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/games/memory/start", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	memory := decodeBody[response.Memory](t, rr)
	require.Len(t, memory.Cards, 16)
	for _, card := range memory.Cards {
		assert.Empty(t, card.Symbol)
	}

	rr = ts.request(http.MethodPost, "/api/v1/games/memory/reveal", map[string]int{"card_id": 0})
	require.Equal(t, http.StatusOK, rr.Code)
	memory = decodeBody[response.Memory](t, rr)
	assert.True(t, memory.Cards[0].Flipped)
	assert.NotEmpty(t, memory.Cards[0].Symbol)

	rr = ts.request(http.MethodPost, "/api/v1/games/memory/reveal", map[string]int{"card_id": 16})
	requireErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidCard)
}

func TestTurnGamesStop(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t, "Alice")

	ts.request(http.MethodPost, "/api/v1/games/trivia/start", nil)
	ts.request(http.MethodPost, "/api/v1/games/trivia/answer", map[string]int{"option": 1})
	rr := ts.request(http.MethodPost, "/api/v1/games/trivia/stop", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	trivia := decodeBody[response.Trivia](t, rr)
	assert.Equal(t, "idle", trivia.Status)
	assert.Nil(t, trivia.Question)

	ts.request(http.MethodPost, "/api/v1/games/memory/start", nil)
	ts.request(http.MethodPost, "/api/v1/games/memory/reveal", map[string]int{"card_id": 0})
	ts.request(http.MethodPost, "/api/v1/games/memory/reveal", map[string]int{"card_id": 1})
	rr = ts.request(http.MethodPost, "/api/v1/games/memory/stop", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "idle", decodeBody[response.Memory](t, rr).Status)

	ts.app.MockClock.Advance(time.Minute)
	assert.Zero(t, ts.app.MockClock.PendingTimers())
	assert.Zero(t, ts.app.Economy.Balance())

	rr = ts.request(http.MethodPost, "/api/v1/games/memory/reveal", map[string]int{"card_id": 2})
	requireErrorCode(t, rr, http.StatusConflict, apierr.CodeSessionNotRunning)
}

func TestEventsUnknownGame(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t, "Alice")

	rr := ts.request(http.MethodGet, "/api/v1/games/chess/events", nil)
	requireErrorCode(t, rr, http.StatusNotFound, apierr.CodeUnknownGame)
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/nope", nil)
	requireErrorCode(t, rr, http.StatusNotFound, apierr.CodeNotFound)
}

func TestEventsStreamSnapshot(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t, "Alice")

	server := httptest.NewServer(ts.handler)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/games/snowball/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	buf := make([]byte, 4096)
	var got []byte
	for !bytes.Contains(got, []byte("event: snapshot")) {
		n, err := resp.Body.Read(buf)
		require.NoError(t, err)
		got = append(got, buf[:n]...)
	}
	assert.Contains(t, string(got), `"game":"snowball"`)
}
