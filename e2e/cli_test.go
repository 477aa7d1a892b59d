package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/santaworkshop/internal/api"
	"github.com/mcoot/santaworkshop/internal/api/response"
	"github.com/mcoot/santaworkshop/internal/cli"
	"github.com/mcoot/santaworkshop/internal/factory"
	sqlitestorage "github.com/mcoot/santaworkshop/internal/storage/sqlite"
	"github.com/mcoot/santaworkshop/internal/testutil"
)

// startTestServer serves a fully wired application over real HTTP
func startTestServer(t *testing.T, cfg factory.Config) (*factory.App, string) {
	t.Helper()

	app, err := factory.New(context.Background(), cfg)
	require.NoError(t, err)

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

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		_ = app.Close()
	})

	return app, server.URL
}

// runCLI executes santactl in process and returns its stdout
func runCLI(t *testing.T, serverURL string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--server", serverURL, "--output", "json"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func runCLIJSON[T any](t *testing.T, serverURL string, args ...string) T {
	t.Helper()

	out, err := runCLI(t, serverURL, args...)
	require.NoError(t, err, out)

	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestCLI_Health(t *testing.T) {
	_, url := startTestServer(t, factory.Config{})

	health := runCLIJSON[response.Health](t, url, "health")
	assert.Equal(t, "ok", health.Status)
}

func TestCLI_ProfileWalletAndShop(t *testing.T) {
	_, url := startTestServer(t, factory.Config{})

	added := runCLIJSON[response.AddProfile](t, url, "profile", "add", "Alice")
	assert.True(t, added.Added)

	_, err := runCLI(t, url, "wallet")
	var apiErr *cli.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NO_ACTIVE_PROFILE", apiErr.Code)

	roster := runCLIJSON[response.Roster](t, url, "session", "login", "Alice")
	assert.Equal(t, "Alice", roster.Active)

	wallet := runCLIJSON[response.Wallet](t, url, "wallet", "earn", "120")
	assert.Equal(t, 120, wallet.Points)

	wallet = runCLIJSON[response.Wallet](t, url, "shop", "buy", "hat")
	assert.Equal(t, 70, wallet.Points)
	assert.Equal(t, []string{"hat"}, wallet.Inventory)

	_, err = runCLI(t, url, "shop", "buy", "hat")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "ALREADY_OWNED", apiErr.Code)

	shop := runCLIJSON[response.Shop](t, url, "shop")
	assert.Equal(t, 70, shop.Points)
	assert.True(t, shop.Items[0].Owned)

	roster = runCLIJSON[response.Roster](t, url, "session", "logout")
	assert.False(t, roster.LoggedIn)
}

func TestCLI_Planner(t *testing.T) {
	_, url := startTestServer(t, factory.Config{})

	plan := runCLIJSON[response.Plan](t, url, "planner",
		"--name", "Mia",
		"--interest", "books",
		"--wish", "Sled=500",
		"--behavior", "4",
		"--budget", "1000",
	)

	require.NotEmpty(t, plan.Gifts)
	assert.Equal(t, "Sled", plan.Gifts[0].Name)
	assert.LessOrEqual(t, plan.Total, 1000.0)
	assert.Contains(t, plan.Message, "Good Child")
}

func TestCLI_MazeAndGames(t *testing.T) {
	_, url := startTestServer(t, factory.Config{})

	maze := runCLIJSON[response.Maze](t, url, "maze", "new")
	assert.Equal(t, 15, maze.Rows)

	_, err := runCLI(t, url, "maze", "move", "sideways")
	assert.Error(t, err)

	runCLIJSON[response.Roster](t, url, "session", "login", "Bob")

	catcher := runCLIJSON[response.Catcher](t, url, "game", "catcher", "start")
	assert.Equal(t, "running", catcher.Status)

	catcher = runCLIJSON[response.Catcher](t, url, "game", "catcher", "stop")
	assert.Equal(t, "idle", catcher.Status)

	trivia := runCLIJSON[response.Trivia](t, url, "game", "trivia", "start")
	require.NotNil(t, trivia.Question)

	trivia = runCLIJSON[response.Trivia](t, url, "game", "trivia", "answer", "1")
	assert.True(t, trivia.Answered)

	memory := runCLIJSON[response.Memory](t, url, "game", "memory", "start")
	assert.Len(t, memory.Cards, 16)
}

func TestCLI_TextOutput(t *testing.T) {
	_, url := startTestServer(t, factory.Config{})

	var stdout bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--server", url, "--output", "text", "session", "login", "Carol"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stdout.String(), "Logged in as: Carol")
}

func TestCLI_EventsStreamsSnapshot(t *testing.T) {
	_, url := startTestServer(t, factory.Config{})
	runCLIJSON[response.Roster](t, url, "session", "login", "Dana")

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	var stdout bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--server", url, "--output", "json", "events", "memory", "--json"})
	require.NoError(t, cmd.ExecuteContext(ctx))

	assert.Contains(t, stdout.String(), `"event":"snapshot"`)
}

func TestSQLiteStatePersistsAcrossRestarts(t *testing.T) {
	sqliteCfg := sqlitestorage.DefaultConfig()
	sqliteCfg.Path = filepath.Join(t.TempDir(), "santa.db")
	cfg := factory.Config{StorageType: factory.StorageTypeSQLite, SQLiteConfig: &sqliteCfg}

	first, err := factory.New(context.Background(), cfg)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, first.Identity.SetActive(ctx, "Eve"))
	require.NoError(t, first.Economy.AddPoints(ctx, 300))
	_, err = first.Shop.Purchase(ctx, "sleigh")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	_, url := startTestServer(t, cfg)

	roster := runCLIJSON[response.Roster](t, url, "session")
	assert.Equal(t, "Eve", roster.Active)

	wallet := runCLIJSON[response.Wallet](t, url, "wallet")
	assert.Equal(t, 0, wallet.Points)
	assert.Equal(t, []string{"sleigh"}, wallet.Inventory)
}
