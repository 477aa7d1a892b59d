package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/santaworkshop/internal/api/apierr"
	"github.com/mcoot/santaworkshop/internal/api/response"
)

var gameNames = []string{"catcher", "snowball", "trivia", "memory"}

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events <catcher|snowball|trivia|memory>",
		Short: "Watch a game's live event stream",
		Long: `Follow one game over SSE until interrupted.

The first message is a snapshot of the whole game. After that:
  session_started   a run began
  session_tick      the countdown lost a second
  score_changed     the score moved
  state_changed     the board moved without scoring
  session_finished  the run ended and its points were banked
  session_stopped   the run was abandoned`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: gameNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchGame(cmd, args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print one JSON object per event")

	return cmd
}

// SSEEvent is one message read off the stream
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

// sseReader splits a text/event-stream body into events
type sseReader struct {
	scanner *bufio.Scanner
}

func newSSEReader(r io.Reader) *sseReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &sseReader{scanner: scanner}
}

// Next blocks until a complete event arrives. It returns false at the end
// of the stream; Err reports why.
func (r *sseReader) Next() (SSEEvent, bool) {
	var (
		name string
		data []string
	)
	for r.scanner.Scan() {
		line := r.scanner.Text()
		switch {
		case line == "":
			if name != "" {
				return SSEEvent{Time: time.Now(), Event: name, Data: strings.Join(data, "\n")}, true
			}
			data = nil
		case strings.HasPrefix(line, ":"):
			// comment, used for keepalives
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
	return SSEEvent{}, false
}

func (r *sseReader) Err() error {
	return r.scanner.Err()
}

func watchGame(cmd *cobra.Command, game string, jsonOutput bool) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	url := strings.TrimSuffix(cfg.ServerURL, "/") + "/api/v1/games/" + game + "/events"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	// The shared client has a timeout; a stream must not.
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var errResp apierr.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errResp) == nil && errResp.Error.Code != "" {
			return &APIError{Status: resp.StatusCode, APIError: errResp.Error}
		}
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	out := cmd.OutOrStdout()
	if !jsonOutput {
		_, _ = fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", game)
	}

	reader := newSSEReader(resp.Body)
	for {
		evt, ok := reader.Next()
		if !ok {
			break
		}
		if jsonOutput {
			line, _ := json.Marshal(evt)
			_, _ = fmt.Fprintln(out, string(line))
			continue
		}
		_, _ = fmt.Fprintf(out, "[%s] %s\n", evt.Time.Format("15:04:05"), describeEvent(evt))
	}

	if err := reader.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}
	if !jsonOutput {
		_, _ = fmt.Fprintln(out, "Disconnected")
	}
	return nil
}

// describeEvent renders session events as a one-line score summary
func describeEvent(evt SSEEvent) string {
	switch evt.Event {
	case "connected", "snapshot":
		return evt.Event
	}

	var e response.Event
	if err := json.Unmarshal([]byte(evt.Data), &e); err != nil {
		return evt.Event + ": " + evt.Data
	}
	s := e.State
	if s.Status == "finished" {
		return fmt.Sprintf("%s: score %d, banked %d", evt.Event, s.Score, s.Awarded)
	}
	return fmt.Sprintf("%s: score %d, %ds left", evt.Event, s.Score, s.Remaining)
}
