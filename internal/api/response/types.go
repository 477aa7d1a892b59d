package response

import (
	"time"

	"github.com/mcoot/santaworkshop/internal/model"
)

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}

// Roster lists profiles and the active one
type Roster struct {
	Profiles []string `json:"profiles"`
	Active   string   `json:"active,omitempty"`
	LoggedIn bool     `json:"logged_in"`
}

// RosterFromModel converts a model.Roster
func RosterFromModel(r model.Roster) Roster {
	profiles := make([]string, len(r.Profiles))
	for i, p := range r.Profiles {
		profiles[i] = string(p)
	}
	return Roster{
		Profiles: profiles,
		Active:   string(r.Active),
		LoggedIn: r.LoggedIn(),
	}
}

// AddProfile is the response for adding a profile
type AddProfile struct {
	Added  bool   `json:"added"`
	Roster Roster `json:"roster"`
}

// Wallet is the active profile's balance and inventory
type Wallet struct {
	Profile   string   `json:"profile,omitempty"`
	Points    int      `json:"points"`
	Inventory []string `json:"inventory"`
}

// WalletFromModel converts a model.Wallet. A nil wallet renders as empty.
func WalletFromModel(w *model.Wallet) Wallet {
	if w == nil {
		return Wallet{Inventory: []string{}}
	}
	inventory := make([]string, len(w.Inventory))
	for i, id := range w.Inventory {
		inventory[i] = string(id)
	}
	return Wallet{
		Profile:   string(w.Profile),
		Points:    w.Points,
		Inventory: inventory,
	}
}

// ShopItem is one shop listing
type ShopItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Cost       int    `json:"cost"`
	Icon       string `json:"icon"`
	Owned      bool   `json:"owned"`
	Affordable bool   `json:"affordable"`
	Shortfall  int    `json:"shortfall,omitempty"`
}

// Shop is the shop listing response
type Shop struct {
	Points int        `json:"points"`
	Items  []ShopItem `json:"items"`
}

// ShopFromModel converts listings for a balance
func ShopFromModel(points int, listings []model.ShopListing) Shop {
	items := make([]ShopItem, len(listings))
	for i, l := range listings {
		items[i] = ShopItem{
			ID:         string(l.Item.ID),
			Name:       l.Item.Name,
			Cost:       l.Item.Cost,
			Icon:       l.Item.Icon,
			Owned:      l.Owned,
			Affordable: l.Affordable,
			Shortfall:  l.Shortfall,
		}
	}
	return Shop{Points: points, Items: items}
}

// Gift is one suggested present
type Gift struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	IsSuggested bool    `json:"is_suggested"`
}

// Plan is the gift suggestion response
type Plan struct {
	Gifts       []Gift  `json:"gifts"`
	Total       float64 `json:"total"`
	Remaining   float64 `json:"remaining"`
	Message     string  `json:"message"`
	RatingLabel string  `json:"rating_label"`
}

// PlanFromModel converts a model.PlanResult
func PlanFromModel(r model.PlanResult, ratingLabel string) Plan {
	gifts := make([]Gift, len(r.Gifts))
	for i, g := range r.Gifts {
		gifts[i] = Gift{
			ID:          g.ID,
			Name:        g.Name,
			Price:       g.Price,
			Category:    g.Category,
			IsSuggested: g.IsSuggested,
		}
	}
	return Plan{
		Gifts:       gifts,
		Total:       r.Total,
		Remaining:   r.Remaining,
		Message:     r.Message,
		RatingLabel: ratingLabel,
	}
}

// Point is a grid coordinate
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Maze is the maze game state
type Maze struct {
	Rows   int        `json:"rows"`
	Cols   int        `json:"cols"`
	Cells  [][]string `json:"cells"`
	Start  Point      `json:"start"`
	End    Point      `json:"end"`
	Player Point      `json:"player"`
	Moves  int        `json:"moves"`
	Won    bool       `json:"won"`
}

// MazeMove is the response to a move request
type MazeMove struct {
	Moved bool `json:"moved"`
	Maze  Maze `json:"maze"`
}

// MazeFromModel converts a model.MazeState
func MazeFromModel(s model.MazeState) Maze {
	cells := make([][]string, len(s.Maze.Cells))
	for y, row := range s.Maze.Cells {
		cells[y] = make([]string, len(row))
		for x, c := range row {
			cells[y][x] = string(c)
		}
	}
	return Maze{
		Rows:   s.Maze.Rows,
		Cols:   s.Maze.Cols,
		Cells:  cells,
		Start:  Point{X: s.Maze.Start.X, Y: s.Maze.Start.Y},
		End:    Point{X: s.Maze.End.X, Y: s.Maze.End.Y},
		Player: Point{X: s.Player.X, Y: s.Player.Y},
		Moves:  s.Moves,
		Won:    s.Won,
	}
}

// Session is the state shared by every timed game
type Session struct {
	RunID     string     `json:"run_id,omitempty"`
	Game      string     `json:"game"`
	Status    string     `json:"status"`
	Score     int        `json:"score"`
	Remaining int        `json:"remaining"`
	Awarded   int        `json:"awarded"`
	StartedAt *time.Time `json:"started_at,omitempty"`
}

// SessionFromModel converts a model.SessionState
func SessionFromModel(s model.SessionState) Session {
	session := Session{
		RunID:     string(s.RunID),
		Game:      string(s.Kind),
		Status:    string(s.Status),
		Score:     s.Score,
		Remaining: s.Remaining,
		Awarded:   s.Awarded,
	}
	if !s.StartedAt.IsZero() {
		startedAt := s.StartedAt
		session.StartedAt = &startedAt
	}
	return session
}

// FallingItem is one item in the catcher play area
type FallingItem struct {
	ID    int     `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Speed float64 `json:"speed"`
	Kind  string  `json:"kind"`
}

// Catcher is the gift catcher state
type Catcher struct {
	Session
	Items []FallingItem `json:"items"`
}

// CatcherFromModel converts a model.CatcherState
func CatcherFromModel(s model.CatcherState) Catcher {
	items := make([]FallingItem, len(s.Items))
	for i, it := range s.Items {
		items[i] = FallingItem{ID: it.ID, X: it.X, Y: it.Y, Speed: it.Speed, Kind: string(it.Kind)}
	}
	return Catcher{Session: SessionFromModel(s.SessionState), Items: items}
}

// Snowball is the snowball fight state
type Snowball struct {
	Session
	Slots      int `json:"slots"`
	ActiveSlot int `json:"active_slot"`
}

// SnowballFromModel converts a model.SnowballState
func SnowballFromModel(s model.SnowballState) Snowball {
	return Snowball{
		Session:    SessionFromModel(s.SessionState),
		Slots:      s.Slots,
		ActiveSlot: s.ActiveSlot,
	}
}

// Interaction is the response to a catch or whack
type Interaction[T any] struct {
	Hit   bool `json:"hit"`
	State T    `json:"state"`
}

// Summary is the result of finishing a timed game
type Summary struct {
	RunID      string    `json:"run_id"`
	Game       string    `json:"game"`
	FinalScore int       `json:"final_score"`
	Awarded    int       `json:"awarded"`
	FinishedAt time.Time `json:"finished_at"`
}

// SummaryFromModel converts a model.SessionSummary
func SummaryFromModel(s model.SessionSummary) Summary {
	return Summary{
		RunID:      string(s.RunID),
		Game:       string(s.Kind),
		FinalScore: s.FinalScore,
		Awarded:    s.Awarded,
		FinishedAt: s.FinishedAt,
	}
}

// Question is a trivia question
type Question struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Answer  *int     `json:"answer,omitempty"`
}

// Trivia is the trivia game state
type Trivia struct {
	RunID         string    `json:"run_id,omitempty"`
	Status        string    `json:"status"`
	QuestionIndex int       `json:"question_index"`
	QuestionCount int       `json:"question_count"`
	Question      *Question `json:"question,omitempty"`
	Answered      bool      `json:"answered"`
	Selected      *int      `json:"selected,omitempty"`
	Correct       int       `json:"correct"`
	Awarded       int       `json:"awarded"`
}

// TriviaFromModel converts a model.TriviaState
func TriviaFromModel(s model.TriviaState) Trivia {
	t := Trivia{
		RunID:         string(s.RunID),
		Status:        string(s.Status),
		QuestionIndex: s.QuestionIndex,
		QuestionCount: s.QuestionCount,
		Answered:      s.Answered,
		Correct:       s.Correct,
		Awarded:       s.Awarded,
	}
	if s.Question != nil {
		q := &Question{Text: s.Question.Text, Options: s.Question.Options}
		if s.Question.Answer >= 0 {
			answer := s.Question.Answer
			q.Answer = &answer
		}
		t.Question = q
	}
	if s.Selected >= 0 {
		selected := s.Selected
		t.Selected = &selected
	}
	return t
}

// Card is one memory card. Symbol is empty while face down.
type Card struct {
	ID      int    `json:"id"`
	Symbol  string `json:"symbol,omitempty"`
	Flipped bool   `json:"flipped"`
	Matched bool   `json:"matched"`
}

// Memory is the memory game state
type Memory struct {
	RunID      string `json:"run_id,omitempty"`
	Status     string `json:"status"`
	Cards      []Card `json:"cards"`
	Processing bool   `json:"processing"`
	Moves      int    `json:"moves"`
	Awarded    int    `json:"awarded"`
}

// MemoryFromModel converts a model.MemoryState
func MemoryFromModel(s model.MemoryState) Memory {
	cards := make([]Card, len(s.Cards))
	for i, c := range s.Cards {
		cards[i] = Card{ID: c.ID, Symbol: string(c.Symbol), Flipped: c.Flipped, Matched: c.Matched}
	}
	return Memory{
		RunID:      string(s.RunID),
		Status:     string(s.Status),
		Cards:      cards,
		Processing: s.Processing,
		Moves:      s.Moves,
		Awarded:    s.Awarded,
	}
}

// Event is a game event pushed over SSE
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Game      string    `json:"game"`
	RunID     string    `json:"run_id"`
	State     Session   `json:"state"`
}

// EventFromModel converts a model.Event
func EventFromModel(e model.Event) Event {
	return Event{
		Type:      string(e.Type),
		Timestamp: e.Timestamp,
		Game:      string(e.Kind),
		RunID:     string(e.RunID),
		State:     SessionFromModel(e.State),
	}
}
