package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/santaworkshop/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Health:
		o.printf("Status: %s\n", v.Status)
	case response.Roster:
		o.printRoster(v)
	case response.AddProfile:
		o.printAddProfile(v)
	case response.Wallet:
		o.printWallet(v)
	case response.Shop:
		o.printShop(v)
	case response.Plan:
		o.printPlan(v)
	case response.Maze:
		o.printMaze(v)
	case response.MazeMove:
		if !v.Moved {
			o.printf("Blocked!\n")
		}
		o.printMaze(v.Maze)
	case response.Catcher:
		o.printCatcher(v)
	case response.Snowball:
		o.printSnowball(v)
	case response.Interaction[response.Catcher]:
		o.printHit(v.Hit)
		o.printCatcher(v.State)
	case response.Interaction[response.Snowball]:
		o.printHit(v.Hit)
		o.printSnowball(v.State)
	case response.Summary:
		o.printf("Run %s finished with %d points, %d banked\n", v.RunID, v.FinalScore, v.Awarded)
	case response.Trivia:
		o.printTrivia(v)
	case response.Memory:
		o.printMemory(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printRoster(r response.Roster) {
	if r.LoggedIn {
		o.printf("Logged in as: %s\n", r.Active)
	} else {
		o.printf("Not logged in\n")
	}
	o.printf("Profiles (%d):\n", len(r.Profiles))
	for _, p := range r.Profiles {
		marker := ""
		if p == r.Active {
			marker = " [active]"
		}
		o.printf("  - %s%s\n", p, marker)
	}
}

func (o *Output) printAddProfile(a response.AddProfile) {
	if a.Added {
		o.printf("Profile added\n")
	} else {
		o.printf("Profile already exists\n")
	}
	o.printRoster(a.Roster)
}

func (o *Output) printWallet(w response.Wallet) {
	if w.Profile != "" {
		o.printf("Profile: %s\n", w.Profile)
	}
	o.printf("Points: %d\n", w.Points)
	if len(w.Inventory) == 0 {
		o.printf("Inventory: (empty)\n")
		return
	}
	o.printf("Inventory: %s\n", strings.Join(w.Inventory, ", "))
}

func (o *Output) printShop(s response.Shop) {
	o.printf("Points: %d\n", s.Points)
	for _, item := range s.Items {
		status := ""
		switch {
		case item.Owned:
			status = "owned"
		case item.Affordable:
			status = "buy now"
		default:
			status = fmt.Sprintf("need %d more", item.Shortfall)
		}
		o.printf("  %s %-8s %-20s %5d  %s\n", item.Icon, item.ID, item.Name, item.Cost, status)
	}
}

func (o *Output) printPlan(p response.Plan) {
	o.printf("%s\n", p.Message)
	if p.RatingLabel != "" {
		o.printf("Rating: %s\n", p.RatingLabel)
	}
	if len(p.Gifts) == 0 {
		o.printf("No gifts fit the budget\n")
	}
	for _, g := range p.Gifts {
		source := "wishlist"
		if g.IsSuggested {
			source = "suggested"
		}
		o.printf("  - %-24s %8.2f  %s (%s)\n", g.Name, g.Price, g.Category, source)
	}
	o.printf("Total: %.2f\n", p.Total)
	o.printf("Savings: %.2f\n", p.Remaining)
}

func (o *Output) printMaze(m response.Maze) {
	for y, row := range m.Cells {
		var b strings.Builder
		for x, cell := range row {
			switch {
			case m.Player.X == x && m.Player.Y == y:
				b.WriteString("S")
			case cell == "wall":
				b.WriteString("#")
			case cell == "end":
				b.WriteString("H")
			default:
				b.WriteString(".")
			}
		}
		o.printf("%s\n", b.String())
	}
	o.printf("Moves: %d\n", m.Moves)
	if m.Won {
		o.printf("You made it home!\n")
	}
}

func (o *Output) printSession(s response.Session) {
	o.printf("Game: %s\n", s.Game)
	o.printf("Status: %s\n", s.Status)
	if s.RunID != "" {
		o.printf("Run: %s\n", s.RunID)
	}
	o.printf("Score: %d\n", s.Score)
	o.printf("Time left: %ds\n", s.Remaining)
	if s.Status == "finished" {
		o.printf("Banked: %d\n", s.Awarded)
	}
}

func (o *Output) printCatcher(c response.Catcher) {
	o.printSession(c.Session)
	if len(c.Items) == 0 {
		return
	}
	o.printf("Falling (%d):\n", len(c.Items))
	for _, item := range c.Items {
		o.printf("  #%d %-6s at (%.0f, %.0f)\n", item.ID, item.Kind, item.X, item.Y)
	}
}

func (o *Output) printSnowball(s response.Snowball) {
	o.printSession(s.Session)
	var b strings.Builder
	for i := 0; i < s.Slots; i++ {
		if i == s.ActiveSlot {
			b.WriteString("[E]")
		} else {
			b.WriteString("[ ]")
		}
		if i%3 == 2 {
			b.WriteString("\n")
		}
	}
	o.printf("%s", b.String())
}

func (o *Output) printHit(hit bool) {
	if hit {
		o.printf("Hit!\n")
	} else {
		o.printf("Miss\n")
	}
}

func (o *Output) printTrivia(t response.Trivia) {
	o.printf("Status: %s\n", t.Status)
	o.printf("Correct: %d/%d\n", t.Correct, t.QuestionCount)
	if t.Status == "finished" {
		o.printf("Banked: %d\n", t.Awarded)
		return
	}
	if t.Question == nil {
		return
	}
	o.printf("\nQuestion %d/%d: %s\n", t.QuestionIndex+1, t.QuestionCount, t.Question.Text)
	for i, option := range t.Question.Options {
		marker := "  "
		if t.Question.Answer != nil && *t.Question.Answer == i {
			marker = "✔ "
		} else if t.Selected != nil && *t.Selected == i {
			marker = "✘ "
		}
		o.printf("  %s%d) %s\n", marker, i, option)
	}
}

func (o *Output) printMemory(m response.Memory) {
	o.printf("Status: %s\n", m.Status)
	o.printf("Moves: %d\n", m.Moves)
	var b strings.Builder
	for i, card := range m.Cards {
		switch {
		case card.Matched:
			_, _ = fmt.Fprintf(&b, "[%2d:%-9s]", card.ID, "match")
		case card.Flipped:
			_, _ = fmt.Fprintf(&b, "[%2d:%-9s]", card.ID, card.Symbol)
		default:
			_, _ = fmt.Fprintf(&b, "[%2d:%-9s]", card.ID, "?")
		}
		if i%4 == 3 {
			b.WriteString("\n")
		}
	}
	o.printf("%s", b.String())
	if m.Status == "finished" {
		o.printf("Banked: %d\n", m.Awarded)
	}
}
