package planner

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/mcoot/santaworkshop/internal/model"
)

// MinBehaviorForWishes is the lowest behavior score that unlocks wishlist picks
const MinBehaviorForWishes = 3

// Service computes gift plans. It holds no state besides the catalog.
type Service struct {
	stash  []model.Gift
	logger *slog.Logger
}

// New creates a planner using the default stash
func New(logger *slog.Logger) *Service {
	return NewWithStash(Stash, logger)
}

// NewWithStash creates a planner with a custom fallback catalog
func NewWithStash(stash []model.Gift, logger *slog.Logger) *Service {
	return &Service{
		stash:  stash,
		logger: logger.With(slog.String("component", "planner")),
	}
}

// Plan runs Suggest and wraps the result with totals and the behavior message
func (s *Service) Plan(req model.PlanRequest) model.PlanResult {
	gifts := Suggest(req, s.stash)

	total := 0.0
	for _, g := range gifts {
		total += g.Price
	}

	s.logger.Debug("plan computed",
		slog.String("child", req.Child.Name),
		slog.Int("behavior", req.BehaviorScore),
		slog.Float64("budget", req.Budget),
		slog.Int("gift_count", len(gifts)),
		slog.Float64("total", total),
	)

	return model.PlanResult{
		Gifts:     gifts,
		Total:     total,
		Remaining: max(0, req.Budget-total),
		Message:   BehaviorMessage(req.BehaviorScore, req.Child.Name),
	}
}

// Suggest picks gifts whose running total stays within budget. Wishlist items
// come first, in order, when behavior allows; the matching part of the stash
// then fills what is left, cheapest first.
func Suggest(req model.PlanRequest, stash []model.Gift) []model.Gift {
	budget := req.Budget
	gifts := []model.Gift{}
	total := 0.0

	if req.BehaviorScore >= MinBehaviorForWishes {
		for _, wish := range req.WishList {
			if total+wish.EstimatedPrice > budget {
				continue
			}
			gifts = append(gifts, model.Gift{
				ID:       wish.ID,
				Name:     wish.Name,
				Price:    wish.EstimatedPrice,
				Category: WishlistCategory,
			})
			total += wish.EstimatedPrice
		}
	}

	pool := matchingStash(stash, req.Child.Interests)
	slices.SortStableFunc(pool, func(a, b model.Gift) int {
		switch {
		case a.Price < b.Price:
			return -1
		case a.Price > b.Price:
			return 1
		}
		return 0
	})

	for _, gift := range pool {
		if total+gift.Price > budget {
			continue
		}
		gift.IsSuggested = true
		gifts = append(gifts, gift)
		total += gift.Price
	}

	return gifts
}

// matchingStash returns stash entries related to the interests, or the whole
// stash when nothing matches
func matchingStash(stash []model.Gift, interests []string) []model.Gift {
	var pool []model.Gift
	for _, gift := range stash {
		if gift.Category == SweetsCategory || interested(gift.Category, interests) {
			pool = append(pool, gift)
		}
	}
	if len(pool) == 0 {
		pool = append(pool, stash...)
	}
	return pool
}

// interested reports a case-insensitive substring match in either direction.
// Blank interests match nothing.
func interested(category string, interests []string) bool {
	c := strings.ToLower(category)
	for _, interest := range interests {
		i := strings.ToLower(strings.TrimSpace(interest))
		if i == "" {
			continue
		}
		if strings.Contains(c, i) || strings.Contains(i, c) {
			return true
		}
	}
	return false
}

// BehaviorMessage is Santa's verdict for a behavior score
func BehaviorMessage(score int, name string) string {
	switch {
	case score == 5:
		return fmt.Sprintf("Ho Ho Ho! %s has been an Angel! 🌟", name)
	case score >= 3:
		return fmt.Sprintf("%s has been a Good Child! 🎄", name)
	}
	return fmt.Sprintf("Santa says %s needs to be a bit nicer next year! 🎅", name)
}

// RatingLabel describes a behavior score on the 1 to 5 scale
func RatingLabel(score int) string {
	switch score {
	case 5:
		return "😇 Absolute Angel!"
	case 4:
		return "😊 Very Good!"
	case 3:
		return "🙂 Good"
	case 2:
		return "😐 Naughty"
	case 1:
		return "😈 Very Naughty!"
	}
	return ""
}

// ParseAmount reads a budget or price typed by a user. Anything that is not a
// finite non-negative number reads as zero.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
