package shop

import (
	"context"
	"log/slog"

	"github.com/mcoot/santaworkshop/internal/model"
)

// Ledger is the part of the economy the shop needs
type Ledger interface {
	Wallet() (*model.Wallet, bool)
	Redeem(ctx context.Context, id model.ItemID, cost int) (*model.Wallet, error)
}

// Catalog is the fixed list of collectibles, cheapest first
var Catalog = []model.ShopItem{
	{ID: "hat", Name: "Santa's Hat", Cost: 50, Icon: "🎅"},
	{ID: "tree", Name: "Magic Tree", Cost: 150, Icon: "🎄"},
	{ID: "sleigh", Name: "Golden Sleigh", Cost: 300, Icon: "🛷"},
	{ID: "elf", Name: "Elf Helper", Cost: 500, Icon: "🧝"},
	{ID: "reindeer", Name: "Rudolph", Cost: 1000, Icon: "🦌"},
	{ID: "star", Name: "North Star", Cost: 2000, Icon: "🌟"},
}

// Service sells catalog items for points
type Service struct {
	ledger Ledger
	logger *slog.Logger
}

// New creates a new shop service
func New(ledger Ledger, logger *slog.Logger) *Service {
	return &Service{
		ledger: ledger,
		logger: logger.With(slog.String("component", "shop-service")),
	}
}

// Item looks up a catalog item by id
func Item(id model.ItemID) (model.ShopItem, bool) {
	for _, item := range Catalog {
		if item.ID == id {
			return item, true
		}
	}
	return model.ShopItem{}, false
}

// Listing annotates every catalog item for the active wallet.
// With no active profile nothing is owned or affordable.
func (s *Service) Listing() []model.ShopListing {
	wallet, ok := s.ledger.Wallet()
	if !ok {
		wallet = model.NewWallet("")
	}

	listings := make([]model.ShopListing, 0, len(Catalog))
	for _, item := range Catalog {
		owned := wallet.Owns(item.ID)
		affordable := wallet.Points >= item.Cost
		shortfall := 0
		if !owned && !affordable {
			shortfall = item.Cost - wallet.Points
		}
		listings = append(listings, model.ShopListing{
			Item:       item,
			Owned:      owned,
			Affordable: affordable,
			Shortfall:  shortfall,
		})
	}
	return listings
}

// Purchase buys an item for the active profile
func (s *Service) Purchase(ctx context.Context, id model.ItemID) (*model.Wallet, error) {
	item, ok := Item(id)
	if !ok {
		return nil, model.ErrItemNotFound
	}

	wallet, err := s.ledger.Redeem(ctx, item.ID, item.Cost)
	if err != nil {
		s.logger.Debug("purchase rejected",
			slog.String("item", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("item purchased",
		slog.String("profile", string(wallet.Profile)),
		slog.String("item", string(id)),
		slog.Int("cost", item.Cost),
	)
	return wallet, nil
}
