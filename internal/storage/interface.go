package storage

import (
	"context"

	"github.com/mcoot/santaworkshop/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Profile roster operations
	GetProfiles(ctx context.Context) ([]model.ProfileName, error)
	SaveProfiles(ctx context.Context, profiles []model.ProfileName) error

	// Active profile operations
	GetActiveProfile(ctx context.Context) (model.ProfileName, error)
	SaveActiveProfile(ctx context.Context, name model.ProfileName) error
	ClearActiveProfile(ctx context.Context) error

	// Wallet operations
	GetWallet(ctx context.Context, profile model.ProfileName) (*model.Wallet, error)
	SaveWallet(ctx context.Context, wallet *model.Wallet) error
}
