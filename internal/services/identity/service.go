package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/santaworkshop/internal/model"
	"github.com/mcoot/santaworkshop/internal/storage"
)

// Observer is notified whenever the active profile changes.
// active is empty after a logout. Observers run while the service lock is
// held and must not call back into the service.
type Observer func(ctx context.Context, active model.ProfileName) error

// Service keeps the roster of local profiles and which one is active
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu        sync.Mutex
	roster    model.Roster
	observers []Observer
}

// New creates a new identity service with an empty roster.
// Call Load to rehydrate persisted state.
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("component", "identity-service")),
		roster:  model.Roster{Profiles: []model.ProfileName{}},
	}
}

// Subscribe registers an observer for active profile changes
func (s *Service) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Load rehydrates the roster from storage and notifies observers of the
// restored active profile. Missing state falls back to an empty roster.
func (s *Service) Load(ctx context.Context) error {
	profiles, err := s.storage.GetProfiles(ctx)
	if err != nil {
		return fmt.Errorf("loading profiles: %w", err)
	}

	active, err := s.storage.GetActiveProfile(ctx)
	if err != nil && !errors.Is(err, model.ErrNoActiveProfile) {
		return fmt.Errorf("loading active profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.roster = model.Roster{Profiles: profiles, Active: active}

	s.logger.Info("profiles loaded",
		slog.Int("profile_count", len(profiles)),
		slog.String("active", string(active)),
	)

	return s.notify(ctx)
}

// List returns profile names in insertion order
func (s *Service) List() []model.ProfileName {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.ProfileName, len(s.roster.Profiles))
	copy(result, s.roster.Profiles)
	return result
}

// Active returns the active profile, if any
func (s *Service) Active() (model.ProfileName, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.Active, s.roster.LoggedIn()
}

// Roster returns a snapshot of the roster
func (s *Service) Roster() model.Roster {
	s.mu.Lock()
	defer s.mu.Unlock()
	profiles := make([]model.ProfileName, len(s.roster.Profiles))
	copy(profiles, s.roster.Profiles)
	return model.Roster{Profiles: profiles, Active: s.roster.Active}
}

// Add appends a profile to the roster. Empty or duplicate names are ignored
// and reported as not added.
func (s *Service) Add(ctx context.Context, name string) (bool, error) {
	profile := model.NormalizeProfileName(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !profile.Valid() || s.roster.Contains(profile) {
		return false, nil
	}

	if err := s.appendProfile(ctx, profile); err != nil {
		return false, err
	}
	return true, nil
}

// SetActive logs a profile in. A name that is not yet registered is added to
// the roster first. Empty names are rejected.
func (s *Service) SetActive(ctx context.Context, name string) error {
	profile := model.NormalizeProfileName(name)
	if !profile.Valid() {
		return model.ErrInvalidProfileName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.roster.Contains(profile) {
		if err := s.appendProfile(ctx, profile); err != nil {
			return err
		}
	}

	if err := s.commitActive(ctx, profile); err != nil {
		return err
	}

	s.logger.Info("profile logged in", slog.String("profile", string(profile)))
	return nil
}

// ClearActive logs out. Logging out with no active profile is a no-op.
func (s *Service) ClearActive(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.roster.LoggedIn() {
		return nil
	}

	previous := s.roster.Active
	if err := s.commitActive(ctx, ""); err != nil {
		return err
	}

	s.logger.Info("profile logged out", slog.String("profile", string(previous)))
	return nil
}

// commitActive persists the active pointer and notifies observers. When an
// observer fails, the previous pointer is restored in storage and memory and
// observers are told about it again. Must be called with s.mu held.
func (s *Service) commitActive(ctx context.Context, profile model.ProfileName) error {
	previous := s.roster.Active

	if err := s.saveActive(ctx, profile); err != nil {
		return err
	}
	s.roster.Active = profile

	err := s.notify(ctx)
	if err == nil {
		return nil
	}

	s.logger.Error("profile observer failed, restoring previous profile",
		slog.String("profile", string(profile)),
		slog.String("previous", string(previous)),
		slog.String("error", err.Error()),
	)
	if rerr := s.saveActive(ctx, previous); rerr != nil {
		s.logger.Error("failed to restore active profile", slog.String("error", rerr.Error()))
	}
	s.roster.Active = previous
	if rerr := s.notify(ctx); rerr != nil {
		s.logger.Error("failed to re-notify previous profile", slog.String("error", rerr.Error()))
	}
	return fmt.Errorf("switching active profile: %w", err)
}

func (s *Service) saveActive(ctx context.Context, profile model.ProfileName) error {
	if profile == "" {
		if err := s.storage.ClearActiveProfile(ctx); err != nil {
			return fmt.Errorf("clearing active profile: %w", err)
		}
		return nil
	}
	if err := s.storage.SaveActiveProfile(ctx, profile); err != nil {
		return fmt.Errorf("saving active profile: %w", err)
	}
	return nil
}

func (s *Service) appendProfile(ctx context.Context, profile model.ProfileName) error {
	next := make([]model.ProfileName, len(s.roster.Profiles), len(s.roster.Profiles)+1)
	copy(next, s.roster.Profiles)
	next = append(next, profile)

	if err := s.storage.SaveProfiles(ctx, next); err != nil {
		return fmt.Errorf("saving profiles: %w", err)
	}
	s.roster.Profiles = next

	s.logger.Info("profile added", slog.String("profile", string(profile)))
	return nil
}

// notify must be called with s.mu held
func (s *Service) notify(ctx context.Context) error {
	for _, o := range s.observers {
		if err := o(ctx, s.roster.Active); err != nil {
			return err
		}
	}
	return nil
}
