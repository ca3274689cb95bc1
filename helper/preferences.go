package helper

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"event_manager/logger"

	"github.com/redis/go-redis/v9"
)

const (
	prefsMigratedKey    = "prefs:migrated"
	legacyFavoritesKey  = "legacy:favorites"
	prefsMigratedMarker = "1"
)

// PreferenceStore holds per-user dashboard preferences (favorited events) in
// process memory behind a lock. Nothing outside this type mutates the state;
// the only initialization path is Init, which performs the one-time migration
// from the legacy flat redis hash the old dashboard wrote.
type PreferenceStore struct {
	mu        sync.RWMutex
	favorites map[uint]map[uint]struct{}
}

func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{
		favorites: make(map[uint]map[uint]struct{}),
	}
}

// Init loads state for this process. On first run it migrates the legacy
// "legacy:favorites" hash (fields shaped "userId:eventId") and stamps
// "prefs:migrated" so the hash is never read again.
func (p *PreferenceStore) Init(ctx context.Context, client *redis.Client) error {
	migrated, err := client.Get(ctx, prefsMigratedKey).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("preferences: read migration flag: %w", err)
	}
	if migrated == prefsMigratedMarker {
		return nil
	}

	legacy, err := client.HGetAll(ctx, legacyFavoritesKey).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("preferences: read legacy favorites: %w", err)
	}

	p.mu.Lock()
	for field := range legacy {
		var userID, eventID uint
		if _, err := fmt.Sscanf(strings.TrimSpace(field), "%d:%d", &userID, &eventID); err != nil {
			logger.Warnf("preferences: skipping malformed legacy favorite %q", field)
			continue
		}
		if p.favorites[userID] == nil {
			p.favorites[userID] = make(map[uint]struct{})
		}
		p.favorites[userID][eventID] = struct{}{}
	}
	p.mu.Unlock()

	if err := client.Set(ctx, prefsMigratedKey, prefsMigratedMarker, 0).Err(); err != nil {
		return fmt.Errorf("preferences: stamp migration flag: %w", err)
	}

	if len(legacy) > 0 {
		logger.Infof("preferences: migrated %d legacy favorites", len(legacy))
	}
	return nil
}

func (p *PreferenceStore) AddFavorite(userID, eventID uint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.favorites[userID] == nil {
		p.favorites[userID] = make(map[uint]struct{})
	}
	p.favorites[userID][eventID] = struct{}{}
}

func (p *PreferenceStore) RemoveFavorite(userID, eventID uint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.favorites[userID], eventID)
}

func (p *PreferenceStore) IsFavorite(userID, eventID uint) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.favorites[userID][eventID]
	return ok
}

// Favorites returns the user's favorited event ids in stable order.
func (p *PreferenceStore) Favorites(userID uint) []uint {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids := make([]uint, 0, len(p.favorites[userID]))
	for id := range p.favorites[userID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
