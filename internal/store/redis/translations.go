// Package redis mirrors the in-memory translation caches to Redis so a
// restarted process starts warm. Memory stays authoritative; every
// operation here is best effort.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTranslationTTL bounds how long a language hash outlives its
// last write (7 days).
const DefaultTranslationTTL = 7 * 24 * time.Hour

// Store handles Redis operations for translation caches
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveTranslations merges entries into the language's translation hash
// and refreshes its TTL.
func (s *Store) SaveTranslations(ctx context.Context, lang string, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	key := TranslationsKey(lang)

	flat := make([]any, 0, len(entries)*2)
	for src, dst := range entries {
		flat = append(flat, src, dst)
	}

	pipe := s.client.Pipeline()
	pipe.HSet(ctx, key, flat...)
	pipe.Expire(ctx, key, DefaultTranslationTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save translations for %s: %w", lang, err)
	}
	return nil
}

// LoadTranslations fetches the full translation hash for a language.
// An absent key is a cache miss, not an error.
func (s *Store) LoadTranslations(ctx context.Context, lang string) (map[string]string, error) {
	entries, err := s.client.HGetAll(ctx, TranslationsKey(lang)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load translations for %s: %w", lang, err)
	}
	return entries, nil
}

// DropTranslations removes a language's cached translations.
func (s *Store) DropTranslations(ctx context.Context, lang string) error {
	if err := s.client.Del(ctx, TranslationsKey(lang)).Err(); err != nil {
		return fmt.Errorf("failed to drop translations for %s: %w", lang, err)
	}
	return nil
}
