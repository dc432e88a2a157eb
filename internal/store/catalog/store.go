// internal/store/catalog/store.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"ticketbot/internal/common/logger"
)

const (
	movieNamesCacheKey    = "catalog:movies"
	theatersCacheKeyStem  = "catalog:theaters:"
	defaultLookupCacheTTL = 5 * time.Minute
)

// Store reads the movie catalog from Postgres with a Redis read-through cache
// in front of the listing queries. Identity lookups always go to the database.
type Store struct {
	db     *sql.DB
	cache  *redis.Client
	table  string
	ttl    time.Duration
	logger logger.Logger
}

// New builds a catalog store over the given movie table. cache may be nil,
// in which case every listing hits the database.
func New(db *sql.DB, cache *redis.Client, table string, ttl time.Duration, log logger.Logger) *Store {
	if ttl <= 0 {
		ttl = defaultLookupCacheTTL
	}
	return &Store{
		db:     db,
		cache:  cache,
		table:  table,
		ttl:    ttl,
		logger: log,
	}
}

// FindCatalogID resolves a movie/theater pair to its catalog row id. The
// second return is false when no row matches; that is not an error.
func (s *Store) FindCatalogID(ctx context.Context, movieName, theater string) (int, bool, error) {
	query := fmt.Sprintf(
		"SELECT movie_id FROM %s WHERE LOWER(movie_name) = LOWER($1) AND LOWER(theater) = LOWER($2)",
		s.table,
	)

	var id int
	err := s.db.QueryRowContext(ctx, query, movieName, theater).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("catalog lookup: %w", err)
	}
	return id, true, nil
}

// ListMovieNames returns the distinct movie names on offer, lower-cased.
func (s *Store) ListMovieNames(ctx context.Context) ([]string, error) {
	if names, ok := s.fromCache(ctx, movieNamesCacheKey); ok {
		return names, nil
	}

	query := fmt.Sprintf("SELECT DISTINCT movie_name FROM %s", s.table)
	names, err := s.queryNames(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	s.toCache(ctx, movieNamesCacheKey, names)
	return names, nil
}

// ListTheaters returns the theaters offering the given movie, lower-cased.
func (s *Store) ListTheaters(ctx context.Context, movieName string) ([]string, error) {
	key := theatersCacheKeyStem + strings.ToLower(movieName)
	if names, ok := s.fromCache(ctx, key); ok {
		return names, nil
	}

	query := fmt.Sprintf(
		"SELECT DISTINCT theater FROM %s WHERE LOWER(movie_name) = LOWER($1)",
		s.table,
	)
	names, err := s.queryNames(ctx, query, movieName)
	if err != nil {
		return nil, fmt.Errorf("list theaters: %w", err)
	}

	s.toCache(ctx, key, names)
	return names, nil
}

func (s *Store) queryNames(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, strings.ToLower(name))
	}
	return names, rows.Err()
}

func (s *Store) fromCache(ctx context.Context, key string) ([]string, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		s.logger.Warn("catalog cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false
	}

	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		s.logger.Warn("catalog cache entry malformed", map[string]interface{}{
			"key": key,
		})
		return nil, false
	}
	return names, true
}

func (s *Store) toCache(ctx context.Context, key string, names []string) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(names)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("catalog cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
