// internal/corpus/store.go
package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/scoring"
)

var (
	ErrInstitutionNotFound = errors.New("institution not found")
)

const cacheKeyPrefix = "corpus:institution:"

// Store loads institution attribute records from PostgreSQL with a
// Redis read-through cache in front of single-record lookups.
type Store struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewStore(db *sql.DB, rdb *redis.Client, cacheTTL time.Duration, log logger.Logger) *Store {
	return &Store{
		db:       db,
		redis:    rdb,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"component": "corpus-store"}),
	}
}

// LoadAll reads every institution's attributes and builds one record
// per institution key. Rows with value types that cannot be decoded
// are skipped with a warning rather than failing the whole load.
func (s *Store) LoadAll(ctx context.Context) (map[string]*scoring.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT institution_key, attribute_key, attribute_value, value_type
		FROM institution_attributes
		ORDER BY institution_key`)
	if err != nil {
		return nil, fmt.Errorf("query institution attributes: %w", err)
	}
	defer rows.Close()

	flat := make(map[string]map[string]interface{})
	for rows.Next() {
		var instKey, attrKey, attrValue, valueType string
		if err := rows.Scan(&instKey, &attrKey, &attrValue, &valueType); err != nil {
			return nil, fmt.Errorf("scan institution attribute: %w", err)
		}

		value, err := decodeValue(attrValue, valueType)
		if err != nil {
			s.logger.Warn("skipping undecodable attribute", map[string]interface{}{
				"institution":  instKey,
				"attributeKey": attrKey,
				"valueType":    valueType,
				"error":        err.Error(),
			})
			continue
		}

		if _, ok := flat[instKey]; !ok {
			flat[instKey] = make(map[string]interface{})
		}
		flat[instKey][attrKey] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate institution attributes: %w", err)
	}

	records := make(map[string]*scoring.Record, len(flat))
	for key, attrs := range flat {
		records[key] = scoring.NewRecord(key, attrs)
	}

	s.logger.Info("corpus loaded", map[string]interface{}{
		"institutions": len(records),
	})
	return records, nil
}

// Get returns a single institution record, consulting the cache first.
// A cache miss falls through to PostgreSQL and repopulates the cache.
func (s *Store) Get(ctx context.Context, key string) (*scoring.Record, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKeyPrefix+key).Result()
		if err == nil {
			var attrs map[string]interface{}
			if err := json.Unmarshal([]byte(cached), &attrs); err == nil {
				return scoring.NewRecord(key, attrs), nil
			}
			// corrupt cache entry, fall through to the database
			s.redis.Del(ctx, cacheKeyPrefix+key)
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("cache lookup failed", map[string]interface{}{
				"institution": key,
				"error":       err.Error(),
			})
		}
	}

	attrs, err := s.loadOne(ctx, key)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if payload, err := json.Marshal(attrs); err == nil {
			if err := s.redis.Set(ctx, cacheKeyPrefix+key, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("cache store failed", map[string]interface{}{
					"institution": key,
					"error":       err.Error(),
				})
			}
		}
	}

	return scoring.NewRecord(key, attrs), nil
}

func (s *Store) loadOne(ctx context.Context, key string) (map[string]interface{}, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT attribute_key, attribute_value, value_type
		FROM institution_attributes
		WHERE institution_key = $1`, key)
	if err != nil {
		return nil, fmt.Errorf("query institution %s: %w", key, err)
	}
	defer rows.Close()

	attrs := make(map[string]interface{})
	for rows.Next() {
		var attrKey, attrValue, valueType string
		if err := rows.Scan(&attrKey, &attrValue, &valueType); err != nil {
			return nil, fmt.Errorf("scan institution attribute: %w", err)
		}
		value, err := decodeValue(attrValue, valueType)
		if err != nil {
			continue
		}
		attrs[attrKey] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate institution attributes: %w", err)
	}
	if len(attrs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInstitutionNotFound, key)
	}
	return attrs, nil
}

// decodeValue converts a stored attribute value into its typed form.
// Supported value types are string, number, boolean and json.
func decodeValue(raw, valueType string) (interface{}, error) {
	switch valueType {
	case "string":
		return raw, nil
	case "number":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parse number %q: %w", raw, err)
		}
		return f, nil
	case "boolean":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("parse boolean %q: %w", raw, err)
		}
		return b, nil
	case "json":
		var v interface{}
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("parse json value: %w", err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown value type %q", valueType)
	}
}
