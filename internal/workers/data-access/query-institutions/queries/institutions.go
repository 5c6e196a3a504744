// internal/workers/data-access/query-institutions/queries/institutions.go
package queries

import (
	"context"
	"database/sql"
	"time"
)

func InstitutionRecord(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	institutionKey, ok := params["institutionKey"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT attribute_key, attribute_value, value_type
		FROM institution_attributes
		WHERE institution_key = $1
		ORDER BY attribute_key`, institutionKey)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var attributeKey, attributeValue, valueType string
		if err := rows.Scan(&attributeKey, &attributeValue, &valueType); err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"attributeKey":   attributeKey,
			"attributeValue": attributeValue,
			"valueType":      valueType,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func InstitutionDirectory(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	query := `
		SELECT institution_key, name, state
		FROM institutions
		ORDER BY name`
	args := []interface{}{}

	if state, ok := params["state"].(string); ok && state != "" {
		query = `
		SELECT institution_key, name, state
		FROM institutions
		WHERE state = $1
		ORDER BY name`
		args = append(args, state)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var institutionKey, name, state string
		if err := rows.Scan(&institutionKey, &name, &state); err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"institutionKey": institutionKey,
			"name":           name,
			"state":          state,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func InstitutionCorpus(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT institution_key, COUNT(*) AS attribute_count
		FROM institution_attributes
		GROUP BY institution_key
		ORDER BY institution_key`)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var institutionKey string
		var attributeCount int
		if err := rows.Scan(&institutionKey, &attributeCount); err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"institutionKey": institutionKey,
			"attributeCount": attributeCount,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}
