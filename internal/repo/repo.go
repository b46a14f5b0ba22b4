// Package repo persists record store collections as schemaless JSON
// documents in SQLite. The store does not validate field contents; it
// assigns ids, merges patches, and answers equality filters.
package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Repo struct {
	DB *sql.DB

	// Now is overridable in tests.
	Now func() time.Time
}

var ErrNotFound = errors.New("not found")

// Collections served by the record store.
var Collections = []string{
	"usuarios",
	"empresas",
	"funcionarios",
	"avaliacoes",
	"entrevistas-pais",
	"encaminhamentos",
}

// KnownCollection reports whether name is a served collection.
func KnownCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}

// List returns every record of a collection in insertion order.
func (r Repo) List(ctx context.Context, collection string) ([]map[string]any, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT body_json FROM records WHERE collection=? ORDER BY rowid`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []map[string]any{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		body, err := decode(raw)
		if err != nil {
			return nil, err
		}
		res = append(res, body)
	}
	return res, rows.Err()
}

// ListByField returns records whose named field equals value. The filter
// compares the stringified field, matching how query parameters arrive.
func (r Repo) ListByField(ctx context.Context, collection, field, value string) ([]map[string]any, error) {
	all, err := r.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	res := []map[string]any{}
	for _, body := range all {
		if stringify(body[field]) == value {
			res = append(res, body)
		}
	}
	return res, nil
}

// Get returns one record.
func (r Repo) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	var raw string
	err := r.DB.QueryRowContext(ctx,
		`SELECT body_json FROM records WHERE collection=? AND id=?`, collection, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode(raw)
}

// Create stores a new record, assigning a fresh id unless the body
// already carries a non-empty one.
func (r Repo) Create(ctx context.Context, collection string, body map[string]any) (map[string]any, error) {
	if body == nil {
		body = map[string]any{}
	}
	id := stringify(body["id"])
	if id == "" {
		id = uuid.NewString()
	}
	body["id"] = id
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO records(collection,id,body_json,created_at) VALUES (?,?,?,?)`,
		collection, id, string(raw), now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Patch merges the supplied fields over the stored record and returns
// the result. The id field is immutable and ignored in patches.
func (r Repo) Patch(ctx context.Context, collection, id string, fields map[string]any) (map[string]any, error) {
	body, err := r.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		body[k] = v
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	_, err = r.DB.ExecContext(ctx,
		`UPDATE records SET body_json=? WHERE collection=? AND id=?`, string(raw), collection, id)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Delete removes a record.
func (r Repo) Delete(ctx context.Context, collection, id string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM records WHERE collection=? AND id=?`, collection, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of records in a collection.
func (r Repo) Count(ctx context.Context, collection string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM records WHERE collection=?`, collection).Scan(&n)
	return n, err
}

func decode(raw string) (map[string]any, error) {
	body := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return body, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; render integral ids plainly.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
