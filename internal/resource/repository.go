package resource

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acmeweb/acme-api/internal/logger"
	"github.com/acmeweb/acme-api/internal/storeerr"
)

// Repository implements CRUD for one entity table. T is the record
// struct; its db tags must cover every column of the table.
type Repository[T any] struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
	def      Definition
}

// New creates a repository over db for the given table definition.
// txGetter may be nil; when it yields a transaction for the request
// context, all statements run on it.
func New[T any](db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx, def Definition) *Repository[T] {
	return &Repository[T]{db: db, txGetter: txGetter, def: def}
}

// Definition returns the table definition the repository was built with.
func (r *Repository[T]) Definition() Definition {
	return r.def
}

// DB exposes the underlying handle for bespoke per-entity queries.
func (r *Repository[T]) DB() *sqlx.DB {
	return r.db
}

func (r *Repository[T]) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Create inserts a record from the given field map and returns the
// stored row. Only declared insertable columns are used; uniqueness
// and referential breaches surface as constraint violations from the
// store itself, there is no pre-check.
func (r *Repository[T]) Create(ctx context.Context, fields map[string]any) (*T, error) {
	cols := make([]string, 0, len(r.def.Columns))
	binds := make([]string, 0, len(r.def.Columns))
	for _, c := range r.def.Columns {
		if _, ok := fields[c]; ok {
			cols = append(cols, c)
			binds = append(binds, ":"+c)
		}
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		r.def.Table, strings.Join(cols, ", "), strings.Join(binds, ", "),
	)

	rec, err := r.namedQueryRow(ctx, query, fields)
	r.logQuery(query, fields, err)
	return rec, err
}

// FetchAll returns every record ordered ascending by the declared
// sort column. The result is an empty slice, never nil.
func (r *Repository[T]) FetchAll(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY %s ASC", r.def.Table, r.def.OrderBy)

	out := make([]T, 0)
	err := sqlx.SelectContext(ctx, r.executor(ctx), &out, query)
	r.logQuery(query, nil, err)
	if err != nil {
		return nil, storeerr.Translate(err)
	}
	return out, nil
}

// FetchByID returns the record with the given id, or ErrNotFound.
func (r *Repository[T]) FetchByID(ctx context.Context, id uuid.UUID) (*T, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = $1", r.def.Table)

	var rec T
	err := sqlx.GetContext(ctx, r.executor(ctx), &rec, query, id)
	r.logQuery(query, []any{id}, err)
	if err != nil {
		return nil, storeerr.Translate(err)
	}
	return &rec, nil
}

// FetchBy returns the records whose column equals value, ordered by
// the declared sort column. column must be a declared column.
func (r *Repository[T]) FetchBy(ctx context.Context, column string, value any) ([]T, error) {
	if !r.def.hasColumn(column) {
		return nil, fmt.Errorf("table %s has no column %q", r.def.Table, column)
	}
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1 ORDER BY %s ASC",
		r.def.Table, column, r.def.OrderBy)

	out := make([]T, 0)
	err := sqlx.SelectContext(ctx, r.executor(ctx), &out, query, value)
	r.logQuery(query, []any{value}, err)
	if err != nil {
		return nil, storeerr.Translate(err)
	}
	return out, nil
}

// Update applies the declared mutable fields present in the map to
// the record with the given id and returns the updated row.
// When ownerID is non-nil the update is additionally scoped to the
// owner column; a zero-row outcome is disambiguated into ErrNotFound
// (no such id) or ErrForbidden (exists, different owner).
func (r *Repository[T]) Update(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID, fields map[string]any) (*T, error) {
	set := make([]string, 0, len(r.def.Updatable)+1)
	args := make(map[string]any, len(fields)+2)
	for _, c := range r.def.Updatable {
		if v, ok := fields[c]; ok {
			set = append(set, c+" = :"+c)
			args[c] = v
		}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("no updatable fields for table %s", r.def.Table)
	}
	if r.def.Timestamps {
		set = append(set, "updated_at = NOW()")
	}
	args["id"] = id

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = :id", r.def.Table, strings.Join(set, ", "))
	if ownerID != nil && r.def.OwnerColumn != "" {
		query += fmt.Sprintf(" AND %s = :owner_id", r.def.OwnerColumn)
		args["owner_id"] = *ownerID
	}
	query += " RETURNING *"

	rec, err := r.namedQueryRow(ctx, query, args)
	r.logQuery(query, args, err)
	if err == nil && rec == nil {
		return nil, r.zeroRowError(ctx, id)
	}
	return rec, err
}

// Destroy deletes the record with the given id, scoped to the owner
// column when ownerID is non-nil, and returns the deleted row. A
// zero-row delete returns (nil, nil): deletion is idempotent in
// effect and never errors on an absent record.
func (r *Repository[T]) Destroy(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*T, error) {
	args := map[string]any{"id": id}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = :id", r.def.Table)
	if ownerID != nil && r.def.OwnerColumn != "" {
		query += fmt.Sprintf(" AND %s = :owner_id", r.def.OwnerColumn)
		args["owner_id"] = *ownerID
	}
	query += " RETURNING *"

	rec, err := r.namedQueryRow(ctx, query, args)
	r.logQuery(query, args, err)
	return rec, err
}

// namedQueryRow executes a named statement expected to return at most
// one row and scans it into T. A zero-row result yields (nil, nil).
func (r *Repository[T]) namedQueryRow(ctx context.Context, query string, arg any) (*T, error) {
	rows, err := sqlx.NamedQueryContext(ctx, r.executor(ctx), query, arg)
	if err != nil {
		return nil, storeerr.Translate(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, storeerr.Translate(err)
		}
		return nil, nil
	}

	var rec T
	if err := rows.StructScan(&rec); err != nil {
		return nil, storeerr.Translate(err)
	}
	return &rec, nil
}

// zeroRowError decides why an owner-scoped statement matched nothing.
func (r *Repository[T]) zeroRowError(ctx context.Context, id uuid.UUID) error {
	if _, err := r.FetchByID(ctx, id); err != nil {
		return err
	}
	return storeerr.ErrForbidden
}

// logQuery logs the statement single-line with its args and outcome.
func (r *Repository[T]) logQuery(query string, args any, err error) {
	logger.Log.Infow("query",
		"table", r.def.Table,
		"statement", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)
}
