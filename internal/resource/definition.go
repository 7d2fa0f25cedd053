// Package resource implements the generic repository every entity
// table shares: parameterized CRUD over one table, with constraint
// enforcement left to the store and driver errors translated into
// the application taxonomy.
package resource

// Definition declares the shape of one entity table for the generic
// repository: which columns an insert may set, which columns an
// update may change, how listings are ordered, and (optionally)
// which column scopes ownership checks.
type Definition struct {
	// Table is the table name. Always a compile-time constant,
	// never derived from request input.
	Table string

	// Columns are the insertable columns, including id.
	Columns []string

	// Updatable are the mutable columns. id and created_at are
	// never listed here.
	Updatable []string

	// OrderBy is the column listings are sorted by, ascending.
	OrderBy string

	// OwnerColumn names the owning-user column for owner-scoped
	// updates and deletes. Empty for unowned tables.
	OwnerColumn string

	// Timestamps reports whether the table carries an updated_at
	// column to refresh on update.
	Timestamps bool
}

func (d Definition) hasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}
