// Package store persists user-defined templates and their version history in
// SQLite.
package store

import (
	"database/sql"

	"github.com/VoxDroid/relcfg/internal/template"
)

// Record is a stored template row.
type Record struct {
	ID          int64
	Name        string
	Description sql.NullString
	Format      string
	Body        string
	CreatedAt   string
	UpdatedAt   string
}

// Template converts the record for use in a template.Registry.
func (r Record) Template() template.Template {
	return template.Template{
		Name:        r.Name,
		Description: r.Description.String,
		Format:      r.Format,
		Body:        r.Body,
		Source:      template.SourceStore,
	}
}

// Version is a snapshot of a stored template taken on every write.
type Version struct {
	ID          int64
	TemplateID  int64
	Version     int
	CreatedAt   string
	AuthorName  sql.NullString
	AuthorEmail sql.NullString
	Description sql.NullString
	Body        string
	Operation   string
}

// Author stamps version rows. The zero value records no author.
type Author struct {
	Name  string
	Email string
}

// NewTemplate is the input to CreateTemplate.
type NewTemplate struct {
	Name        string
	Description string
	Format      string
	Body        string
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
