package models

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Schema is the set of tables a shard carries, in dependency order.
type Schema struct {
	models []any
}

func NewSchema() *Schema {
	return &Schema{
		models: []any{
			&ProductCategory{},
			&Product{},
			&User{},
			&Order{},
			&OrderItem{},
		},
	}
}

func (s *Schema) Models() []any {
	out := make([]any, len(s.models))
	copy(out, s.models)
	return out
}

// Materialize creates the tables that do not exist yet. Existing tables are left alone.
func (s *Schema) Materialize(ctx context.Context, db *gorm.DB) ([]string, error) {
	migrator := db.WithContext(ctx).Migrator()

	var created []string
	for _, m := range s.models {
		if migrator.HasTable(m) {
			continue
		}
		if err := migrator.CreateTable(m); err != nil {
			return created, fmt.Errorf("create table for %T: %w", m, err)
		}
		created = append(created, tableName(db, m))
	}
	return created, nil
}

func tableName(db *gorm.DB, m any) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(m); err != nil {
		return fmt.Sprintf("%T", m)
	}
	return stmt.Schema.Table
}
