package database

import (
	"context"
	"fmt"

	"github.com/lib/pq"
)

// ColumnInfo describes one column of a table
type ColumnInfo struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Nullable bool    `json:"nullable"`
	Default  *string `json:"default"`
}

// TableInfo describes a table in the public schema
type TableInfo struct {
	Name        string       `json:"name"`
	RowCount    int64        `json:"rowCount"`
	ColumnCount int          `json:"columnCount"`
	Columns     []ColumnInfo `json:"columns"`
}

// Tables lists every table in the public schema with its columns and row count
func (db *DB) Tables(ctx context.Context) ([]TableInfo, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, err
		}
		names = append(names, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tables := make([]TableInfo, 0, len(names))
	for _, name := range names {
		table, err := db.describe(ctx, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func (db *DB) describe(ctx context.Context, name string) (TableInfo, error) {
	info := TableInfo{Name: name, Columns: []ColumnInfo{}}

	rows, err := db.QueryContext(ctx, `
		SELECT column_name, data_type, is_nullable = 'YES', column_default
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position
	`, name)
	if err != nil {
		return info, fmt.Errorf("failed to describe table %s: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var col ColumnInfo
		if err := rows.Scan(&col.Name, &col.Type, &col.Nullable, &col.Default); err != nil {
			return info, err
		}
		info.Columns = append(info.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return info, err
	}
	info.ColumnCount = len(info.Columns)

	// identifiers cannot be bound as parameters
	query := "SELECT COUNT(*) FROM " + pq.QuoteIdentifier(name)
	if err := db.QueryRowContext(ctx, query).Scan(&info.RowCount); err != nil {
		return info, fmt.Errorf("failed to count rows in %s: %w", name, err)
	}
	return info, nil
}
