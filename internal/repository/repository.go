// Package repository wraps GORM queries for each aggregate.
package repository

import (
	"errors" // Error inspection

	"gorm.io/gorm" // GORM ORM library
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("record not found")

// notFound maps GORM's sentinel onto ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// countBy returns row counts of model grouped by column
func countBy(db *gorm.DB, model any, column string) (map[uint]int64, error) {
	var rows []struct {
		ID    uint
		Total int64
	}
	err := db.Model(model).
		Select(column + " AS id, COUNT(*) AS total").
		Where(column + " IS NOT NULL"). // Optional references
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]int64, len(rows))
	for _, r := range rows {
		out[r.ID] = r.Total
	}
	return out, nil
}
