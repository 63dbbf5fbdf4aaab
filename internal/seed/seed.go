// Package seed populates empty collections with synthetic demo data.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/recordvault/internal/models"
)

// Factory builds the index-th item (1-based) of unit.
type Factory[T any] func(unit, index int) T

// Target is a collection that can be seeded one unit at a time.
type Target[T any] interface {
	IsEmpty(ctx context.Context, unit int) (bool, error)
	InsertMany(ctx context.Context, items []T) error
}

// IfEmpty seeds every unit that is currently empty with perUnit items and
// returns the number of items inserted. Units that already hold data are
// left untouched, so running it twice inserts nothing the second time.
func IfEmpty[T any](ctx context.Context, target Target[T], units []int, perUnit int, factory Factory[T]) (int, error) {
	if perUnit <= 0 {
		return 0, nil
	}

	inserted := 0
	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			return inserted, err
		}

		empty, err := target.IsEmpty(ctx, unit)
		if err != nil {
			return inserted, fmt.Errorf("check unit %d: %w", unit, err)
		}
		if !empty {
			continue
		}

		items := make([]T, perUnit)
		for i := range items {
			items[i] = factory(unit, i+1)
		}
		if err := target.InsertMany(ctx, items); err != nil {
			return inserted, fmt.Errorf("seed unit %d: %w", unit, err)
		}
		inserted += perUnit
	}
	return inserted, nil
}

// Range returns the units from..to inclusive.
func Range(from, to int) []int {
	if to < from {
		return nil
	}
	out := make([]int, 0, to-from+1)
	for u := from; u <= to; u++ {
		out = append(out, u)
	}
	return out
}

// RecordFactory produces "Item {i} on Page {p}".
func RecordFactory(page, i int) models.Record {
	return models.Record{Name: fmt.Sprintf("Item %d on Page %d", i, page), Page: page}
}

// PatientFactory produces patient i created on 2024-11-{i}.
func PatientFactory(_, i int) models.PatientRecord {
	return models.PatientRecord{
		Name:      fmt.Sprintf("Patient %d", i),
		Diagnosis: fmt.Sprintf("Diagnosis %d", i),
		CreatedAt: time.Date(2024, time.November, i, 0, 0, 0, 0, time.UTC),
	}
}
