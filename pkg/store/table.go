// Package store is the local database side of the gateways: one generic
// gorm table per entity.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Table wraps one gorm model. Missing rows are reported as a nil record,
// not an error.
type Table[T any] struct{ db *gorm.DB }

func NewTable[T any](db *gorm.DB) *Table[T] { return &Table[T]{db: db} }

// Add inserts rec and fills its primary key.
func (t *Table[T]) Add(ctx context.Context, rec *T) error {
	return t.db.WithContext(ctx).Create(rec).Error
}

// Put inserts rec or replaces the row with the same primary key.
func (t *Table[T]) Put(ctx context.Context, rec *T) error {
	return t.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(rec).Error
}

func (t *Table[T]) BulkPut(ctx context.Context, recs []T) error {
	if len(recs) == 0 {
		return nil
	}
	return t.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(&recs, 100).Error
}

func (t *Table[T]) Get(ctx context.Context, id uint) (*T, error) {
	var out T
	err := t.db.WithContext(ctx).First(&out, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// First returns the first row whose indexed column equals value.
func (t *Table[T]) First(ctx context.Context, column string, value any) (*T, error) {
	var out T
	err := t.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Where returns every row whose column equals value, newest first.
func (t *Table[T]) Where(ctx context.Context, column string, value any) ([]T, error) {
	var out []T
	err := t.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Order("created_at desc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// All returns every row, newest first.
func (t *Table[T]) All(ctx context.Context) ([]T, error) {
	var out []T
	if err := t.db.WithContext(ctx).Order("created_at desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the row with id. A missing row is not an error.
func (t *Table[T]) Delete(ctx context.Context, id uint) error {
	return t.db.WithContext(ctx).Delete(new(T), id).Error
}

func (t *Table[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := t.db.WithContext(ctx).Model(new(T)).Count(&n).Error
	return n, err
}

func (t *Table[T]) Clear(ctx context.Context) error {
	return t.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T)).Error
}
