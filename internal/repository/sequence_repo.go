package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketpos/internal/model"
)

// SequenceRepository hands out values from the global counters. Next is an
// atomic increment-and-get against the row, so two concurrent creators can
// never observe the same value (client-side "max + 1" would race).
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
	Seed(ctx context.Context, name string, start int64) error
}

type sequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) SequenceRepository {
	return &sequenceRepository{db: db}
}

func (r *sequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	err := GetDB(ctx, r.db).
		Raw("UPDATE sequences SET value = value + 1 WHERE name = ? RETURNING value", name).
		Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}

// Seed inserts the counter row if missing. Existing rows keep their value
// so re-seeding on boot never rolls a counter back.
func (r *sequenceRepository) Seed(ctx context.Context, name string, start int64) error {
	return GetDB(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Sequence{Name: name, Value: start}).Error
}
