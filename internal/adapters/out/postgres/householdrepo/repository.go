package householdrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/household"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormHouseholdRepository implements HouseholdRepository using GORM.
type GormHouseholdRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormHouseholdRepository creates a new GORM household repository.
func NewGormHouseholdRepository(db *gorm.DB, tracker aggregateTracker) *GormHouseholdRepository {
	return &GormHouseholdRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new household to the database.
func (r *GormHouseholdRepository) Add(ctx context.Context, aggregate *household.Household) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a household by ID.
func (r *GormHouseholdRepository) Get(ctx context.Context, id kernel.UUID) (*household.Household, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto HouseholdDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("household", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
