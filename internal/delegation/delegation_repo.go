package delegation

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=delegation_repo.go -destination=mock/delegation_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, d *Delegation) error
	FindByManager(ctx context.Context, managerID string) ([]Delegation, error)
	FindActive(ctx context.Context, managerID string, at time.Time) (*Delegation, error)
	HasOverlapping(ctx context.Context, managerID string, from, to time.Time) (bool, error)
	Delete(ctx context.Context, managerID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Delegation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindByManager(ctx context.Context, managerID string) ([]Delegation, error) {
	var delegations []Delegation
	err := r.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Order("active_from DESC").
		Find(&delegations).Error
	return delegations, err
}

// FindActive returns the delegation covering the given day, or nil
// when the manager has none. Ranges are inclusive; at must already be
// truncated to midnight so it compares cleanly against the date
// columns.
func (r *repository) FindActive(ctx context.Context, managerID string, at time.Time) (*Delegation, error) {
	var d Delegation
	err := r.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Where("active_from <= ? AND active_to >= ?", at, at).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) HasOverlapping(ctx context.Context, managerID string, from, to time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Delegation{}).
		Where("manager_id = ?", managerID).
		Where("NOT (active_to < ? OR active_from > ?)", from, to).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Delete(ctx context.Context, managerID, id string) error {
	return r.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Delete(&Delegation{}, "id = ?", id).Error
}
