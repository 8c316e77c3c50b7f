package directory

import (
	"context"
	"errors"
	"net/http"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/shared/apperror"

	"gorm.io/gorm"
)

// Directory is the employee directory contract the approval core
// consumes. The directory itself (profiles, org structure) is owned by
// other HR modules; this package only reads it.
//
//go:generate mockgen -source=directory.go -destination=mock/directory_mock.go -package=mock
type Directory interface {
	// ManagerOf returns the direct manager's id, or "" for employees
	// with no manager (e.g. the CEO).
	ManagerOf(ctx context.Context, employeeID string) (string, error)
	// ReportsOf returns the ids of an employee's direct reports.
	ReportsOf(ctx context.Context, managerID string) ([]string, error)
}

// Employee mirrors the columns of the platform's employees table this
// package needs.
type Employee struct {
	ID        string  `gorm:"type:uuid;primaryKey"`
	FullName  string  `gorm:"type:varchar(255)"`
	ManagerID *string `gorm:"type:uuid;index"`
}

type gormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) Directory {
	return &gormDirectory{db: db}
}

func (d *gormDirectory) ManagerOf(ctx context.Context, employeeID string) (string, error) {
	var e Employee
	err := d.db.WithContext(ctx).
		Select("id", "manager_id").
		First(&e, "id = ?", employeeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrEmployeeNotFound
		}
		return "", err
	}
	if e.ManagerID == nil {
		return "", nil
	}
	return *e.ManagerID, nil
}

func (d *gormDirectory) ReportsOf(ctx context.Context, managerID string) ([]string, error) {
	var ids []string
	err := d.db.WithContext(ctx).
		Model(&Employee{}).
		Where("manager_id = ?", managerID).
		Pluck("id", &ids).Error
	return ids, err
}

// ErrEmployeeNotFound surfaces ids that pass the gateway but have no
// directory row.
var ErrEmployeeNotFound = apperror.New(
	apperror.CodeNotFound,
	"employee not found in directory",
	http.StatusNotFound,
)
