package repository

import (
	"errors"

	"gorm.io/gorm"

	invdomain "github.com/tdnguyen/serialpos/internal/inventory/domain"
	"github.com/tdnguyen/serialpos/internal/supplier/domain"
)

type GormSupplierRepository struct {
	db *gorm.DB
}

func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

func (r *GormSupplierRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Supplier{})
}

func (r *GormSupplierRepository) Create(supplier *domain.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *GormSupplierRepository) FindByID(id uint) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := r.db.First(&supplier, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invdomain.ErrNotFound("supplier", id)
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *GormSupplierRepository) FindByIDs(ids []uint) ([]domain.Supplier, error) {
	var suppliers []domain.Supplier
	if len(ids) == 0 {
		return suppliers, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&suppliers).Error
	return suppliers, err
}

func (r *GormSupplierRepository) List(filter domain.SupplierFilter) ([]domain.Supplier, int64, error) {
	q := r.db.Model(&domain.Supplier{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("name LIKE ? OR code LIKE ? OR phone LIKE ? OR email LIKE ?", like, like, like, like)
	}
	switch filter.Status {
	case "active":
		q = q.Where("is_active = ?", true)
	case "inactive":
		q = q.Where("is_active = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var suppliers []domain.Supplier
	err := q.Order("id ASC").Find(&suppliers).Error
	return suppliers, total, err
}

func (r *GormSupplierRepository) Update(supplier *domain.Supplier) error {
	return r.db.Save(supplier).Error
}

func (r *GormSupplierRepository) Delete(id uint) error {
	res := r.db.Delete(&domain.Supplier{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return invdomain.ErrNotFound("supplier", id)
	}
	return nil
}
