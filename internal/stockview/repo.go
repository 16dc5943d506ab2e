package stockview

import (
	"context"

	"gorm.io/gorm"

	"github.com/cducote/pawstock-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an aggregator repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListActiveProductsWithVariants(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("size ASC, color ASC")
		}).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
