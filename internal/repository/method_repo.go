// Package repository holds the database access layer.
package repository

import (
	"gorm.io/gorm"

	"zenpay/internal/models"
)

// MethodRepository handles payment method configuration rows.
type MethodRepository struct {
	db *gorm.DB
}

func NewMethodRepository(db *gorm.DB) *MethodRepository {
	return &MethodRepository{db: db}
}

// FindEnabled returns the enabled methods in display order.
func (r *MethodRepository) FindEnabled() ([]models.MethodConfig, error) {
	var methods []models.MethodConfig
	err := r.db.Where("enabled = ?", true).Order("sort_order ASC").Find(&methods).Error
	return methods, err
}

// FindByID returns a method by its identifier, enabled or not.
func (r *MethodRepository) FindByID(id string) (*models.MethodConfig, error) {
	var method models.MethodConfig
	if err := r.db.Where("id = ?", id).First(&method).Error; err != nil {
		return nil, err
	}
	return &method, nil
}

// Upsert inserts or updates a method row.
func (r *MethodRepository) Upsert(method *models.MethodConfig) error {
	return r.db.Save(method).Error
}

// Count returns the number of configured methods.
func (r *MethodRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.MethodConfig{}).Count(&count).Error
	return count, err
}
