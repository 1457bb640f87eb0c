package repository

import (
	"menara_math_backend/internal/model"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

func (r *MaterialRepository) Create(material *model.Material) error {
	return r.DB.Create(material).Error
}

func (r *MaterialRepository) Update(material *model.Material) error {
	return r.DB.Save(material).Error
}

func (r *MaterialRepository) Delete(id string) error {
	return r.DB.Delete(&model.Material{}, "id = ?", id).Error
}

func (r *MaterialRepository) FindByID(id string) (*model.Material, error) {
	var material model.Material
	err := r.DB.First(&material, "id = ?", id).Error
	return &material, err
}

// ListOrdered returns materials sorted by their curriculum position.
func (r *MaterialRepository) ListOrdered(activeOnly bool) ([]model.Material, error) {
	var materials []model.Material
	query := r.DB.Model(&model.Material{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("position asc").Find(&materials).Error
	return materials, err
}
