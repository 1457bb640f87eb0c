package repository

import (
	"menara_math_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) CreateBatch(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.Create(&questions).Error
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id string) error {
	return r.DB.Delete(&model.Question{}, "id = ?", id).Error
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, "id = ?", id).Error
	return &question, err
}

func (r *QuestionRepository) CountByMaterial(materialID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("material_id = ?", materialID).Count(&count).Error
	return count, err
}

// CountByDifficulty returns question counts per difficulty for one material.
func (r *QuestionRepository) CountByDifficulty(materialID string) (map[int]int64, error) {
	var rows []struct {
		Difficulty int
		Count      int64
	}
	err := r.DB.Model(&model.Question{}).
		Select("difficulty, COUNT(*) as count").
		Where("material_id = ?", materialID).
		Group("difficulty").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.Difficulty] = row.Count
	}
	return counts, nil
}

func (r *QuestionRepository) ListByMaterial(materialID string, page, limit int) ([]model.Question, int64, error) {
	var questions []model.Question
	var total int64
	query := r.DB.Model(&model.Question{}).Where("material_id = ?", materialID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("difficulty asc, created_at asc").Offset(offset).Limit(limit).Find(&questions).Error
	return questions, total, err
}

// CandidatesExact returns questions of one material at an exact difficulty,
// excluding the given question ids.
func (r *QuestionRepository) CandidatesExact(materialID string, difficulty int, excludeIDs []string) ([]model.Question, error) {
	var questions []model.Question
	query := r.DB.Where("material_id = ? AND difficulty = ?", materialID, difficulty)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}
	err := query.Find(&questions).Error
	return questions, err
}

// CandidatesAnyDifficulty returns questions of one material at any
// difficulty, excluding the given question ids.
func (r *QuestionRepository) CandidatesAnyDifficulty(materialID string, excludeIDs []string) ([]model.Question, error) {
	var questions []model.Question
	query := r.DB.Where("material_id = ?", materialID)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}
	err := query.Find(&questions).Error
	return questions, err
}
