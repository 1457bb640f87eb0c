package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"menara_math_backend/internal/model"
	"menara_math_backend/internal/repository"
	"menara_math_backend/internal/util"
	"menara_math_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	materialListCacheKey = "materials:ordered"
	materialListCacheTTL = 5 * time.Minute
)

// MaterialService serves the content store: the ordered material list the
// tower climbs through, per-material question pools, and the admin-side
// writes. Reads dwarf writes, so the ordered list sits in redis.
type MaterialService struct {
	Materials *repository.MaterialRepository
	Questions *repository.QuestionRepository
	Redis     *redis.Client
}

func NewMaterialService(materialRepo *repository.MaterialRepository, questionRepo *repository.QuestionRepository, rdb *redis.Client) *MaterialService {
	return &MaterialService{
		Materials: materialRepo,
		Questions: questionRepo,
		Redis:     rdb,
	}
}

// ListMaterials returns active materials in curriculum order, cached.
func (s *MaterialService) ListMaterials() ([]model.Material, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(context.Background(), materialListCacheKey).Result()
		if err == nil {
			var materials []model.Material
			if jsonErr := json.Unmarshal([]byte(val), &materials); jsonErr == nil {
				return materials, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("Material cache read failed", zap.Error(err))
		}
	}

	materials, err := s.Materials.ListOrdered(true)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(materials); err == nil {
			s.Redis.Set(context.Background(), materialListCacheKey, data, materialListCacheTTL)
		}
	}
	return materials, nil
}

type MaterialDetail struct {
	model.Material
	QuestionCount int64         `json:"questionCount"`
	ByDifficulty  map[int]int64 `json:"questionsByDifficulty"`
}

func (s *MaterialService) GetMaterialDetail(id string) (*MaterialDetail, error) {
	material, err := s.Materials.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrMaterialNotFound
		}
		return nil, err
	}

	total, err := s.Questions.CountByMaterial(id)
	if err != nil {
		return nil, err
	}
	byDifficulty, err := s.Questions.CountByDifficulty(id)
	if err != nil {
		return nil, err
	}

	return &MaterialDetail{
		Material:      *material,
		QuestionCount: total,
		ByDifficulty:  byDifficulty,
	}, nil
}

type MaterialRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Grade        string `json:"grade"`
	SummaryURL   string `json:"summaryUrl"`
	FullURL      string `json:"fullUrl"`
	VideoURL     string `json:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Position     int    `json:"position"`
	IsActive     *bool  `json:"isActive"`
}

func (s *MaterialService) CreateMaterial(req MaterialRequest) (*model.Material, error) {
	material := &model.Material{
		Title:        req.Title,
		Description:  req.Description,
		Grade:        req.Grade,
		SummaryURL:   req.SummaryURL,
		FullURL:      req.FullURL,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Position:     req.Position,
		IsActive:     true,
	}
	if material.Grade == "" {
		material.Grade = "4"
	}
	if req.IsActive != nil {
		material.IsActive = *req.IsActive
	}
	if err := s.Materials.Create(material); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return material, nil
}

func (s *MaterialService) UpdateMaterial(id string, req MaterialRequest) (*model.Material, error) {
	material, err := s.Materials.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrMaterialNotFound
		}
		return nil, err
	}

	material.Title = req.Title
	material.Description = req.Description
	if req.Grade != "" {
		material.Grade = req.Grade
	}
	material.SummaryURL = req.SummaryURL
	material.FullURL = req.FullURL
	material.VideoURL = req.VideoURL
	material.ThumbnailURL = req.ThumbnailURL
	material.Position = req.Position
	if req.IsActive != nil {
		material.IsActive = *req.IsActive
	}

	if err := s.Materials.Update(material); err != nil {
		return nil, err
	}
	s.invalidateCache()
	return material, nil
}

func (s *MaterialService) DeleteMaterial(id string) error {
	if err := s.Materials.Delete(id); err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

type QuestionRequest struct {
	Difficulty  int    `json:"difficulty" binding:"required,min=1,max=3"`
	Question    string `json:"question" binding:"required"`
	OptA        string `json:"optA" binding:"required"`
	OptB        string `json:"optB" binding:"required"`
	OptC        string `json:"optC" binding:"required"`
	OptD        string `json:"optD" binding:"required"`
	Correct     string `json:"correct" binding:"required,oneof=A B C D"`
	Hint1       string `json:"hint1"`
	Hint2       string `json:"hint2"`
	Hint3       string `json:"hint3"`
	Explanation string `json:"explanation"`
}

// CreateQuestions bulk-inserts questions for one material.
func (s *MaterialService) CreateQuestions(materialID string, reqs []QuestionRequest) ([]model.Question, error) {
	if _, err := s.Materials.FindByID(materialID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrMaterialNotFound
		}
		return nil, err
	}

	questions := make([]model.Question, 0, len(reqs))
	for _, req := range reqs {
		questions = append(questions, model.Question{
			MaterialID:  materialID,
			Difficulty:  req.Difficulty,
			Text:        req.Question,
			OptA:        req.OptA,
			OptB:        req.OptB,
			OptC:        req.OptC,
			OptD:        req.OptD,
			Correct:     req.Correct,
			Hint1:       req.Hint1,
			Hint2:       req.Hint2,
			Hint3:       req.Hint3,
			Explanation: req.Explanation,
		})
	}
	if err := s.Questions.CreateBatch(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// QuestionAdminView re-exposes the solution fields hidden from students.
type QuestionAdminView struct {
	model.Question
	Correct     string `json:"correct"`
	Hint1       string `json:"hint1,omitempty"`
	Hint2       string `json:"hint2,omitempty"`
	Hint3       string `json:"hint3,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// ListQuestions pages through a material's question pool for the admin UI.
func (s *MaterialService) ListQuestions(materialID string, page, limit int) ([]QuestionAdminView, int64, error) {
	if _, err := s.Materials.FindByID(materialID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, util.ErrMaterialNotFound
		}
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	questions, total, err := s.Questions.ListByMaterial(materialID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]QuestionAdminView, 0, len(questions))
	for _, q := range questions {
		views = append(views, QuestionAdminView{
			Question:    q,
			Correct:     q.Correct,
			Hint1:       q.Hint1,
			Hint2:       q.Hint2,
			Hint3:       q.Hint3,
			Explanation: q.Explanation,
		})
	}
	return views, total, nil
}

func (s *MaterialService) UpdateQuestion(id string, req QuestionRequest) (*model.Question, error) {
	question, err := s.Questions.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	question.Difficulty = req.Difficulty
	question.Text = req.Question
	question.OptA = req.OptA
	question.OptB = req.OptB
	question.OptC = req.OptC
	question.OptD = req.OptD
	question.Correct = req.Correct
	question.Hint1 = req.Hint1
	question.Hint2 = req.Hint2
	question.Hint3 = req.Hint3
	question.Explanation = req.Explanation

	if err := s.Questions.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *MaterialService) DeleteQuestion(id string) error {
	return s.Questions.Delete(id)
}

func (s *MaterialService) invalidateCache() {
	if s.Redis != nil {
		s.Redis.Del(context.Background(), materialListCacheKey)
	}
}
