package service

import (
	"menara_math_backend/internal/config"
	"menara_math_backend/internal/repository"
)

// ProgressService aggregates a student's climbing history: the same totals
// the engine uses to auto-select a material, plus accuracy for the student
// dashboard.
type ProgressService struct {
	Sessions  *repository.PracticeSessionRepository
	Attempts  *repository.AttemptRepository
	Materials *repository.MaterialRepository
	Cfg       *config.Config
}

func NewProgressService(
	sessionRepo *repository.PracticeSessionRepository,
	attemptRepo *repository.AttemptRepository,
	materialRepo *repository.MaterialRepository,
	cfg *config.Config,
) *ProgressService {
	return &ProgressService{
		Sessions:  sessionRepo,
		Attempts:  attemptRepo,
		Materials: materialRepo,
		Cfg:       cfg,
	}
}

type StudentProgress struct {
	CurrentFloor      int    `json:"currentFloor"`
	TotalFloors       int    `json:"totalFloors"`
	CurrentMaterial   string `json:"currentMaterial"`
	CurrentMaterialID string `json:"currentMaterialId"`
	Accuracy          int    `json:"accuracy"`
	TotalSessions     int    `json:"totalSessions"`
}

func (s *ProgressService) GetStudentProgress(studentUserID string) (*StudentProgress, error) {
	totalFloors, err := s.Sessions.TotalFloorsClimbed(studentUserID)
	if err != nil {
		return nil, err
	}

	totalSessions, err := s.Sessions.CountByStudent(studentUserID)
	if err != nil {
		return nil, err
	}

	stats, err := s.Attempts.StatsByStudent(studentUserID)
	if err != nil {
		return nil, err
	}

	accuracy := 0
	if stats.TotalAttempts > 0 {
		accuracy = int(float64(stats.CorrectAnswers)/float64(stats.TotalAttempts)*100 + 0.5)
	}

	progress := &StudentProgress{
		TotalFloors:   totalFloors,
		TotalSessions: int(totalSessions),
		Accuracy:      accuracy,
	}

	perMaterial := s.Cfg.Practice.FloorsPerMaterial
	progress.CurrentFloor = totalFloors%perMaterial + 1

	materials, err := s.Materials.ListOrdered(true)
	if err != nil {
		return nil, err
	}
	if len(materials) > 0 {
		index := totalFloors / perMaterial
		if index >= len(materials) {
			index = len(materials) - 1
		}
		progress.CurrentMaterial = materials[index].Title
		progress.CurrentMaterialID = materials[index].ID
	}

	return progress, nil
}
