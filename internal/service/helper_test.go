package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"menara_math_backend/internal/config"
	"menara_math_backend/internal/model"
	"menara_math_backend/internal/repository"
	"menara_math_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens an isolated in-memory database with the production schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret-test-secret-test-secret",
			ExpireTime: time.Hour,
		},
		Practice: config.PracticeConfig{
			FloorsPerMaterial:    10,
			IdleTimeoutMinutes:   30,
			SweepIntervalMinutes: 5,
		},
	}
}

func newPracticeService(t *testing.T, db *gorm.DB, cfg *config.Config) *PracticeService {
	t.Helper()
	questionRepo := repository.NewQuestionRepository(db)
	return NewPracticeService(
		repository.NewPracticeSessionRepository(db),
		repository.NewAttemptRepository(db),
		questionRepo,
		repository.NewMaterialRepository(db),
		NewQuestionPicker(questionRepo),
		cfg,
		db,
	)
}

func createMaterial(t *testing.T, db *gorm.DB, title string, position int) *model.Material {
	t.Helper()
	material := &model.Material{
		Title:    title,
		Grade:    "4",
		Position: position,
		IsActive: true,
	}
	require.NoError(t, db.Create(material).Error)
	return material
}

// createQuestion inserts one question whose correct answer is always "A".
func createQuestion(t *testing.T, db *gorm.DB, materialID string, difficulty int) *model.Question {
	t.Helper()
	question := &model.Question{
		MaterialID:  materialID,
		Difficulty:  difficulty,
		Text:        fmt.Sprintf("Soal tingkat %d", difficulty),
		OptA:        "jawaban a",
		OptB:        "jawaban b",
		OptC:        "jawaban c",
		OptD:        "jawaban d",
		Correct:     "A",
		Hint1:       "hint pertama",
		Hint2:       "hint kedua",
		Hint3:       "hint ketiga",
		Explanation: "penjelasan lengkap",
	}
	require.NoError(t, db.Create(question).Error)
	return question
}
