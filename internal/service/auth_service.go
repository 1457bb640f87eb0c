package service

import (
	"errors"
	"time"

	"menara_math_backend/internal/config"
	"menara_math_backend/internal/model"
	"menara_math_backend/internal/repository"
	"menara_math_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	Users *repository.UserRepository
	Cfg   *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		Users: userRepo,
		Cfg:   cfg,
	}
}

type RegisterStudentRequest struct {
	NISN     string `json:"nisn" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

func (s *AuthService) RegisterStudent(req RegisterStudentRequest) (*model.User, error) {
	_, err := s.Users.FindByNISN(req.NISN)
	if err == nil {
		return nil, util.ErrNISNRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Role:     model.Student,
		NISN:     req.NISN,
		Name:     req.Name,
		Password: string(hashedPassword),
	}
	if err := s.Users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// LoginStudent authenticates by NISN and issues a JWT.
func (s *AuthService) LoginStudent(nisn, password string) (string, *model.User, error) {
	user, err := s.Users.FindByNISN(nisn)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}
	return s.issueToken(user, password)
}

// LoginStaff authenticates teachers and admins by email.
func (s *AuthService) LoginStaff(email, password string) (string, *model.User, error) {
	user, err := s.Users.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}
	if user.Role == model.Student {
		return "", nil, util.ErrInvalidCredentials
	}
	return s.issueToken(user, password)
}

func (s *AuthService) issueToken(user *model.User, password string) (string, *model.User, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	if err := s.Users.UpdateLastLogin(user.ID); err != nil {
		return "", nil, err
	}
	user.LastLogin = time.Now()

	return token, user, nil
}

func (s *AuthService) GetProfile(userID string) (*model.User, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
