package controller

import (
	"errors"
	"net/http"

	"menara_math_backend/internal/service"
	"menara_math_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

type studentLoginRequest struct {
	NISN     string `json:"nisn" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type staffLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary Registrasi siswa
// @Tags Autentikasi
// @Accept json
// @Produce json
// @Param body body service.RegisterStudentRequest true "Data siswa"
// @Success 201 {object} util.Response
// @Router /auth/student/register [post]
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	var req service.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.RegisterStudent(req)
	if err != nil {
		if errors.Is(err, util.ErrNISNRegistered) {
			util.ErrorWithCode(ctx, http.StatusConflict, util.CodeStateConflict, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, user)
}

// @Summary Login siswa
// @Tags Autentikasi
// @Accept json
// @Produce json
// @Param body body studentLoginRequest true "Kredensial"
// @Success 200 {object} util.Response
// @Router /auth/student/login [post]
func (c *AuthController) LoginStudent(ctx *gin.Context) {
	var req studentLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.LoginStudent(req.NISN, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(ctx, http.StatusUnauthorized, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"token": token, "user": user})
}

// @Summary Login guru/admin
// @Tags Autentikasi
// @Accept json
// @Produce json
// @Param body body staffLoginRequest true "Kredensial"
// @Success 200 {object} util.Response
// @Router /auth/staff/login [post]
func (c *AuthController) LoginStaff(ctx *gin.Context) {
	var req staffLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.LoginStaff(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(ctx, http.StatusUnauthorized, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"token": token, "user": user})
}

// @Summary Profil pengguna
// @Tags Autentikasi
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.AuthService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
