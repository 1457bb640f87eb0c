package controller

import (
	"errors"
	"net/http"

	"menara_math_backend/internal/service"
	"menara_math_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	PracticeService *service.PracticeService
}

func NewPracticeController(practiceService *service.PracticeService) *PracticeController {
	return &PracticeController{PracticeService: practiceService}
}

type startRequest struct {
	MaterialID string `json:"materialId"`
}

type answerRequest struct {
	SessionID  string `json:"sessionId" binding:"required"`
	QuestionID string `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
	ResponseMs int    `json:"responseMs"`
}

type endRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Reason    string `json:"reason"`
}

// @Summary Mulai sesi latihan
// @Description Membuka sesi latihan baru; materi dipilih otomatis dari progres siswa jika tidak diberikan
// @Tags Latihan
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body startRequest false "Materi (opsional)"
// @Success 200 {object} util.Response
// @Router /practice/start [post]
func (c *PracticeController) Start(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req startRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	result, err := c.PracticeService.Start(user.UserID, req.MaterialID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Kirim jawaban
// @Description Menilai jawaban atas soal aktif sesi; salah 4 kali memaksa belajar materi
// @Tags Latihan
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body answerRequest true "Jawaban"
// @Success 200 {object} util.Response
// @Router /practice/answer [post]
func (c *PracticeController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req answerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.PracticeService.SubmitAnswer(service.SubmitAnswerInput{
		SessionID:  req.SessionID,
		QuestionID: req.QuestionID,
		Answer:     req.Answer,
		ResponseMs: req.ResponseMs,
	})
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Akhiri sesi latihan
// @Description Menutup sesi dan mengembalikan statistik; idempoten untuk sesi yang sudah berakhir
// @Tags Latihan
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body endRequest true "Alasan berakhir"
// @Success 200 {object} util.Response
// @Router /practice/end [post]
func (c *PracticeController) End(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req endRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.PracticeService.End(req.SessionID, req.Reason)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

func (c *PracticeController) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidAnswer):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrNoQuestions):
		util.ErrorWithCode(ctx, http.StatusNotFound, util.CodeNoQuestions, err.Error())
	case errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrMaterialNotFound):
		util.ErrorWithCode(ctx, http.StatusNotFound, util.CodeNotFound, err.Error())
	case errors.Is(err, util.ErrSessionNotActive),
		errors.Is(err, util.ErrQuestionMismatch):
		util.ErrorWithCode(ctx, http.StatusConflict, util.CodeStateConflict, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
