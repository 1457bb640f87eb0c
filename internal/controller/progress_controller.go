package controller

import (
	"menara_math_backend/internal/service"
	"menara_math_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// @Summary Progres siswa
// @Description Total lantai, materi saat ini, akurasi dan jumlah sesi
// @Tags Siswa
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /student/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.GetStudentProgress(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
