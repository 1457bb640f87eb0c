package controller

import (
	"errors"

	"menara_math_backend/internal/service"
	"menara_math_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MaterialController struct {
	MaterialService *service.MaterialService
}

func NewMaterialController(materialService *service.MaterialService) *MaterialController {
	return &MaterialController{MaterialService: materialService}
}

// @Summary Daftar materi
// @Description Materi aktif terurut sesuai posisi kurikulum
// @Tags Materi
// @Produce json
// @Success 200 {object} util.Response
// @Router /materials [get]
func (c *MaterialController) ListMaterials(ctx *gin.Context) {
	materials, err := c.MaterialService.ListMaterials()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"materials": materials})
}

// @Summary Detail materi
// @Description Materi beserta jumlah soal per tingkat kesulitan
// @Tags Materi
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID materi"
// @Success 200 {object} util.Response
// @Router /student/materials/{id} [get]
func (c *MaterialController) GetMaterialDetail(ctx *gin.Context) {
	detail, err := c.MaterialService.GetMaterialDetail(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrMaterialNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}
