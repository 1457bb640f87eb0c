package controller

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"menara_math_backend/internal/service"
	"menara_math_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminContentController is the write side of the content store: material
// and question administration.
type AdminContentController struct {
	MaterialService *service.MaterialService
	StorageService  *service.StorageService
}

func NewAdminContentController(materialService *service.MaterialService, storageService *service.StorageService) *AdminContentController {
	return &AdminContentController{
		MaterialService: materialService,
		StorageService:  storageService,
	}
}

// @Summary Buat materi
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.MaterialRequest true "Materi"
// @Success 201 {object} util.Response
// @Router /admin/materials [post]
func (c *AdminContentController) CreateMaterial(ctx *gin.Context) {
	var req service.MaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	material, err := c.MaterialService.CreateMaterial(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, material)
}

// @Summary Ubah materi
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID materi"
// @Param body body service.MaterialRequest true "Materi"
// @Success 200 {object} util.Response
// @Router /admin/materials/{id} [put]
func (c *AdminContentController) UpdateMaterial(ctx *gin.Context) {
	var req service.MaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	material, err := c.MaterialService.UpdateMaterial(ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrMaterialNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, material)
}

// @Summary Hapus materi
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID materi"
// @Success 200 {object} util.Response
// @Router /admin/materials/{id} [delete]
func (c *AdminContentController) DeleteMaterial(ctx *gin.Context) {
	if err := c.MaterialService.DeleteMaterial(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type createQuestionsRequest struct {
	Questions []service.QuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

// @Summary Tambah soal
// @Description Menambahkan satu atau lebih soal ke sebuah materi
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID materi"
// @Param body body createQuestionsRequest true "Daftar soal"
// @Success 201 {object} util.Response
// @Router /admin/materials/{id}/questions [post]
func (c *AdminContentController) CreateQuestions(ctx *gin.Context) {
	var req createQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.MaterialService.CreateQuestions(ctx.Param("id"), req.Questions)
	if err != nil {
		if errors.Is(err, util.ErrMaterialNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"created": len(questions)})
}

// @Summary Daftar soal materi
// @Description Soal sebuah materi beserta kunci jawaban, untuk pengelolaan konten
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID materi"
// @Param page query int false "Halaman"
// @Param limit query int false "Jumlah per halaman"
// @Success 200 {object} util.Response
// @Router /admin/materials/{id}/questions [get]
func (c *AdminContentController) ListQuestions(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	questions, total, err := c.MaterialService.ListQuestions(ctx.Param("id"), page, limit)
	if err != nil {
		if errors.Is(err, util.ErrMaterialNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"questions": questions, "total": total})
}

// @Summary Ubah soal
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID soal"
// @Param body body service.QuestionRequest true "Soal"
// @Success 200 {object} util.Response
// @Router /admin/questions/{id} [put]
func (c *AdminContentController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.MaterialService.UpdateQuestion(ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// @Summary Hapus soal
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "ID soal"
// @Success 200 {object} util.Response
// @Router /admin/questions/{id} [delete]
func (c *AdminContentController) DeleteQuestion(ctx *gin.Context) {
	if err := c.MaterialService.DeleteQuestion(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Unggah berkas materi
// @Description Mengunggah PDF ringkasan atau thumbnail materi ke penyimpanan
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "Berkas"
// @Success 200 {object} util.Response
// @Router /admin/materials/upload [post]
func (c *AdminContentController) UploadMaterialAsset(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file diperlukan")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("materials/%d%s", time.Now().UnixNano(), filepath.Ext(fileHeader.Filename))
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
