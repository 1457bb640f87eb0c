package util

import (
	"menara_math_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the unified response envelope.
type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	ErrorCode string      `json:"errorCode,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithCode attaches a stable machine-readable error code so clients
// never have to parse the (Indonesian) message text.
func ErrorWithCode(c *gin.Context, status int, errorCode, message string) {
	c.JSON(status, Response{
		Code:      status,
		Message:   message,
		ErrorCode: errorCode,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusBadRequest, CodeValidation, message)
}

func NotFound(c *gin.Context) {
	ErrorWithCode(c, http.StatusNotFound, CodeNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	ErrorWithCode(c, http.StatusInternalServerError, CodeServerError, "Terjadi kesalahan server")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}
