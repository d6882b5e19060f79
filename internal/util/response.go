package util

import (
	"edu_quiz_backend/internal/quiz"
	"edu_quiz_backend/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
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

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	InternalServerError(c)
}

// StatusFor 将业务错误映射为 HTTP 状态码，未知错误返回 500
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrCourseNotFound),
		errors.Is(err, ErrSectionNotFound),
		errors.Is(err, ErrLessonNotFound),
		errors.Is(err, ErrAttemptNotFound),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, quiz.ErrUnknownQuestion):
		return http.StatusNotFound
	case errors.Is(err, ErrNotEnrolled):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrSessionActive),
		errors.Is(err, ErrEmailRegistered),
		errors.Is(err, quiz.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ErrNotQuizSection),
		errors.Is(err, ErrAssessmentLesson),
		errors.Is(err, quiz.ErrInvalidOption),
		errors.Is(err, quiz.ErrNoContent):
		return http.StatusUnprocessableEntity
	case errors.Is(err, quiz.ErrLoadFailure), errors.Is(err, quiz.ErrPersistFailure):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// HandleError 写出业务错误；500 类错误记录日志且不暴露细节
func HandleError(c *gin.Context, err error) {
	code := StatusFor(err)
	if code == http.StatusInternalServerError {
		LogInternalError(c, err)
		return
	}
	if code >= http.StatusInternalServerError {
		logger.Log.Warn("upstream failure", zap.String("path", c.FullPath()), zap.Error(err))
	}
	Error(c, code, err.Error())
}
