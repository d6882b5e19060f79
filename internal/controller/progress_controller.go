package controller

import (
	"edu_quiz_backend/internal/service"
	"edu_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// GetCourseProgress godoc
// @Summary 课程学习进度
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=service.CourseProgressView}
// @Failure 403 {object} util.Response "未报名"
// @Router /courses/{courseId}/progress [get]
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	view, err := c.ProgressService.CourseProgress(ctx.Request.Context(), userID, ctx.Param("courseId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// CompleteLesson godoc
// @Summary 标记课时完成
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param sectionId path string true "章节ID"
// @Param lessonId path string true "课时ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 403 {object} util.Response "未报名"
// @Failure 404 {object} util.Response
// @Failure 422 {object} util.Response "测验题目需通过提交测验完成"
// @Router /courses/{courseId}/sections/{sectionId}/lessons/{lessonId}/complete [post]
func (c *ProgressController) CompleteLesson(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	view, created, err := c.ProgressService.MarkLessonComplete(ctx.Request.Context(),
		userID, ctx.Param("courseId"), ctx.Param("sectionId"), ctx.Param("lessonId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"progress":         view,
		"alreadyCompleted": !created,
	})
}

// GetDashboard godoc
// @Summary 学习概览
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=progress.Stats}
// @Router /dashboard [get]
func (c *ProgressController) GetDashboard(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	stats, err := c.ProgressService.DashboardStats(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
