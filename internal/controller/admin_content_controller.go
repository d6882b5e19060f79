package controller

import (
	"edu_quiz_backend/internal/service"
	"edu_quiz_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

// AdminContentController 管理员录入课程内容
type AdminContentController struct {
	ContentService *service.ContentService
}

func NewAdminContentController(contentService *service.ContentService) *AdminContentController {
	return &AdminContentController{ContentService: contentService}
}

// writeContentError 业务哨兵错误按映射返回，其余校验错误返回 400
func writeContentError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrCourseNotFound) || errors.Is(err, util.ErrSectionNotFound) {
		util.HandleError(ctx, err)
		return
	}
	util.BadRequest(ctx, err.Error())
}

// CreateCourse godoc
// @Summary 创建课程
// @Tags 管理员
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateCourseReq true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /admin/courses [post]
func (c *AdminContentController) CreateCourse(ctx *gin.Context) {
	var req service.CreateCourseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course, err := c.ContentService.CreateCourse(ctx.Request.Context(), req)
	if err != nil {
		writeContentError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// CreateSection godoc
// @Summary 创建章节
// @Description type 取 video/document/quiz/test；passingScore 缺省为 70，durationMinutes 缺省为 30
// @Tags 管理员
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param body body service.CreateSectionReq true "章节信息"
// @Success 201 {object} util.Response{data=model.Section}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /admin/courses/{courseId}/sections [post]
func (c *AdminContentController) CreateSection(ctx *gin.Context) {
	var req service.CreateSectionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	section, err := c.ContentService.CreateSection(ctx.Request.Context(), ctx.Param("courseId"), req)
	if err != nil {
		writeContentError(ctx, err)
		return
	}
	util.Created(ctx, section)
}

// CreateLesson godoc
// @Summary 创建课时
// @Description 测验课时需要 4 个选项，correctAnswer 为 A-D 或选项原文
// @Tags 管理员
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param sectionId path string true "章节ID"
// @Param body body service.CreateLessonReq true "课时信息"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /admin/courses/{courseId}/sections/{sectionId}/lessons [post]
func (c *AdminContentController) CreateLesson(ctx *gin.Context) {
	var req service.CreateLessonReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	lesson, err := c.ContentService.CreateLesson(ctx.Request.Context(), ctx.Param("courseId"), ctx.Param("sectionId"), req)
	if err != nil {
		writeContentError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}
