package controller

import (
	"edu_quiz_backend/internal/service"
	"edu_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	ContentService    *service.ContentService
	EnrollmentService *service.EnrollmentService
	ProgressService   *service.ProgressService
}

func NewCourseController(
	contentService *service.ContentService,
	enrollmentService *service.EnrollmentService,
	progressService *service.ProgressService,
) *CourseController {
	return &CourseController{
		ContentService:    contentService,
		EnrollmentService: enrollmentService,
		ProgressService:   progressService,
	}
}

// currentUserID 从 JWT 中取用户 ID，未登录时写出 401
func currentUserID(ctx *gin.Context) (string, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.UserID == "" {
		util.Unauthorized(ctx)
		return "", false
	}
	return claims.UserID, true
}

// ListCourses godoc
// @Summary 课程目录
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.ContentService.ListCourses(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary 课程详情
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /courses/{courseId} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.ContentService.GetCourse(ctx.Request.Context(), ctx.Param("courseId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// ListSections godoc
// @Summary 课程章节列表（含学习进度）
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=[]service.SectionWithProgress}
// @Failure 404 {object} util.Response
// @Router /courses/{courseId}/sections [get]
func (c *CourseController) ListSections(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sections, err := c.ProgressService.SectionsWithProgress(ctx.Request.Context(), userID, ctx.Param("courseId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, sections)
}

// Enroll godoc
// @Summary 报名课程
// @Description 重复报名返回已有记录，alreadyEnrolled 为 true
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=object} "已报名"
// @Success 201 {object} util.Response{data=object} "报名成功"
// @Failure 404 {object} util.Response
// @Router /courses/{courseId}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	enrollment, already, err := c.EnrollmentService.Enroll(ctx.Request.Context(), userID, ctx.Param("courseId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	data := gin.H{
		"enrollment":      enrollment,
		"alreadyEnrolled": already,
	}
	if already {
		util.Success(ctx, data)
		return
	}
	util.Created(ctx, data)
}

// ListEnrolled godoc
// @Summary 我的课程
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.EnrolledCourse}
// @Router /my/courses [get]
func (c *CourseController) ListEnrolled(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	list, err := c.EnrollmentService.ListEnrolled(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// ListAvailable godoc
// @Summary 可报名课程
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /my/courses/available [get]
func (c *CourseController) ListAvailable(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	list, err := c.EnrollmentService.ListAvailable(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// EnrollmentStatus godoc
// @Summary 查询是否已报名
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Success 200 {object} util.Response{data=object}
// @Router /courses/{courseId}/enrollment [get]
func (c *CourseController) EnrollmentStatus(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	enrolled, err := c.EnrollmentService.IsEnrolled(ctx.Request.Context(), userID, ctx.Param("courseId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"enrolled": enrolled})
}
