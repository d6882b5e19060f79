package controller

import (
	"edu_quiz_backend/internal/quiz"
	"edu_quiz_backend/internal/service"
	"edu_quiz_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// swagger:model AnswerRequest
type AnswerRequest struct {
	QuestionID  string `json:"questionId" binding:"required"`
	OptionIndex *int   `json:"optionIndex" binding:"required"`
}

// swagger:model GotoRequest
type GotoRequest struct {
	Index *int `json:"index" binding:"required"`
}

type quizTarget struct {
	userID    string
	courseID  string
	sectionID string
}

func (c *QuizController) target(ctx *gin.Context) (quizTarget, bool) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return quizTarget{}, false
	}
	return quizTarget{
		userID:    userID,
		courseID:  ctx.Param("courseId"),
		sectionID: ctx.Param("sectionId"),
	}, true
}

// StartQuiz godoc
// @Summary 开始测验
// @Description 加载题目并开始倒计时；章节没有题目时返回 state=empty
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param sectionId path string true "章节ID"
// @Success 200 {object} util.Response{data=quiz.Snapshot}
// @Failure 403 {object} util.Response "未报名"
// @Failure 409 {object} util.Response "已有进行中的测验"
// @Failure 422 {object} util.Response "不是测验章节"
// @Failure 503 {object} util.Response "题目加载失败，可重试"
// @Router /courses/{courseId}/sections/{sectionId}/quiz/start [post]
func (c *QuizController) StartQuiz(ctx *gin.Context) {
	t, ok := c.target(ctx)
	if !ok {
		return
	}
	snap, err := c.QuizService.Start(ctx.Request.Context(), t.userID, t.courseID, t.sectionID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, snap)
}

// GetQuiz godoc
// @Summary 当前测验状态
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param sectionId path string true "章节ID"
// @Success 200 {object} util.Response{data=quiz.Snapshot}
// @Failure 404 {object} util.Response
// @Router /courses/{courseId}/sections/{sectionId}/quiz [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	t, ok := c.target(ctx)
	if !ok {
		return
	}
	snap, err := c.QuizService.Get(t.userID, t.courseID, t.sectionID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, snap)
}

// Answer godoc
// @Summary 选择答案
// @Description 返回即时判定；最终成绩以提交时重新评分为准
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param sectionId path string true "章节ID"
// @Param body body AnswerRequest true "答案"
// @Success 200 {object} util.Response{data=service.AnswerResult}
// @Failure 409 {object} util.Response "测验不在进行中"
// @Failure 422 {object} util.Response "选项无效"
// @Router /courses/{courseId}/sections/{sectionId}/quiz/answer [post]
func (c *QuizController) Answer(ctx *gin.Context) {
	t, ok := c.target(ctx)
	if !ok {
		return
	}
	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	res, err := c.QuizService.Answer(t.userID, t.courseID, t.sectionID, req.QuestionID, *req.OptionIndex)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// Next godoc
// @Summary 下一题
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param sectionId path string true "章节ID"
// @Success 200 {object} util.Response{data=quiz.Snapshot}
// @Router /courses/{courseId}/sections/{sectionId}/quiz/next [post]
func (c *QuizController) Next(ctx *gin.Context) {
	t, ok := c.target(ctx)
	if !ok {
		return
	}
	c.respond(ctx)(c.QuizService.Next(t.userID, t.courseID, t.sectionID))
}

// Prev godoc
// @Summary 上一题
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param sectionId path string true "章节ID"
// @Success 200 {object} util.Response{data=quiz.Snapshot}
// @Router /courses/{courseId}/sections/{sectionId}/quiz/prev [post]
func (c *QuizController) Prev(ctx *gin.Context) {
	t, ok := c.target(ctx)
	if !ok {
		return
	}
	c.respond(ctx)(c.QuizService.Prev(t.userID, t.courseID, t.sectionID))
}

// Goto godoc
// @Summary 跳转到指定题目
// @Description 超出范围的序号会被截断到首题或末题
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param sectionId path string true "章节ID"
// @Param body body GotoRequest true "题目序号（从 0 开始）"
// @Success 200 {object} util.Response{data=quiz.Snapshot}
// @Router /courses/{courseId}/sections/{sectionId}/quiz/goto [post]
func (c *QuizController) Goto(ctx *gin.Context) {
	t, ok := c.target(ctx)
	if !ok {
		return
	}
	var req GotoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.respond(ctx)(c.QuizService.Goto(t.userID, t.courseID, t.sectionID, *req.Index))
}

func (c *QuizController) respond(ctx *gin.Context) func(quiz.Snapshot, error) {
	return func(snap quiz.Snapshot, err error) {
		if err != nil {
			util.HandleError(ctx, err)
			return
		}
		util.Success(ctx, snap)
	}
}

// Submit godoc
// @Summary 提交测验
// @Description 保存失败时返回 503 与当前快照，可再次提交重试
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param sectionId path string true "章节ID"
// @Success 200 {object} util.Response{data=quiz.Snapshot}
// @Failure 409 {object} util.Response "测验不在进行中"
// @Failure 503 {object} util.Response{data=quiz.Snapshot} "保存失败"
// @Router /courses/{courseId}/sections/{sectionId}/quiz/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	t, ok := c.target(ctx)
	if !ok {
		return
	}
	snap, err := c.QuizService.Submit(ctx.Request.Context(), t.userID, t.courseID, t.sectionID)
	if quiz.IsPersistFailure(err) {
		ctx.JSON(http.StatusServiceUnavailable, util.Response{
			Code:    http.StatusServiceUnavailable,
			Message: err.Error(),
			Data:    snap,
		})
		return
	}
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, snap)
}

// Abandon godoc
// @Summary 放弃测验
// @Description 不保存任何记录
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param sectionId path string true "章节ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "提交中或已结束"
// @Router /courses/{courseId}/sections/{sectionId}/quiz [delete]
func (c *QuizController) Abandon(ctx *gin.Context) {
	t, ok := c.target(ctx)
	if !ok {
		return
	}
	if err := c.QuizService.Abandon(t.userID, t.courseID, t.sectionID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"state": quiz.StateAbandoned})
}

// ListAttempts godoc
// @Summary 测验历史
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param sectionId path string true "章节ID"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /courses/{courseId}/sections/{sectionId}/attempts [get]
func (c *QuizController) ListAttempts(ctx *gin.Context) {
	t, ok := c.target(ctx)
	if !ok {
		return
	}
	page := util.ParseIntDefault(ctx.Query("page"), 1)
	limit := util.ParseIntDefault(ctx.Query("limit"), 20)
	res, err := c.QuizService.ListAttempts(ctx.Request.Context(), t.userID, t.courseID, t.sectionID, page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// LatestAttempt godoc
// @Summary 最近一次测验结果
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path string true "课程ID"
// @Param sectionId path string true "章节ID"
// @Success 200 {object} util.Response{data=model.QuizAttempt}
// @Failure 404 {object} util.Response
// @Router /courses/{courseId}/sections/{sectionId}/attempts/latest [get]
func (c *QuizController) LatestAttempt(ctx *gin.Context) {
	t, ok := c.target(ctx)
	if !ok {
		return
	}
	attempt, err := c.QuizService.LatestAttempt(ctx.Request.Context(), t.userID, t.courseID, t.sectionID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

// GetAttempt godoc
// @Summary 测验记录详情
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path string true "记录ID"
// @Success 200 {object} util.Response{data=model.QuizAttempt}
// @Failure 404 {object} util.Response
// @Router /attempts/{attemptId} [get]
func (c *QuizController) GetAttempt(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	attempt, err := c.QuizService.GetAttempt(ctx.Request.Context(), userID, ctx.Param("attemptId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}
