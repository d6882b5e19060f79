package app

import (
	"edu_quiz_backend/docs"
	"edu_quiz_backend/internal/config"
	"edu_quiz_backend/internal/middleware"
	"edu_quiz_backend/internal/model"
	"edu_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerQuizRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/courses", c.admin.CreateCourse)
		admin.POST("/courses/:courseId/sections", c.admin.CreateSection)
		admin.POST("/courses/:courseId/sections/:sectionId/lessons", c.admin.CreateLesson)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.GET("/dashboard", c.progress.GetDashboard)

	// 课程目录与报名
	rg.GET("/courses", c.course.ListCourses)
	rg.GET("/courses/:courseId", c.course.GetCourse)
	rg.GET("/courses/:courseId/sections", c.course.ListSections)
	rg.POST("/courses/:courseId/enroll", c.course.Enroll)
	rg.GET("/courses/:courseId/enrollment", c.course.EnrollmentStatus)
	rg.GET("/my/courses", c.course.ListEnrolled)
	rg.GET("/my/courses/available", c.course.ListAvailable)

	// 学习进度
	rg.GET("/courses/:courseId/progress", c.progress.GetCourseProgress)
	rg.POST("/courses/:courseId/sections/:sectionId/lessons/:lessonId/complete", c.progress.CompleteLesson)
}

func (a *App) registerQuizRoutes(rg *gin.RouterGroup, c *controllers) {
	q := rg.Group("/courses/:courseId/sections/:sectionId")
	{
		q.POST("/quiz/start", c.quiz.StartQuiz)
		q.GET("/quiz", c.quiz.GetQuiz)
		q.DELETE("/quiz", c.quiz.Abandon)
		q.POST("/quiz/answer", c.quiz.Answer)
		q.POST("/quiz/next", c.quiz.Next)
		q.POST("/quiz/prev", c.quiz.Prev)
		q.POST("/quiz/goto", c.quiz.Goto)
		q.POST("/quiz/submit", c.quiz.Submit)
		q.GET("/attempts", c.quiz.ListAttempts)
		q.GET("/attempts/latest", c.quiz.LatestAttempt)
	}
	rg.GET("/attempts/:attemptId", c.quiz.GetAttempt)
}
