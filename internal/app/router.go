package app

import (
	"skillspire_backend/docs"
	"skillspire_backend/internal/config"
	"skillspire_backend/internal/middleware"
	"skillspire_backend/internal/model"
	"skillspire_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	api := router.Group("/api/v1")

	// 1. 公共路由：目录、详情和讨论区对游客开放。
	// 详情接口挂可选认证，讲师和管理员能看到自己的未发布课程
	public := api.Group("/")
	public.Use(middleware.TryAuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/categories", c.category.GetCategories)
		public.GET("/categories/:id", c.category.GetCategory)
		public.GET("/courses", c.course.GetCourses)
		public.GET("/courses/:slug", c.course.GetCourse)
		public.GET("/courses/:slug/modules", c.module.GetModules)
		public.GET("/lessons/:id", c.lesson.GetLesson)
		public.GET("/lessons/:id/comments", c.comment.GetComments)
	}

	// 2. 登录用户
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authorized.GET("/auth/me", c.auth.Me)
		authorized.PUT("/profile", c.user.UpdateProfile)
		authorized.POST("/profile/avatar", c.user.UploadAvatar)

		// 学习
		authorized.POST("/courses/:slug/enroll", c.enrollment.Enroll)
		authorized.GET("/enrollments", c.enrollment.GetMyEnrollments)
		authorized.GET("/courses/:slug/progress", c.enrollment.GetProgress)
		authorized.POST("/lessons/:id/complete", c.enrollment.CompleteLesson)

		// 讨论
		authorized.POST("/lessons/:id/comments", c.comment.CreateComment)
		authorized.DELETE("/comments/:id", c.comment.DeleteComment)
	}

	// 3. 讲师
	instructor := api.Group("/")
	instructor.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.Instructor))
	{
		instructor.GET("/instructor/courses", c.course.GetMyCourses)
		instructor.POST("/courses", c.course.CreateCourse)
		instructor.PUT("/courses/:slug", c.course.UpdateCourse)
		instructor.POST("/courses/:slug/thumbnail", c.course.UploadThumbnail)
		instructor.POST("/courses/:slug/submit", c.course.SubmitForReview)

		// 课程大纲管理，课程归属在服务层校验
		instructor.POST("/courses/:slug/modules", c.module.CreateModule)
		instructor.PUT("/modules/:id", c.module.UpdateModule)
		instructor.DELETE("/modules/:id", c.module.DeleteModule)
		instructor.POST("/modules/:id/lessons", c.lesson.CreateLesson)
		instructor.PUT("/lessons/:id", c.lesson.UpdateLesson)
		instructor.DELETE("/lessons/:id", c.lesson.DeleteLesson)
		instructor.POST("/lessons/:id/video", c.lesson.UploadVideo)
		instructor.POST("/lessons/:id/attachments", c.lesson.UploadAttachment)
		instructor.DELETE("/attachments/:id", c.lesson.DeleteAttachment)
	}

	// 4. 管理后台
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/stats", c.user.GetPlatformStats)
		admin.GET("/users", c.user.GetUsers)
		admin.PUT("/users/:id/role", c.user.UpdateUserRole)

		admin.GET("/courses/pending", c.course.GetPendingCourses)
		admin.POST("/courses/:id/approve", c.course.ApproveCourse)
		admin.POST("/courses/:id/reject", c.course.RejectCourse)
		admin.DELETE("/courses/:id", c.course.DeleteCourse)

		admin.POST("/categories", c.category.CreateCategory)
		admin.PUT("/categories/:id", c.category.UpdateCategory)
		admin.DELETE("/categories/:id", c.category.DeleteCategory)
	}
}
