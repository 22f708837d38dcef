package http

import (
	"time"

	"CourseForge/internal/delivery/http/controllers"
	"CourseForge/internal/models"
	"CourseForge/internal/service"
	"CourseForge/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRoutes(l logger.Log, u service.Collection) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(config))

	statusController := controllers.NewStatusHandler()
	authController := controllers.NewAuthHandler(l, u.Auth)
	courseController := controllers.NewCourseHandler(l, u.Course)
	categoryController := controllers.NewCategoryHandler(l, u.Category)
	sectionController := controllers.NewSectionHandler(l, u.Section)
	lessonController := controllers.NewLessonHandler(l, u.Lesson)
	roleController := controllers.NewRoleHandler(l, u.Role)

	v1 := r.Group("/v1", controllers.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)

		v1.GET("/me", authController.AuthMiddleware, authController.Me)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.POST("/refresh", authController.Refresh)
		}

		categories := v1.Group("/course-categories")
		{
			categories.GET("", categoryController.ListCategories)
			categories.GET("/:category_id", categoryController.CategoryByID)

			admin := categories.Group("", authController.AuthMiddleware, controllers.RequireRoles(models.AdminRole))
			{
				admin.POST("", categoryController.CreateCategory)
				admin.PATCH("/:category_id", categoryController.UpdateCategory)
				admin.DELETE("/:category_id", categoryController.DeleteCategory)
			}
		}

		courses := v1.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)
			courses.GET("/search", courseController.SearchCourses)
			courses.GET("/slug/:slug", courseController.CourseBySlug)
			courses.GET("/:course_id", courseController.CourseByID)
			courses.GET("/:course_id/thumbnail", courseController.ThumbnailURL)
			courses.GET("/:course_id/sections", sectionController.SectionsByCourse)
			courses.GET("/:course_id/sections/:section_id", sectionController.SectionByID)
			courses.GET("/:course_id/lessons", lessonController.LessonsByCourse)

			author := courses.Group("", authController.AuthMiddleware, controllers.RequireRoles(models.AuthorRole, models.AdminRole))
			{
				author.POST("", courseController.CreateCourse)
				author.PATCH("/:course_id", courseController.UpdateCourse)
				author.PATCH("/:course_id/publish", courseController.PublishCourse)
				author.PATCH("/:course_id/hide", courseController.HideCourse)
				author.DELETE("/:course_id", courseController.DeleteCourse)
				author.PUT("/:course_id/thumbnail", courseController.UploadThumbnail)

				author.POST("/:course_id/sections", sectionController.CreateSection)
				author.PATCH("/:course_id/sections/:section_id", sectionController.UpdateSection)
				author.DELETE("/:course_id/sections/:section_id", sectionController.DeleteSection)
				author.PATCH("/:course_id/sections/reorder", sectionController.ReorderSections)

				author.POST("/:course_id/sections/:section_id/lessons", lessonController.CreateLesson)
			}
		}

		lessons := v1.Group("/lessons")
		{
			lessons.GET("/:lesson_id", authController.AuthMiddleware, lessonController.LessonByID)
			lessons.GET("/:lesson_id/detail", authController.AuthMiddleware, lessonController.LessonDetail)
			lessons.GET("/:lesson_id/thumbnail", authController.AuthMiddleware, lessonController.ThumbnailURL)

			author := lessons.Group("", authController.AuthMiddleware, controllers.RequireRoles(models.AuthorRole, models.AdminRole))
			{
				author.PATCH("/:lesson_id", lessonController.UpdateLesson)
				author.DELETE("/:lesson_id", lessonController.DeleteLesson)
				author.PUT("/:lesson_id/thumbnail", lessonController.UploadThumbnail)
				author.PATCH("/:lesson_id/file-content/:content_id", lessonController.UpdateFileContent)
				author.PATCH("/:lesson_id/article-content/:content_id", lessonController.UpdateArticleContent)
				author.PATCH("/:lesson_id/quiz-content/:content_id", lessonController.UpdateQuizContent)
			}
		}

		admin := v1.Group("", authController.AuthMiddleware, controllers.RequireRoles(models.AdminRole))
		{
			roles := admin.Group("/roles")
			{
				roles.POST("", roleController.CreateRole)
				roles.GET("", roleController.ListRoles)
				roles.GET("/:role_id", roleController.RoleByID)
				roles.PATCH("/:role_id", roleController.UpdateRole)
				roles.DELETE("/:role_id", roleController.DeleteRole)
				roles.GET("/:role_id/permissions", roleController.PermissionsByRole)
				roles.POST("/:role_id/permissions/:permission_id", roleController.AttachPermission)
				roles.DELETE("/:role_id/permissions/:permission_id", roleController.DetachPermission)
			}

			permissions := admin.Group("/permissions")
			{
				permissions.POST("", roleController.CreatePermission)
				permissions.GET("", roleController.ListPermissions)
				permissions.GET("/:permission_id", roleController.PermissionByID)
				permissions.PATCH("/:permission_id", roleController.UpdatePermission)
				permissions.DELETE("/:permission_id", roleController.DeletePermission)
			}

			algorithms := admin.Group("/hashing-algorithms")
			{
				algorithms.POST("", roleController.CreateAlgorithm)
				algorithms.GET("", roleController.ListAlgorithms)
				algorithms.GET("/:algorithm_id", roleController.AlgorithmByID)
				algorithms.PATCH("/:algorithm_id", roleController.UpdateAlgorithm)
				algorithms.DELETE("/:algorithm_id", roleController.DeleteAlgorithm)
			}
		}
	}

	return r
}
