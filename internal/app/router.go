package app

import (
	"menara_math_backend/docs"
	"menara_math_backend/internal/config"
	"menara_math_backend/internal/middleware"
	"menara_math_backend/internal/model"
	"menara_math_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/materials", c.material.ListMaterials)

		auth := public.Group("/auth")
		{
			auth.POST("/student/register", c.auth.RegisterStudent)
			auth.POST("/student/login", c.auth.LoginStudent)
			auth.POST("/staff/login", c.auth.LoginStaff)
		}
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	practice := rg.Group("/practice")
	practice.Use(middleware.RoleMiddleware(model.Student))
	{
		practice.POST("/start", c.practice.Start)
		practice.POST("/answer", c.practice.SubmitAnswer)
		practice.POST("/end", c.practice.End)
	}

	student := rg.Group("/student")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.GET("/progress", c.progress.GetProgress)
		student.GET("/materials/:id", c.material.GetMaterialDetail)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher, model.Admin))
	{
		admin.POST("/materials", c.admin.CreateMaterial)
		admin.PUT("/materials/:id", c.admin.UpdateMaterial)
		admin.DELETE("/materials/:id", c.admin.DeleteMaterial)
		admin.POST("/materials/upload", c.admin.UploadMaterialAsset)

		admin.GET("/materials/:id/questions", c.admin.ListQuestions)
		admin.POST("/materials/:id/questions", c.admin.CreateQuestions)
		admin.PUT("/questions/:id", c.admin.UpdateQuestion)
		admin.DELETE("/questions/:id", c.admin.DeleteQuestion)
	}
}
