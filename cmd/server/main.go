package main

import (
	"log"

	"github.com/nazaninghn/sustindex/internal/config"
	"github.com/nazaninghn/sustindex/internal/database"
	"github.com/nazaninghn/sustindex/internal/handlers"
	"github.com/nazaninghn/sustindex/internal/middleware"
	"github.com/nazaninghn/sustindex/internal/services"
	"github.com/nazaninghn/sustindex/internal/ws"

	_ "github.com/nazaninghn/sustindex/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           SustIndex API
// @version         1.0
// @description     Corporate sustainability (ESG) self-assessment platform
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	if cfg.SeedData == "true" {
		if err := services.NewSeeder(db).Run(); err != nil {
			log.Printf("seed failed: %v", err)
		}
	}

	hub := ws.NewHub()

	authService := services.NewAuthService(db, cfg.JWTSecret)
	scoringService := services.NewScoringService()
	surveyService := services.NewSurveyService(db)
	attemptService := services.NewAttemptService(db, scoringService)
	answerService := services.NewAnswerService(db, scoringService)
	documentService := services.NewDocumentService(db, services.LocalStorage{Dir: cfg.UploadDir})
	reportService := services.NewReportService(db, scoringService, attemptService, documentService)

	authHandler := handlers.NewAuthHandler(authService)
	surveyHandler := handlers.NewSurveyHandler(surveyService)
	attemptHandler := handlers.NewAttemptHandler(attemptService, reportService, hub)
	answerHandler := handlers.NewAnswerHandler(answerService, attemptService, hub)
	documentHandler := handlers.NewDocumentHandler(documentService)
	wsHandler := handlers.NewWSHandler(hub, attemptService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Static("/uploads", cfg.UploadDir)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/attempts/:id", middleware.JWTAuth(authService), wsHandler.HandleAttemptWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		profile := api.Group("/profile")
		profile.Use(middleware.JWTAuth(authService))
		{
			profile.GET("", authHandler.GetProfile)
			profile.PUT("", authHandler.UpdateProfile)
		}

		surveys := api.Group("/surveys")
		surveys.Use(middleware.JWTAuth(authService))
		{
			surveys.GET("", surveyHandler.ListSurveys)
			surveys.GET("/:id", surveyHandler.GetSurvey)
			surveys.GET("/:id/sessions", surveyHandler.ListSessions)
		}

		api.GET("/categories", middleware.JWTAuth(authService), surveyHandler.ListCategories)

		attempts := api.Group("/attempts")
		attempts.Use(middleware.JWTAuth(authService))
		{
			attempts.POST("", attemptHandler.CreateAttempt)
			attempts.GET("", attemptHandler.ListAttempts)
			attempts.GET("/:id", attemptHandler.GetAttempt)
			attempts.POST("/:id/complete", attemptHandler.CompleteAttempt)
			attempts.GET("/:id/progress", attemptHandler.GetProgress)
			attempts.GET("/:id/result", attemptHandler.GetResult)
			attempts.POST("/:id/answers", answerHandler.SubmitAnswer)
			attempts.GET("/:id/answers", answerHandler.ListAnswers)
			attempts.POST("/:id/documents", documentHandler.UploadDocument)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.JWTAuth(authService), middleware.StaffOnly(authService))
		{
			admin.POST("/surveys", surveyHandler.CreateSurvey)
			admin.PUT("/surveys/:id", surveyHandler.UpdateSurvey)
			admin.POST("/surveys/:id/sessions", surveyHandler.CreateSession)
			admin.POST("/surveys/:id/questions", surveyHandler.CreateQuestion)
			admin.POST("/categories", surveyHandler.CreateCategory)
			admin.PUT("/categories/:id", surveyHandler.UpdateCategory)
			admin.PUT("/questions/:id", surveyHandler.UpdateQuestion)
			admin.DELETE("/questions/:id", surveyHandler.DeleteQuestion)
			admin.POST("/attempts/:id/recalculate", attemptHandler.RecalculateAttempt)
		}
	}

	log.Printf("server listening on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
