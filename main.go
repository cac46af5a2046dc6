package main

import (
	"context"
	"log"
	"os"
	"time"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"TODOS_COLLECTION",
		"COMPLETIONS_COLLECTION",
		"PORT",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitMongoClient()
}

func setupRouter(cache *services.AnalyticsCache) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware())

	todosRepo := repository.GetTodosRepo(utils.MongoClient)
	completionsRepo := repository.GetCompletionsRepo(utils.MongoClient)

	if err := completionsRepo.EnsureIndexes(context.Background()); err != nil {
		log.Printf("Warning: failed to ensure completion indexes: %v", err)
	}

	// The redis cache is optional; a nil interface keeps the services
	// cache-free when redis is unavailable.
	var statsCache usecase.StatsCache
	var invalidator usecase.StatsInvalidator
	if cache != nil {
		statsCache = cache
		invalidator = cache
	}

	recurringService := usecase.NewRecurringService(todosRepo, completionsRepo, invalidator)
	analyticsService := usecase.NewAnalyticsService(todosRepo, completionsRepo, statsCache)

	recurrenceHandler := handler.NewRecurrenceHandler(recurringService)
	statsHandler := handler.NewStatsHandler(analyticsService)
	todosHandler := handler.NewTodosHandler(todosRepo)

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(middleware.IdentityMiddleware())
	{
		rec := api.Group("/recurrence")
		{
			rec.POST("/parse", recurrenceHandler.ParseDescription)
			rec.POST("/describe", recurrenceHandler.DescribePattern)
			rec.POST("/preview", recurrenceHandler.Preview)
			rec.POST("/occurrences", recurrenceHandler.Occurrences)
		}

		todos := api.Group("/todos")
		{
			todos.POST("", todosHandler.CreateTodo)
			todos.GET("", todosHandler.ListTodos)
			todos.POST("/:id/complete-occurrence", recurrenceHandler.CompleteOccurrence)
			todos.PATCH("/:id/occurrences", recurrenceHandler.CorrectOccurrence)
			todos.GET("/:id/next-notification", recurrenceHandler.NextNotification)
			todos.GET("/:id/missed", statsHandler.GetMissedOccurrences)
		}

		stats := api.Group("/stats")
		{
			stats.GET("/recurring", statsHandler.GetRecurringStats)
		}
	}

	return router
}

func main() {
	cacheCfg := config.LoadCacheConfig()
	cache, err := services.NewAnalyticsCache(cacheCfg.RedisURL, cacheCfg.StatsTTL)
	if err != nil {
		log.Printf("Warning: analytics cache disabled: %v", err)
		cache = nil
	}

	router := setupRouter(cache)

	completionsRepo := repository.GetCompletionsRepo(utils.MongoClient)
	scheduler := services.NewSchedulerService(time.Local)
	sweep := services.NewMissedSweep(completionsRepo)
	schedCfg := config.LoadSchedulerConfig()
	if _, err := scheduler.ScheduleDaily(schedCfg.MissedSweepAt, sweep.Run); err != nil {
		log.Printf("Warning: missed sweep not scheduled: %v", err)
	}
	if schedCfg.MissedSweepEvery > 0 {
		if _, err := scheduler.ScheduleInterval(schedCfg.MissedSweepEvery, sweep.Run); err != nil {
			log.Printf("Warning: periodic missed sweep not scheduled: %v", err)
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
