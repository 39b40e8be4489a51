/*
Copyright © 2025 coursehub
*/
package cmd

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/coursehub/ai-service/config"
	"github.com/coursehub/ai-service/consumer"
	"github.com/coursehub/ai-service/database"
	"github.com/coursehub/ai-service/handler"
	"github.com/coursehub/ai-service/repository"
	"github.com/coursehub/ai-service/service"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the AI service",
	Long:  `Starts the HTTP API and the Redis stream consumers.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		ctx := context.Background()

		mongoClient, err := database.NewMongoClient(cfg.Mongo.URI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer mongoClient.Disconnect(context.Background())
		mongoDb := mongoClient.Database(cfg.Mongo.DBName)

		// init repos
		fileRepo := repository.NewFileRepo(mongoDb)
		processedRepo := repository.NewProcessedFileRepo(mongoDb)
		convRepo := repository.NewConversationRepo(mongoDb)

		// init AI provider and vector store; the embedder must come from the
		// same provider so stored vectors and query vectors share a space
		var aiProvider service.AIProvider
		var embedder database.Embedder
		switch cfg.Provider {
		case "openai":
			openaiService := service.NewOpenAIService(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model)
			aiProvider, embedder = openaiService, openaiService
		default:
			gemini, err := service.NewGeminiService(ctx, cfg.GoogleAPIKey, cfg.Model, cfg.EmbeddingModel)
			if err != nil {
				log.Fatalf("Failed to init Gemini service: %v", err)
			}
			defer gemini.Close()
			aiProvider, embedder = gemini, gemini
		}
		store := database.NewFlatIndexStore(cfg.IndexDir, embedder)

		// init services
		chunker := service.NewChunker(service.ProfileByName(cfg.ChunkProfile))
		pdfService := service.NewPDFService(time.Duration(cfg.FetchTimeout) * time.Second)
		embeddingService := service.NewEmbeddingService(store, chunker)
		fileService := service.NewFileService(fileRepo, processedRepo, store, pdfService, chunker)
		fileEventService := service.NewFileEventService(fileRepo, processedRepo, store, fileService)
		chatService := service.NewChatService(store, aiProvider, convRepo)

		// init stream consumers
		courseConsumer, err := consumer.NewCourseConsumer(cfg.Redis.URL, embeddingService)
		if err != nil {
			log.Fatalf("Failed to init course consumer: %v", err)
		}
		fileConsumer, err := consumer.NewFileConsumer(cfg.Redis.URL, fileEventService)
		if err != nil {
			log.Fatalf("Failed to init file consumer: %v", err)
		}
		if err := courseConsumer.Start(ctx); err != nil {
			log.Fatalf("Failed to start course consumer: %v", err)
		}
		if err := fileConsumer.Start(ctx); err != nil {
			log.Fatalf("Failed to start file consumer: %v", err)
		}

		// init handlers
		corsHandler := handler.NewCorsHandler()
		chatHandler := handler.NewChatHandler(chatService)
		fileHandler := handler.NewFileHandler(fileService)
		healthHandler := handler.NewHealthHandler(store, courseConsumer, fileConsumer)

		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		router.POST("/evaluate", chatHandler.HandleEvaluate)
		router.POST("/learning-path", chatHandler.HandleLearningPath)
		router.POST("/chat", chatHandler.HandleChat)
		router.GET("/conversations", chatHandler.HandleListConversations)

		router.POST("/register-files", fileHandler.HandleRegisterFiles)
		router.GET("/pdf-files", fileHandler.HandleListFiles)
		router.DELETE("/pdf-files/:id", fileHandler.HandleDeleteFile)
		router.POST("/process-files", fileHandler.HandleProcessFiles)

		router.GET("/health", healthHandler.HandleHealth)
		router.GET("/health/redis", healthHandler.HandleRedisHealth)
		router.GET("/health/faiss", healthHandler.HandleIndexHealth)

		server := &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: router,
		}

		go func() {
			log.Printf("Starting server on port %s...\n", cfg.Port)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Server error: %v", err)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := courseConsumer.Stop(shutdownCtx); err != nil {
			log.Printf("Course consumer shutdown: %v", err)
		}
		if err := fileConsumer.Stop(shutdownCtx); err != nil {
			log.Printf("File consumer shutdown: %v", err)
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown: %v", err)
		}
		log.Println("Server stopped")
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
