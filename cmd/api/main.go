package main

import (
	"log"
	"log/slog"
	"os"

	"briefly/db"
	"briefly/internal/config"
	"briefly/internal/handler"
	"briefly/internal/metrics"
	"briefly/internal/repository"
	"briefly/pkg/summary"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	invoker, err := config.NewInvoker(cfg)
	if err != nil {
		log.Fatalf("error creating LLM client: %v", err)
	}

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer conn.Close()

	service := summary.NewService(
		metrics.InstrumentInvoker(invoker),
		metrics.InstrumentFetcher(config.NewFetcher(cfg)),
		cfg.SummaryOptions(),
	)

	analysisRepo := repository.NewAnalysisRepository(conn)
	analysisHandler := handler.NewAnalysisHandler(service, analysisRepo)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/summaries/text", analysisHandler.SummarizeText)
	r.POST("/summaries/article", analysisHandler.SummarizeArticle)
	r.POST("/sentiment", analysisHandler.AnalyzeSentiment)
	r.GET("/analyses", analysisHandler.GetAnalyses)
	r.GET("/analyses/:id", analysisHandler.GetAnalysis)
	r.GET("/health", analysisHandler.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	slog.Info("starting API server", "addr", cfg.HTTPAddr, "provider", invoker.Name(), "model", cfg.DefaultModel)

	err = r.Run(cfg.HTTPAddr)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
