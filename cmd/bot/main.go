package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/mkl159/StockToPlate/internal/bot"
	"github.com/mkl159/StockToPlate/internal/config"
	"github.com/mkl159/StockToPlate/internal/grocy"
	"github.com/mkl159/StockToPlate/internal/guests"
	"github.com/mkl159/StockToPlate/internal/openai"
	"github.com/mkl159/StockToPlate/pkg/locales"
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	texts := locales.Get(cfg.Language)

	store, err := guests.New(cfg.GuestsFile)
	if err != nil {
		log.Fatalf("Failed to open guest store: %v", err)
	}

	inventory := grocy.New(cfg.GrocyBaseURL, cfg.GrocyAPIKey, texts)
	recipes := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, texts)

	b, err := bot.New(cfg.TelegramBotToken, texts, store, inventory, recipes)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	go serveMetrics(cfg.MetricsAddr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"language":     cfg.Language,
		"metrics_addr": cfg.MetricsAddr,
	}).Info("StockToPlate bot starting")

	if err := b.Start(ctx); err != nil {
		log.Fatalf("Bot stopped: %v", err)
	}
}

// serveMetrics exposes the health and Prometheus endpoints.
func serveMetrics(addr string) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := router.Run(addr); err != nil {
		log.WithError(err).Error("Metrics server stopped")
	}
}
