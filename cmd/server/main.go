package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsdesk/internal/config"
	"newsdesk/internal/handler"
	transport "newsdesk/internal/http"
	"newsdesk/internal/logger"
	"newsdesk/internal/network"
	"newsdesk/internal/service"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if cfg.FeedURL == "" {
		logger.Error("NEWSDESK_FEED_URL is required",
			"module", "main", "action", "start", "resource", "config", "result", "failed")
		os.Exit(1)
	}

	clientFactory := network.NewClientFactory()

	feedService := service.NewFeedService(cfg.FeedURL, clientFactory)
	timelineService := service.NewTimelineService(feedService)
	cardService := service.NewCardService(service.CardConfig{
		PlaceholderBase: cfg.PlaceholderBase,
		FaviconBase:     cfg.FaviconBase,
		ImageHosts:      cfg.ImageHosts,
		ClientFactory:   clientFactory,
		ProbeFavicons:   true,
	})
	proxyService := service.NewProxyService(clientFactory, cfg.FaviconBase)

	pageHandler := handler.NewPageHandler(timelineService, cardService)
	articleHandler := handler.NewArticleHandler(timelineService)
	proxyHandler := handler.NewProxyHandler(proxyService, cardService)

	router := transport.NewRouter(pageHandler, articleHandler, proxyHandler, cfg.StaticDir)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down",
			"module", "main", "action", "stop", "resource", "http", "result", "ok")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := router.Shutdown(ctx); err != nil {
			logger.Error("forced shutdown",
				"module", "main", "action", "stop", "resource", "http", "result", "failed",
				"error", err)
			os.Exit(1)
		}
	}()

	logger.Info("starting server",
		"module", "main", "action", "start", "resource", "http", "result", "ok",
		"addr", cfg.Addr, "feed_url", cfg.FeedURL)
	if err := router.Start(cfg.Addr); err != nil {
		logger.Info("server stopped",
			"module", "main", "action", "stop", "resource", "http", "result", "ok",
			"error", err)
	}
}
