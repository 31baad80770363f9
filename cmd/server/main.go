package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cosmic-community/inkwell-blog/internal/config"
	"github.com/cosmic-community/inkwell-blog/internal/cosmic"
	"github.com/cosmic-community/inkwell-blog/internal/handler"
	"github.com/cosmic-community/inkwell-blog/internal/logger"
	"github.com/cosmic-community/inkwell-blog/internal/middleware"
	"github.com/cosmic-community/inkwell-blog/internal/service"
	"github.com/cosmic-community/inkwell-blog/internal/view"
	"github.com/cosmic-community/inkwell-blog/web"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stdout)

	// --- Pre-flight Checks ---
	if cfg.CMS.Bucket == "" {
		log.Fatal(errors.New("cms bucket not set"), "Please set the INKWELL_CMS_BUCKET environment variable.")
	}
	if cfg.CMS.ReadKey == "" {
		log.Warn("No CMS read key configured; requests will only work against a public bucket.")
	}

	// --- View Template Initialization ---
	log.Info("Initializing view templates...")
	viewService, err := view.New(web.TemplateFS, view.Site{
		Name:        cfg.Site.Name,
		Description: cfg.Site.Description,
		BaseURL:     cfg.Site.BaseURL,
	})
	if err != nil {
		log.Fatal(err, "Failed to initialize view templates")
	}
	log.Info("View templates initialized.")

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	repository := cosmic.NewClient(cfg.CMS)
	contentService := service.NewContentService(repository, log)
	siteHandler := handler.NewSiteHandler(contentService, viewService, log)
	seoHandler := handler.NewSeoHandler(contentService, cfg.Site.BaseURL)

	errorMiddleware := middleware.Error(log, viewService)

	// --- Router Setup ---
	// The router is the central hub that directs incoming requests to the correct handlers.
	router := handler.NewRouter(siteHandler, seoHandler, errorMiddleware, web.StaticFS)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
