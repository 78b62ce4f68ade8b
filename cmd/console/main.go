package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hirebuddy-console/docs"
	"hirebuddy-console/internal/backend"
	"hirebuddy-console/internal/config"
	"hirebuddy-console/internal/web"
	httpclient "hirebuddy-console/pkg/http"
)

// @title HireBuddy Console API
// @version 1.0
// @description Operator console for AI-powered candidate verification. The JSON endpoints mirror what the HTML pages show.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("config:", err)
	}

	docs.SwaggerInfo.Host = cfg.SwaggerHost

	log.Printf("Backend API: %s", cfg.APIBaseURL)
	client := backend.NewClient(cfg.APIBaseURL, httpclient.NewClient(cfg.BackendTimeout))

	console := web.NewConsole(client, web.Options{
		DocumentsBaseURL: cfg.DocumentsBaseURL,
		MaxUploadSizeMB:  cfg.UploadMaxSizeMB,
		SwaggerURL:       "http://" + cfg.SwaggerHost + "/swagger/doc.json",
	})
	router := web.NewRouter(console)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  30 * time.Second, // résumé uploads
		WriteTimeout: 2 * time.Minute,  // backend upload + parse round trip
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Println("server shutdown:", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("Console listening on %s\n", cfg.Addr())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}

	<-idleConnsClosed
}
