package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appletters "github.com/avdeyev/mailtriage/internal/application/letters"
	"github.com/avdeyev/mailtriage/internal/config"
	domain "github.com/avdeyev/mailtriage/internal/domain/letters"
	aiopenai "github.com/avdeyev/mailtriage/internal/infra/ai/openai"
	"github.com/avdeyev/mailtriage/internal/infra/ai/prompt"
	mysqldb "github.com/avdeyev/mailtriage/internal/infra/db/mysql"
	postgresdb "github.com/avdeyev/mailtriage/internal/infra/db/postgres"
	"github.com/avdeyev/mailtriage/internal/infra/httpserver"
	minioStore "github.com/avdeyev/mailtriage/internal/infra/storage"
	"github.com/avdeyev/mailtriage/internal/infra/textsource"
	"github.com/avdeyev/mailtriage/internal/middleware"
)

func main() {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect ledger database
	var db *sql.DB
	var repo domain.Repository
	switch cfg.Database.Driver {
	case "mysql":
		db, err = mysqldb.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqldb.NewMessageRepository(db)
	case "postgres":
		db, err = postgresdb.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresdb.NewMessageRepository(db)
	default:
		log.Fatalf("unknown database driver: %s", cfg.Database.Driver)
	}
	defer db.Close()

	// generation gateway — availability is decided here, once.
	// Without a credential every analysis takes the heuristic path.
	var gen domain.Generator
	if cfg.AI.APIKey != "" {
		gen = aiopenai.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model)
	} else {
		log.Println("WARNING: AI credential not set, running in heuristic-only mode")
	}

	// optional upload archive
	var archive appletters.UploadArchive
	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		archive = store
	}

	svc := &appletters.Service{
		Repo:      repo,
		Gen:       gen,
		Prompt:    prompt.New(),
		Extractor: textsource.New(),
		Archive:   archive,
		Clock:     appletters.SystemClock{},
	}

	handler := httpserver.NewRouter(svc, httpserver.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		APIKeys:     cfg.Server.APIKeys,
		Health: map[string]middleware.HealthChecker{
			"database": &middleware.DatabaseHealthChecker{DB: db},
		},
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
