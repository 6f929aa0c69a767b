package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rohits-web03/blogd/internal/api"
	"github.com/rohits-web03/blogd/internal/api/handlers"
	"github.com/rohits-web03/blogd/internal/auth"
	"github.com/rohits-web03/blogd/internal/config"
	"github.com/rohits-web03/blogd/internal/events"
	"github.com/rohits-web03/blogd/internal/images"
	"github.com/rohits-web03/blogd/internal/repositories"
	"github.com/rohits-web03/blogd/internal/service"
	"golang.org/x/sync/errgroup"
)

// @title           Blogd API
// @version         1.0
// @description     Blogging backend: signup/login, post CRUD with image uploads, live post-change events.

// @host      localhost:8080
// @BasePath  /
func main() {
	db := repositories.ConnectDatabase()

	var store images.Store
	var imageDir string
	switch config.Envs.ImageStore {
	case "r2":
		store = images.NewR2Store(config.Envs.R2)
	default:
		local, err := images.NewLocalStore(config.Envs.ImageDir)
		if err != nil {
			log.Fatal("Failed to init image store:", err)
		}
		store = local
		imageDir = local.Dir()
	}

	broadcaster := events.NewBroadcaster()
	tokens := auth.NewTokenManager(config.Envs.JWTSecret)
	imageMgr := images.NewManager(store)

	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)

	authService := service.NewAuthService(userRepo, tokens)
	postService := service.NewPostService(userRepo, postRepo, imageMgr, broadcaster)

	h := handlers.New(authService, postService, broadcaster, store, imageMgr)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Envs.Port),
		Handler: api.SetupRouter(h, tokens, imageDir),
		// Timeouts prevent resource exhaustion from slow clients. No write
		// timeout: the event stream holds its connection open.
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting blogd server on port: %s", config.Envs.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
