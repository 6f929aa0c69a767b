package api

import (
	"fmt"
	"log"
	"net/http"

	_ "github.com/rohits-web03/blogd/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rohits-web03/blogd/internal/api/handlers"
	"github.com/rohits-web03/blogd/internal/api/middleware"
	"github.com/rohits-web03/blogd/internal/auth"
	"github.com/rohits-web03/blogd/internal/config"
	"github.com/rs/cors"
)

// SetupRouter wires the public and protected route trees. imageDir, when
// non-empty, is served statically under /images/ (the local image store).
func SetupRouter(h *handlers.Handler, tokens *auth.TokenManager, imageDir string) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(config.Envs.CorsConfig)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	if imageDir != "" {
		mainMux.Handle("/images/",
			http.StripPrefix("/images/", http.FileServer(http.Dir(imageDir))),
		)
	}

	authMux := http.NewServeMux()
	authMux.HandleFunc("/signup", h.Signup)
	authMux.HandleFunc("/login", h.Login)
	authMux.HandleFunc("/google/login", h.GoogleLogin)
	authMux.HandleFunc("/google/callback", h.GoogleCallback)

	mainMux.Handle("/api/v1/auth/",
		http.StripPrefix("/api/v1/auth", authMux),
	)

	// ---------- PROTECTED ROUTES ----------
	protectedMux := http.NewServeMux()

	protectedMux.HandleFunc("/posts", h.Posts)
	protectedMux.HandleFunc("/posts/{id}", h.PostByID)
	protectedMux.HandleFunc("/post-image", h.UploadImage)
	protectedMux.HandleFunc("/user", h.CurrentUser)
	protectedMux.HandleFunc("/user/status", h.UpdateStatus)
	protectedMux.HandleFunc("/events", h.StreamEvents)

	mainMux.Handle("/api/v1/",
		http.StripPrefix(
			"/api/v1",
			middleware.Auth(tokens)(protectedMux),
		),
	)

	log.Println("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}
