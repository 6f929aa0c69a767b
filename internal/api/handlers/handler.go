package handlers

import (
	"net/http"

	"github.com/rohits-web03/blogd/internal/events"
	"github.com/rohits-web03/blogd/internal/images"
	"github.com/rohits-web03/blogd/internal/service"
	"github.com/rohits-web03/blogd/internal/utils"
)

// Handler bundles the services the HTTP layer exposes.
type Handler struct {
	auth        *service.AuthService
	posts       *service.PostService
	broadcaster *events.Broadcaster
	imageStore  images.Store
	imageMgr    *images.Manager
}

func New(
	auth *service.AuthService,
	posts *service.PostService,
	broadcaster *events.Broadcaster,
	store images.Store,
	imageMgr *images.Manager,
) *Handler {
	return &Handler{
		auth:        auth,
		posts:       posts,
		broadcaster: broadcaster,
		imageStore:  store,
		imageMgr:    imageMgr,
	}
}

// writeError maps service error kinds onto status codes. Anything without a
// recognized kind is an internal fault and reported without detail.
func writeError(w http.ResponseWriter, err error) {
	se, ok := service.AsError(err)
	if !ok {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Internal server error",
		})
		return
	}

	status := http.StatusInternalServerError
	switch se.Kind {
	case service.KindAuth:
		status = http.StatusUnauthorized
	case service.KindForbidden:
		status = http.StatusForbidden
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindValidation:
		status = http.StatusUnprocessableEntity
	case service.KindConflict:
		status = http.StatusConflict
	}

	payload := utils.Payload{Success: false, Message: se.Message}
	if len(se.Fields) > 0 {
		payload.Data = map[string]any{"errors": se.Fields}
	}
	utils.JSONResponse(w, status, payload)
}

func methodNotAllowed(w http.ResponseWriter) {
	utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
		Success: false,
		Message: "Method not allowed",
	})
}

func badRequest(w http.ResponseWriter, msg string) {
	utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
		Success: false,
		Message: msg,
	})
}
