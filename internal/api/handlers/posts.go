package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rohits-web03/blogd/internal/api/middleware"
	"github.com/rohits-web03/blogd/internal/service"
	"github.com/rohits-web03/blogd/internal/utils"
)

// Posts handles the collection routes.
//
// ListPosts godoc
// @Summary List posts
// @Description Returns one page of posts (2 per page), newest first, plus the total count.
// @Tags Posts
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Success 200 {object} utils.Payload
// @Router /api/v1/posts [get]
func (h *Handler) Posts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listPosts(w, r)
	case http.MethodPost:
		h.createPost(w, r)
	default:
		methodNotAllowed(w)
	}
}

// PostByID handles the single-post routes.
//
// GetPost godoc
// @Summary Fetch one post
// @Tags Posts
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/v1/posts/{id} [get]
func (h *Handler) PostByID(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("id")
	if postID == "" {
		badRequest(w, "Missing post id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getPost(w, postID)
	case http.MethodPut:
		h.updatePost(w, r, postID)
	case http.MethodDelete:
		h.deletePost(w, r, postID)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			badRequest(w, "Invalid page")
			return
		}
		page = parsed
	}

	result, err := h.posts.List(page)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Posts fetched",
		Data:    result,
	})
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	var input service.PostInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		badRequest(w, "Invalid input")
		return
	}

	post, err := h.posts.Create(middleware.UserID(r), input)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "Post created successfully",
		Data:    post,
	})
}

func (h *Handler) getPost(w http.ResponseWriter, postID string) {
	post, err := h.posts.Get(postID)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Post fetched",
		Data:    post,
	})
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request, postID string) {
	var input service.PostInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		badRequest(w, "Invalid input")
		return
	}

	post, err := h.posts.Update(middleware.UserID(r), postID, input)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Post updated",
		Data:    post,
	})
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request, postID string) {
	if err := h.posts.Delete(middleware.UserID(r), postID); err != nil {
		writeError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Post deleted",
	})
}
