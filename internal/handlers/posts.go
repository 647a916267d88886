// internal/handlers/posts.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sanctra-backend/internal/middleware"
	"sanctra-backend/internal/models"
	"sanctra-backend/internal/services"
	apperrors "sanctra-backend/pkg/errors"
	"sanctra-backend/pkg/utils"
)

type PostsHandler struct {
	postService services.PostService
}

func NewPostsHandler(postService services.PostService) *PostsHandler {
	return &PostsHandler{
		postService: postService,
	}
}

func (h *PostsHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrUnauthorized,
			http.StatusUnauthorized,
			"user not found in context",
		))
		return
	}

	var req models.CreatePostRequest
	if err := utils.DecodeJSONBody(r, &req); err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	post, err := h.postService.CreatePost(r.Context(), userID, &req)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	utils.SendJSONResponse(w, http.StatusCreated, post)
}

func (h *PostsHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	offset, _ := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 64)

	posts, err := h.postService.ListPosts(r.Context(), limit, offset)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, posts)
}

func (h *PostsHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrUnauthorized,
			http.StatusUnauthorized,
			"user not found in context",
		))
		return
	}

	postID := chi.URLParam(r, "postId")
	if err := h.postService.DeletePost(r.Context(), userID, postID); err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, map[string]string{"message": "post deleted"})
}
