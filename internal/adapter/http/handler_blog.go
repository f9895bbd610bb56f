package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/driveline/driveline/internal/domain"
	"github.com/driveline/driveline/internal/usecase"

	"github.com/gorilla/mux"
)

// BlogHandler handles HTTP requests for blog content
type BlogHandler struct {
	blogUseCase *usecase.BlogUseCase
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(blogUseCase *usecase.BlogUseCase) *BlogHandler {
	return &BlogHandler{
		blogUseCase: blogUseCase,
	}
}

// RegisterRoutes registers blog routes
func (h *BlogHandler) RegisterRoutes(router *mux.Router, auth *AuthMiddleware) {
	router.HandleFunc("/api/admin/add-blog", auth.Require(h.AddBlog)).Methods("POST")
	router.HandleFunc("/api/admin/update-blog/{id}", auth.Require(h.UpdateBlog)).Methods("PUT")
	router.HandleFunc("/api/admin/delete-blog/{id}", auth.Require(h.DeleteBlog)).Methods("DELETE")

	router.HandleFunc("/api/blogs", h.ListBlogs).Methods("GET")
	router.HandleFunc("/api/blogs/{id}", h.GetBlog).Methods("GET")
}

// AddBlog handles publishing a blog post
func (h *BlogHandler) AddBlog(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	blog, err := h.blogUseCase.AddBlog(r.Context(), req, AdminIDFromContext(r.Context()))
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"blog":    blog,
	})
}

// GetBlog handles retrieving a single blog post
func (h *BlogHandler) GetBlog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	blogID := vars["id"]

	blog, err := h.blogUseCase.GetBlog(r.Context(), blogID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"blog":    blog,
	})
}

// ListBlogs handles listing blog posts, newest first
func (h *BlogHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	limit := 20
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil {
			limit = v
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if v, err := strconv.Atoi(offsetStr); err == nil {
			offset = v
		}
	}

	blogs, err := h.blogUseCase.ListBlogs(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	if blogs == nil {
		blogs = []*domain.Blog{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"blogs":   blogs,
	})
}

// UpdateBlog handles partial blog edits
func (h *BlogHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	blogID := vars["id"]

	var req usecase.UpdateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	blog, err := h.blogUseCase.UpdateBlog(r.Context(), blogID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"blog":    blog,
	})
}

// DeleteBlog handles removing a blog post
func (h *BlogHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	blogID := vars["id"]

	if err := h.blogUseCase.DeleteBlog(r.Context(), blogID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Blog deleted",
	})
}
