package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"thrift-deals-service/internal/domain"
	"thrift-deals-service/internal/store"
)

// CreatePostInput defines the expected JSON body for creating a post.
type CreatePostInput struct {
	Author   string   `json:"author" validate:"required,max=60"`
	Category string   `json:"category" validate:"required,max=40"`
	Title    string   `json:"title" validate:"required,max=200"`
	Content  string   `json:"content" validate:"required,max=5000"`
	Tags     []string `json:"tags" validate:"max=5,dive,max=30"`
}

// AddCommentInput defines the expected JSON body for adding a comment.
type AddCommentInput struct {
	Author  string `json:"author" validate:"required,max=60"`
	Content string `json:"content" validate:"required,max=2000"`
}

// ListPosts returns community posts with category, search and sort
// narrowing plus offset pagination.
func (h *HTTPHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sortKey := q.Get("sort")
	switch sortKey {
	case "", "newest", "popular", "trending", "discussed":
	default:
		respondWithError(w, http.StatusBadRequest, "Invalid sort value. Allowed: newest, popular, trending, discussed")
		return
	}

	page, limit := parsePageLimit(r, 20)
	posts, total, err := h.postStore.ListPosts(r.Context(), store.ListPostsParams{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Sort:     sortKey,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve posts")
		return
	}

	respondWithJSON(w, http.StatusOK, struct {
		Data       []domain.Post `json:"data"`
		Pagination Pagination    `json:"pagination"`
	}{Data: posts, Pagination: paginationFor(page, limit, total)})
}

// CreatePost handles new community posts.
func (h *HTTPHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var input CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondWithError(w, http.StatusBadRequest, "Validation failed: "+validationErrors.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Error during validation")
		return
	}

	created, err := h.postStore.CreatePost(r.Context(), &domain.Post{
		Author:   input.Author,
		Category: input.Category,
		Title:    input.Title,
		Content:  input.Content,
		Tags:     input.Tags,
	})
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// GetPost returns a single post by id.
func (h *HTTPHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.postStore.GetPostByID(r.Context(), chi.URLParam(r, "postId"))
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			respondWithError(w, http.StatusNotFound, "Post not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve post")
		return
	}
	respondWithJSON(w, http.StatusOK, post)
}

// LikePost bumps the like counter and returns the updated post.
func (h *HTTPHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	post, err := h.postStore.LikePost(r.Context(), chi.URLParam(r, "postId"))
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			respondWithError(w, http.StatusNotFound, "Post not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to like post")
		return
	}
	respondWithJSON(w, http.StatusOK, post)
}

// ListComments returns the comments on a post, oldest first.
func (h *HTTPHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	if _, err := h.postStore.GetPostByID(r.Context(), postID); err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			respondWithError(w, http.StatusNotFound, "Post not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve post")
		return
	}

	comments, err := h.postStore.ListComments(r.Context(), postID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve comments")
		return
	}
	respondWithJSON(w, http.StatusOK, struct {
		Data []domain.Comment `json:"data"`
	}{Data: comments})
}

// AddComment adds a comment to a post.
func (h *HTTPHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var input AddCommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondWithError(w, http.StatusBadRequest, "Validation failed: "+validationErrors.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Error during validation")
		return
	}

	created, err := h.postStore.AddComment(r.Context(), &domain.Comment{
		PostID:  chi.URLParam(r, "postId"),
		Author:  input.Author,
		Content: input.Content,
	})
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			respondWithError(w, http.StatusNotFound, "Post not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}
