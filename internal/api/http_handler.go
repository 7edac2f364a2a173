package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"thrift-deals-service/internal/catalog"
	"thrift-deals-service/internal/coupon"
	"thrift-deals-service/internal/domain"
	"thrift-deals-service/internal/search"
	"thrift-deals-service/internal/sitemap"
	"thrift-deals-service/internal/store"
)

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	engine        *search.Engine
	catalog       *catalog.Catalog
	board         *coupon.Board
	wishlistStore store.WishlistStorer
	postStore     store.PostStorer
	validate      *validator.Validate
	siteURL       string
	now           func() time.Time
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(
	engine *search.Engine,
	cat *catalog.Catalog,
	board *coupon.Board,
	ws store.WishlistStorer,
	ps store.PostStorer,
	siteURL string,
) *HTTPHandler {
	return &HTTPHandler{
		engine:        engine,
		catalog:       cat,
		board:         board,
		wishlistStore: ws,
		postStore:     ps,
		validate:      validator.New(),
		siteURL:       siteURL,
		now:           time.Now,
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil { // Avoid writing empty body for 204 No Content
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("ERROR: Failed to encode JSON response: %v", err)
			http.Error(w, `{"error": "Internal server error during JSON encoding"}`, http.StatusInternalServerError)
		}
	}
}

// Pagination matches the envelope every list endpoint returns.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

func paginationFor(page, limit, total int) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, TotalItems: total, TotalPages: totalPages}
}

func parsePageLimit(r *http.Request, defaultLimit int) (page, limit int) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	page, err = strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	return page, limit
}

// --- Search Handlers ---

// parseSearchFilters reads the facet parameters off a search request.
// A malformed numeric parameter is a client error, reported as such.
func parseSearchFilters(r *http.Request) (search.Filters, string) {
	var filters search.Filters
	q := r.URL.Query()

	if raw := q.Get("categories"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				filters.Categories = append(filters.Categories, c)
			}
		}
	}
	for param, dest := range map[string]**int{
		"min_price":    &filters.MinPrice,
		"max_price":    &filters.MaxPrice,
		"min_discount": &filters.MinDiscount,
	} {
		if raw := q.Get(param); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil || v < 0 {
				return filters, "Invalid " + param + " format"
			}
			*dest = &v
		}
	}
	if raw := q.Get("min_rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return filters, "Invalid min_rating format"
		}
		filters.MinRating = &v
	}
	if filters.MinPrice != nil && filters.MaxPrice != nil && *filters.MinPrice > *filters.MaxPrice {
		return filters, "min_price cannot exceed max_price"
	}
	return filters, ""
}

// SearchProducts runs the full search pipeline: free-text query `q`,
// facet filters, sort key and offset pagination. The query is echoed in
// the response so the client can keep the page URL in sync.
func (h *HTTPHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	filters, errMsg := parseSearchFilters(r)
	if errMsg != "" {
		respondWithError(w, http.StatusBadRequest, errMsg)
		return
	}

	sortKey, ok := search.ParseSortKey(r.URL.Query().Get("sort"))
	if !ok {
		respondWithError(w, http.StatusBadRequest,
			"Invalid sort value. Allowed: relevance, price-asc, price-desc, discount-desc, rating-desc, newest")
		return
	}

	page, limit := parsePageLimit(r, h.engine.PageSize())
	result := h.engine.Search(query, filters, sortKey)
	views := result.Page((page-1)*limit, limit)

	respondWithJSON(w, http.StatusOK, struct {
		Query      string               `json:"query"`
		Sort       string               `json:"sort"`
		Data       []domain.ProductView `json:"data"`
		Pagination Pagination           `json:"pagination"`
	}{
		Query:      query,
		Sort:       string(sortKey),
		Data:       views,
		Pagination: paginationFor(page, limit, result.Len()),
	})
}

// SuggestProducts serves the type-ahead dropdown. Too-short queries get
// an empty list, not an error; the client hides the dropdown either way.
func (h *HTTPHandler) SuggestProducts(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	suggestions := h.engine.Suggest(query)
	if suggestions == nil {
		suggestions = []domain.ProductView{}
	}
	respondWithJSON(w, http.StatusOK, struct {
		Query string               `json:"query"`
		Data  []domain.ProductView `json:"data"`
	}{Query: query, Data: suggestions})
}

// ListProducts is the unfiltered catalog listing used by the deals page,
// newest first by default.
func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	sortKey := search.SortNewest
	if raw := r.URL.Query().Get("sort"); raw != "" {
		parsed, ok := search.ParseSortKey(raw)
		if !ok {
			respondWithError(w, http.StatusBadRequest,
				"Invalid sort value. Allowed: relevance, price-asc, price-desc, discount-desc, rating-desc, newest")
			return
		}
		sortKey = parsed
	}

	page, limit := parsePageLimit(r, h.engine.PageSize())
	result := h.engine.Search("", search.Filters{}, sortKey)
	views := result.Page((page-1)*limit, limit)

	respondWithJSON(w, http.StatusOK, struct {
		Data       []domain.ProductView `json:"data"`
		Pagination Pagination           `json:"pagination"`
	}{Data: views, Pagination: paginationFor(page, limit, result.Len())})
}

// GetProductByID returns one product view.
func (h *HTTPHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")
	for _, p := range h.catalog.Products() {
		if p.ID == id {
			respondWithJSON(w, http.StatusOK, search.NewProductView(p, h.now()))
			return
		}
	}
	respondWithError(w, http.StatusNotFound, "Product not found")
}

// Sitemap renders sitemap.xml over the current catalog snapshot.
func (h *HTTPHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	out, err := sitemap.Generate(h.siteURL, h.catalog.Products(), h.now())
	if err != nil {
		log.Printf("ERROR: Sitemap generation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to generate sitemap")
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", h.SearchProducts)
		r.Get("/search/suggestions", h.SuggestProducts)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Get("/{productId}", h.GetProductByID)
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Get("/", h.ListCoupons)
			r.Get("/stores", h.ListCouponStores)
			r.Post("/{code}/copy", h.CopyCouponCode)
		})

		r.Route("/community/posts", func(r chi.Router) {
			r.Get("/", h.ListPosts)
			r.Post("/", h.CreatePost)
			r.Route("/{postId}", func(r chi.Router) {
				r.Get("/", h.GetPost)
				r.Post("/like", h.LikePost)
				r.Get("/comments", h.ListComments)
				r.Post("/comments", h.AddComment)
			})
		})

		r.Route("/wishlists", func(r chi.Router) {
			r.Get("/", h.ListWishlists)
			r.Post("/", h.CreateWishlist)
			r.Get("/shared/{shareToken}", h.GetSharedWishlist)
			r.Post("/toggle", h.ToggleWishlistItem)
			r.Route("/{wishlistId}", func(r chi.Router) {
				r.Patch("/", h.RenameWishlist)
				r.Delete("/", h.DeleteWishlist)
				r.Get("/items", h.ListWishlistItems)
				r.Post("/items", h.AddWishlistItem)
				r.Delete("/items/{productId}", h.RemoveWishlistItem)
			})
		})

		r.Get("/sitemap.xml", h.Sitemap)
	})
}
