package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"thrift-deals-service/internal/coupon"
	"thrift-deals-service/internal/domain"
)

// ListCoupons returns the coupon board, optionally narrowed by store,
// search text and sort order.
func (h *HTTPHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sortKey := q.Get("sort")
	switch sortKey {
	case "", "featured", "popular", "expiry":
	default:
		respondWithError(w, http.StatusBadRequest, "Invalid sort value. Allowed: featured, popular, expiry")
		return
	}
	if sortKey == "featured" {
		sortKey = ""
	}

	views := h.board.List(coupon.ListParams{
		Store:      strings.TrimSpace(q.Get("store")),
		Search:     q.Get("search"),
		Sort:       sortKey,
		ActiveOnly: q.Get("active") == "true",
	})

	respondWithJSON(w, http.StatusOK, struct {
		Data []domain.CouponView `json:"data"`
	}{Data: views})
}

// ListCouponStores returns the distinct store names for the tab bar.
func (h *HTTPHandler) ListCouponStores(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, struct {
		Data []string `json:"data"`
	}{Data: h.board.Stores()})
}

// CopyCouponCode records a code copy and returns the refreshed coupon,
// so the client can show the updated used counter immediately.
func (h *HTTPHandler) CopyCouponCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	view, err := h.board.Copy(code)
	if err != nil {
		if errors.Is(err, coupon.ErrCouponNotFound) {
			respondWithError(w, http.StatusNotFound, "Coupon not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to copy coupon")
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}
