package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"thrift-deals-service/internal/domain"
	"thrift-deals-service/internal/store"
)

// defaultWishlistName is used when a list is created implicitly by the
// save-heart toggle and the user never named one.
const defaultWishlistName = "My Wishlist"

// userIDHeader carries the caller identity. Authentication itself is
// handled upstream; this service trusts the header the gateway sets.
const userIDHeader = "X-User-ID"

// CreateWishlistInput defines the expected JSON body for creating or
// renaming a wishlist.
type CreateWishlistInput struct {
	Name string `json:"name" validate:"required,max=80"`
}

// AddWishlistItemInput is the product snapshot saved into a wishlist.
type AddWishlistItemInput struct {
	ProductID     string `json:"product_id" validate:"required,max=100"`
	Title         string `json:"title" validate:"required,max=300"`
	Price         string `json:"price" validate:"max=60"`
	Image         string `json:"image" validate:"omitempty,url"`
	AffiliateLink string `json:"affiliate_link" validate:"omitempty,url"`
}

// ToggleWishlistItemInput is AddWishlistItemInput plus an optional
// target list; the user's first list is used when omitted.
type ToggleWishlistItemInput struct {
	WishlistID    string `json:"wishlist_id" validate:"omitempty,max=100"`
	ProductID     string `json:"product_id" validate:"required,max=100"`
	Title         string `json:"title" validate:"required,max=300"`
	Price         string `json:"price" validate:"max=60"`
	Image         string `json:"image" validate:"omitempty,url"`
	AffiliateLink string `json:"affiliate_link" validate:"omitempty,url"`
}

func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get(userIDHeader))
	if userID == "" {
		respondWithError(w, http.StatusUnauthorized, "Missing "+userIDHeader+" header")
		return "", false
	}
	return userID, true
}

func (h *HTTPHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, input interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondWithError(w, http.StatusBadRequest, "Validation failed: "+validationErrors.Error())
			return false
		}
		respondWithError(w, http.StatusInternalServerError, "Error during validation")
		return false
	}
	return true
}

// ownedWishlist loads a wishlist and checks the caller owns it. A list
// owned by someone else reads as not-found so ids cannot be probed.
func (h *HTTPHandler) ownedWishlist(w http.ResponseWriter, r *http.Request, id, userID string) (*domain.Wishlist, bool) {
	wl, err := h.wishlistStore.GetWishlistByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrWishlistNotFound) {
			respondWithError(w, http.StatusNotFound, "Wishlist not found")
			return nil, false
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve wishlist")
		return nil, false
	}
	if wl.UserID != userID {
		respondWithError(w, http.StatusNotFound, "Wishlist not found")
		return nil, false
	}
	return wl, true
}

// ListWishlists returns the caller's wishlists, oldest first.
func (h *HTTPHandler) ListWishlists(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	wishlists, err := h.wishlistStore.ListWishlists(r.Context(), userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve wishlists")
		return
	}
	respondWithJSON(w, http.StatusOK, struct {
		Data []domain.Wishlist `json:"data"`
	}{Data: wishlists})
}

// CreateWishlist creates a named wishlist for the caller.
func (h *HTTPHandler) CreateWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var input CreateWishlistInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	created, err := h.wishlistStore.CreateWishlist(r.Context(), userID, strings.TrimSpace(input.Name))
	if err != nil {
		if errors.Is(err, store.ErrWishlistNameExists) {
			respondWithError(w, http.StatusConflict, "A wishlist with this name already exists")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to create wishlist")
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// RenameWishlist renames a wishlist owned by the caller.
func (h *HTTPHandler) RenameWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var input CreateWishlistInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	updated, err := h.wishlistStore.RenameWishlist(r.Context(), chi.URLParam(r, "wishlistId"), userID, strings.TrimSpace(input.Name))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrWishlistNotFound):
			respondWithError(w, http.StatusNotFound, "Wishlist not found")
		case errors.Is(err, store.ErrWishlistNameExists):
			respondWithError(w, http.StatusConflict, "A wishlist with this name already exists")
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to rename wishlist")
		}
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// DeleteWishlist deletes a wishlist owned by the caller, items included.
func (h *HTTPHandler) DeleteWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	err := h.wishlistStore.DeleteWishlist(r.Context(), chi.URLParam(r, "wishlistId"), userID)
	if err != nil {
		if errors.Is(err, store.ErrWishlistNotFound) {
			respondWithError(w, http.StatusNotFound, "Wishlist not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to delete wishlist")
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

// ListWishlistItems returns the saved products in one of the caller's
// wishlists, newest first.
func (h *HTTPHandler) ListWishlistItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	wl, ok := h.ownedWishlist(w, r, chi.URLParam(r, "wishlistId"), userID)
	if !ok {
		return
	}

	items, err := h.wishlistStore.ListItems(r.Context(), wl.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve wishlist items")
		return
	}
	respondWithJSON(w, http.StatusOK, struct {
		Wishlist *domain.Wishlist      `json:"wishlist"`
		Data     []domain.WishlistItem `json:"data"`
	}{Wishlist: wl, Data: items})
}

// AddWishlistItem saves a product snapshot into one of the caller's
// wishlists.
func (h *HTTPHandler) AddWishlistItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var input AddWishlistItemInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	wl, ok := h.ownedWishlist(w, r, chi.URLParam(r, "wishlistId"), userID)
	if !ok {
		return
	}

	created, err := h.wishlistStore.AddItem(r.Context(), &domain.WishlistItem{
		WishlistID:    wl.ID,
		ProductID:     input.ProductID,
		Title:         input.Title,
		Price:         input.Price,
		Image:         input.Image,
		AffiliateLink: input.AffiliateLink,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrWishlistItemExists):
			respondWithError(w, http.StatusConflict, "Product already in wishlist")
		case errors.Is(err, store.ErrWishlistNotFound):
			respondWithError(w, http.StatusNotFound, "Wishlist not found")
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to add item")
		}
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// RemoveWishlistItem removes a product from one of the caller's
// wishlists.
func (h *HTTPHandler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	wl, ok := h.ownedWishlist(w, r, chi.URLParam(r, "wishlistId"), userID)
	if !ok {
		return
	}

	err := h.wishlistStore.RemoveItem(r.Context(), wl.ID, chi.URLParam(r, "productId"))
	if err != nil {
		if errors.Is(err, store.ErrWishlistItemNotFound) {
			respondWithError(w, http.StatusNotFound, "Product not in wishlist")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to remove item")
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

// ToggleWishlistItem implements the save-heart button: add the product
// when absent, remove it when present. The caller's first wishlist is
// used (created on demand) unless the body names one.
func (h *HTTPHandler) ToggleWishlistItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var input ToggleWishlistItemInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}

	var wl *domain.Wishlist
	if input.WishlistID != "" {
		wl, ok = h.ownedWishlist(w, r, input.WishlistID, userID)
		if !ok {
			return
		}
	} else {
		wishlists, err := h.wishlistStore.ListWishlists(r.Context(), userID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to retrieve wishlists")
			return
		}
		if len(wishlists) > 0 {
			wl = &wishlists[0]
		} else {
			wl, err = h.wishlistStore.CreateWishlist(r.Context(), userID, defaultWishlistName)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Failed to create wishlist")
				return
			}
		}
	}

	_, err := h.wishlistStore.AddItem(r.Context(), &domain.WishlistItem{
		WishlistID:    wl.ID,
		ProductID:     input.ProductID,
		Title:         input.Title,
		Price:         input.Price,
		Image:         input.Image,
		AffiliateLink: input.AffiliateLink,
	})
	if err == nil {
		respondWithJSON(w, http.StatusOK, struct {
			Added      bool   `json:"added"`
			WishlistID string `json:"wishlist_id"`
		}{Added: true, WishlistID: wl.ID})
		return
	}
	if !errors.Is(err, store.ErrWishlistItemExists) {
		respondWithError(w, http.StatusInternalServerError, "Failed to toggle item")
		return
	}

	if err := h.wishlistStore.RemoveItem(r.Context(), wl.ID, input.ProductID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to toggle item")
		return
	}
	respondWithJSON(w, http.StatusOK, struct {
		Added      bool   `json:"added"`
		WishlistID string `json:"wishlist_id"`
	}{Added: false, WishlistID: wl.ID})
}

// GetSharedWishlist resolves a public share link: the wishlist plus its
// items, no owner check.
func (h *HTTPHandler) GetSharedWishlist(w http.ResponseWriter, r *http.Request) {
	wl, err := h.wishlistStore.GetWishlistByShareToken(r.Context(), chi.URLParam(r, "shareToken"))
	if err != nil {
		if errors.Is(err, store.ErrWishlistNotFound) {
			respondWithError(w, http.StatusNotFound, "Wishlist not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve wishlist")
		return
	}

	items, err := h.wishlistStore.ListItems(r.Context(), wl.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve wishlist items")
		return
	}

	// The owner's user id stays private on a shared view.
	wl.UserID = ""
	respondWithJSON(w, http.StatusOK, struct {
		Wishlist *domain.Wishlist      `json:"wishlist"`
		Data     []domain.WishlistItem `json:"data"`
	}{Wishlist: wl, Data: items})
}
