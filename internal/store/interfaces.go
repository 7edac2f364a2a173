package store

import (
	"context"

	"thrift-deals-service/internal/domain"
)

// WishlistStorer defines the database operations for wishlists. All
// owner-scoped operations take the user id so a caller can never touch
// another user's list.
type WishlistStorer interface {
	CreateWishlist(ctx context.Context, userID, name string) (*domain.Wishlist, error)
	ListWishlists(ctx context.Context, userID string) ([]domain.Wishlist, error)
	GetWishlistByID(ctx context.Context, id string) (*domain.Wishlist, error)
	GetWishlistByShareToken(ctx context.Context, token string) (*domain.Wishlist, error)
	RenameWishlist(ctx context.Context, id, userID, name string) (*domain.Wishlist, error)
	DeleteWishlist(ctx context.Context, id, userID string) error
	AddItem(ctx context.Context, item *domain.WishlistItem) (*domain.WishlistItem, error)
	RemoveItem(ctx context.Context, wishlistID, productID string) error
	ListItems(ctx context.Context, wishlistID string) ([]domain.WishlistItem, error)
}

// ListPostsParams holds parameters for listing community posts.
type ListPostsParams struct {
	Category string // exact category, empty for all
	Search   string // substring over title, content and tags
	Sort     string // "newest" (default), "popular", "trending", "discussed"
	Limit    int
	Offset   int
}

// PostStorer defines the database operations for the community board.
type PostStorer interface {
	CreatePost(ctx context.Context, post *domain.Post) (*domain.Post, error)
	GetPostByID(ctx context.Context, id string) (*domain.Post, error)
	ListPosts(ctx context.Context, params ListPostsParams) ([]domain.Post, int, error)
	LikePost(ctx context.Context, id string) (*domain.Post, error)
	AddComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	ListComments(ctx context.Context, postID string) ([]domain.Comment, error)
}
