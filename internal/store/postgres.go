package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"thrift-deals-service/internal/domain"
)

// Predefined errors for store operations
var (
	ErrWishlistNotFound     = errors.New("store: wishlist not found")
	ErrWishlistNameExists   = errors.New("store: wishlist name already exists for this user")
	ErrWishlistItemExists   = errors.New("store: product already in wishlist")
	ErrWishlistItemNotFound = errors.New("store: product not in wishlist")
)

// PostgresStore implements WishlistStorer against PostgreSQL. The
// production deployment points it at the same hosted Postgres the
// browser client used through its backend-as-a-service SDK.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateWishlist(ctx context.Context, userID, name string) (*domain.Wishlist, error) {
	query := `
		INSERT INTO wishlists (id, user_id, name, share_token)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, share_token, created_at, updated_at;
	`
	row := s.db.QueryRowContext(ctx, query, uuid.NewString(), userID, name, uuid.NewString())

	var w domain.Wishlist
	err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.ShareToken, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // Unique violation
			return nil, ErrWishlistNameExists
		}
		return nil, fmt.Errorf("store: CreateWishlist failed to scan row: %w", err)
	}
	return &w, nil
}

func (s *PostgresStore) ListWishlists(ctx context.Context, userID string) ([]domain.Wishlist, error) {
	query := `
		SELECT w.id, w.user_id, w.name, w.share_token, w.created_at, w.updated_at,
		       COUNT(i.id) AS item_count
		FROM wishlists w
		LEFT JOIN wishlist_items i ON i.wishlist_id = w.id
		WHERE w.user_id = $1
		GROUP BY w.id
		ORDER BY w.created_at ASC;
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("store: ListWishlists failed to query: %w", err)
	}
	defer rows.Close()

	wishlists := make([]domain.Wishlist, 0)
	for rows.Next() {
		var w domain.Wishlist
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.ShareToken, &w.CreatedAt, &w.UpdatedAt, &w.ItemCount); err != nil {
			return nil, fmt.Errorf("store: ListWishlists failed to scan row: %w", err)
		}
		wishlists = append(wishlists, w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListWishlists iteration error: %w", err)
	}
	return wishlists, nil
}

func (s *PostgresStore) GetWishlistByID(ctx context.Context, id string) (*domain.Wishlist, error) {
	return s.getWishlist(ctx, "w.id = $1", id)
}

func (s *PostgresStore) GetWishlistByShareToken(ctx context.Context, token string) (*domain.Wishlist, error) {
	return s.getWishlist(ctx, "w.share_token = $1", token)
}

func (s *PostgresStore) getWishlist(ctx context.Context, where, arg string) (*domain.Wishlist, error) {
	query := fmt.Sprintf(`
		SELECT w.id, w.user_id, w.name, w.share_token, w.created_at, w.updated_at,
		       COUNT(i.id) AS item_count
		FROM wishlists w
		LEFT JOIN wishlist_items i ON i.wishlist_id = w.id
		WHERE %s
		GROUP BY w.id;
	`, where)

	var w domain.Wishlist
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&w.ID, &w.UserID, &w.Name, &w.ShareToken, &w.CreatedAt, &w.UpdatedAt, &w.ItemCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWishlistNotFound
		}
		return nil, fmt.Errorf("store: getWishlist failed to scan row: %w", err)
	}
	return &w, nil
}

func (s *PostgresStore) RenameWishlist(ctx context.Context, id, userID, name string) (*domain.Wishlist, error) {
	query := `
		UPDATE wishlists
		SET name = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, name, share_token, created_at, updated_at;
	`
	var w domain.Wishlist
	err := s.db.QueryRowContext(ctx, query, name, id, userID).Scan(
		&w.ID, &w.UserID, &w.Name, &w.ShareToken, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWishlistNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrWishlistNameExists
		}
		return nil, fmt.Errorf("store: RenameWishlist failed to scan row: %w", err)
	}
	return &w, nil
}

func (s *PostgresStore) DeleteWishlist(ctx context.Context, id, userID string) error {
	query := `DELETE FROM wishlists WHERE id = $1 AND user_id = $2;`
	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("store: DeleteWishlist failed to execute delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: DeleteWishlist failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrWishlistNotFound
	}
	return nil
}

func (s *PostgresStore) AddItem(ctx context.Context, item *domain.WishlistItem) (*domain.WishlistItem, error) {
	query := `
		INSERT INTO wishlist_items (id, wishlist_id, product_id, title, price, image, affiliate_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, wishlist_id, product_id, title, price, image, affiliate_link, added_at;
	`
	row := s.db.QueryRowContext(ctx, query,
		uuid.NewString(), item.WishlistID, item.ProductID,
		item.Title, item.Price, item.Image, item.AffiliateLink,
	)

	var created domain.WishlistItem
	err := row.Scan(
		&created.ID, &created.WishlistID, &created.ProductID,
		&created.Title, &created.Price, &created.Image, &created.AffiliateLink, &created.AddedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505": // one row per (wishlist_id, product_id)
				return nil, ErrWishlistItemExists
			case "23503": // wishlist_id FK failed
				return nil, ErrWishlistNotFound
			}
		}
		return nil, fmt.Errorf("store: AddItem failed to scan row: %w", err)
	}
	return &created, nil
}

func (s *PostgresStore) RemoveItem(ctx context.Context, wishlistID, productID string) error {
	query := `DELETE FROM wishlist_items WHERE wishlist_id = $1 AND product_id = $2;`
	result, err := s.db.ExecContext(ctx, query, wishlistID, productID)
	if err != nil {
		return fmt.Errorf("store: RemoveItem failed to execute delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: RemoveItem failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}

func (s *PostgresStore) ListItems(ctx context.Context, wishlistID string) ([]domain.WishlistItem, error) {
	query := `
		SELECT id, wishlist_id, product_id, title, price, image, affiliate_link, added_at
		FROM wishlist_items
		WHERE wishlist_id = $1
		ORDER BY added_at DESC;
	`
	rows, err := s.db.QueryContext(ctx, query, wishlistID)
	if err != nil {
		return nil, fmt.Errorf("store: ListItems failed to query: %w", err)
	}
	defer rows.Close()

	items := make([]domain.WishlistItem, 0)
	for rows.Next() {
		var it domain.WishlistItem
		if err := rows.Scan(
			&it.ID, &it.WishlistID, &it.ProductID,
			&it.Title, &it.Price, &it.Image, &it.AffiliateLink, &it.AddedAt,
		); err != nil {
			return nil, fmt.Errorf("store: ListItems failed to scan row: %w", err)
		}
		items = append(items, it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListItems iteration error: %w", err)
	}
	return items, nil
}

// EnsureSchema creates the wishlist tables when they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS wishlists (
			id          UUID PRIMARY KEY,
			user_id     TEXT NOT NULL,
			name        TEXT NOT NULL,
			share_token UUID NOT NULL UNIQUE,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, name)
		);
		CREATE TABLE IF NOT EXISTS wishlist_items (
			id             UUID PRIMARY KEY,
			wishlist_id    UUID NOT NULL REFERENCES wishlists(id) ON DELETE CASCADE,
			product_id     TEXT NOT NULL,
			title          TEXT NOT NULL,
			price          TEXT NOT NULL DEFAULT '',
			image          TEXT NOT NULL DEFAULT '',
			affiliate_link TEXT NOT NULL DEFAULT '',
			added_at       TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (wishlist_id, product_id)
		);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("store: EnsureSchema failed: %w", err)
	}
	return nil
}
