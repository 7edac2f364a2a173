package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thrift-deals-service/internal/domain"
)

// Helper function to create a mock DB and PostgresStore for testing
func newMockDBAndStore(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresStore) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	store := NewPostgresStore(db)
	require.NotNil(t, store, "Store should not be nil")

	return db, mock, store
}

func wishlistColumns() []string {
	return []string{"id", "user_id", "name", "share_token", "created_at", "updated_at"}
}

func TestPostgresStore_CreateWishlist(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	userID := "user-1"
	name := "Diwali Shopping"

	query := regexp.QuoteMeta(`
		INSERT INTO wishlists (id, user_id, name, share_token)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, share_token, created_at, updated_at;
	`)

	rows := sqlmock.NewRows(wishlistColumns()).
		AddRow("wl-1", userID, name, "token-1", now, now)

	mock.ExpectQuery(query).
		WithArgs(sqlmock.AnyArg(), userID, name, sqlmock.AnyArg()).
		WillReturnRows(rows)

	created, err := store.CreateWishlist(context.Background(), userID, name)

	require.NoError(t, err, "CreateWishlist should not return an error")
	require.NotNil(t, created)
	assert.Equal(t, "wl-1", created.ID)
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, name, created.Name)
	assert.Equal(t, "token-1", created.ShareToken)
	assert.WithinDuration(t, now, created.CreatedAt, time.Second)

	require.NoError(t, mock.ExpectationsWereMet(), "SQLmock expectations were not met")
}

func TestPostgresStore_CreateWishlist_NameExists(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	query := regexp.QuoteMeta(`
		INSERT INTO wishlists (id, user_id, name, share_token)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, share_token, created_at, updated_at;
	`)

	pqErr := &pq.Error{Code: "23505", Constraint: "wishlists_user_id_name_key"}
	mock.ExpectQuery(query).
		WithArgs(sqlmock.AnyArg(), "user-1", "My Wishlist", sqlmock.AnyArg()).
		WillReturnError(pqErr)

	created, err := store.CreateWishlist(context.Background(), "user-1", "My Wishlist")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWishlistNameExists), "Error should be ErrWishlistNameExists")
	assert.Nil(t, created)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListWishlists(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	columns := append(wishlistColumns(), "item_count")
	rows := sqlmock.NewRows(columns).
		AddRow("wl-1", "user-1", "My Wishlist", "token-1", now, now, 3).
		AddRow("wl-2", "user-1", "Gifts", "token-2", now, now, 0)

	mock.ExpectQuery("SELECT (.+) FROM wishlists w").
		WithArgs("user-1").
		WillReturnRows(rows)

	wishlists, err := store.ListWishlists(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, wishlists, 2)
	assert.Equal(t, 3, wishlists[0].ItemCount)
	assert.Equal(t, "Gifts", wishlists[1].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetWishlistByID_NotFound(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM wishlists w").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	wl, err := store.GetWishlistByID(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWishlistNotFound), "Error should be ErrWishlistNotFound")
	assert.Nil(t, wl)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetWishlistByShareToken(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	columns := append(wishlistColumns(), "item_count")
	rows := sqlmock.NewRows(columns).
		AddRow("wl-1", "user-1", "My Wishlist", "token-1", now, now, 2)

	mock.ExpectQuery("SELECT (.+) FROM wishlists w").
		WithArgs("token-1").
		WillReturnRows(rows)

	wl, err := store.GetWishlistByShareToken(context.Background(), "token-1")

	require.NoError(t, err)
	require.NotNil(t, wl)
	assert.Equal(t, "wl-1", wl.ID)
	assert.Equal(t, 2, wl.ItemCount)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_RenameWishlist_NotFound(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE wishlists").
		WithArgs("New Name", "wl-x", "user-1").
		WillReturnError(sql.ErrNoRows)

	wl, err := store.RenameWishlist(context.Background(), "wl-x", "user-1", "New Name")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWishlistNotFound))
	assert.Nil(t, wl)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteWishlist(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM wishlists").
		WithArgs("wl-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.DeleteWishlist(context.Background(), "wl-1", "user-1")
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteWishlist_NotFound(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM wishlists").
		WithArgs("wl-x", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeleteWishlist(context.Background(), "wl-x", "user-1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWishlistNotFound))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AddItem(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	item := &domain.WishlistItem{
		WishlistID:    "wl-1",
		ProductID:     "p1",
		Title:         "Wireless Earbuds",
		Price:         "₹1,499 ₹2,999",
		Image:         "https://cdn.example/p1.jpg",
		AffiliateLink: "https://amzn.to/p1",
	}

	columns := []string{"id", "wishlist_id", "product_id", "title", "price", "image", "affiliate_link", "added_at"}
	rows := sqlmock.NewRows(columns).
		AddRow("item-1", item.WishlistID, item.ProductID, item.Title, item.Price, item.Image, item.AffiliateLink, now)

	mock.ExpectQuery("INSERT INTO wishlist_items").
		WithArgs(sqlmock.AnyArg(), item.WishlistID, item.ProductID, item.Title, item.Price, item.Image, item.AffiliateLink).
		WillReturnRows(rows)

	created, err := store.AddItem(context.Background(), item)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "item-1", created.ID)
	assert.Equal(t, item.Title, created.Title)
	assert.WithinDuration(t, now, created.AddedAt, time.Second)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AddItem_Duplicate(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	pqErr := &pq.Error{Code: "23505", Constraint: "wishlist_items_wishlist_id_product_id_key"}
	mock.ExpectQuery("INSERT INTO wishlist_items").
		WillReturnError(pqErr)

	created, err := store.AddItem(context.Background(), &domain.WishlistItem{
		WishlistID: "wl-1", ProductID: "p1", Title: "Wireless Earbuds",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWishlistItemExists), "Error should be ErrWishlistItemExists")
	assert.Nil(t, created)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AddItem_WishlistMissing(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	pqErr := &pq.Error{Code: "23503", Constraint: "wishlist_items_wishlist_id_fkey"}
	mock.ExpectQuery("INSERT INTO wishlist_items").
		WillReturnError(pqErr)

	created, err := store.AddItem(context.Background(), &domain.WishlistItem{
		WishlistID: "gone", ProductID: "p1", Title: "Wireless Earbuds",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWishlistNotFound))
	assert.Nil(t, created)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_RemoveItem_NotFound(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM wishlist_items").
		WithArgs("wl-1", "p-x").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.RemoveItem(context.Background(), "wl-1", "p-x")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWishlistItemNotFound))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListItems(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	columns := []string{"id", "wishlist_id", "product_id", "title", "price", "image", "affiliate_link", "added_at"}
	rows := sqlmock.NewRows(columns).
		AddRow("item-2", "wl-1", "p2", "Yoga Mat", "₹599", "", "", now).
		AddRow("item-1", "wl-1", "p1", "Wireless Earbuds", "₹1,499 ₹2,999", "", "", now.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM wishlist_items").
		WithArgs("wl-1").
		WillReturnRows(rows)

	items, err := store.ListItems(context.Background(), "wl-1")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p2", items[0].ProductID, "newest item first")

	require.NoError(t, mock.ExpectationsWereMet())
}
