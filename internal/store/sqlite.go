package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"thrift-deals-service/internal/domain"
)

// ErrPostNotFound is returned when a community post id has no row.
var ErrPostNotFound = errors.New("store: post not found")

// CommunityStore implements PostStorer on an embedded SQLite database.
// The browser original kept the whole board in localStorage; an on-disk
// SQLite file is the server-side equivalent, needing no external
// service. Timestamps are stored as RFC3339 TEXT, tags as a JSON array.
type CommunityStore struct {
	db *sql.DB
}

// OpenCommunityStore opens (creating if needed) the community database
// at path and ensures the schema exists.
func OpenCommunityStore(path string) (*CommunityStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening community database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: setting WAL mode: %w", err)
	}

	s := &CommunityStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewCommunityStore wraps an already-open database, for tests.
func NewCommunityStore(db *sql.DB) *CommunityStore {
	return &CommunityStore{db: db}
}

// Close closes the underlying database.
func (s *CommunityStore) Close() error {
	return s.db.Close()
}

func (s *CommunityStore) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS posts (
			id             TEXT PRIMARY KEY,
			author         TEXT NOT NULL,
			category       TEXT NOT NULL,
			title          TEXT NOT NULL,
			content        TEXT NOT NULL,
			tags           TEXT NOT NULL DEFAULT '[]',
			likes          INTEGER NOT NULL DEFAULT 0,
			comments_count INTEGER NOT NULL DEFAULT 0,
			is_pinned      INTEGER NOT NULL DEFAULT 0,
			created_at     TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS comments (
			id         TEXT PRIMARY KEY,
			post_id    TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			author     TEXT NOT NULL,
			content    TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_comments_post ON comments(post_id);
	`)
	if err != nil {
		return fmt.Errorf("store: creating community schema: %w", err)
	}
	return nil
}

// EnsureSchema exposes schema creation for callers holding a bare DB.
func (s *CommunityStore) EnsureSchema(ctx context.Context) error {
	return s.ensureSchema()
}

func (s *CommunityStore) CreatePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	created := *post
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	if created.Tags == nil {
		created.Tags = []string{}
	}

	tagsJSON, err := json.Marshal(created.Tags)
	if err != nil {
		return nil, fmt.Errorf("store: CreatePost failed to encode tags: %w", err)
	}

	query := `
		INSERT INTO posts (id, author, category, title, content, tags, likes, comments_count, is_pinned, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = s.db.ExecContext(ctx, query,
		created.ID, created.Author, created.Category, created.Title, created.Content,
		string(tagsJSON), created.Likes, created.CommentsCount,
		boolToInt(created.IsPinned), created.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("store: CreatePost failed to insert: %w", err)
	}
	return &created, nil
}

func (s *CommunityStore) GetPostByID(ctx context.Context, id string) (*domain.Post, error) {
	query := `
		SELECT id, author, category, title, content, tags, likes, comments_count, is_pinned, created_at
		FROM posts
		WHERE id = ?;
	`
	post, err := scanPost(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("store: GetPostByID failed to scan row: %w", err)
	}
	return post, nil
}

func (s *CommunityStore) ListPosts(ctx context.Context, params ListPostsParams) ([]domain.Post, int, error) {
	var queryArgs []interface{}
	var whereClauses []string

	if params.Category != "" {
		whereClauses = append(whereClauses, "category = ?")
		queryArgs = append(queryArgs, params.Category)
	}
	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		whereClauses = append(whereClauses, "(LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(tags) LIKE ?)")
		queryArgs = append(queryArgs, term, term, term)
	}

	whereCondition := ""
	if len(whereClauses) > 0 {
		whereCondition = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM posts" + whereCondition
	var totalCount int
	if err := s.db.QueryRowContext(ctx, countQuery, queryArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("store: ListPosts failed to count posts: %w", err)
	}
	if totalCount == 0 {
		return []domain.Post{}, 0, nil
	}

	// Pinned posts always lead; within each group the chosen sort
	// applies. "trending" weights comments double, as the site did.
	orderBy := "created_at DESC"
	switch strings.ToLower(params.Sort) {
	case "popular":
		orderBy = "likes DESC"
	case "trending":
		orderBy = "(likes + comments_count * 2) DESC"
	case "discussed":
		orderBy = "comments_count DESC"
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	dataQuery := fmt.Sprintf(`
		SELECT id, author, category, title, content, tags, likes, comments_count, is_pinned, created_at
		FROM posts%s
		ORDER BY is_pinned DESC, %s
		LIMIT ? OFFSET ?`, whereCondition, orderBy)

	finalArgs := append(queryArgs, limit, params.Offset)
	rows, err := s.db.QueryContext(ctx, dataQuery, finalArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("store: ListPosts failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := make([]domain.Post, 0, limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("store: ListPosts failed to scan post row: %w", err)
		}
		posts = append(posts, *post)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("store: ListPosts iteration error: %w", err)
	}
	return posts, totalCount, nil
}

func (s *CommunityStore) LikePost(ctx context.Context, id string) (*domain.Post, error) {
	result, err := s.db.ExecContext(ctx, `UPDATE posts SET likes = likes + 1 WHERE id = ?;`, id)
	if err != nil {
		return nil, fmt.Errorf("store: LikePost failed to update: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("store: LikePost failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrPostNotFound
	}
	return s.GetPostByID(ctx, id)
}

func (s *CommunityStore) AddComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	created := *comment
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: AddComment failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE posts SET comments_count = comments_count + 1 WHERE id = ?;`, created.PostID)
	if err != nil {
		return nil, fmt.Errorf("store: AddComment failed to bump counter: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("store: AddComment failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrPostNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO comments (id, post_id, author, content, created_at) VALUES (?, ?, ?, ?, ?);`,
		created.ID, created.PostID, created.Author, created.Content,
		created.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("store: AddComment failed to insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: AddComment failed to commit: %w", err)
	}
	return &created, nil
}

func (s *CommunityStore) ListComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	query := `
		SELECT id, post_id, author, content, created_at
		FROM comments
		WHERE post_id = ?
		ORDER BY created_at ASC;
	`
	rows, err := s.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("store: ListComments failed to query: %w", err)
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0)
	for rows.Next() {
		var c domain.Comment
		var createdAt string
		if err := rows.Scan(&c.ID, &c.PostID, &c.Author, &c.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("store: ListComments failed to scan row: %w", err)
		}
		c.CreatedAt = parseStoredTime(createdAt)
		comments = append(comments, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListComments iteration error: %w", err)
	}
	return comments, nil
}

// SeedWelcomePost inserts the pinned welcome post on a fresh database,
// mirroring the default content the board shipped with.
func (s *CommunityStore) SeedWelcomePost(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts;`).Scan(&count); err != nil {
		return fmt.Errorf("store: SeedWelcomePost failed to count posts: %w", err)
	}
	if count > 0 {
		return nil
	}
	_, err := s.CreatePost(ctx, &domain.Post{
		Author:   "Thrift Zone Team",
		Category: "announcements",
		Title:    "Welcome to the Thrift Zone community!",
		Content:  "Share deals you found, ask questions and help other bargain hunters. Be kind and keep it on topic.",
		Tags:     []string{"welcome", "rules"},
		IsPinned: true,
	})
	if err != nil {
		return fmt.Errorf("store: SeedWelcomePost failed: %w", err)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(r rowScanner) (*domain.Post, error) {
	var p domain.Post
	var tagsJSON, createdAt string
	var pinned int
	if err := r.Scan(
		&p.ID, &p.Author, &p.Category, &p.Title, &p.Content,
		&tagsJSON, &p.Likes, &p.CommentsCount, &pinned, &createdAt,
	); err != nil {
		return nil, err
	}
	p.IsPinned = pinned != 0
	p.CreatedAt = parseStoredTime(createdAt)
	if err := json.Unmarshal([]byte(tagsJSON), &p.Tags); err != nil {
		p.Tags = []string{} // a corrupt tag blob should not sink the post
	}
	return &p, nil
}

func parseStoredTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
