package posts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Charchl1/Blog-Project/apperror"
	"github.com/Charchl1/Blog-Project/forms"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// Service defines the post operations used by the HTTP layer.
type Service interface {
	// List returns all posts ordered by id ascending.
	List(ctx context.Context) ([]Post, error)
	// Get returns a single post or NotFound.
	Get(ctx context.Context, id int) (*Post, error)
	// Create inserts a post authored by the given user, stamped with the
	// given display date. A duplicate title surfaces as Conflict.
	Create(ctx context.Context, authorID int, date string, form *forms.PostForm) (*Post, error)
	// Update overwrites the mutable fields of a post. The author and the
	// publication date are kept as created.
	Update(ctx context.Context, id int, form *forms.PostForm) error
	// Delete removes a post; its comments go with it.
	Delete(ctx context.Context, id int) error
}

type postServiceImpl struct {
	db *pgxpool.Pool
}

// NewService creates the pgx-backed post service.
func NewService(db *pgxpool.Pool) Service {
	return &postServiceImpl{db: db}
}

func (s *postServiceImpl) List(ctx context.Context) ([]Post, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.author_id, u.name, p.title, p.subtitle, p.date, p.body, p.img_url, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.id ASC`,
	)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}
	defer rows.Close()

	var list []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImgURL, &p.CreatedAt); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan post", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read posts", err)
	}

	return list, nil
}

func (s *postServiceImpl) Get(ctx context.Context, id int) (*Post, error) {
	var p Post
	err := s.db.QueryRow(ctx, `
		SELECT p.id, p.author_id, u.name, p.title, p.subtitle, p.date, p.body, p.img_url, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1`,
		id,
	).Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImgURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("post not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get post", err)
	}
	return &p, nil
}

// Create binds the author from the authenticated identity that reached the
// handler; there is no lookup by display name.
func (s *postServiceImpl) Create(ctx context.Context, authorID int, date string, form *forms.PostForm) (*Post, error) {
	p := &Post{
		AuthorID: authorID,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Date:     date,
		Body:     form.Body,
		ImgURL:   form.ImgURL,
	}

	err := s.db.QueryRow(ctx, `
		INSERT INTO posts (author_id, title, subtitle, date, body, img_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		p.AuthorID, p.Title, p.Subtitle, p.Date, p.Body, p.ImgURL,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("A post with that title already exists.", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}

	return p, nil
}

func (s *postServiceImpl) Update(ctx context.Context, id int, form *forms.PostForm) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE posts
		SET title = $1, subtitle = $2, body = $3, img_url = $4
		WHERE id = $5`,
		form.Title, form.Subtitle, form.Body, form.ImgURL, id,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.NewConflictError("A post with that title already exists.", nil)
		}
		return apperror.NewDatabaseError("failed to update post", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("post not found", nil)
	}
	return nil
}

// Delete removes a post. The comments referencing it are removed by the
// ON DELETE CASCADE rule on comments.post_id.
func (s *postServiceImpl) Delete(ctx context.Context, id int) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("post not found", nil)
	}
	return nil
}
