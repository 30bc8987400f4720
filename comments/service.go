package comments

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Charchl1/Blog-Project/apperror"
	"github.com/Charchl1/Blog-Project/forms"
)

// pgForeignKeyViolation is the PostgreSQL error code for foreign key violations.
const pgForeignKeyViolation = "23503"

// Service defines the comment operations used by the post view.
type Service interface {
	// Add appends a comment to a post on behalf of an authenticated user.
	Add(ctx context.Context, postID, authorID int, form *forms.CommentForm) (*Comment, error)
	// ListForPost returns a post's comments in creation order.
	ListForPost(ctx context.Context, postID int) ([]Comment, error)
}

type commentServiceImpl struct {
	db *pgxpool.Pool
}

// NewService creates the pgx-backed comment service.
func NewService(db *pgxpool.Pool) Service {
	return &commentServiceImpl{db: db}
}

// Add inserts the comment and reads back the author's name in one
// transaction, so the returned Comment is complete or nothing is written.
// Referencing a post that no longer exists surfaces as NotFound.
func (s *commentServiceImpl) Add(ctx context.Context, postID, authorID int, form *forms.CommentForm) (_ *Comment, err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to begin transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	comment := &Comment{
		Text:     form.Text,
		AuthorID: authorID,
		PostID:   postID,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO comments (text, author_id, post_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		comment.Text, comment.AuthorID, comment.PostID,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			err = apperror.NewNotFoundError("post not found", nil)
			return nil, err
		}
		err = apperror.NewDatabaseError("failed to create comment", err)
		return nil, err
	}

	err = tx.QueryRow(ctx, `SELECT name FROM users WHERE id = $1`, authorID).Scan(&comment.AuthorName)
	if err != nil {
		err = apperror.NewDatabaseError("failed to resolve comment author", err)
		return nil, err
	}

	return comment, nil
}

// ListForPost returns the comments of a post ordered by id ascending, which
// matches creation order.
func (s *commentServiceImpl) ListForPost(ctx context.Context, postID int) ([]Comment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT c.id, c.text, c.author_id, u.name, c.post_id, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.id ASC`,
		postID,
	)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list comments", err)
	}
	defer rows.Close()

	var list []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.AuthorID, &c.AuthorName, &c.PostID, &c.CreatedAt); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan comment", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read comments", err)
	}

	return list, nil
}
