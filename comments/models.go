// Package comments handles replies to posts: a transactional insert gated on
// the parent post existing, and an ordered read used by the post view.
package comments

import "time"

// Comment represents a reply to a post. Comments are created by authenticated
// users and are never edited or deleted individually; they disappear with
// their parent post.
type Comment struct {
	ID         int
	Text       string
	AuthorID   int
	AuthorName string
	PostID     int
	CreatedAt  time.Time
}
