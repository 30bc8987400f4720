// Package posts implements the blog's articles: the CRUD service over the
// posts table and the HTTP handlers for listing, viewing, creating, editing
// and deleting posts, plus the static informational pages.
package posts

import "time"

// Post represents a published article. Date is the display string recorded
// at creation time ("June 05, 2024"); it is never re-derived on edit.
type Post struct {
	ID         int
	AuthorID   int
	AuthorName string
	Title      string
	Subtitle   string
	Date       string
	Body       string
	ImgURL     string
	CreatedAt  time.Time
}

// FormatPublicationDate renders a publication timestamp the way posts display
// it, e.g. "June 05, 2024".
func FormatPublicationDate(t time.Time) string {
	return t.Format("January 02, 2006")
}
