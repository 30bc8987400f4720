package posts

import (
	"context"

	"github.com/Charchl1/Blog-Project/apperror"
	"github.com/Charchl1/Blog-Project/comments"
	"github.com/Charchl1/Blog-Project/forms"
)

// fakePostService is an in-memory Service so handler tests can assert on
// table contents without a database.
type fakePostService struct {
	posts  []Post
	nextID int
	err    error

	// comments, when set, mirrors the ON DELETE CASCADE rule: deleting a
	// post drops its comments from the linked fake.
	comments *fakeCommentService
}

var _ Service = (*fakePostService)(nil)

func newFakePostService(existing ...Post) *fakePostService {
	next := 1
	for _, p := range existing {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return &fakePostService{posts: existing, nextID: next}
}

func (f *fakePostService) List(ctx context.Context) ([]Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]Post(nil), f.posts...), nil
}

func (f *fakePostService) Get(ctx context.Context, id int) (*Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.posts {
		if f.posts[i].ID == id {
			p := f.posts[i]
			return &p, nil
		}
	}
	return nil, apperror.NewNotFoundError("post not found", nil)
}

func (f *fakePostService) Create(ctx context.Context, authorID int, date string, form *forms.PostForm) (*Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.posts {
		if p.Title == form.Title {
			return nil, apperror.NewConflictError("A post with that title already exists.", nil)
		}
	}
	p := Post{
		ID:       f.nextID,
		AuthorID: authorID,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Date:     date,
		Body:     form.Body,
		ImgURL:   form.ImgURL,
	}
	f.nextID++
	f.posts = append(f.posts, p)
	return &p, nil
}

func (f *fakePostService) Update(ctx context.Context, id int, form *forms.PostForm) error {
	if f.err != nil {
		return f.err
	}
	for _, p := range f.posts {
		if p.Title == form.Title && p.ID != id {
			return apperror.NewConflictError("A post with that title already exists.", nil)
		}
	}
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts[i].Title = form.Title
			f.posts[i].Subtitle = form.Subtitle
			f.posts[i].Body = form.Body
			f.posts[i].ImgURL = form.ImgURL
			return nil
		}
	}
	return apperror.NewNotFoundError("post not found", nil)
}

func (f *fakePostService) Delete(ctx context.Context, id int) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			if f.comments != nil {
				kept := f.comments.comments[:0]
				for _, c := range f.comments.comments {
					if c.PostID != id {
						kept = append(kept, c)
					}
				}
				f.comments.comments = kept
			}
			return nil
		}
	}
	return apperror.NewNotFoundError("post not found", nil)
}

// fakeCommentService records Add calls and serves a fixed comment list.
type fakeCommentService struct {
	comments []comments.Comment
	addCalls int
	lastPost int
	lastUser int
	addErr   error
}

var _ comments.Service = (*fakeCommentService)(nil)

func (f *fakeCommentService) Add(ctx context.Context, postID, authorID int, form *forms.CommentForm) (*comments.Comment, error) {
	f.addCalls++
	f.lastPost = postID
	f.lastUser = authorID
	if f.addErr != nil {
		return nil, f.addErr
	}
	c := comments.Comment{
		ID:       len(f.comments) + 1,
		Text:     form.Text,
		AuthorID: authorID,
		PostID:   postID,
	}
	f.comments = append(f.comments, c)
	return &c, nil
}

func (f *fakeCommentService) ListForPost(ctx context.Context, postID int) ([]comments.Comment, error) {
	var list []comments.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			list = append(list, c)
		}
	}
	return list, nil
}
