package posts

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Charchl1/Blog-Project/apperror"
	"github.com/Charchl1/Blog-Project/auth"
	"github.com/Charchl1/Blog-Project/comments"
	"github.com/Charchl1/Blog-Project/forms"
	"github.com/Charchl1/Blog-Project/web"
)

// Handlers serves the post pages and the static informational pages.
type Handlers struct {
	posts    Service
	comments comments.Service
	render   *web.Renderer
}

// NewHandlers creates the post HTTP handlers.
func NewHandlers(posts Service, commentService comments.Service, render *web.Renderer) *Handlers {
	return &Handlers{posts: posts, comments: commentService, render: render}
}

// postView is the template data for the post page.
type postView struct {
	Post     *Post
	Comments []comments.Comment
}

// HandleHome redirects the landing path to the post listing.
func (h *Handlers) HandleHome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/posts", http.StatusSeeOther)
	}
}

// HandleList renders all posts ordered by id ascending. No pagination.
func (h *Handlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.posts.List(r.Context())
		if err != nil {
			h.render.ServerError(w, r, err)
			return
		}
		h.render.Render(w, r, http.StatusOK, "index.html", &web.PageData{
			User: auth.SessionUser(auth.IdentityFromContext(r.Context())),
			Data: list,
		})
	}
}

// HandleShow renders a post together with its comments in creation order.
func (h *Handlers) HandleShow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.postID(w, r)
		if !ok {
			return
		}
		h.showPost(w, r, id, nil, nil, http.StatusOK)
	}
}

// HandleAddComment appends a comment to a post. Anonymous attempts produce a
// flash warning and no write; the comment-on-view path is gated only on
// being authenticated, not on the admin role.
func (h *Handlers) HandleAddComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.postID(w, r)
		if !ok {
			return
		}

		identity := auth.IdentityFromContext(r.Context())
		if !identity.Authenticated() {
			web.SetFlash(w, r, "error", "In order to leave comments you should be Logged In.")
			http.Redirect(w, r, "/posts/"+strconv.Itoa(id), http.StatusSeeOther)
			return
		}

		if err := r.ParseForm(); err != nil {
			h.showPost(w, r, id, nil, nil, http.StatusBadRequest)
			return
		}

		form := forms.BindCommentForm(r.PostForm)
		if errs, ok := form.Validate(); !ok {
			h.showPost(w, r, id, form, errs, http.StatusUnprocessableEntity)
			return
		}

		if _, err := h.comments.Add(r.Context(), id, identity.UserID, form); err != nil {
			if apperror.IsNotFound(err) {
				h.render.NotFound(w, r)
				return
			}
			h.render.ServerError(w, r, err)
			return
		}
		http.Redirect(w, r, "/posts/"+strconv.Itoa(id), http.StatusSeeOther)
	}
}

// HandleNewForm renders the empty post form. The route is admin-gated by the
// middleware before this handler runs.
func (h *Handlers) HandleNewForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render.Render(w, r, http.StatusOK, "make-post.html", &web.PageData{
			Title: "New Post",
			User:  auth.SessionUser(auth.IdentityFromContext(r.Context())),
		})
	}
}

// HandleCreate validates the post form and creates the post. The author is
// the authenticated admin; the publication date is stamped now and stored as
// a display string.
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.render.Render(w, r, http.StatusBadRequest, "make-post.html", &web.PageData{Title: "New Post"})
			return
		}

		identity := auth.IdentityFromContext(r.Context())
		form := forms.BindPostForm(r.PostForm)
		if errs, ok := form.Validate(); !ok {
			h.render.Render(w, r, http.StatusUnprocessableEntity, "make-post.html", &web.PageData{
				Title:  "New Post",
				User:   auth.SessionUser(identity),
				Form:   form,
				Errors: errs,
			})
			return
		}

		date := FormatPublicationDate(time.Now())
		if _, err := h.posts.Create(r.Context(), identity.UserID, date, form); err != nil {
			if apperror.IsConflict(err) {
				appErr, _ := apperror.FromError(err)
				h.render.Render(w, r, http.StatusConflict, "make-post.html", &web.PageData{
					Title: "New Post",
					User:  auth.SessionUser(identity),
					Form:  form,
					Flash: []web.FlashMessage{{Kind: "error", Message: appErr.Message}},
				})
				return
			}
			h.render.ServerError(w, r, err)
			return
		}
		http.Redirect(w, r, "/posts", http.StatusSeeOther)
	}
}

// HandleEditForm renders the post form pre-filled with the current values.
func (h *Handlers) HandleEditForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.postID(w, r)
		if !ok {
			return
		}

		post, err := h.posts.Get(r.Context(), id)
		if err != nil {
			if apperror.IsNotFound(err) {
				h.render.NotFound(w, r)
				return
			}
			h.render.ServerError(w, r, err)
			return
		}

		form := &forms.PostForm{
			Title:    post.Title,
			Subtitle: post.Subtitle,
			ImgURL:   post.ImgURL,
			Body:     post.Body,
		}
		h.render.Render(w, r, http.StatusOK, "make-post.html", &web.PageData{
			Title: "Edit Post",
			User:  auth.SessionUser(auth.IdentityFromContext(r.Context())),
			Form:  form,
		})
	}
}

// HandleUpdate overwrites the mutable fields of a post. The author reference
// and the recorded date are left as created.
func (h *Handlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.postID(w, r)
		if !ok {
			return
		}

		if err := r.ParseForm(); err != nil {
			h.render.Render(w, r, http.StatusBadRequest, "make-post.html", &web.PageData{Title: "Edit Post"})
			return
		}

		identity := auth.IdentityFromContext(r.Context())
		form := forms.BindPostForm(r.PostForm)
		if errs, ok := form.Validate(); !ok {
			h.render.Render(w, r, http.StatusUnprocessableEntity, "make-post.html", &web.PageData{
				Title:  "Edit Post",
				User:   auth.SessionUser(identity),
				Form:   form,
				Errors: errs,
			})
			return
		}

		if err := h.posts.Update(r.Context(), id, form); err != nil {
			switch {
			case apperror.IsNotFound(err):
				h.render.NotFound(w, r)
			case apperror.IsConflict(err):
				appErr, _ := apperror.FromError(err)
				h.render.Render(w, r, http.StatusConflict, "make-post.html", &web.PageData{
					Title: "Edit Post",
					User:  auth.SessionUser(identity),
					Form:  form,
					Flash: []web.FlashMessage{{Kind: "error", Message: appErr.Message}},
				})
			default:
				h.render.ServerError(w, r, err)
			}
			return
		}
		http.Redirect(w, r, "/posts/"+strconv.Itoa(id), http.StatusSeeOther)
	}
}

// HandleDelete removes a post and redirects to the listing. Deletion is
// immediate and irreversible; confirmation is a UI concern.
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.postID(w, r)
		if !ok {
			return
		}

		if err := h.posts.Delete(r.Context(), id); err != nil {
			if apperror.IsNotFound(err) {
				h.render.NotFound(w, r)
				return
			}
			h.render.ServerError(w, r, err)
			return
		}
		http.Redirect(w, r, "/posts", http.StatusSeeOther)
	}
}

// HandleAbout renders the static about page.
func (h *Handlers) HandleAbout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render.Render(w, r, http.StatusOK, "about.html", &web.PageData{
			Title: "About",
			User:  auth.SessionUser(auth.IdentityFromContext(r.Context())),
		})
	}
}

// HandleContact renders the static contact page.
func (h *Handlers) HandleContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render.Render(w, r, http.StatusOK, "contact.html", &web.PageData{
			Title: "Contact",
			User:  auth.SessionUser(auth.IdentityFromContext(r.Context())),
		})
	}
}

// showPost renders the post page, optionally with a failed comment form.
func (h *Handlers) showPost(w http.ResponseWriter, r *http.Request, id int, form *forms.CommentForm, errs forms.Errors, status int) {
	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		if apperror.IsNotFound(err) {
			h.render.NotFound(w, r)
			return
		}
		h.render.ServerError(w, r, err)
		return
	}

	list, err := h.comments.ListForPost(r.Context(), id)
	if err != nil {
		h.render.ServerError(w, r, err)
		return
	}

	data := &web.PageData{
		Title:  post.Title,
		User:   auth.SessionUser(auth.IdentityFromContext(r.Context())),
		Errors: errs,
		Data:   postView{Post: post, Comments: list},
	}
	if form != nil {
		data.Form = form
	}
	h.render.Render(w, r, status, "post.html", data)
}

// postID parses the {id} route parameter, rendering the 404 page for
// anything that is not a number.
func (h *Handlers) postID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		h.render.NotFound(w, r)
		return 0, false
	}
	return id, true
}
