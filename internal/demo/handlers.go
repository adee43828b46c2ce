package demo

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/lowboy/internal/apperror"
	"github.com/MKhiriev/lowboy/internal/events"
	"github.com/MKhiriev/lowboy/internal/extract"
	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/store"
	"github.com/MKhiriev/lowboy/internal/view"
)

type homePage struct {
	User  UserProfile
	Posts []Post
}

func (a *App) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := extract.EnsureAppUser(r, LiftUserProfile)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var posts []Post
	err = extract.WithDatabaseConnection(r, func(conn *store.Conn) error {
		var err error
		posts, err = LatestPosts(ctx, conn, HomePosts)
		return err
	})
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	page := view.Template{T: templates, Name: "home", Data: homePage{User: user, Posts: posts}}
	view.Show(w, r, page, view.Title("Home"))
}

func (a *App) createPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		apperror.Write(w, r, apperror.BadRequest(""))
		return
	}
	form := PostForm{Content: strings.TrimSpace(r.PostForm.Get("content"))}
	if err := a.validator.Validate(ctx, form); err != nil {
		apperror.Write(w, r, err)
		return
	}

	user, err := extract.EnsureAppUser(r, LiftUserProfile)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var record PostRecord
	err = extract.WithDatabaseConnection(r, func(conn *store.Conn) error {
		var err error
		record, err = CreatePostRecord(user.ID, form.Content).Create(ctx, conn)
		return err
	})
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	post := Post{ID: record.ID, UserProfile: user, Content: record.Content}

	fragment, err := renderPost(post)
	if err != nil {
		apperror.Write(w, r, apperror.Internal(err))
		return
	}

	broker, err := extract.Events(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	if err = broker.Publish(ctx, events.Event{Name: NewPostEvent, Data: fragment}); err != nil {
		// the post is stored; only live subscribers miss it
		log.Err(err).Str("func", "*App.createPost").Int64("post_id", post.ID).Msg("error publishing new post")
	}

	log.Info().Int64("post_id", post.ID).Int64("profile_id", user.ID).Msg("post created")
	view.Fragment(w, r, http.StatusCreated, view.HTML(fragment))
}
