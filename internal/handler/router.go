package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/devconnector/devconnector-go/internal/middleware"
	"github.com/devconnector/devconnector-go/internal/service"
)

// Deps are the collaborators the HTTP API is assembled from.
type Deps struct {
	Auth     *service.AuthService
	Profiles *service.ProfileService
	Posts    *service.PostService
	Tokens   middleware.TokenVerifier
	// Limiter throttles registration and login. Nil disables throttling.
	Limiter *middleware.RateLimiter
	Logger  zerolog.Logger
}

// NewRouter wires every API route onto a chi router.
func NewRouter(d Deps) http.Handler {
	authHandler := NewAuthHandler(d.Auth)
	profileHandler := NewProfileHandler(d.Profiles)
	postHandler := NewPostHandler(d.Posts)

	r := chi.NewRouter()
	r.Use(middleware.Logger(d.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		if d.Limiter != nil {
			r.Use(d.Limiter.Handler)
		}
		r.Post("/api/users", authHandler.HandleRegister)
		r.Post("/api/auth", authHandler.HandleLogin)
	})

	r.Get("/api/profile", profileHandler.HandleList)
	r.Get("/api/profile/user/{user_id}", profileHandler.HandleByUser)
	r.Get("/api/profile/github/{username}", profileHandler.HandleGitHub)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(d.Tokens))
		r.Get("/api/auth", authHandler.HandleMe)

		r.Get("/api/profile/me", profileHandler.HandleMe)
		r.Post("/api/profile", profileHandler.HandleSave)
		r.Delete("/api/profile", profileHandler.HandleDeleteAccount)
		r.Put("/api/profile/experience", profileHandler.HandleAddExperience)
		r.Delete("/api/profile/experience/{exp_id}", profileHandler.HandleDeleteExperience)
		r.Put("/api/profile/education", profileHandler.HandleAddEducation)
		r.Delete("/api/profile/education/{edu_id}", profileHandler.HandleDeleteEducation)

		r.Post("/api/posts", postHandler.HandleCreate)
		r.Get("/api/posts", postHandler.HandleList)
		r.Get("/api/posts/{id}", postHandler.HandleGet)
		r.Delete("/api/posts/{id}", postHandler.HandleDelete)
		r.Put("/api/posts/like/{id}", postHandler.HandleLike)
		r.Put("/api/posts/unlike/{id}", postHandler.HandleUnlike)
		r.Post("/api/posts/comment/{id}", postHandler.HandleComment)
		r.Delete("/api/posts/comment/{id}/{comment_id}", postHandler.HandleDeleteComment)
	})

	return r
}
