// Package state holds the client state tree and the pure reducers that evolve it.
package state

import "github.com/devconnector/devconnector-go/internal/model"

// AuthStatus is the tri-state authentication flag. It is unknown until the
// stored token has been checked against the server.
type AuthStatus int

const (
	AuthUnknown AuthStatus = iota
	Authenticated
	Unauthenticated
)

func (s AuthStatus) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Alert types understood by the renderers.
const (
	AlertSuccess = "success"
	AlertDanger  = "danger"
)

// Alert is a transient message shown to the user.
type Alert struct {
	ID        string
	Msg       string
	AlertType string
}

// ErrorInfo is the sticky error of the profile and posts slices.
type ErrorInfo struct {
	Msg    string
	Status int
}

type AuthState struct {
	Token           string
	IsAuthenticated AuthStatus
	Loading         bool
	User            *model.UserResponse
}

type ProfileState struct {
	Profile  *model.Profile
	Profiles []model.Profile
	Repos    []model.Repo
	Loading  bool
	Error    *ErrorInfo
}

type PostsState struct {
	Posts   []model.Post
	Post    *model.Post
	Loading bool
	Error   *ErrorInfo
}

// State is the whole client state tree. Each field is a slice updated by its own reducer.
type State struct {
	Alerts  []Alert
	Auth    AuthState
	Profile ProfileState
	Posts   PostsState
}

// Initial returns the state at startup given a previously persisted token.
func Initial(token string) State {
	return State{
		Alerts: []Alert{},
		Auth: AuthState{
			Token:   token,
			Loading: true,
		},
		Profile: ProfileState{
			Profiles: []model.Profile{},
			Repos:    []model.Repo{},
			Loading:  true,
		},
		Posts: PostsState{
			Posts:   []model.Post{},
			Loading: true,
		},
	}
}
