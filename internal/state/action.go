package state

import "github.com/devconnector/devconnector-go/internal/model"

// Action is a named state transition request.
type Action interface {
	Type() string
}

type (
	SetAlert    struct{ Alert Alert }
	RemoveAlert struct{ ID string }

	RegisterSuccess struct{ Token string }
	RegisterFail    struct{}
	UserLoaded      struct{ User model.UserResponse }
	AuthError       struct{}
	LoginSuccess    struct{ Token string }
	LoginFail       struct{}
	Logout          struct{}
	AccountDeleted  struct{}

	GetProfile    struct{ Profile model.Profile }
	GetProfiles   struct{ Profiles []model.Profile }
	UpdateProfile struct{ Profile model.Profile }
	ProfileError  struct{ Err ErrorInfo }
	ClearProfile  struct{}
	GetRepos      struct{ Repos []model.Repo }

	GetPosts    struct{ Posts []model.Post }
	GetPost     struct{ Post model.Post }
	AddPost     struct{ Post model.Post }
	DeletePost  struct{ ID string }
	UpdateLikes struct {
		PostID string
		Likes  []model.Like
	}
	PostError     struct{ Err ErrorInfo }
	AddComment    struct{ Comments []model.Comment }
	RemoveComment struct{ CommentID string }
)

func (SetAlert) Type() string    { return "SET_ALERT" }
func (RemoveAlert) Type() string { return "REMOVE_ALERT" }

func (RegisterSuccess) Type() string { return "REGISTER_SUCCESS" }
func (RegisterFail) Type() string    { return "REGISTER_FAIL" }
func (UserLoaded) Type() string      { return "USER_LOADED" }
func (AuthError) Type() string       { return "AUTH_ERROR" }
func (LoginSuccess) Type() string    { return "LOGIN_SUCCESS" }
func (LoginFail) Type() string       { return "LOGIN_FAIL" }
func (Logout) Type() string          { return "LOGOUT" }
func (AccountDeleted) Type() string  { return "ACCOUNT_DELETED" }

func (GetProfile) Type() string    { return "GET_PROFILE" }
func (GetProfiles) Type() string   { return "GET_PROFILES" }
func (UpdateProfile) Type() string { return "UPDATE_PROFILE" }
func (ProfileError) Type() string  { return "PROFILE_ERROR" }
func (ClearProfile) Type() string  { return "CLEAR_PROFILE" }
func (GetRepos) Type() string      { return "GET_REPOS" }

func (GetPosts) Type() string      { return "GET_POSTS" }
func (GetPost) Type() string       { return "GET_POST" }
func (AddPost) Type() string       { return "ADD_POST" }
func (DeletePost) Type() string    { return "DELETE_POST" }
func (UpdateLikes) Type() string   { return "UPDATE_LIKES" }
func (PostError) Type() string     { return "POST_ERROR" }
func (AddComment) Type() string    { return "ADD_COMMENT" }
func (RemoveComment) Type() string { return "REMOVE_COMMENT" }
