package state

import (
	"slices"

	"github.com/devconnector/devconnector-go/internal/model"
)

// Reduce applies a to s and returns the next state. s is never modified and
// actions unknown to every slice leave the state unchanged.
func Reduce(s State, a Action) State {
	return State{
		Alerts:  reduceAlerts(s.Alerts, a),
		Auth:    reduceAuth(s.Auth, a),
		Profile: reduceProfile(s.Profile, a),
		Posts:   reducePosts(s.Posts, a),
	}
}

func reduceAlerts(s []Alert, a Action) []Alert {
	switch a := a.(type) {
	case SetAlert:
		return append(slices.Clip(s), a.Alert)
	case RemoveAlert:
		return filter(s, func(al Alert) bool { return al.ID != a.ID })
	default:
		return s
	}
}

func reduceAuth(s AuthState, a Action) AuthState {
	switch a := a.(type) {
	case UserLoaded:
		user := a.User
		s.User = &user
		s.IsAuthenticated = Authenticated
		s.Loading = false
	case RegisterSuccess:
		s.Token = a.Token
		s.IsAuthenticated = Authenticated
		s.Loading = false
	case LoginSuccess:
		s.Token = a.Token
		s.IsAuthenticated = Authenticated
		s.Loading = false
	case RegisterFail, LoginFail, AuthError, Logout, AccountDeleted:
		s.Token = ""
		s.User = nil
		s.IsAuthenticated = Unauthenticated
		s.Loading = false
	}
	return s
}

func reduceProfile(s ProfileState, a Action) ProfileState {
	switch a := a.(type) {
	case GetProfile:
		p := a.Profile
		s.Profile = &p
		s.Loading = false
	case UpdateProfile:
		p := a.Profile
		s.Profile = &p
		s.Loading = false
	case GetProfiles:
		s.Profiles = nonNil(a.Profiles)
		s.Loading = false
	case ProfileError:
		e := a.Err
		s.Error = &e
		s.Profile = nil
		s.Loading = false
	case ClearProfile:
		s.Profile = nil
		s.Repos = []model.Repo{}
		s.Loading = false
	case GetRepos:
		s.Repos = nonNil(a.Repos)
		s.Loading = false
	}
	return s
}

func reducePosts(s PostsState, a Action) PostsState {
	switch a := a.(type) {
	case GetPosts:
		s.Posts = nonNil(a.Posts)
		s.Loading = false
	case GetPost:
		p := a.Post
		s.Post = &p
		s.Loading = false
	case AddPost:
		s.Posts = append([]model.Post{a.Post}, s.Posts...)
		s.Loading = false
	case DeletePost:
		s.Posts = filter(s.Posts, func(p model.Post) bool { return p.ID != a.ID })
		s.Loading = false
	case UpdateLikes:
		posts := make([]model.Post, len(s.Posts))
		for i, p := range s.Posts {
			if p.ID == a.PostID {
				p.Likes = nonNil(a.Likes)
			}
			posts[i] = p
		}
		s.Posts = posts
		if s.Post != nil && s.Post.ID == a.PostID {
			p := *s.Post
			p.Likes = nonNil(a.Likes)
			s.Post = &p
		}
		s.Loading = false
	case PostError:
		e := a.Err
		s.Error = &e
		s.Loading = false
	case AddComment:
		if s.Post != nil {
			p := *s.Post
			p.Comments = nonNil(a.Comments)
			s.Post = &p
		}
		s.Loading = false
	case RemoveComment:
		if s.Post != nil {
			p := *s.Post
			p.Comments = filter(p.Comments, func(c model.Comment) bool { return c.ID != a.CommentID })
			s.Post = &p
		}
		s.Loading = false
	}
	return s
}

// filter returns a new slice holding the elements of s that satisfy keep.
func filter[T any](s []T, keep func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
