package state

import "github.com/devconnector/devconnector-go/internal/model"

// CanModifyPost reports whether the authenticated user wrote post.
func CanModifyPost(auth AuthState, post model.Post) bool {
	return isUser(auth, post.User)
}

// CanDeleteComment reports whether the authenticated user wrote c.
func CanDeleteComment(auth AuthState, c model.Comment) bool {
	return isUser(auth, c.User)
}

func isUser(auth AuthState, id string) bool {
	return auth.IsAuthenticated == Authenticated && auth.User != nil && id != "" && auth.User.ID == id
}
