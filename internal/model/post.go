package model

import "time"

// Post is a short message together with its likes and comments.
type Post struct {
	ID       string    `json:"id"`
	User     string    `json:"user"`
	Text     string    `json:"text"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	Likes    []Like    `json:"likes"`
	Comments []Comment `json:"comments"`
	Date     time.Time `json:"date"`
}

// Like records that a user liked a post. A user likes a post at most once.
type Like struct {
	User string `json:"user"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID     string    `json:"id"`
	User   string    `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// TextRequest is the body of create-post and add-comment requests.
type TextRequest struct {
	Text string `json:"text" validate:"required" msg:"text is required"`
}

// Repo is the subset of a GitHub repository listing the client renders.
type Repo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	StargazersCount int    `json:"stargazers_count"`
	WatchersCount   int    `json:"watchers_count"`
	ForksCount      int    `json:"forks_count"`
}
