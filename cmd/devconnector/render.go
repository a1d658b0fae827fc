package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/state"
)

const timeLayout = "2006-01-02 15:04"

func renderUser(w io.Writer, u *model.UserResponse) {
	if u == nil {
		return
	}
	fmt.Fprintf(w, "%s <%s>\nid:     %s\navatar: %s\nsince:  %s\n", u.Name, u.Email, u.ID, u.Avatar, u.Date.Format(timeLayout))
}

func renderProfiles(w io.Writer, profiles []model.Profile) {
	if len(profiles) == 0 {
		fmt.Fprintln(w, "No profiles found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER ID\tNAME\tSTATUS\tSKILLS")
	for _, p := range profiles {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.User.ID, p.User.Name, headline(p), strings.Join(p.Skills, ", "))
	}
	tw.Flush()
}

func renderProfile(w io.Writer, p *model.Profile) {
	if p == nil {
		fmt.Fprintln(w, "No profile")
		return
	}
	fmt.Fprintf(w, "%s\n%s\n", p.User.Name, headline(*p))
	if p.Location != "" {
		fmt.Fprintf(w, "location: %s\n", p.Location)
	}
	if p.Website != "" {
		fmt.Fprintf(w, "website:  %s\n", p.Website)
	}
	if p.GitHubUsername != "" {
		fmt.Fprintf(w, "github:   %s\n", p.GitHubUsername)
	}
	fmt.Fprintf(w, "skills:   %s\n", strings.Join(p.Skills, ", "))
	if p.Bio != "" {
		fmt.Fprintf(w, "\n%s\n", p.Bio)
	}

	if len(p.Experience) > 0 {
		fmt.Fprintln(w, "\nExperience")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, e := range p.Experience {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", e.ID, e.Title, e.Company, period(e.From, e.To))
		}
		tw.Flush()
	}
	if len(p.Education) > 0 {
		fmt.Fprintln(w, "\nEducation")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, e := range p.Education {
			fmt.Fprintf(tw, "  %s\t%s\t%s, %s\t%s\n", e.ID, e.School, e.Degree, e.FieldOfStudy, period(e.From, e.To))
		}
		tw.Flush()
	}
}

func renderRepos(w io.Writer, repos []model.Repo) {
	if len(repos) == 0 {
		fmt.Fprintln(w, "No repositories")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTARS\tWATCHERS\tFORKS\tURL")
	for _, r := range repos {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", r.Name, r.StargazersCount, r.WatchersCount, r.ForksCount, r.HTMLURL)
	}
	tw.Flush()
}

// renderPosts marks the posts the current user may delete with an asterisk.
func renderPosts(w io.Writer, auth state.AuthState, posts []model.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(w, "No posts")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tAUTHOR\tLIKES\tCOMMENTS\tPOSTED\tTEXT")
	for _, p := range posts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			ownerMark(state.CanModifyPost(auth, p)), p.ID, p.Name, len(p.Likes), len(p.Comments), p.Date.Format(timeLayout), p.Text)
	}
	tw.Flush()
}

func renderPost(w io.Writer, auth state.AuthState, p *model.Post) {
	if p == nil {
		return
	}
	fmt.Fprintf(w, "%s  (%s, %d likes)\n%s\n", p.Name, p.Date.Format(timeLayout), len(p.Likes), p.Text)
	if len(p.Comments) == 0 {
		return
	}
	fmt.Fprintln(w, "\nComments")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range p.Comments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ownerMark(state.CanDeleteComment(auth, c)), c.ID, c.Name, c.Text)
	}
	tw.Flush()
}

func headline(p model.Profile) string {
	if p.Company == "" {
		return p.Status
	}
	return p.Status + " at " + p.Company
}

func period(from model.Date, to *model.Date) string {
	if to == nil {
		return from.String() + " - now"
	}
	return from.String() + " - " + to.String()
}

func ownerMark(own bool) string {
	if own {
		return "*"
	}
	return ""
}
