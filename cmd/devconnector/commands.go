package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/devconnector/devconnector-go/internal/client"
	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/state"
)

var errNotLoggedIn = errors.New("not logged in, run: devconnector login")

type app struct {
	actions      *client.Actions
	store        *state.Store
	out          io.Writer
	in           *bufio.Reader
	readPassword func() (string, error)
}

type command struct {
	name string
	help string
	// auth commands load the current user first and fail without one.
	auth bool
	run  func(a *app, ctx context.Context, args []string) error
}

var commands = []command{
	{name: "register", help: "create an account", run: (*app).register},
	{name: "login", help: "log in and store the token", run: (*app).login},
	{name: "logout", help: "forget the stored token", run: (*app).logout},
	{name: "me", help: "show the current user", auth: true, run: (*app).me},
	{name: "profiles", help: "list developer profiles", run: (*app).profiles},
	{name: "profile", help: "show a profile: profile [user_id]", run: (*app).profile},
	{name: "profile-save", help: "create or update your profile", auth: true, run: (*app).saveProfile},
	{name: "experience-add", help: "add an experience entry", auth: true, run: (*app).addExperience},
	{name: "experience-rm", help: "remove an experience entry: experience-rm <id>", auth: true, run: (*app).removeExperience},
	{name: "education-add", help: "add an education entry", auth: true, run: (*app).addEducation},
	{name: "education-rm", help: "remove an education entry: education-rm <id>", auth: true, run: (*app).removeEducation},
	{name: "repos", help: "list GitHub repositories: repos <username>", run: (*app).repos},
	{name: "delete-account", help: "delete your account, profile and posts", auth: true, run: (*app).deleteAccount},
	{name: "posts", help: "list posts", auth: true, run: (*app).posts},
	{name: "post", help: "show a post with comments: post <id>", auth: true, run: (*app).post},
	{name: "post-add", help: "publish a post: post-add <text>", auth: true, run: (*app).addPost},
	{name: "post-rm", help: "delete your post: post-rm <id>", auth: true, run: (*app).removePost},
	{name: "like", help: "like a post: like <id>", auth: true, run: (*app).like},
	{name: "unlike", help: "remove your like: unlike <id>", auth: true, run: (*app).unlike},
	{name: "comment", help: "comment on a post: comment <post_id> <text>", auth: true, run: (*app).comment},
	{name: "comment-rm", help: "delete your comment: comment-rm <post_id> <comment_id>", auth: true, run: (*app).removeComment},
}

func (a *app) dispatch(ctx context.Context, name string, args []string) error {
	for _, c := range commands {
		if c.name != name {
			continue
		}
		if c.auth {
			if err := a.requireUser(ctx); err != nil {
				return err
			}
		}
		return c.run(a, ctx, args)
	}
	return fmt.Errorf("unknown command %q", name)
}

func (a *app) requireUser(ctx context.Context) error {
	if a.store.State().Auth.Token == "" {
		return errNotLoggedIn
	}
	if err := a.actions.LoadUser(ctx); err != nil {
		return fmt.Errorf("%w: %v", errNotLoggedIn, err)
	}
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register")
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if *name == "" {
		if *name, err = a.prompt("Name"); err != nil {
			return err
		}
	}
	if *email == "" {
		if *email, err = a.prompt("Email"); err != nil {
			return err
		}
	}
	pw, err := a.password(*password)
	if err != nil {
		return err
	}

	if err := a.actions.Register(ctx, *name, *email, pw); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s\n", a.store.State().Auth.User.Name)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if *email == "" {
		if *email, err = a.prompt("Email"); err != nil {
			return err
		}
	}
	pw, err := a.password(*password)
	if err != nil {
		return err
	}

	if err := a.actions.Login(ctx, *email, pw); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", a.store.State().Auth.User.Name)
	return nil
}

func (a *app) logout(_ context.Context, _ []string) error {
	a.actions.Logout()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *app) me(_ context.Context, _ []string) error {
	renderUser(a.out, a.store.State().Auth.User)
	return nil
}

func (a *app) profiles(ctx context.Context, _ []string) error {
	if err := a.actions.GetProfiles(ctx); err != nil {
		return err
	}
	renderProfiles(a.out, a.store.State().Profile.Profiles)
	return nil
}

func (a *app) profile(ctx context.Context, args []string) error {
	if len(args) > 0 {
		if err := a.actions.GetProfileByID(ctx, args[0]); err != nil {
			return err
		}
	} else {
		if err := a.requireUser(ctx); err != nil {
			return err
		}
		if err := a.actions.GetCurrentProfile(ctx); err != nil {
			return err
		}
	}
	renderProfile(a.out, a.store.State().Profile.Profile)
	return nil
}

func (a *app) saveProfile(ctx context.Context, args []string) error {
	fs := newFlagSet("profile-save")
	var req model.ProfileRequest
	var skills string
	fs.StringVar(&req.Status, "status", "", "professional status (required)")
	fs.StringVar(&skills, "skills", "", "comma separated skills (required)")
	fs.StringVar(&req.Company, "company", "", "company")
	fs.StringVar(&req.Website, "website", "", "website")
	fs.StringVar(&req.Location, "location", "", "location")
	fs.StringVar(&req.Bio, "bio", "", "short bio")
	fs.StringVar(&req.GitHubUsername, "github", "", "GitHub username")
	fs.StringVar(&req.YouTube, "youtube", "", "YouTube URL")
	fs.StringVar(&req.Twitter, "twitter", "", "Twitter URL")
	fs.StringVar(&req.Facebook, "facebook", "", "Facebook URL")
	fs.StringVar(&req.LinkedIn, "linkedin", "", "LinkedIn URL")
	fs.StringVar(&req.Instagram, "instagram", "", "Instagram URL")
	edit := fs.Bool("edit", false, "update an existing profile")
	if err := fs.Parse(args); err != nil {
		return err
	}
	req.Skills = model.SplitSkills(skills)

	if err := a.actions.CreateProfile(ctx, req, *edit); err != nil {
		return err
	}
	renderProfile(a.out, a.store.State().Profile.Profile)
	return nil
}

func (a *app) addExperience(ctx context.Context, args []string) error {
	fs := newFlagSet("experience-add")
	var req model.ExperienceRequest
	fs.StringVar(&req.Title, "title", "", "job title (required)")
	fs.StringVar(&req.Company, "company", "", "company (required)")
	fs.StringVar(&req.Location, "location", "", "location")
	fs.StringVar(&req.From, "from", "", "start date YYYY-MM-DD (required)")
	fs.StringVar(&req.To, "to", "", "end date YYYY-MM-DD")
	fs.BoolVar(&req.Current, "current", false, "current job")
	fs.StringVar(&req.Description, "description", "", "description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.actions.AddExperience(ctx, req); err != nil {
		return err
	}
	renderProfile(a.out, a.store.State().Profile.Profile)
	return nil
}

func (a *app) removeExperience(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: experience-rm <id>")
	}
	if err := a.actions.DeleteExperience(ctx, args[0]); err != nil {
		return err
	}
	renderProfile(a.out, a.store.State().Profile.Profile)
	return nil
}

func (a *app) addEducation(ctx context.Context, args []string) error {
	fs := newFlagSet("education-add")
	var req model.EducationRequest
	fs.StringVar(&req.School, "school", "", "school (required)")
	fs.StringVar(&req.Degree, "degree", "", "degree (required)")
	fs.StringVar(&req.FieldOfStudy, "field", "", "field of study (required)")
	fs.StringVar(&req.From, "from", "", "start date YYYY-MM-DD (required)")
	fs.StringVar(&req.To, "to", "", "end date YYYY-MM-DD")
	fs.BoolVar(&req.Current, "current", false, "currently studying")
	fs.StringVar(&req.Description, "description", "", "description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.actions.AddEducation(ctx, req); err != nil {
		return err
	}
	renderProfile(a.out, a.store.State().Profile.Profile)
	return nil
}

func (a *app) removeEducation(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: education-rm <id>")
	}
	if err := a.actions.DeleteEducation(ctx, args[0]); err != nil {
		return err
	}
	renderProfile(a.out, a.store.State().Profile.Profile)
	return nil
}

func (a *app) repos(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: repos <username>")
	}
	if err := a.actions.GetGitHubRepos(ctx, args[0]); err != nil {
		return err
	}
	renderRepos(a.out, a.store.State().Profile.Repos)
	return nil
}

func (a *app) deleteAccount(ctx context.Context, args []string) error {
	fs := newFlagSet("delete-account")
	yes := fs.Bool("yes", false, "skip the confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*yes && !a.confirm("Are you sure? This can not be undone!") {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	return a.actions.DeleteAccount(ctx)
}

func (a *app) posts(ctx context.Context, _ []string) error {
	if err := a.actions.GetPosts(ctx); err != nil {
		return err
	}
	s := a.store.State()
	renderPosts(a.out, s.Auth, s.Posts.Posts)
	return nil
}

func (a *app) post(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: post <id>")
	}
	if err := a.actions.GetPost(ctx, args[0]); err != nil {
		return err
	}
	s := a.store.State()
	renderPost(a.out, s.Auth, s.Posts.Post)
	return nil
}

func (a *app) addPost(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if text == "" {
		var err error
		if text, err = a.prompt("Text"); err != nil {
			return err
		}
	}
	if err := a.actions.AddPost(ctx, text); err != nil {
		return err
	}
	s := a.store.State()
	renderPosts(a.out, s.Auth, s.Posts.Posts[:1])
	return nil
}

func (a *app) removePost(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: post-rm <id>")
	}
	return a.actions.DeletePost(ctx, args[0])
}

func (a *app) like(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: like <id>")
	}
	return a.actions.AddLike(ctx, args[0])
}

func (a *app) unlike(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: unlike <id>")
	}
	return a.actions.RemoveLike(ctx, args[0])
}

func (a *app) comment(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: comment <post_id> <text>")
	}
	postID := args[0]
	if err := a.actions.GetPost(ctx, postID); err != nil {
		return err
	}
	if err := a.actions.AddComment(ctx, postID, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	s := a.store.State()
	renderPost(a.out, s.Auth, s.Posts.Post)
	return nil
}

func (a *app) removeComment(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: comment-rm <post_id> <comment_id>")
	}
	if err := a.actions.GetPost(ctx, args[0]); err != nil {
		return err
	}
	if err := a.actions.DeleteComment(ctx, args[0], args[1]); err != nil {
		return err
	}
	s := a.store.State()
	renderPost(a.out, s.Auth, s.Posts.Post)
	return nil
}

// printAlerts writes the alerts still showing and returns how many there were.
func (a *app) printAlerts() int {
	alerts := a.store.State().Alerts
	for _, al := range alerts {
		fmt.Fprintf(a.out, "[%s] %s\n", al.AlertType, al.Msg)
	}
	return len(alerts)
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}
