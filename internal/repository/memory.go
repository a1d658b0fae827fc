package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/devconnector/devconnector-go/internal/model"
)

// MemoryStore keeps users, profiles and posts in process memory. It follows the
// same contracts as the MySQL repositories and hands out copies, never its own records.
type MemoryStore struct {
	mu       sync.Mutex
	users    map[string]model.User
	byEmail  map[string]string
	profiles []*model.Profile
	posts    []*model.Post
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]model.User),
		byEmail: make(map[string]string),
	}
}

// MemoryUsers is the user view of a MemoryStore.
type MemoryUsers struct{ s *MemoryStore }

// MemoryProfiles is the profile view of a MemoryStore.
type MemoryProfiles struct{ s *MemoryStore }

// MemoryPosts is the post view of a MemoryStore.
type MemoryPosts struct{ s *MemoryStore }

// MemoryAccounts is the account deletion view of a MemoryStore.
type MemoryAccounts struct{ s *MemoryStore }

func (s *MemoryStore) Users() MemoryUsers       { return MemoryUsers{s} }
func (s *MemoryStore) Profiles() MemoryProfiles { return MemoryProfiles{s} }
func (s *MemoryStore) Posts() MemoryPosts       { return MemoryPosts{s} }
func (s *MemoryStore) Accounts() MemoryAccounts { return MemoryAccounts{s} }

func (v MemoryUsers) Create(_ context.Context, user *model.User) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return ErrDuplicateEmail
	}
	user.ID = uuid.NewString()
	user.CreatedAt = now()
	s.users[user.ID] = *user
	s.byEmail[user.Email] = user.ID
	return nil
}

func (v MemoryUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (v MemoryUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (v MemoryProfiles) Upsert(_ context.Context, p *model.Profile) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[p.User.ID]; !ok {
		return ErrUserNotFound
	}

	if existing := s.profileOf(p.User.ID); existing != nil {
		existing.Company = p.Company
		existing.Website = p.Website
		existing.Location = p.Location
		existing.Status = p.Status
		existing.Skills = slices.Clone(nonNil(p.Skills))
		existing.Bio = p.Bio
		existing.GitHubUsername = p.GitHubUsername
		existing.Social = p.Social
		return nil
	}

	s.profiles = append(s.profiles, &model.Profile{
		ID:             uuid.NewString(),
		User:           model.UserSummary{ID: p.User.ID},
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Status:         p.Status,
		Skills:         slices.Clone(nonNil(p.Skills)),
		Bio:            p.Bio,
		GitHubUsername: p.GitHubUsername,
		Social:         p.Social,
		Experience:     []model.Experience{},
		Education:      []model.Education{},
		Date:           now(),
	})
	return nil
}

func (v MemoryProfiles) GetByUserID(_ context.Context, userID string) (*model.Profile, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.profileOf(userID)
	if p == nil {
		return nil, ErrProfileNotFound
	}
	out := s.copyProfile(p)
	return &out, nil
}

func (v MemoryProfiles) List(_ context.Context) ([]model.Profile, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, s.copyProfile(p))
	}
	return out, nil
}

func (v MemoryProfiles) AddExperience(_ context.Context, userID string, e *model.Experience) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.profileOf(userID)
	if p == nil {
		return ErrProfileNotFound
	}
	e.ID = uuid.NewString()
	p.Experience = slices.Insert(p.Experience, 0, copyExperience(*e))
	return nil
}

func (v MemoryProfiles) DeleteExperience(_ context.Context, userID, id string) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if p := s.profileOf(userID); p != nil {
		p.Experience = slices.DeleteFunc(p.Experience, func(e model.Experience) bool { return e.ID == id })
	}
	return nil
}

func (v MemoryProfiles) AddEducation(_ context.Context, userID string, e *model.Education) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.profileOf(userID)
	if p == nil {
		return ErrProfileNotFound
	}
	e.ID = uuid.NewString()
	p.Education = slices.Insert(p.Education, 0, copyEducation(*e))
	return nil
}

func (v MemoryProfiles) DeleteEducation(_ context.Context, userID, id string) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if p := s.profileOf(userID); p != nil {
		p.Education = slices.DeleteFunc(p.Education, func(e model.Education) bool { return e.ID == id })
	}
	return nil
}

func (v MemoryPosts) Create(_ context.Context, p *model.Post) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[p.User]; !ok {
		return ErrUserNotFound
	}
	p.ID = uuid.NewString()
	p.Date = now()
	p.Likes = []model.Like{}
	p.Comments = []model.Comment{}
	stored := copyPost(p)
	s.posts = append(s.posts, &stored)
	return nil
}

func (v MemoryPosts) List(_ context.Context) ([]model.Post, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Post, 0, len(s.posts))
	for i := len(s.posts) - 1; i >= 0; i-- {
		out = append(out, copyPost(s.posts[i]))
	}
	return out, nil
}

func (v MemoryPosts) GetByID(_ context.Context, id string) (*model.Post, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.post(id)
	if p == nil {
		return nil, ErrPostNotFound
	}
	out := copyPost(p)
	return &out, nil
}

func (v MemoryPosts) Delete(_ context.Context, id, userID string) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.post(id)
	if p == nil {
		return nil
	}
	if p.User != userID {
		return ErrNotOwner
	}
	s.posts = slices.DeleteFunc(s.posts, func(p *model.Post) bool { return p.ID == id })
	return nil
}

func (v MemoryPosts) AddLike(_ context.Context, postID, userID string) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.post(postID)
	if p == nil {
		return ErrPostNotFound
	}
	if slices.ContainsFunc(p.Likes, func(l model.Like) bool { return l.User == userID }) {
		return ErrDuplicateLike
	}
	p.Likes = slices.Insert(p.Likes, 0, model.Like{User: userID})
	return nil
}

func (v MemoryPosts) RemoveLike(_ context.Context, postID, userID string) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.post(postID)
	if p == nil {
		return ErrPostNotFound
	}
	i := slices.IndexFunc(p.Likes, func(l model.Like) bool { return l.User == userID })
	if i < 0 {
		return ErrLikeNotFound
	}
	p.Likes = slices.Delete(p.Likes, i, i+1)
	return nil
}

func (v MemoryPosts) Likes(_ context.Context, postID string) ([]model.Like, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.post(postID)
	if p == nil {
		return nil, ErrPostNotFound
	}
	return nonNil(slices.Clone(p.Likes)), nil
}

func (v MemoryPosts) AddComment(_ context.Context, postID string, c *model.Comment) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.post(postID)
	if p == nil {
		return ErrPostNotFound
	}
	c.ID = uuid.NewString()
	c.Date = now()
	p.Comments = slices.Insert(p.Comments, 0, *c)
	return nil
}

func (v MemoryPosts) DeleteComment(_ context.Context, postID, commentID, userID string) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.post(postID)
	if p == nil {
		return ErrPostNotFound
	}
	i := slices.IndexFunc(p.Comments, func(c model.Comment) bool { return c.ID == commentID })
	if i < 0 {
		return nil
	}
	if p.Comments[i].User != userID {
		return ErrNotOwner
	}
	p.Comments = slices.Delete(p.Comments, i, i+1)
	return nil
}

func (v MemoryPosts) Comments(_ context.Context, postID string) ([]model.Comment, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.post(postID)
	if p == nil {
		return nil, ErrPostNotFound
	}
	return nonNil(slices.Clone(p.Comments)), nil
}

// DeleteAccount removes the posts, profile and user record of userID under one lock.
func (v MemoryAccounts) DeleteAccount(_ context.Context, userID string) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = slices.DeleteFunc(s.posts, func(p *model.Post) bool { return p.User == userID })
	s.profiles = slices.DeleteFunc(s.profiles, func(p *model.Profile) bool { return p.User.ID == userID })
	if u, ok := s.users[userID]; ok {
		delete(s.byEmail, u.Email)
		delete(s.users, userID)
	}
	return nil
}

func (s *MemoryStore) profileOf(userID string) *model.Profile {
	for _, p := range s.profiles {
		if p.User.ID == userID {
			return p
		}
	}
	return nil
}

func (s *MemoryStore) post(id string) *model.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// copyProfile deep copies p and fills the owner's name and avatar.
func (s *MemoryStore) copyProfile(p *model.Profile) model.Profile {
	out := *p
	if u, ok := s.users[p.User.ID]; ok {
		out.User.Name = u.Name
		out.User.Avatar = u.Avatar
	}
	out.Skills = slices.Clone(p.Skills)
	out.Experience = make([]model.Experience, len(p.Experience))
	for i, e := range p.Experience {
		out.Experience[i] = copyExperience(e)
	}
	out.Education = make([]model.Education, len(p.Education))
	for i, e := range p.Education {
		out.Education[i] = copyEducation(e)
	}
	return out
}

func copyExperience(e model.Experience) model.Experience {
	e.To = copyDate(e.To)
	return e
}

func copyEducation(e model.Education) model.Education {
	e.To = copyDate(e.To)
	return e
}

func copyDate(d *model.Date) *model.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func copyPost(p *model.Post) model.Post {
	out := *p
	out.Likes = nonNil(slices.Clone(p.Likes))
	out.Comments = nonNil(slices.Clone(p.Comments))
	return out
}
