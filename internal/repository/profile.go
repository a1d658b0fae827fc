package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/devconnector/devconnector-go/internal/model"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository handles profile persistence, including experience and education entries.
type ProfileRepository struct {
	db DBTX
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const upsertProfileQuery = `
	INSERT INTO profiles (id, user_id, company, website, location, status, skills, bio, github_username,
		youtube, twitter, facebook, linkedin, instagram, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE
		company         = VALUES(company),
		website         = VALUES(website),
		location        = VALUES(location),
		status          = VALUES(status),
		skills          = VALUES(skills),
		bio             = VALUES(bio),
		github_username = VALUES(github_username),
		youtube         = VALUES(youtube),
		twitter         = VALUES(twitter),
		facebook        = VALUES(facebook),
		linkedin        = VALUES(linkedin),
		instagram       = VALUES(instagram),
		updated_at      = VALUES(updated_at)`

const selectProfileQuery = `
	SELECT p.id, p.user_id, u.name, u.avatar, p.company, p.website, p.location, p.status, p.skills,
		p.bio, p.github_username, p.youtube, p.twitter, p.facebook, p.linkedin, p.instagram, p.created_at
	FROM profiles p JOIN users u ON u.id = p.user_id`

// Upsert creates the profile of p.User.ID or replaces every editable field of the existing one.
func (r *ProfileRepository) Upsert(ctx context.Context, p *model.Profile) error {
	skills, err := json.Marshal(nonNil(p.Skills))
	if err != nil {
		return fmt.Errorf("encoding skills: %w", err)
	}

	ts := now()
	_, err = r.db.ExecContext(ctx, upsertProfileQuery,
		uuid.NewString(), p.User.ID,
		p.Company, p.Website, p.Location, p.Status, string(skills), p.Bio, p.GitHubUsername,
		p.Social.YouTube, p.Social.Twitter, p.Social.Facebook, p.Social.LinkedIn, p.Social.Instagram,
		ts, ts,
	)
	if err != nil {
		if isMissingParentError(err) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// GetByUserID retrieves the profile owned by userID together with its entries.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	rows, err := r.db.QueryContext(ctx, selectProfileQuery+` WHERE p.user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	profiles, err := scanProfiles(rows)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, ErrProfileNotFound
	}

	p := &profiles[0]
	experiences, err := r.experiences(ctx, `WHERE profile_id = ?`, p.ID)
	if err != nil {
		return nil, err
	}
	educations, err := r.educations(ctx, `WHERE profile_id = ?`, p.ID)
	if err != nil {
		return nil, err
	}
	p.Experience = nonNil(experiences[p.ID])
	p.Education = nonNil(educations[p.ID])
	return p, nil
}

// List retrieves every profile in creation order.
func (r *ProfileRepository) List(ctx context.Context) ([]model.Profile, error) {
	rows, err := r.db.QueryContext(ctx, selectProfileQuery+` ORDER BY p.seq ASC`)
	if err != nil {
		return nil, err
	}
	profiles, err := scanProfiles(rows)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return profiles, nil
	}

	experiences, err := r.experiences(ctx, ``)
	if err != nil {
		return nil, err
	}
	educations, err := r.educations(ctx, ``)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		profiles[i].Experience = nonNil(experiences[profiles[i].ID])
		profiles[i].Education = nonNil(educations[profiles[i].ID])
	}
	return profiles, nil
}

// AddExperience inserts e into the profile of userID. e.ID is set on success.
func (r *ProfileRepository) AddExperience(ctx context.Context, userID string, e *model.Experience) error {
	query := `
		INSERT INTO experiences (id, profile_id, title, company, location, from_date, to_date, is_current, description)
		SELECT ?, p.id, ?, ?, ?, ?, ?, ?, ? FROM profiles p WHERE p.user_id = ?`

	id := uuid.NewString()
	result, err := r.db.ExecContext(ctx, query,
		id, e.Title, e.Company, e.Location, e.From.Time, toDateArg(e.To), e.Current, e.Description, userID)
	if err != nil {
		return err
	}
	if err := requireRow(result, ErrProfileNotFound); err != nil {
		return err
	}
	e.ID = id
	return nil
}

// DeleteExperience removes an experience of the profile of userID. Unknown IDs are ignored.
func (r *ProfileRepository) DeleteExperience(ctx context.Context, userID, id string) error {
	query := `DELETE e FROM experiences e JOIN profiles p ON p.id = e.profile_id WHERE p.user_id = ? AND e.id = ?`
	_, err := r.db.ExecContext(ctx, query, userID, id)
	return err
}

// AddEducation inserts e into the profile of userID. e.ID is set on success.
func (r *ProfileRepository) AddEducation(ctx context.Context, userID string, e *model.Education) error {
	query := `
		INSERT INTO educations (id, profile_id, school, degree, field_of_study, from_date, to_date, is_current, description)
		SELECT ?, p.id, ?, ?, ?, ?, ?, ?, ? FROM profiles p WHERE p.user_id = ?`

	id := uuid.NewString()
	result, err := r.db.ExecContext(ctx, query,
		id, e.School, e.Degree, e.FieldOfStudy, e.From.Time, toDateArg(e.To), e.Current, e.Description, userID)
	if err != nil {
		return err
	}
	if err := requireRow(result, ErrProfileNotFound); err != nil {
		return err
	}
	e.ID = id
	return nil
}

// DeleteEducation removes an education of the profile of userID. Unknown IDs are ignored.
func (r *ProfileRepository) DeleteEducation(ctx context.Context, userID, id string) error {
	query := `DELETE e FROM educations e JOIN profiles p ON p.id = e.profile_id WHERE p.user_id = ? AND e.id = ?`
	_, err := r.db.ExecContext(ctx, query, userID, id)
	return err
}

// experiences loads experience entries grouped by profile ID, most recent first.
func (r *ProfileRepository) experiences(ctx context.Context, where string, args ...any) (map[string][]model.Experience, error) {
	query := `SELECT id, profile_id, title, company, location, from_date, to_date, is_current, description
		FROM experiences ` + where + ` ORDER BY seq DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]model.Experience)
	for rows.Next() {
		var (
			e         model.Experience
			profileID string
			to        sql.NullTime
		)
		if err := rows.Scan(&e.ID, &profileID, &e.Title, &e.Company, &e.Location,
			&e.From.Time, &to, &e.Current, &e.Description); err != nil {
			return nil, err
		}
		e.From = model.NewDate(e.From.Time)
		e.To = fromDateArg(to)
		out[profileID] = append(out[profileID], e)
	}
	return out, rows.Err()
}

// educations loads education entries grouped by profile ID, most recent first.
func (r *ProfileRepository) educations(ctx context.Context, where string, args ...any) (map[string][]model.Education, error) {
	query := `SELECT id, profile_id, school, degree, field_of_study, from_date, to_date, is_current, description
		FROM educations ` + where + ` ORDER BY seq DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]model.Education)
	for rows.Next() {
		var (
			e         model.Education
			profileID string
			to        sql.NullTime
		)
		if err := rows.Scan(&e.ID, &profileID, &e.School, &e.Degree, &e.FieldOfStudy,
			&e.From.Time, &to, &e.Current, &e.Description); err != nil {
			return nil, err
		}
		e.From = model.NewDate(e.From.Time)
		e.To = fromDateArg(to)
		out[profileID] = append(out[profileID], e)
	}
	return out, rows.Err()
}

func scanProfiles(rows *sql.Rows) ([]model.Profile, error) {
	defer rows.Close()

	profiles := []model.Profile{}
	for rows.Next() {
		var (
			p      model.Profile
			skills []byte
		)
		if err := rows.Scan(&p.ID, &p.User.ID, &p.User.Name, &p.User.Avatar,
			&p.Company, &p.Website, &p.Location, &p.Status, &skills,
			&p.Bio, &p.GitHubUsername,
			&p.Social.YouTube, &p.Social.Twitter, &p.Social.Facebook, &p.Social.LinkedIn, &p.Social.Instagram,
			&p.Date); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(skills, &p.Skills); err != nil {
			return nil, fmt.Errorf("decoding skills of profile %s: %w", p.ID, err)
		}
		p.Skills = nonNil(p.Skills)
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func requireRow(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func toDateArg(d *model.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

func fromDateArg(t sql.NullTime) *model.Date {
	if !t.Valid {
		return nil
	}
	d := model.NewDate(t.Time)
	return &d
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
