package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Profile is the developer profile aggregate owned by a single user.
type Profile struct {
	ID             string       `json:"id"`
	User           UserSummary  `json:"user"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Status         string       `json:"status"`
	Skills         []string     `json:"skills"`
	Bio            string       `json:"bio,omitempty"`
	GitHubUsername string       `json:"githubusername,omitempty"`
	Social         Social       `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Date           time.Time    `json:"date"`
}

// Social holds the optional social network links of a profile.
type Social struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Experience is a job entry. A nil To means the position is current.
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        Date   `json:"from"`
	To          *Date  `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// Education is a school entry. A nil To means the studies are ongoing.
type Education struct {
	ID           string `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         Date   `json:"from"`
	To           *Date  `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

// SkillList decodes either a comma separated string or a JSON array of strings.
type SkillList []string

func (s *SkillList) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err == nil {
		*s = SplitSkills(raw)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*s = SplitSkills(strings.Join(list, ","))
	return nil
}

// SplitSkills splits a comma separated list, trimming whitespace and dropping empty items.
func SplitSkills(raw string) []string {
	skills := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			skills = append(skills, item)
		}
	}
	return skills
}

// ProfileRequest represents a create-or-update profile request.
type ProfileRequest struct {
	Company        string    `json:"company"`
	Website        string    `json:"website"`
	Location       string    `json:"location"`
	Bio            string    `json:"bio"`
	Status         string    `json:"status" validate:"required" msg:"status is required"`
	GitHubUsername string    `json:"githubusername"`
	Skills         SkillList `json:"skills" validate:"min=1" msg:"skills is required"`
	YouTube        string    `json:"youtube"`
	Twitter        string    `json:"twitter"`
	Facebook       string    `json:"facebook"`
	LinkedIn       string    `json:"linkedin"`
	Instagram      string    `json:"instagram"`
}

// ExperienceRequest represents an add-experience request.
type ExperienceRequest struct {
	Title       string `json:"title" validate:"required" msg:"title is required"`
	Company     string `json:"company" validate:"required" msg:"company is required"`
	Location    string `json:"location"`
	From        string `json:"from" validate:"required,date" msg:"from date is required"`
	To          string `json:"to" validate:"omitempty,date" msg:"to date is invalid"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// EducationRequest represents an add-education request.
type EducationRequest struct {
	School       string `json:"school" validate:"required" msg:"school is required"`
	Degree       string `json:"degree" validate:"required" msg:"degree is required"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required" msg:"field of study is required"`
	From         string `json:"from" validate:"required,date" msg:"from date is required"`
	To           string `json:"to" validate:"omitempty,date" msg:"to date is invalid"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}
