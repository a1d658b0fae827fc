package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/devconnector/devconnector-go/internal/model"
)

var profileColumns = []string{
	"id", "user_id", "name", "avatar", "company", "website", "location", "status", "skills",
	"bio", "github_username", "youtube", "twitter", "facebook", "linkedin", "instagram", "created_at",
}

func TestProfileUpsert(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepository(db)

	mock.ExpectExec(`INSERT INTO profiles .* ON DUPLICATE KEY UPDATE`).
		WithArgs(sqlmock.AnyArg(), "u-1", "Acme", "", "Berlin", "Developer", `["go","sql"]`, "", "ada",
			"", "", "", "", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	p := &model.Profile{
		User:           model.UserSummary{ID: "u-1"},
		Company:        "Acme",
		Location:       "Berlin",
		Status:         "Developer",
		Skills:         []string{"go", "sql"},
		GitHubUsername: "ada",
	}
	if err := repo.Upsert(context.Background(), p); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	expectationsMet(t, mock)
}

func TestProfileUpsert_UnknownUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepository(db)

	mock.ExpectExec(`INSERT INTO profiles`).WillReturnError(&mysql.MySQLError{Number: 1452})

	err := repo.Upsert(context.Background(), &model.Profile{User: model.UserSummary{ID: "ghost"}})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProfileGetByUserID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepository(db)

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery(`FROM profiles p JOIN users u ON u.id = p.user_id WHERE p.user_id = \?`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(profileColumns).AddRow(
			"p-1", "u-1", "Ada", "avatar-url", "Acme", "", "", "Developer", []byte(`["go"]`),
			"", "", "", "", "", "", "", created))
	mock.ExpectQuery(`FROM experiences WHERE profile_id = \? ORDER BY seq DESC`).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "profile_id", "title", "company", "location", "from_date", "to_date", "is_current", "description"}).
			AddRow("e-2", "p-1", "Lead", "Acme", "", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), nil, true, "").
			AddRow("e-1", "p-1", "Dev", "Initech", "", time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), false, ""))
	mock.ExpectQuery(`FROM educations WHERE profile_id = \? ORDER BY seq DESC`).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "profile_id", "school", "degree", "field_of_study", "from_date", "to_date", "is_current", "description"}))

	p, err := repo.GetByUserID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByUserID error: %v", err)
	}
	if p.User.Name != "Ada" || p.User.Avatar != "avatar-url" {
		t.Errorf("owner not joined: %+v", p.User)
	}
	if len(p.Skills) != 1 || p.Skills[0] != "go" {
		t.Errorf("skills = %v", p.Skills)
	}
	if len(p.Experience) != 2 || p.Experience[0].ID != "e-2" {
		t.Fatalf("experience order wrong: %+v", p.Experience)
	}
	if p.Experience[0].To != nil {
		t.Errorf("current experience should have nil To")
	}
	if p.Experience[1].To == nil || p.Experience[1].To.String() != "2020-12-31" {
		t.Errorf("unexpected To: %v", p.Experience[1].To)
	}
	if p.Education == nil || len(p.Education) != 0 {
		t.Errorf("education should be an empty list, got %#v", p.Education)
	}
	expectationsMet(t, mock)
}

func TestProfileGetByUserID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`FROM profiles p JOIN users u`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(profileColumns))

	_, err := repo.GetByUserID(context.Background(), "u-1")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestProfileList_Empty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`FROM profiles p JOIN users u ON u.id = p.user_id ORDER BY p.seq ASC`).
		WillReturnRows(sqlmock.NewRows(profileColumns))

	profiles, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if profiles == nil || len(profiles) != 0 {
		t.Fatalf("expected empty list, got %#v", profiles)
	}
	expectationsMet(t, mock)
}

func TestProfileAddExperience(t *testing.T) {
	from, _ := model.ParseDate("2019-01-01")

	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "inserted", affected: 1},
		{name: "no profile", affected: 0, wantErr: ErrProfileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewProfileRepository(db)

			mock.ExpectExec(`INSERT INTO experiences .* SELECT \?, p.id, .* FROM profiles p WHERE p.user_id = \?`).
				WithArgs(sqlmock.AnyArg(), "Dev", "Acme", "", from.Time, nil, true, "", "u-1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			e := &model.Experience{Title: "Dev", Company: "Acme", From: from, Current: true}
			err := repo.AddExperience(context.Background(), "u-1", e)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddExperience error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && e.ID == "" {
				t.Error("expected generated ID")
			}
			expectationsMet(t, mock)
		})
	}
}

func TestProfileDeleteEducation_ScopedToOwner(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProfileRepository(db)

	mock.ExpectExec(`DELETE e FROM educations e JOIN profiles p ON p.id = e.profile_id WHERE p.user_id = \? AND e.id = \?`).
		WithArgs("u-1", "edu-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteEducation(context.Background(), "u-1", "edu-1"); err != nil {
		t.Fatalf("DeleteEducation error: %v", err)
	}
	expectationsMet(t, mock)
}
