package testutil

import (
	"database/sql"
	"testing"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
)

// Fixtures holds reference data for integration tests
type Fixtures struct {
	DB        *sql.DB
	Admin     *models.User
	Chair     *models.User
	RegMember *models.User
	EndUser   *models.User
	Vacancy   *models.Vacancy
	Candidate *models.Candidate
	Basic     *models.Competency
	Minimum   *models.Competency
}

// SetupFixtures creates a grade 20 vacancy with one long-listed candidate,
// a small panel and two fixed competencies
func SetupFixtures(t *testing.T, db *sql.DB) *Fixtures {
	t.Helper()

	f := &Fixtures{DB: db}
	f.Admin = CreateUser(t, db, "Admin", "admin@test.local", models.UserTypeAdmin, "")
	f.Chair = CreateUser(t, db, "Chair", "chair@test.local", models.UserTypeRater, "Chairperson")
	f.RegMember = CreateUser(t, db, "Member", "member@test.local", models.UserTypeRater, "Regular Member")
	f.EndUser = CreateUser(t, db, "End User", "enduser@test.local", models.UserTypeRater, "End-User")
	f.Vacancy = CreateVacancy(t, db, "ITEM-001", 20)
	f.Candidate = CreateCandidate(t, db, "Juan Dela Cruz", "ITEM-001", models.CandidateLongList)
	f.Basic = CreateCompetency(t, db, "Integrity", models.CompetencyBasic, true)
	f.Minimum = CreateCompetency(t, db, "Education", models.CompetencyMinimum, true)
	return f
}

// CreateUser inserts a user. An empty raterType stores NULL.
func CreateUser(t *testing.T, db *sql.DB, name, email, userType, raterType string) *models.User {
	t.Helper()

	var rt *string
	if raterType != "" {
		rt = &raterType
	}

	u := &models.User{Name: name, Email: email, UserType: userType, RaterType: rt}
	err := db.QueryRow(
		`INSERT INTO users (name, email, user_type, rater_type) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		name, email, userType, rt,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return u
}

// CreateVacancy inserts a vacancy
func CreateVacancy(t *testing.T, db *sql.DB, itemNumber string, salaryGrade int) *models.Vacancy {
	t.Helper()

	v := &models.Vacancy{ItemNumber: itemNumber, PositionTitle: "Position " + itemNumber, SalaryGrade: salaryGrade}
	err := db.QueryRow(
		`INSERT INTO vacancies (item_number, position_title, salary_grade) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		v.ItemNumber, v.PositionTitle, v.SalaryGrade,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create vacancy: %v", err)
	}
	return v
}

// CreateCandidate inserts a candidate
func CreateCandidate(t *testing.T, db *sql.DB, name, itemNumber string, status models.CandidateStatus) *models.Candidate {
	t.Helper()

	c := &models.Candidate{FullName: name, ItemNumber: itemNumber, Status: status}
	err := db.QueryRow(
		`INSERT INTO candidates (full_name, item_number, status) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		name, itemNumber, status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create candidate: %v", err)
	}
	return c
}

// CreateCompetency inserts a competency scoped to vacancyIDs unless fixed
func CreateCompetency(t *testing.T, db *sql.DB, name string, typ models.CompetencyType, fixed bool, vacancyIDs ...uint) *models.Competency {
	t.Helper()

	c := &models.Competency{Name: name, Type: typ, IsFixed: fixed, VacancyIDs: vacancyIDs}
	err := db.QueryRow(
		`INSERT INTO competencies (name, type, is_fixed) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		name, typ, fixed,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create competency: %v", err)
	}

	for _, vid := range vacancyIDs {
		if _, err := db.Exec(
			`INSERT INTO competency_vacancies (competency_id, vacancy_id) VALUES ($1, $2)`, c.ID, vid,
		); err != nil {
			t.Fatalf("Failed to link competency to vacancy: %v", err)
		}
	}
	if c.VacancyIDs == nil {
		c.VacancyIDs = []uint{}
	}
	return c
}
