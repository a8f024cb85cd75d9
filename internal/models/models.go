package models

import (
	"time"
)

// CompetencyType classifies a competency for aggregation purposes
type CompetencyType string

const (
	CompetencyBasic          CompetencyType = "basic"
	CompetencyOrganizational CompetencyType = "organizational"
	CompetencyLeadership     CompetencyType = "leadership"
	CompetencyMinimum        CompetencyType = "minimum"
)

// CompetencyTypes lists every known competency type in display order
var CompetencyTypes = []CompetencyType{
	CompetencyBasic,
	CompetencyOrganizational,
	CompetencyLeadership,
	CompetencyMinimum,
}

// Valid reports whether t is one of the four known competency types
func (t CompetencyType) Valid() bool {
	for _, known := range CompetencyTypes {
		if t == known {
			return true
		}
	}
	return false
}

// CandidateStatus is the screening status of a candidate
type CandidateStatus string

const (
	CandidateGeneralList  CandidateStatus = "general_list"
	CandidateLongList     CandidateStatus = "long_list"
	CandidateDisqualified CandidateStatus = "disqualified"
	CandidateForReview    CandidateStatus = "for_review"
)

// User types
const (
	UserTypeAdmin       = "admin"
	UserTypeRater       = "rater"
	UserTypeSecretariat = "secretariat"
)

// RatingAction is the kind of change recorded in the rating log
type RatingAction string

const (
	RatingActionCreated RatingAction = "created"
	RatingActionUpdated RatingAction = "updated"
	RatingActionDeleted RatingAction = "deleted"
)

// Valid reports whether a is a known rating log action
func (a RatingAction) Valid() bool {
	switch a {
	case RatingActionCreated, RatingActionUpdated, RatingActionDeleted:
		return true
	}
	return false
}

// Vacancy represents a published position, identified by its item number
type Vacancy struct {
	ID                 uint      `json:"id" db:"id"`
	ItemNumber         string    `json:"item_number" db:"item_number"`
	PositionTitle      string    `json:"position_title" db:"position_title"`
	SalaryGrade        int       `json:"salary_grade" db:"salary_grade"`
	PublicationRangeID *uint     `json:"publication_range_id,omitempty" db:"publication_range_id"`
	IsArchived         bool      `json:"is_archived" db:"is_archived"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// Candidate represents an applicant attached to one item number at a time
type Candidate struct {
	ID         uint            `json:"id" db:"id"`
	FullName   string          `json:"full_name" db:"full_name"`
	ItemNumber string          `json:"item_number" db:"item_number"`
	Status     CandidateStatus `json:"status" db:"status"`
	IsArchived bool            `json:"is_archived" db:"is_archived"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// Competency represents a rubric entry. VacancyIDs is only meaningful when IsFixed is false.
type Competency struct {
	ID         uint           `json:"id" db:"id"`
	Name       string         `json:"name" db:"name"`
	Type       CompetencyType `json:"type" db:"type"`
	IsFixed    bool           `json:"is_fixed" db:"is_fixed"`
	VacancyIDs []uint         `json:"vacancy_ids" db:"-"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}

// User represents an account known to the rating service
type User struct {
	ID        uint      `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	UserType  string    `json:"user_type" db:"user_type"`
	RaterType *string   `json:"rater_type,omitempty" db:"rater_type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RaterTypeName returns the raw rater type or an empty string
func (u *User) RaterTypeName() string {
	if u == nil || u.RaterType == nil {
		return ""
	}
	return *u.RaterType
}

// RatingKey is the composite natural key of a rating
type RatingKey struct {
	CandidateID    uint           `json:"candidate_id"`
	RaterID        uint           `json:"rater_id"`
	CompetencyID   uint           `json:"competency_id"`
	CompetencyType CompetencyType `json:"competency_type"`
	ItemNumber     string         `json:"item_number"`
}

// Rating is one rater's score for one competency of one candidate under one item number
type Rating struct {
	ID             uint           `json:"id" db:"id"`
	CandidateID    uint           `json:"candidate_id" db:"candidate_id"`
	RaterID        uint           `json:"rater_id" db:"rater_id"`
	CompetencyID   uint           `json:"competency_id" db:"competency_id"`
	CompetencyType CompetencyType `json:"competency_type" db:"competency_type"`
	ItemNumber     string         `json:"item_number" db:"item_number"`
	Score          float64        `json:"score" db:"score"`
	SubmittedAt    time.Time      `json:"submitted_at" db:"submitted_at"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

// Key returns the composite key of the rating
func (r *Rating) Key() RatingKey {
	return RatingKey{
		CandidateID:    r.CandidateID,
		RaterID:        r.RaterID,
		CompetencyID:   r.CompetencyID,
		CompetencyType: r.CompetencyType,
		ItemNumber:     r.ItemNumber,
	}
}

// RatingDetail is a rating joined with rater and competency display data
type RatingDetail struct {
	Rating
	RaterName      string  `json:"rater_name"`
	RaterType      *string `json:"rater_type,omitempty"`
	CompetencyName string  `json:"competency_name"`
}

// RatingInput is one item of a submitted batch
type RatingInput struct {
	CandidateID    uint           `json:"candidateId" validate:"required"`
	RaterID        uint           `json:"raterId"`
	CompetencyID   uint           `json:"competencyId" validate:"required"`
	CompetencyType CompetencyType `json:"competencyType" validate:"required,oneof=basic organizational leadership minimum"`
	ItemNumber     string         `json:"itemNumber" validate:"required"`
	Score          float64        `json:"score" validate:"gte=1,lte=5"`
}

// CandidateItem identifies a candidate under a specific item number
type CandidateItem struct {
	CandidateID uint   `json:"candidate_id"`
	ItemNumber  string `json:"item_number"`
}

// RatingLog is an immutable audit entry for one rating change
type RatingLog struct {
	ID             uint           `json:"id" db:"id"`
	BatchID        string         `json:"batch_id" db:"batch_id"`
	Action         RatingAction   `json:"action" db:"action"`
	RatingID       *uint          `json:"rating_id,omitempty" db:"rating_id"`
	CandidateID    uint           `json:"candidate_id" db:"candidate_id"`
	RaterID        uint           `json:"rater_id" db:"rater_id"`
	CompetencyID   uint           `json:"competency_id" db:"competency_id"`
	CompetencyType CompetencyType `json:"competency_type" db:"competency_type"`
	ItemNumber     string         `json:"item_number" db:"item_number"`
	OldScore       *float64       `json:"old_score" db:"old_score"`
	NewScore       *float64       `json:"new_score" db:"new_score"`
	ActorID        uint           `json:"actor_id" db:"actor_id"`
	IPAddress      string         `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent      string         `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

// RatingLogFilter narrows rating log queries. Zero values mean "no filter".
type RatingLogFilter struct {
	CandidateID *uint
	RaterID     *uint
	ItemNumber  string
	Action      RatingAction
	BatchID     string
}

// RatingLogActionCount is the number of log entries for one action
type RatingLogActionCount struct {
	Action RatingAction `json:"action"`
	Count  int          `json:"count"`
}

// RaterActivity summarizes the log entries produced by one rater
type RaterActivity struct {
	RaterID      uint      `json:"rater_id"`
	RaterName    string    `json:"rater_name"`
	Created      int       `json:"created"`
	Updated      int       `json:"updated"`
	Deleted      int       `json:"deleted"`
	Total        int       `json:"total"`
	LastActivity time.Time `json:"last_activity"`
}

// RatingLogStats aggregates the rating log
type RatingLogStats struct {
	Total    int                    `json:"total"`
	ByAction []RatingLogActionCount `json:"by_action"`
	ByRater  []RaterActivity        `json:"by_rater"`
}
