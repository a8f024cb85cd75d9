package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/repository"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/scoring"
)

const allCompetenciesKey = "competencies:all"

// CandidateScores are the indices of one candidate under one item number
type CandidateScores struct {
	CandidateID   uint   `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	ItemNumber    string `json:"item_number"`
	PositionTitle string `json:"position_title"`
	scoring.Result
	Total float64 `json:"total"`
}

// RankedCandidate is one row of a ranking
type RankedCandidate struct {
	Rank          int     `json:"rank"`
	CandidateID   uint    `json:"candidate_id"`
	CandidateName string  `json:"candidate_name"`
	PsychoSocial  float64 `json:"psycho_social"`
	Potential     float64 `json:"potential"`
	Total         float64 `json:"total"`
}

// Ranking lists the long-listed candidates of an item number by total index
type Ranking struct {
	ItemNumber    string               `json:"item_number"`
	PositionTitle string               `json:"position_title"`
	SalaryGrade   int                  `json:"salary_grade"`
	Mode          scoring.RoundingMode `json:"rounding_mode"`
	Candidates    []RankedCandidate    `json:"candidates"`
}

// ScoringService computes indices on read from the stored ratings. Vacancy and
// competency lookups are cached for the configured TTL.
type ScoringService struct {
	ratings      repository.RatingStore
	vacancies    repository.VacancyStore
	competencies repository.CompetencyStore
	candidates   repository.CandidateStore
	cache        *cache.Cache
	mode         scoring.RoundingMode
}

// NewScoringService creates a new scoring service
func NewScoringService(
	ratings repository.RatingStore,
	vacancies repository.VacancyStore,
	competencies repository.CompetencyStore,
	candidates repository.CandidateStore,
	mode scoring.RoundingMode,
	cacheTTL time.Duration,
) *ScoringService {
	return &ScoringService{
		ratings:      ratings,
		vacancies:    vacancies,
		competencies: competencies,
		candidates:   candidates,
		cache:        cache.New(cacheTTL, 2*cacheTTL),
		mode:         mode,
	}
}

// Mode returns the rounding mode used by the service
func (s *ScoringService) Mode() scoring.RoundingMode {
	return s.mode
}

// FlushCache drops all cached lookups
func (s *ScoringService) FlushCache() {
	s.cache.Flush()
}

func (s *ScoringService) vacancyByItemNumber(ctx context.Context, itemNumber string) (*models.Vacancy, error) {
	key := "vacancy:item:" + itemNumber
	if x, found := s.cache.Get(key); found {
		return x.(*models.Vacancy), nil
	}
	v, err := s.vacancies.GetByItemNumber(ctx, itemNumber)
	if err != nil {
		return nil, lookupError(err, "vacancy", itemNumber)
	}
	s.cache.Set(key, v, cache.DefaultExpiration)
	return v, nil
}

func (s *ScoringService) vacancyByID(ctx context.Context, id uint) (*models.Vacancy, error) {
	key := fmt.Sprintf("vacancy:id:%d", id)
	if x, found := s.cache.Get(key); found {
		return x.(*models.Vacancy), nil
	}
	v, err := s.vacancies.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "vacancy", strconv.FormatUint(uint64(id), 10))
	}
	s.cache.Set(key, v, cache.DefaultExpiration)
	return v, nil
}

func (s *ScoringService) allCompetencies(ctx context.Context) ([]models.Competency, error) {
	if x, found := s.cache.Get(allCompetenciesKey); found {
		return x.([]models.Competency), nil
	}
	all, err := s.competencies.ListAll(ctx)
	if err != nil {
		return nil, persistence("list competencies", err)
	}
	s.cache.Set(allCompetenciesKey, all, cache.DefaultExpiration)
	return all, nil
}

// ResolveApplicableCompetencies returns the fixed competencies plus those
// scoped to the vacancy. Orphaned competencies never match.
func (s *ScoringService) ResolveApplicableCompetencies(ctx context.Context, vacancyID uint) ([]models.Competency, error) {
	if _, err := s.vacancyByID(ctx, vacancyID); err != nil {
		return nil, err
	}
	all, err := s.allCompetencies(ctx)
	if err != nil {
		return nil, err
	}
	return scoring.ApplicableCompetencies(all, vacancyID), nil
}

// ComputeCandidateScores aggregates a candidate's stored ratings under an item
// number. An empty itemNumber uses the candidate's current item number.
func (s *ScoringService) ComputeCandidateScores(ctx context.Context, candidateID uint, itemNumber string) (*CandidateScores, error) {
	candidate, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, lookupError(err, "candidate", strconv.FormatUint(uint64(candidateID), 10))
	}

	itemNumber = strings.TrimSpace(itemNumber)
	if itemNumber == "" {
		itemNumber = candidate.ItemNumber
	}

	vacancy, err := s.vacancyByItemNumber(ctx, itemNumber)
	if err != nil {
		return nil, err
	}
	all, err := s.allCompetencies(ctx)
	if err != nil {
		return nil, err
	}

	return s.compute(ctx, *candidate, vacancy, scoring.ApplicableCompetencies(all, vacancy.ID))
}

func (s *ScoringService) compute(ctx context.Context, candidate models.Candidate, vacancy *models.Vacancy, competencies []models.Competency) (*CandidateScores, error) {
	details, err := s.ratings.ListByCandidate(ctx, candidate.ID, vacancy.ItemNumber)
	if err != nil {
		return nil, persistence("list ratings by candidate", err)
	}

	scores := make([]scoring.Score, 0, len(details))
	for _, d := range details {
		var raterType string
		if d.RaterType != nil {
			raterType = *d.RaterType
		}
		scores = append(scores, scoring.Score{
			RaterID:        d.RaterID,
			Code:           scoring.CodeFor(raterType),
			CompetencyID:   d.CompetencyID,
			CompetencyType: d.CompetencyType,
			Value:          d.Score,
		})
	}

	result := scoring.Compute(scoring.Input{
		SalaryGrade:  vacancy.SalaryGrade,
		Competencies: competencies,
		Scores:       scores,
		Mode:         s.mode,
	})

	return &CandidateScores{
		CandidateID:   candidate.ID,
		CandidateName: candidate.FullName,
		ItemNumber:    vacancy.ItemNumber,
		PositionTitle: vacancy.PositionTitle,
		Result:        result,
		Total:         result.Total(),
	}, nil
}

// RankCandidates orders the long-listed candidates of an item number by
// Psycho-Social plus Potential, highest first. Equal totals share a rank and
// are listed by name.
func (s *ScoringService) RankCandidates(ctx context.Context, itemNumber string) (*Ranking, error) {
	itemNumber = strings.TrimSpace(itemNumber)
	if itemNumber == "" {
		return nil, &ValidationError{Index: -1, Field: "itemNumber", Message: "is required"}
	}

	vacancy, err := s.vacancyByItemNumber(ctx, itemNumber)
	if err != nil {
		return nil, err
	}
	all, err := s.allCompetencies(ctx)
	if err != nil {
		return nil, err
	}
	applicable := scoring.ApplicableCompetencies(all, vacancy.ID)

	candidates, err := s.candidates.ListByItemNumber(ctx, itemNumber, models.CandidateLongList)
	if err != nil {
		return nil, persistence("list candidates", err)
	}

	ranked := make([]RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		cs, err := s.compute(ctx, c, vacancy, applicable)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, RankedCandidate{
			CandidateID:   c.ID,
			CandidateName: c.FullName,
			PsychoSocial:  cs.PsychoSocial,
			Potential:     cs.Potential,
			Total:         cs.Total,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].CandidateName < ranked[j].CandidateName
	})
	for i := range ranked {
		if i > 0 && ranked[i].Total == ranked[i-1].Total {
			ranked[i].Rank = ranked[i-1].Rank
		} else {
			ranked[i].Rank = i + 1
		}
	}

	return &Ranking{
		ItemNumber:    vacancy.ItemNumber,
		PositionTitle: vacancy.PositionTitle,
		SalaryGrade:   vacancy.SalaryGrade,
		Mode:          s.mode,
		Candidates:    ranked,
	}, nil
}
