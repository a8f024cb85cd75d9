package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/scoring"
)

func setupScoringService(t *testing.T, grade int) (*ScoringService, *RatingService, *memStore) {
	t.Helper()
	ratingSvc, m := setupRatingService(t)
	v := m.vacancies[1]
	v.SalaryGrade = grade
	m.vacancies[1] = v

	m.addCompetency(202, "Vision", models.CompetencyLeadership, false, 1)
	m.addCompetency(203, "Education", models.CompetencyMinimum, true)
	m.addCompetency(204, "Unused", models.CompetencyBasic, false)

	svc := NewScoringService(m, memVacancies{m}, memCompetencies{m}, memCandidates{m}, scoring.RoundPerStep, time.Minute)
	return svc, ratingSvc, m
}

func TestResolveApplicableCompetencies(t *testing.T) {
	svc, _, m := setupScoringService(t, 20)
	ctx := context.Background()

	got, err := svc.ResolveApplicableCompetencies(ctx, 1)
	require.NoError(t, err)
	var ids []uint
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []uint{compBasic, compOrg, 202, 203}, ids)

	// vacancy 2 only gets the fixed competencies
	got, err = svc.ResolveApplicableCompetencies(ctx, 2)
	require.NoError(t, err)
	ids = nil
	for _, c := range got {
		ids = append(ids, c.ID)
		assert.NotEqual(t, uint(204), c.ID, "orphaned competency must not apply")
	}
	assert.Equal(t, []uint{compBasic, 203}, ids)

	_, err = svc.ResolveApplicableCompetencies(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	// competency list is served from cache after the first call
	assert.Equal(t, 1, m.listAllCalls)
	svc.FlushCache()
	_, err = svc.ResolveApplicableCompetencies(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, m.listAllCalls)
}

func TestComputeCandidateScores_HighGrade(t *testing.T) {
	svc, ratingSvc, _ := setupScoringService(t, 20)
	ctx := context.Background()

	submit := func(actor Actor, basic, org, lead, minimum float64) {
		_, err := ratingSvc.SubmitBatch(ctx, actor, []models.RatingInput{
			input(candidateA, compBasic, models.CompetencyBasic, "ITEM-001", basic),
			input(candidateA, compOrg, models.CompetencyOrganizational, "ITEM-001", org),
			input(candidateA, 202, models.CompetencyLeadership, "ITEM-001", lead),
			input(candidateA, 203, models.CompetencyMinimum, "ITEM-001", minimum),
		}, false)
		require.NoError(t, err)
	}
	submit(chairActor(), 5, 4, 3, 4)
	submit(Actor{UserID: raterMember, UserType: models.UserTypeRater}, 5, 2, 5, 2)

	scores, err := svc.ComputeCandidateScores(ctx, candidateA, "")
	require.NoError(t, err)

	assert.Equal(t, "ITEM-001", scores.ItemNumber)
	assert.Equal(t, "Ana Santos", scores.CandidateName)
	assert.True(t, scores.LeadershipIncluded)

	// basic mean 5 -> 5/5 = 1.0 -> psychoSocial 2.0
	assert.Equal(t, 2.0, scores.PsychoSocial)
	// org mean 3 -> 0.6, lead mean 4 -> 0.8, min mean 3 / 1 = 3.0
	// (0.6 + 0.8 + 3.0) / 3 * 2 = 2.93
	assert.Equal(t, 2.93, scores.Potential)
	assert.Equal(t, 4.93, scores.Total)

	lead, ok := scores.Average(models.CompetencyLeadership)
	assert.True(t, ok)
	assert.Equal(t, 0.8, lead)
}

func TestComputeCandidateScores_LowGradeExcludesChair(t *testing.T) {
	svc, ratingSvc, _ := setupScoringService(t, 12)
	ctx := context.Background()

	_, err := ratingSvc.SubmitBatch(ctx, chairActor(), []models.RatingInput{
		input(candidateA, compBasic, models.CompetencyBasic, "ITEM-001", 5),
	}, false)
	require.NoError(t, err)

	scores, err := svc.ComputeCandidateScores(ctx, candidateA, "ITEM-001")
	require.NoError(t, err)

	basic, ok := scores.Average(models.CompetencyBasic)
	require.True(t, ok)
	assert.Equal(t, 0.0, basic)
	assert.Equal(t, 0.0, scores.PsychoSocial)
	assert.False(t, scores.LeadershipIncluded)

	_, ok = scores.Average(models.CompetencyLeadership)
	assert.False(t, ok)
}

func TestComputeCandidateScores_Errors(t *testing.T) {
	svc, _, _ := setupScoringService(t, 20)
	ctx := context.Background()

	_, err := svc.ComputeCandidateScores(ctx, 999, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ComputeCandidateScores(ctx, candidateA, "ITEM-404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComputeCandidateScores_ItemNumbersAreIndependent(t *testing.T) {
	svc, ratingSvc, _ := setupScoringService(t, 20)
	ctx := context.Background()

	_, err := ratingSvc.SubmitBatch(ctx, chairActor(), []models.RatingInput{
		input(candidateA, compBasic, models.CompetencyBasic, "ITEM-002", 5),
	}, false)
	require.NoError(t, err)

	scores, err := svc.ComputeCandidateScores(ctx, candidateA, "ITEM-001")
	require.NoError(t, err)
	assert.Equal(t, 0.0, scores.PsychoSocial)

	scores, err = svc.ComputeCandidateScores(ctx, candidateA, "ITEM-002")
	require.NoError(t, err)
	assert.Equal(t, 2.0, scores.PsychoSocial)
}

func TestRankCandidates(t *testing.T) {
	svc, ratingSvc, m := setupScoringService(t, 20)
	ctx := context.Background()
	m.addCandidate(102, "Carla Cruz", "ITEM-001", models.CandidateLongList)
	m.addCandidate(103, "Dan Disqualified", "ITEM-001", models.CandidateDisqualified)

	_, err := ratingSvc.SubmitBatch(ctx, chairActor(), []models.RatingInput{
		input(candidateB, compBasic, models.CompetencyBasic, "ITEM-001", 5),
		input(candidateA, compBasic, models.CompetencyBasic, "ITEM-001", 3),
		input(102, compBasic, models.CompetencyBasic, "ITEM-001", 3),
	}, false)
	require.NoError(t, err)

	ranking, err := svc.RankCandidates(ctx, "ITEM-001")
	require.NoError(t, err)
	require.Len(t, ranking.Candidates, 3)
	assert.Equal(t, 20, ranking.SalaryGrade)
	assert.Equal(t, scoring.RoundPerStep, ranking.Mode)

	assert.Equal(t, "Ben Reyes", ranking.Candidates[0].CandidateName)
	assert.Equal(t, 1, ranking.Candidates[0].Rank)
	assert.Equal(t, "Ana Santos", ranking.Candidates[1].CandidateName)
	assert.Equal(t, 2, ranking.Candidates[1].Rank)
	assert.Equal(t, "Carla Cruz", ranking.Candidates[2].CandidateName)
	assert.Equal(t, 2, ranking.Candidates[2].Rank)

	_, err = svc.RankCandidates(ctx, " ")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}
