package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/auth"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/config"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/middleware"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/repository"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/scoring"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/service"
)

type stubRatings struct {
	submitErr    error
	gotActor     service.Actor
	gotItems     []models.RatingInput
	gotIsUpdate  bool
	checkArgs    []any
	resetErr     error
	resetArgs    []any
	details      []models.RatingDetail
	listErr      error
	listedRater  uint
	listedItemNo string
}

func (s *stubRatings) SubmitBatch(_ context.Context, actor service.Actor, items []models.RatingInput, isUpdate bool) (*service.SubmitResult, error) {
	s.gotActor, s.gotItems, s.gotIsUpdate = actor, items, isUpdate
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return &service.SubmitResult{BatchID: "batch-1", RowsTouched: len(items), ChangesLogged: len(items)}, nil
}

func (s *stubRatings) CheckExisting(_ context.Context, candidateID, raterID uint, itemNumber, raterType string) (*service.ExistingCheck, error) {
	s.checkArgs = []any{candidateID, raterID, itemNumber, raterType}
	return &service.ExistingCheck{HasExisting: true, RatingCount: 3}, nil
}

func (s *stubRatings) ResetRatings(_ context.Context, actor service.Actor, candidateID, raterID uint, itemNumber string) (*service.ResetResult, error) {
	s.gotActor = actor
	s.resetArgs = []any{candidateID, raterID, itemNumber}
	if s.resetErr != nil {
		return nil, s.resetErr
	}
	return &service.ResetResult{Deleted: 2, ChangesLogged: 2, BatchID: "batch-2"}, nil
}

func (s *stubRatings) ListByCandidate(_ context.Context, _ uint, itemNumber string) ([]models.RatingDetail, error) {
	s.listedItemNo = itemNumber
	return s.details, s.listErr
}

func (s *stubRatings) ListByRater(_ context.Context, raterID uint) ([]models.RatingDetail, error) {
	s.listedRater = raterID
	return s.details, s.listErr
}

type stubScoring struct {
	err        error
	gotItem    string
	gotVacancy uint
}

func (s *stubScoring) ComputeCandidateScores(_ context.Context, candidateID uint, itemNumber string) (*service.CandidateScores, error) {
	s.gotItem = itemNumber
	if s.err != nil {
		return nil, s.err
	}
	return &service.CandidateScores{
		CandidateID: candidateID,
		ItemNumber:  itemNumber,
		Result:      scoring.Result{SalaryGrade: 20, PsychoSocial: 2, Potential: 2.93},
		Total:       4.93,
	}, nil
}

func (s *stubScoring) RankCandidates(_ context.Context, itemNumber string) (*service.Ranking, error) {
	s.gotItem = itemNumber
	if s.err != nil {
		return nil, s.err
	}
	return &service.Ranking{ItemNumber: itemNumber}, nil
}

func (s *stubScoring) ResolveApplicableCompetencies(_ context.Context, vacancyID uint) ([]models.Competency, error) {
	s.gotVacancy = vacancyID
	if s.err != nil {
		return nil, s.err
	}
	return []models.Competency{{ID: 1, Name: "Integrity", Type: models.CompetencyBasic, IsFixed: true}}, nil
}

type stubAudit struct {
	gotFilter models.RatingLogFilter
	gotLimit  int
	gotSkip   int
	err       error
}

func (s *stubAudit) List(_ context.Context, filter models.RatingLogFilter, limit, skip int) (*service.LogPage, error) {
	s.gotFilter, s.gotLimit, s.gotSkip = filter, limit, skip
	if s.err != nil {
		return nil, s.err
	}
	return &service.LogPage{Total: 0, Limit: 50, Skip: skip}, nil
}

func (s *stubAudit) Stats(_ context.Context, filter models.RatingLogFilter) (*models.RatingLogStats, error) {
	s.gotFilter = filter
	return &models.RatingLogStats{Total: 4}, s.err
}

func (s *stubAudit) Batch(_ context.Context, batchID string) ([]models.RatingLog, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.RatingLog{{ID: 1, BatchID: batchID, Action: models.RatingActionCreated}}, nil
}

var (
	raterUser = &models.User{ID: 11, Name: "Maria Santos", UserType: models.UserTypeRater}
	adminUser = &models.User{ID: 1, Name: "Admin", UserType: models.UserTypeAdmin}
)

func asUser(r *http.Request, u *models.User) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserIDKey, u.ID)
	ctx = context.WithValue(ctx, middleware.UserKey, u)
	return r.WithContext(ctx)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSubmitRatings(t *testing.T) {
	payload := `{"ratings":[{"candidateId":100,"competencyId":200,"competencyType":"basic","itemNumber":"ITEM-001","score":4}],"isUpdate":true}`

	t.Run("success", func(t *testing.T) {
		stub := &stubRatings{}
		h := NewRatingHandler(stub)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/ratings", strings.NewReader(payload))
		req.Header.Set("User-Agent", "test-agent")
		req.RemoteAddr = "10.1.2.3:4567"
		rec := httptest.NewRecorder()
		h.SubmitRatings(rec, asUser(req, raterUser))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "batch-1", body["batchId"])
		assert.Equal(t, float64(1), body["rowsTouched"])
		assert.Equal(t, []any{}, body["ratings"])

		assert.True(t, stub.gotIsUpdate)
		require.Len(t, stub.gotItems, 1)
		assert.Equal(t, 4.0, stub.gotItems[0].Score)
		assert.Equal(t, service.Actor{UserID: 11, UserType: models.UserTypeRater, IPAddress: "10.1.2.3", UserAgent: "test-agent"}, stub.gotActor)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewRatingHandler(&stubRatings{}).SubmitRatings(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"ratings":`))
		NewRatingHandler(&stubRatings{}).SubmitRatings(rec, asUser(req, raterUser))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, ErrMsgInvalidRequestBody, decode(t, rec)["error"])
	})

	errorCases := []struct {
		name   string
		err    error
		status int
		check  func(t *testing.T, body map[string]any)
	}{
		{
			name:   "conflict",
			err:    &service.ConflictError{ExistingCount: 5},
			status: http.StatusConflict,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, true, body["requiresUpdate"])
				assert.Equal(t, float64(5), body["existingCount"])
			},
		},
		{
			name:   "item validation",
			err:    &service.ValidationError{Index: 2, Field: "score", Message: "must be between 1 and 5"},
			status: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, float64(2), body["index"])
				assert.Equal(t, "score", body["field"])
			},
		},
		{
			name:   "batch validation",
			err:    &service.ValidationError{Index: -1, Message: "ratings must not be empty"},
			status: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				_, hasIndex := body["index"]
				assert.False(t, hasIndex)
			},
		},
		{
			name:   "not found",
			err:    &service.NotFoundError{Resource: "candidate", ID: "100"},
			status: http.StatusNotFound,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "candidate 100 not found", body["error"])
			},
		},
		{
			name:   "persistence",
			err:    &service.PersistenceError{Op: "submit rating", Err: errors.New("connection reset")},
			status: http.StatusInternalServerError,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, ErrMsgInternal, body["error"])
			},
		},
	}

	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
			NewRatingHandler(&stubRatings{submitErr: tc.err}).SubmitRatings(rec, asUser(req, raterUser))
			assert.Equal(t, tc.status, rec.Code)
			tc.check(t, decode(t, rec))
		})
	}
}

func TestCheckExisting(t *testing.T) {
	stub := &stubRatings{}
	h := NewRatingHandler(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ratings/check?candidateId=100&itemNumber=ITEM-001", nil)
	h.CheckExisting(rec, asUser(req, raterUser))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{uint(100), uint(11), "ITEM-001", ""}, stub.checkArgs)
	assert.Equal(t, true, decode(t, rec)["hasExisting"])

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/ratings/check?candidateId=100&itemNumber=ITEM-001&raterType=Chairperson&raterId=12", nil)
	h.CheckExisting(rec, asUser(req, raterUser))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{uint(100), uint(12), "ITEM-001", "Chairperson"}, stub.checkArgs)

	for _, query := range []string{"itemNumber=ITEM-001", "candidateId=abc", "candidateId=100&raterId=-1"} {
		rec = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/api/v1/ratings/check?"+query, nil)
		h.CheckExisting(rec, asUser(req, raterUser))
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestResetRatings(t *testing.T) {
	stub := &stubRatings{}
	h := NewRatingHandler(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/ratings/reset?candidateId=100&raterId=11&itemNumber=ITEM-002", nil)
	h.ResetRatings(rec, asUser(req, adminUser))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{uint(100), uint(11), "ITEM-002"}, stub.resetArgs)
	assert.True(t, stub.gotActor.IsAdmin())
	body := decode(t, rec)
	assert.Equal(t, float64(2), body["deleted"])
	assert.Equal(t, float64(2), body["changesLogged"])

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/ratings/reset?candidateId=100", nil)
	h.ResetRatings(rec, asUser(req, adminUser))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	forbidden := NewRatingHandler(&stubRatings{resetErr: &service.ForbiddenError{Message: "raters may only reset their own ratings"}})
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/ratings/reset?candidateId=100&raterId=12", nil)
	forbidden.ResetRatings(rec, asUser(req, raterUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestScoreHandler(t *testing.T) {
	stub := &stubScoring{}
	h := NewScoreHandler(stub)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /scores/{candidateId}", h.GetCandidateScores)
	mux.HandleFunc("GET /rankings/{itemNumber}", h.GetRanking)
	mux.HandleFunc("GET /competencies/applicable/{vacancyId}", h.GetApplicableCompetencies)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scores/100?itemNumber=ITEM-001", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, 4.93, body["total"])
	assert.Equal(t, 2.93, body["potential"])
	assert.Equal(t, float64(20), body["salary_grade"])
	assert.Equal(t, []any{}, body["breakdown"])
	assert.Equal(t, "ITEM-001", stub.gotItem)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scores/zero", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rankings/ITEM-009", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ITEM-009", stub.gotItem)
	assert.Equal(t, []any{}, decode(t, rec)["candidates"])

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/competencies/applicable/7", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), stub.gotVacancy)
	var comps []models.Competency
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comps))
	require.Len(t, comps, 1)
	assert.Equal(t, []uint{}, comps[0].VacancyIDs)

	missing := NewScoreHandler(&stubScoring{err: &service.NotFoundError{Resource: "vacancy", ID: "ITEM-404"}})
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rankings/ITEM-404", nil)
	req.SetPathValue("itemNumber", "ITEM-404")
	missing.GetRanking(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuditHandler(t *testing.T) {
	stub := &stubAudit{}
	h := NewAuditHandler(stub)

	rec := httptest.NewRecorder()
	h.ListRatingLogs(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/admin/rating-logs?candidateId=100&raterId=11&itemNumber=ITEM-001&action=updated&limit=20&skip=40", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.gotFilter.CandidateID)
	require.NotNil(t, stub.gotFilter.RaterID)
	assert.Equal(t, uint(100), *stub.gotFilter.CandidateID)
	assert.Equal(t, uint(11), *stub.gotFilter.RaterID)
	assert.Equal(t, "ITEM-001", stub.gotFilter.ItemNumber)
	assert.Equal(t, models.RatingActionUpdated, stub.gotFilter.Action)
	assert.Equal(t, 20, stub.gotLimit)
	assert.Equal(t, 40, stub.gotSkip)
	assert.Equal(t, []any{}, decode(t, rec)["logs"])

	for _, query := range []string{"candidateId=x", "raterId=0", "limit=many", "skip=-3"} {
		rec = httptest.NewRecorder()
		h.ListRatingLogs(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/rating-logs?"+query, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}

	rec = httptest.NewRecorder()
	h.GetRatingLogStats(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/rating-logs/stats?raterId=11", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(4), body["total"])
	assert.Equal(t, []any{}, body["by_action"])

	invalid := NewAuditHandler(&stubAudit{err: &service.ValidationError{Index: -1, Field: "batchId", Message: "must be a UUID"}})
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/rating-logs/batches/nope", nil)
	req.SetPathValue("batchId", "nope")
	invalid.GetBatch(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type routeUsers map[uint]*models.User

func (u routeUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	if user, ok := u[id]; ok {
		return user, nil
	}
	return nil, repository.ErrNotFound
}

func (u routeUsers) ListByRaterType(context.Context, string) ([]models.User, error) {
	return nil, nil
}

func TestRoutesEnforceUserTypes(t *testing.T) {
	authSvc := auth.NewService(&config.JWTConfig{Secret: "routes-secret", Expiration: time.Hour})
	secretariat := &models.User{ID: 20, Name: "Secretariat", UserType: models.UserTypeSecretariat}
	users := routeUsers{raterUser.ID: raterUser, adminUser.ID: adminUser, secretariat.ID: secretariat}

	mux := http.NewServeMux()
	Routes{
		Auth:    middleware.NewAuthMiddleware(authSvc),
		RBAC:    middleware.NewRBACMiddleware(users),
		Ratings: NewRatingHandler(&stubRatings{}),
		Scores:  NewScoreHandler(&stubScoring{}),
		Audit:   NewAuditHandler(&stubAudit{}),
	}.Register(mux)

	token := func(u *models.User) string {
		tok, err := authSvc.GenerateToken(u.ID, u.Name+"@example.com", u.UserType)
		require.NoError(t, err)
		return "Bearer " + tok
	}

	tests := []struct {
		name   string
		method string
		path   string
		user   *models.User
		body   string
		status int
	}{
		{"no token", http.MethodGet, "/api/v1/scores/100", nil, "", http.StatusUnauthorized},
		{"rater submits", http.MethodPost, "/api/v1/ratings", raterUser, `{"ratings":[]}`, http.StatusOK},
		{"admin cannot submit", http.MethodPost, "/api/v1/ratings", adminUser, `{"ratings":[]}`, http.StatusForbidden},
		{"secretariat reads scores", http.MethodGet, "/api/v1/scores/100", secretariat, "", http.StatusOK},
		{"secretariat cannot reset", http.MethodDelete, "/api/v1/ratings/reset?candidateId=1&raterId=11", secretariat, "", http.StatusForbidden},
		{"rater cannot read logs", http.MethodGet, "/api/v1/admin/rating-logs", raterUser, "", http.StatusForbidden},
		{"admin reads logs", http.MethodGet, "/api/v1/admin/rating-logs/stats", adminUser, "", http.StatusOK},
		{"wrong method", http.MethodPut, "/api/v1/ratings", raterUser, "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			if tt.user != nil {
				req.Header.Set("Authorization", token(tt.user))
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestJSONResponseNormalizesNilSlices(t *testing.T) {
	type inner struct {
		IDs []uint `json:"ids"`
	}
	type outer struct {
		Items  []inner    `json:"items"`
		Nested *inner     `json:"nested"`
		When   time.Time  `json:"when"`
		Tags   []string   `json:"tags"`
		Maybe  *time.Time `json:"maybe"`
	}

	rec := httptest.NewRecorder()
	require.NoError(t, JSONResponse(rec, outer{Items: []inner{{}}, Nested: &inner{}}))

	body := decode(t, rec)
	assert.Equal(t, []any{}, body["tags"])
	assert.Equal(t, []any{map[string]any{"ids": []any{}}}, body["items"])
	assert.Equal(t, map[string]any{"ids": []any{}}, body["nested"])
	assert.Nil(t, body["maybe"])
	assert.Equal(t, "0001-01-01T00:00:00Z", body["when"])
}
