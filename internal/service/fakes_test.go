package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/repository"
)

// memStore is an in-memory stand-in for the rating, rating log and reference stores
type memStore struct {
	mu           sync.Mutex
	nextID       uint
	ratings      map[models.RatingKey]models.Rating
	logs         []models.RatingLog
	candidates   map[uint]models.Candidate
	competencies map[uint]models.Competency
	vacancies    map[uint]models.Vacancy
	users        map[uint]models.User

	// failUpsertAfter makes the n-th Upsert call (1-based) fail
	failUpsertAfter int
	upserts         int
	listAllCalls    int
}

var errStorage = errors.New("storage unavailable")

func newMemStore() *memStore {
	return &memStore{
		ratings:      make(map[models.RatingKey]models.Rating),
		candidates:   make(map[uint]models.Candidate),
		competencies: make(map[uint]models.Competency),
		vacancies:    make(map[uint]models.Vacancy),
		users:        make(map[uint]models.User),
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) addVacancy(id uint, itemNumber string, grade int) {
	m.vacancies[id] = models.Vacancy{ID: id, ItemNumber: itemNumber, PositionTitle: "Position " + itemNumber, SalaryGrade: grade}
}

func (m *memStore) addCandidate(id uint, name, itemNumber string, status models.CandidateStatus) {
	m.candidates[id] = models.Candidate{ID: id, FullName: name, ItemNumber: itemNumber, Status: status}
}

func (m *memStore) addCompetency(id uint, name string, typ models.CompetencyType, fixed bool, vacancyIDs ...uint) {
	m.competencies[id] = models.Competency{ID: id, Name: name, Type: typ, IsFixed: fixed, VacancyIDs: vacancyIDs}
}

func (m *memStore) addRater(id uint, name, raterType string) {
	rt := raterType
	m.users[id] = models.User{ID: id, Name: name, UserType: models.UserTypeRater, RaterType: &rt}
}

// RatingStore

func (m *memStore) CountByRaterForPairs(_ context.Context, raterID uint, pairs []models.CandidateItem) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := make(map[models.CandidateItem]bool)
	for _, p := range pairs {
		want[p] = true
	}
	n := 0
	for k := range m.ratings {
		if k.RaterID == raterID && want[models.CandidateItem{CandidateID: k.CandidateID, ItemNumber: k.ItemNumber}] {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CountByRater(_ context.Context, candidateID, raterID uint, itemNumber string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.ratings {
		if k.CandidateID == candidateID && k.RaterID == raterID && k.ItemNumber == itemNumber {
			n++
		}
	}
	return n, nil
}

func (m *memStore) FindByKey(_ context.Context, key models.RatingKey, _ bool) (*models.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.ratings[key]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memStore) Upsert(_ context.Context, rating *models.Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	if m.failUpsertAfter > 0 && m.upserts >= m.failUpsertAfter {
		return errStorage
	}
	now := time.Now()
	key := rating.Key()
	if existing, ok := m.ratings[key]; ok {
		existing.Score = rating.Score
		existing.SubmittedAt = now
		m.ratings[key] = existing
		*rating = existing
		return nil
	}
	rating.ID = m.id()
	rating.SubmittedAt = now
	rating.CreatedAt = now
	m.ratings[key] = *rating
	return nil
}

func (m *memStore) DeleteScoped(_ context.Context, candidateID, raterID uint, itemNumber string) ([]models.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	deleted := []models.Rating{}
	for k, r := range m.ratings {
		if k.CandidateID == candidateID && k.RaterID == raterID && (itemNumber == "" || k.ItemNumber == itemNumber) {
			deleted = append(deleted, r)
			delete(m.ratings, k)
		}
	}
	sort.Slice(deleted, func(i, j int) bool { return deleted[i].ID < deleted[j].ID })
	return deleted, nil
}

func (m *memStore) details(match func(models.Rating) bool) []models.RatingDetail {
	out := []models.RatingDetail{}
	for _, r := range m.ratings {
		if !match(r) {
			continue
		}
		d := models.RatingDetail{Rating: r, CompetencyName: m.competencies[r.CompetencyID].Name}
		if u, ok := m.users[r.RaterID]; ok {
			d.RaterName = u.Name
			d.RaterType = u.RaterType
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memStore) ListByCandidate(_ context.Context, candidateID uint, itemNumber string) ([]models.RatingDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.details(func(r models.Rating) bool {
		return r.CandidateID == candidateID && (itemNumber == "" || r.ItemNumber == itemNumber)
	}), nil
}

func (m *memStore) ListByRater(_ context.Context, raterID uint) ([]models.RatingDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.details(func(r models.Rating) bool { return r.RaterID == raterID }), nil
}

func (m *memStore) FindSlotHolder(_ context.Context, candidateID uint, itemNumber string, raterIDs []uint) (*repository.SlotHolder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[uint]int)
	for k := range m.ratings {
		if k.CandidateID != candidateID || k.ItemNumber != itemNumber {
			continue
		}
		for _, id := range raterIDs {
			if k.RaterID == id {
				counts[id]++
			}
		}
	}
	for _, id := range raterIDs {
		if counts[id] > 0 {
			return &repository.SlotHolder{RaterID: id, RatingCount: counts[id]}, nil
		}
	}
	return nil, nil
}

// RatingLogStore

func (m *memStore) Append(_ context.Context, log *models.RatingLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	log.ID = m.id()
	log.CreatedAt = time.Now()
	m.logs = append(m.logs, *log)
	return nil
}

func matchesLog(f models.RatingLogFilter, l models.RatingLog) bool {
	return (f.CandidateID == nil || *f.CandidateID == l.CandidateID) &&
		(f.RaterID == nil || *f.RaterID == l.RaterID) &&
		(f.ItemNumber == "" || f.ItemNumber == l.ItemNumber) &&
		(f.Action == "" || f.Action == l.Action) &&
		(f.BatchID == "" || f.BatchID == l.BatchID)
}

func (m *memStore) filtered(f models.RatingLogFilter) []models.RatingLog {
	out := []models.RatingLog{}
	for i := len(m.logs) - 1; i >= 0; i-- {
		if matchesLog(f, m.logs[i]) {
			out = append(out, m.logs[i])
		}
	}
	return out
}

func (m *memStore) List(_ context.Context, f models.RatingLogFilter, limit, skip int) ([]models.RatingLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.filtered(f)
	if skip >= len(all) {
		return []models.RatingLog{}, nil
	}
	all = all[skip:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memStore) Count(_ context.Context, f models.RatingLogFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.filtered(f)), nil
}

func (m *memStore) Stats(_ context.Context, f models.RatingLogFilter) (*models.RatingLogStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &models.RatingLogStats{ByAction: []models.RatingLogActionCount{}, ByRater: []models.RaterActivity{}}
	byAction := make(map[models.RatingAction]int)
	for _, l := range m.filtered(f) {
		stats.Total++
		byAction[l.Action]++
	}
	for _, a := range []models.RatingAction{models.RatingActionCreated, models.RatingActionDeleted, models.RatingActionUpdated} {
		if byAction[a] > 0 {
			stats.ByAction = append(stats.ByAction, models.RatingLogActionCount{Action: a, Count: byAction[a]})
		}
	}
	return stats, nil
}

func (m *memStore) ListByBatch(_ context.Context, batchID string) ([]models.RatingLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.RatingLog{}
	for _, l := range m.logs {
		if l.BatchID == batchID {
			out = append(out, l)
		}
	}
	return out, nil
}

// Transactor. Writes are applied directly; a failing fn leaves earlier
// transactions untouched, which is all the service relies on.
func (m *memStore) WithinTx(_ context.Context, fn func(repository.TxStores) error) error {
	return fn(repository.TxStores{Ratings: m, Logs: m})
}

// Reference stores are separate types because their method names overlap.

type memCandidates struct{ *memStore }

func (c memCandidates) GetByID(_ context.Context, id uint) (*models.Candidate, error) {
	v, ok := c.candidates[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (c memCandidates) ListByItemNumber(_ context.Context, itemNumber string, status models.CandidateStatus) ([]models.Candidate, error) {
	out := []models.Candidate{}
	for _, v := range c.candidates {
		if v.ItemNumber == itemNumber && v.Status == status {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memCompetencies struct{ *memStore }

func (c memCompetencies) GetByID(_ context.Context, id uint) (*models.Competency, error) {
	v, ok := c.competencies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (c memCompetencies) ListAll(_ context.Context) ([]models.Competency, error) {
	c.listAllCalls++
	out := make([]models.Competency, 0, len(c.competencies))
	for _, v := range c.competencies {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memVacancies struct{ *memStore }

func (v memVacancies) GetByID(_ context.Context, id uint) (*models.Vacancy, error) {
	x, ok := v.vacancies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &x, nil
}

func (v memVacancies) GetByItemNumber(_ context.Context, itemNumber string) (*models.Vacancy, error) {
	for _, x := range v.vacancies {
		if x.ItemNumber == itemNumber {
			return &x, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memUsers struct{ *memStore }

func (u memUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	x, ok := u.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &x, nil
}

func (u memUsers) ListByRaterType(_ context.Context, raterType string) ([]models.User, error) {
	var out []models.User
	for _, x := range u.users {
		if x.RaterTypeName() == raterType {
			out = append(out, x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
