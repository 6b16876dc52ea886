package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/anyulbade/truck-tco-calculator/internal/model"
	"github.com/anyulbade/truck-tco-calculator/internal/tco"
)

var errStoreDown = errors.New("store unavailable")

type fakeRemote struct {
	mu      sync.Mutex
	saved   []model.SavedCalculation
	list    []model.SavedCalculation
	deleted []string
	notes   map[string]string
	id      string
	err     error
}

func (f *fakeRemote) Save(_ context.Context, _ model.Session, rec model.SavedCalculation) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, rec)
	return f.id, nil
}

func (f *fakeRemote) List(_ context.Context, _ model.Session, _ int) ([]model.SavedCalculation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeRemote) Delete(_ context.Context, _ model.Session, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRemote) UpdateNotes(_ context.Context, _ model.Session, id, notes string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.notes == nil {
		f.notes = map[string]string{}
	}
	f.notes[id] = notes
	return nil
}

const testClient = "01J0000000000000000000TEST"

type fakeLocal struct {
	mu      sync.Mutex
	records map[string][]model.SavedCalculation
	err     error
}

func newFakeLocal(recs ...model.SavedCalculation) *fakeLocal {
	return &fakeLocal{records: map[string][]model.SavedCalculation{testClient: recs}}
}

func (f *fakeLocal) of(clientID string) []model.SavedCalculation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[clientID]
}

func (f *fakeLocal) Prepend(_ context.Context, clientID string, rec model.SavedCalculation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if clientID == "" {
		return model.ErrNoClient
	}
	if f.records == nil {
		f.records = map[string][]model.SavedCalculation{}
	}
	f.records[clientID] = append([]model.SavedCalculation{rec}, f.records[clientID]...)
	return nil
}

func (f *fakeLocal) List(_ context.Context, clientID string, limit int) ([]model.SavedCalculation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	recs := f.records[clientID]
	if limit > 0 && limit < len(recs) {
		return recs[:limit], nil
	}
	return recs, nil
}

func (f *fakeLocal) Delete(_ context.Context, clientID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	recs := f.records[clientID]
	for i, r := range recs {
		if string(r.ID) == id {
			f.records[clientID] = append(recs[:i:i], recs[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

func (f *fakeLocal) UpdateNotes(_ context.Context, clientID, id, notes string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	recs := f.records[clientID]
	for i := range recs {
		if string(recs[i].ID) == id {
			recs[i].Notes = notes
			return nil
		}
	}
	return model.ErrNotFound
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func newTestService(remote *fakeRemote, local *fakeLocal) *CalculationService {
	svc := NewCalculationService(tco.NewEngine(fixedNow), remote, local, 0)
	svc.now = fixedNow
	return svc
}

func authedSession() model.Session {
	return model.Session{Authenticated: true, User: &model.User{ID: 7, FirstName: "Amina"}, Cookie: "MoodleSession=x", ClientID: testClient}
}

func guestSession() model.Session {
	return model.Session{ClientID: testClient}
}
