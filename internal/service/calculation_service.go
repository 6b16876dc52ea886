package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/anyulbade/truck-tco-calculator/internal/model"
	"github.com/anyulbade/truck-tco-calculator/internal/tco"
)

const (
	LocationAccount = "account"
	LocationLocal   = "local"

	msgSavedAccount  = "Calculation saved to your account"
	msgSavedDegraded = "Saved locally (server unavailable)"
	msgSavedGuest    = "Saved locally. Sign in to save to your account."
	msgSaveFailed    = "Failed to save calculation"
)

type CalculationService struct {
	engine       *tco.Engine
	remote       RemoteStore
	local        LocalStore
	horizonYears int
	now          func() time.Time
}

func NewCalculationService(engine *tco.Engine, remote RemoteStore, local LocalStore, horizonYears int) *CalculationService {
	return &CalculationService{
		engine:       engine,
		remote:       remote,
		local:        local,
		horizonYears: horizonYears,
		now:          time.Now,
	}
}

func (s *CalculationService) Defaults(corridorID string) tco.InputSet {
	in := tco.DefaultInputs(corridorID)
	in.EmissionsHorizonYears = s.horizonYears
	return in
}

// Calculate overlays the partial inputs document on the corridor defaults and runs the
// full model. An empty corridor id falls back to the corridor named inside the document.
func (s *CalculationService) Calculate(corridorID string, partial []byte) (tco.InputSet, tco.AggregateResult, error) {
	in, err := s.mergeInputs(corridorID, partial)
	if err != nil {
		return tco.InputSet{}, tco.AggregateResult{}, err
	}
	res, err := s.engine.ComputeResults(in)
	if err != nil {
		return tco.InputSet{}, tco.AggregateResult{}, err
	}
	return in, res, nil
}

func (s *CalculationService) mergeInputs(corridorID string, partial []byte) (tco.InputSet, error) {
	if corridorID == "" {
		corridorID = corridorOf(partial)
	}
	in, err := tco.MergeInputs(s.Defaults(corridorID), partial)
	if err != nil {
		return tco.InputSet{}, &tco.ValidationError{Errors: []tco.FieldError{{Field: "inputs", Message: err.Error()}}}
	}
	return in, nil
}

func corridorOf(doc []byte) string {
	decoded, err := tco.DecodeDocument(doc)
	if err != nil || decoded == nil {
		return ""
	}
	var parsed struct {
		Corridor string `json:"corridor"`
	}
	if json.Unmarshal(decoded, &parsed) != nil {
		return ""
	}
	return parsed.Corridor
}

type SaveRequest struct {
	Name     string
	Notes    string
	Corridor string
	Inputs   json.RawMessage
	Results  json.RawMessage
}

type SaveOutcome struct {
	Success  bool                   `json:"success"`
	ID       string                 `json:"id,omitempty"`
	Location string                 `json:"location,omitempty"`
	Degraded bool                   `json:"degraded"`
	Message  string                 `json:"message"`
	Record   model.SavedCalculation `json:"-"`
}

// Save writes to the account store when the session is authenticated and falls back to
// the local store when that write fails. Persistence failures are reported in the
// outcome; the returned error is reserved for requests that cannot be calculated.
func (s *CalculationService) Save(ctx context.Context, sess model.Session, req SaveRequest) (SaveOutcome, error) {
	rec, err := s.buildRecord(req)
	if err != nil {
		return SaveOutcome{}, err
	}

	if sess.Authenticated {
		id, err := s.remote.Save(ctx, sess, rec)
		if err == nil {
			if id != "" {
				rec.ID = model.RecordID(id)
			}
			return SaveOutcome{
				Success:  true,
				ID:       string(rec.ID),
				Location: LocationAccount,
				Message:  msgSavedAccount,
				Record:   rec,
			}, nil
		}
		log.Warn().Err(err).Str("calculation_id", string(rec.ID)).Msg("account save failed, saving locally")

		if err := s.local.Prepend(ctx, sess.ClientID, rec); err != nil {
			log.Error().Err(err).Str("calculation_id", string(rec.ID)).Msg("local save failed")
			return SaveOutcome{Message: msgSaveFailed}, nil
		}
		return SaveOutcome{
			Success:  true,
			ID:       string(rec.ID),
			Location: LocationLocal,
			Degraded: true,
			Message:  msgSavedDegraded,
			Record:   rec,
		}, nil
	}

	if err := s.local.Prepend(ctx, sess.ClientID, rec); err != nil {
		log.Error().Err(err).Str("calculation_id", string(rec.ID)).Msg("local save failed")
		return SaveOutcome{Message: msgSaveFailed}, nil
	}
	return SaveOutcome{
		Success:  true,
		ID:       string(rec.ID),
		Location: LocationLocal,
		Message:  msgSavedGuest,
		Record:   rec,
	}, nil
}

func (s *CalculationService) buildRecord(req SaveRequest) (model.SavedCalculation, error) {
	inputs, err := tco.DecodeDocument(req.Inputs)
	if err != nil {
		return model.SavedCalculation{}, &tco.ValidationError{Errors: []tco.FieldError{{Field: "inputs", Message: err.Error()}}}
	}
	results, err := tco.DecodeDocument(req.Results)
	if err != nil {
		return model.SavedCalculation{}, &tco.ValidationError{Errors: []tco.FieldError{{Field: "results", Message: err.Error()}}}
	}

	corridor := req.Corridor
	if corridor == "" {
		corridor = corridorOf(inputs)
	}

	if !tco.HasCanonicalShape(results) {
		in, res, err := s.Calculate(corridor, inputs)
		if err != nil {
			return model.SavedCalculation{}, err
		}
		if inputs, err = json.Marshal(in); err != nil {
			return model.SavedCalculation{}, err
		}
		if results, err = json.Marshal(res); err != nil {
			return model.SavedCalculation{}, err
		}
		corridor = in.Corridor
	}

	return model.SavedCalculation{
		ID:        model.RecordID(ulid.Make().String()),
		Name:      req.Name,
		Notes:     req.Notes,
		Corridor:  corridor,
		Inputs:    inputs,
		Results:   results,
		Timestamp: s.now().UTC(),
	}, nil
}

type History struct {
	Authenticated bool                     `json:"authenticated"`
	Account       []model.SavedCalculation `json:"account"`
	Local         []model.SavedCalculation `json:"local"`
}

// History loads the account and local lists side by side. The account list is capped
// at limit; the local list is returned whole for the caller to paginate. A failing
// store contributes an empty list.
func (s *CalculationService) History(ctx context.Context, sess model.Session, limit int) (History, error) {
	out := History{
		Authenticated: sess.Authenticated,
		Account:       []model.SavedCalculation{},
		Local:         []model.SavedCalculation{},
	}

	g, gctx := errgroup.WithContext(ctx)

	if sess.Authenticated {
		g.Go(func() error {
			list, err := s.remote.List(gctx, sess, limit)
			if err != nil {
				log.Warn().Err(err).Msg("account history unavailable")
				return nil
			}
			out.Account = list
			return nil
		})
	}

	if sess.ClientID != "" {
		g.Go(func() error {
			list, err := s.local.List(gctx, sess.ClientID, 0)
			if err != nil {
				log.Warn().Err(err).Msg("local history unavailable")
				return nil
			}
			out.Local = list
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return History{}, err
	}
	return out, nil
}

type LoadedCalculation struct {
	Record     model.SavedCalculation `json:"record"`
	Inputs     tco.InputSet           `json:"inputs"`
	Results    json.RawMessage        `json:"results"`
	Recomputed bool                   `json:"recomputed"`
}

// Load rehydrates a stored record. Inputs are completed from the corridor defaults and
// results whose shape predates the current model are recomputed from those inputs.
func (s *CalculationService) Load(rec model.SavedCalculation) (LoadedCalculation, error) {
	inputsDoc, err := tco.DecodeDocument(rec.Inputs)
	if err != nil {
		return LoadedCalculation{}, &tco.ValidationError{Errors: []tco.FieldError{{Field: "inputs", Message: err.Error()}}}
	}
	in, err := s.mergeInputs(rec.Corridor, inputsDoc)
	if err != nil {
		return LoadedCalculation{}, err
	}

	rec.Inputs = inputsDoc
	out := LoadedCalculation{Inputs: in}

	resultsDoc, err := tco.DecodeDocument(rec.Results)
	if err == nil && tco.HasCanonicalShape(resultsDoc) {
		out.Results = resultsDoc
	} else {
		res, err := s.engine.ComputeResults(in)
		if err != nil {
			return LoadedCalculation{}, err
		}
		if out.Results, err = json.Marshal(res); err != nil {
			return LoadedCalculation{}, err
		}
		out.Recomputed = true
		log.Debug().Str("calculation_id", string(rec.ID)).Msg("stored results recomputed")
	}

	rec.Results = out.Results
	if rec.Corridor == "" {
		rec.Corridor = in.Corridor
	}
	out.Record = rec
	return out, nil
}

// Delete removes a record from the account store, or from the client's local list for
// guests. Authenticated users also reach their local list, which holds saves made while
// the account store was unavailable.
func (s *CalculationService) Delete(ctx context.Context, sess model.Session, id string) error {
	if !sess.Authenticated {
		return s.local.Delete(ctx, sess.ClientID, id)
	}
	err := s.remote.Delete(ctx, sess, id)
	if err == nil {
		return nil
	}
	return localFallback(err, s.local.Delete(ctx, sess.ClientID, id), id)
}

func (s *CalculationService) UpdateNotes(ctx context.Context, sess model.Session, id, notes string) error {
	if !sess.Authenticated {
		return s.local.UpdateNotes(ctx, sess.ClientID, id, notes)
	}
	err := s.remote.UpdateNotes(ctx, sess, id, notes)
	if err == nil {
		return nil
	}
	return localFallback(err, s.local.UpdateNotes(ctx, sess.ClientID, id, notes), id)
}

// localFallback settles an account-store failure against the local retry: the local
// outcome wins when it succeeded, otherwise the account error is reported.
func localFallback(remoteErr, localErr error, id string) error {
	if localErr == nil {
		log.Debug().Err(remoteErr).Str("calculation_id", id).Msg("record found in local store")
		return nil
	}
	return remoteErr
}
