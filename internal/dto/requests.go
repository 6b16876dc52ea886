package dto

import (
	"encoding/json"
	"time"

	"github.com/anyulbade/truck-tco-calculator/internal/model"
)

type CalculateRequest struct {
	Corridor string          `json:"corridor"`
	Inputs   json.RawMessage `json:"inputs"`
}

type SaveCalculationRequest struct {
	Name     string          `json:"name" binding:"required,max=200"`
	Notes    string          `json:"notes" binding:"max=5000"`
	Corridor string          `json:"corridor"`
	Inputs   json.RawMessage `json:"inputs" binding:"required"`
	Results  json.RawMessage `json:"results"`
}

type UpdateNotesRequest struct {
	Notes string `json:"notes" binding:"max=5000"`
}

// LoadCalculationRequest accepts a record as it was stored by either backend.
type LoadCalculationRequest struct {
	ID        model.RecordID  `json:"id"`
	Name      string          `json:"name"`
	Notes     string          `json:"notes"`
	Corridor  string          `json:"corridor"`
	Inputs    json.RawMessage `json:"inputs"`
	Results   json.RawMessage `json:"results"`
	Timestamp *time.Time      `json:"timestamp"`
}

func (r LoadCalculationRequest) Record() model.SavedCalculation {
	rec := model.SavedCalculation{
		ID:       r.ID,
		Name:     r.Name,
		Notes:    r.Notes,
		Corridor: r.Corridor,
		Inputs:   r.Inputs,
		Results:  r.Results,
	}
	if r.Timestamp != nil {
		rec.Timestamp = *r.Timestamp
	}
	return rec
}
