package dto

import (
	"github.com/anyulbade/truck-tco-calculator/internal/model"
	"github.com/anyulbade/truck-tco-calculator/internal/tco"
)

type CorridorsResponse struct {
	Corridors []tco.CorridorProfile `json:"corridors"`
}

type CalculateResponse struct {
	Inputs  tco.InputSet        `json:"inputs"`
	Results tco.AggregateResult `json:"results"`
}

type SaveResponse struct {
	Success  bool   `json:"success"`
	ID       string `json:"id,omitempty"`
	Location string `json:"location,omitempty"`
	Degraded bool   `json:"degraded"`
	Message  string `json:"message"`
}

type HistoryResponse struct {
	Authenticated bool                     `json:"authenticated"`
	Account       []model.SavedCalculation `json:"account"`
	Local         []model.SavedCalculation `json:"local"`
	Pagination    Pagination               `json:"pagination"`
}

type SessionResponse struct {
	Authenticated bool        `json:"authenticated"`
	User          *model.User `json:"user"`
	LoginURL      string      `json:"login_url"`
	SignupURL     string      `json:"signup_url"`
	LogoutURL     string      `json:"logout_url"`
}

type ValidationError struct {
	Index   int    `json:"index,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorListResponse struct {
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func NewValidationErrorList(verr *tco.ValidationError) ErrorListResponse {
	errs := make([]ValidationError, len(verr.Errors))
	for i, fe := range verr.Errors {
		errs[i] = ValidationError{Field: fe.Field, Message: fe.Message}
	}
	return ErrorListResponse{Error: "validation failed", Errors: errs}
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
