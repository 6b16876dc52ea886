package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/truck-tco-calculator/internal/dto"
	"github.com/anyulbade/truck-tco-calculator/internal/model"
	"github.com/anyulbade/truck-tco-calculator/internal/tco"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MapError translates domain and database errors into a status and response body.
func MapError(err error) (int, any) {
	var verr *tco.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, dto.NewValidationErrorList(verr)
	}

	switch {
	case errors.Is(err, model.ErrNotFound), errors.Is(err, pgx.ErrNoRows):
		return http.StatusNotFound, ErrorResponse{Error: "calculation not found"}
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized, ErrorResponse{Error: "sign in required"}
	case errors.Is(err, tco.ErrUnknownKind):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return http.StatusConflict, ErrorResponse{
				Error:   "calculation already exists",
				Details: pgErr.Detail,
			}
		case "23503": // foreign_key_violation
			return http.StatusBadRequest, ErrorResponse{
				Error:   "unknown corridor",
				Details: pgErr.Detail,
			}
		case "23514": // check_violation
			return http.StatusBadRequest, ErrorResponse{
				Error:   "constraint violation",
				Details: pgErr.Detail,
			}
		}
	}

	log.Error().Err(err).Msg("unhandled error")
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			status, resp := MapError(err)
			c.JSON(status, resp)
		}
	}
}
