// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/numlab/internal/parse"
	"github.com/katalvlaran/numlab/internal/problems"
	"github.com/katalvlaran/numlab/iterative"
	"github.com/katalvlaran/numlab/linsolve"
	"github.com/katalvlaran/numlab/matrix"
	"github.com/katalvlaran/numlab/quadrature"
	"github.com/katalvlaran/numlab/regression"
)

// User-visible messages. Internal error text never reaches the client.
const (
	msgBadJSON        = "invalid JSON body"
	msgBadRequest     = "invalid request"
	msgBadNumbers     = "values must be comma-separated numbers"
	msgUnknownMethod  = "unknown method"
	msgDimensions     = "inconsistent dimensions or too few points"
	msgNotFinite      = "values must be finite numbers"
	msgSingular       = "the system is singular: no unique solution"
	msgNonPositive    = "values must be strictly positive for a logarithmic fit"
	msgZeroDiagonal   = "the matrix has a zero on its diagonal"
	msgBadOptions     = "invalid tolerance or iteration limit"
	msgDiverged       = "the iteration diverged"
	msgOverflow       = "the result is too large to represent"
	msgBadProblem     = "invalid problem parameters"
	msgTimeout        = "the computation timed out"
	msgRateLimited    = "too many requests"
	msgNotFound       = "endpoint not found"
	msgInternal       = "internal error"
	msgMethodNotFound = "method not allowed"
)

// classify maps an error to an HTTP status and a generic message.
func classify(err error) (int, string) {
	var verrs validator.ValidationErrors
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest, msgBadRequest
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, msgBadRequest
	case errors.Is(err, errBadJSON):
		return http.StatusBadRequest, msgBadJSON
	case errors.Is(err, parse.ErrSyntax), errors.Is(err, parse.ErrEmpty):
		return http.StatusBadRequest, msgBadNumbers
	case errors.Is(err, linsolve.ErrUnknownMethod),
		errors.Is(err, iterative.ErrUnknownMethod),
		errors.Is(err, regression.ErrUnknownKind),
		errors.Is(err, quadrature.ErrUnknownMethod):
		return http.StatusBadRequest, msgUnknownMethod
	case errors.Is(err, matrix.ErrSingular):
		return http.StatusUnprocessableEntity, msgSingular
	case errors.Is(err, matrix.ErrDimensionMismatch),
		errors.Is(err, matrix.ErrInvalidDimensions),
		errors.Is(err, matrix.ErrNilMatrix):
		return http.StatusBadRequest, msgDimensions
	case errors.Is(err, matrix.ErrNaNInf):
		return http.StatusBadRequest, msgNotFinite
	case errors.Is(err, regression.ErrNonPositive):
		return http.StatusUnprocessableEntity, msgNonPositive
	case errors.Is(err, iterative.ErrZeroDiagonal):
		return http.StatusUnprocessableEntity, msgZeroDiagonal
	case errors.Is(err, iterative.ErrBadTolerance), errors.Is(err, iterative.ErrBadMaxIterations):
		return http.StatusBadRequest, msgBadOptions
	case errors.Is(err, errDiverged):
		return http.StatusUnprocessableEntity, msgDiverged
	case errors.Is(err, errOverflow):
		return http.StatusUnprocessableEntity, msgOverflow
	case errors.Is(err, problems.ErrInvalidComposition), errors.Is(err, problems.ErrInvalidResistance):
		return http.StatusBadRequest, msgBadProblem
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, msgTimeout
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// errorResponse is the failure envelope. Steps carries a partial derivation
// when the engine produced one before failing.
type errorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Steps     string `json:"steps,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// successResponse is the success envelope.
type successResponse struct {
	Success bool `json:"success"`
	Result  any  `json:"result"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg, steps string) {
	writeJSON(w, status, errorResponse{
		Error:     msg,
		Steps:     steps,
		RequestID: w.Header().Get(HeaderRequestID),
	})
}

func writeResult(w http.ResponseWriter, result any) {
	writeJSON(w, http.StatusOK, successResponse{Success: true, Result: result})
}

// fail logs err with the request logger and writes the mapped response.
func fail(w http.ResponseWriter, r *http.Request, err error, steps string) {
	status, msg := classify(err)
	ev := zerolog.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		ev = zerolog.Ctx(r.Context()).Error()
	}
	ev.Err(err).Int("status", status).Msg("computation failed")
	writeError(w, status, msg, steps)
}
