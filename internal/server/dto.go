// SPDX-License-Identifier: MIT

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var errBadJSON = errors.New("server: malformed request body")

// Request bodies. Validation tags are checked by go-playground/validator
// before any engine runs; numeric semantics are left to the engines.

type directRequest struct {
	Matrix [][]float64 `json:"matrix" validate:"required,min=1,max=64,dive,min=1,max=64"`
	Vector []float64   `json:"vector" validate:"required,min=1,max=64"`
	Method string      `json:"method" validate:"omitempty,max=32"`
}

type iterativeRequest struct {
	Matrix        [][]float64 `json:"matrix" validate:"required,min=1,max=256,dive,min=1,max=256"`
	Vector        []float64   `json:"vector" validate:"required,min=1,max=256"`
	Method        string      `json:"method" validate:"omitempty,max=32"`
	Tolerance     *float64    `json:"tolerance" validate:"omitempty,gt=0"`
	Initial       []float64   `json:"initial" validate:"omitempty,max=256"`
	MaxIterations *int        `json:"max_iterations" validate:"omitempty,gte=1"`
}

type samplesRequest struct {
	X      string `json:"x" validate:"required,max=65536"`
	Y      string `json:"y" validate:"required,max=65536"`
	Method string `json:"method" validate:"omitempty,max=32"`
}

type growthRequest struct {
	X       string `json:"x" validate:"required,max=65536"`
	Y       string `json:"y" validate:"required,max=65536"`
	Predict string `json:"predict" validate:"omitempty,max=65536"`
}

type blendRequest struct {
	Demands     [3]float64    `json:"demands" validate:"dive,gte=0"`
	Composition [3][3]float64 `json:"composition" validate:"dive,dive,gte=0,lte=100"`
	Method      string        `json:"method" validate:"omitempty,max=32"`
}

type bridgeRequest struct {
	E             float64   `json:"e"`
	R1            float64   `json:"r1" validate:"gt=0"`
	R2            float64   `json:"r2" validate:"gt=0"`
	R3            float64   `json:"r3" validate:"gt=0"`
	R4            float64   `json:"r4" validate:"gt=0"`
	R5            float64   `json:"r5" validate:"gt=0"`
	Method        string    `json:"method" validate:"omitempty,max=32"`
	Tolerance     *float64  `json:"tolerance" validate:"omitempty,gt=0"`
	Initial       []float64 `json:"initial" validate:"omitempty,len=3"`
	MaxIterations *int      `json:"max_iterations" validate:"omitempty,gte=1"`
}

// decode reads a JSON body into dst and validates it.
func (s *Server) decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", errBadJSON, err)
	}

	return s.validate.Struct(dst)
}
