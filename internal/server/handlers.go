// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/numlab/growth"
	"github.com/katalvlaran/numlab/internal/parse"
	"github.com/katalvlaran/numlab/internal/problems"
	"github.com/katalvlaran/numlab/iterative"
	"github.com/katalvlaran/numlab/linsolve"
	"github.com/katalvlaran/numlab/matrix"
	"github.com/katalvlaran/numlab/quadrature"
	"github.com/katalvlaran/numlab/regression"
)

// Engine label values.
const (
	engineDirect      = "direct"
	engineIterative   = "iterative"
	engineRegression  = "regression"
	engineIntegration = "integration"
	engineGrowth      = "growth"
	engineBlend       = "blend"
	engineBridge      = "bridge"
)

var (
	errDiverged = errors.New("server: iteration produced non-finite values")
	errOverflow = errors.New("server: result overflows float64")
)

// --- direct -------------------------------------------------------------

type directView struct {
	Method   string      `json:"method"`
	Solution []float64   `json:"solution"`
	Residual float64     `json:"residual"`
	System   string      `json:"system"`
	Steps    string      `json:"steps"`
	L        [][]float64 `json:"l,omitempty"`
	U        [][]float64 `json:"u,omitempty"`
	Perm     []int       `json:"perm,omitempty"`
}

func (s *Server) handleDirect(w http.ResponseWriter, r *http.Request) {
	var req directRequest
	if err := s.decode(r, &req); err != nil {
		fail(w, r, err, "")
		return
	}
	method, err := linsolve.ParseMethod(orDefault(req.Method, "gauss"))
	if err != nil {
		fail(w, r, err, "")
		return
	}

	start := time.Now()
	res, err := linsolve.Solve(req.Matrix, req.Vector, method)
	if err != nil {
		s.metrics.observe(engineDirect, method.String(), outcomeError, start)
		fail(w, r, err, linsolveSteps(res))
		return
	}
	s.metrics.observe(engineDirect, method.String(), outcomeOK, start)

	view := directView{
		Method:   method.String(),
		Solution: res.X,
		Residual: res.Residual,
		System:   linsolve.FormatSystem(req.Matrix, req.Vector),
		Steps:    res.Trace.String(),
		Perm:     res.Perm,
	}
	if res.L != nil {
		view.L, view.U = res.L.ToRows(), res.U.ToRows()
	}
	writeResult(w, view)
}

func linsolveSteps(res *linsolve.Result) string {
	if res == nil {
		return ""
	}
	return res.Trace.String()
}

// --- iterative ----------------------------------------------------------

type iterativeView struct {
	Method       string    `json:"method"`
	Solution     []float64 `json:"solution"`
	Iterations   int       `json:"iterations"`
	Converged    bool      `json:"converged"`
	MaxRelChange float64   `json:"max_relative_change"`
	System       string    `json:"system"`
	Steps        string    `json:"steps"`
}

// iterOptions fills request overrides over the configured defaults.
func (s *Server) iterOptions(ctx context.Context, tol *float64, maxIter *int, x0 []float64) (iterative.Options, error) {
	opts := iterative.Options{
		Tolerance:     s.cfg.Solver.Tolerance,
		MaxIterations: s.cfg.Solver.MaxIterations,
		Initial:       x0,
		TraceSweeps:   s.cfg.Solver.TraceSweeps,
		Ctx:           ctx,
	}
	if tol != nil {
		opts.Tolerance = *tol
	}
	if maxIter != nil {
		if *maxIter > s.cfg.Solver.IterationCeiling {
			return opts, fmt.Errorf("%w: %d exceeds ceiling %d",
				iterative.ErrBadMaxIterations, *maxIter, s.cfg.Solver.IterationCeiling)
		}
		opts.MaxIterations = *maxIter
	}

	return opts, nil
}

// iterate runs one iterative solve with metrics and the divergence guard.
func (s *Server) iterate(engine string, m iterative.Method, run func() (*iterative.Result, error)) (*iterative.Result, error) {
	start := time.Now()
	res, err := run()
	if err == nil && (matrix.ValidateFinite(res.X) != nil || math.IsInf(res.MaxRelChange, 0) || math.IsNaN(res.MaxRelChange)) {
		err = errDiverged
	}
	if err != nil {
		s.metrics.observe(engine, m.String(), outcomeError, start)
		return res, err
	}

	outcome := outcomeOK
	if !res.Converged {
		outcome = outcomeSoftFail
	}
	s.metrics.observe(engine, m.String(), outcome, start)
	s.metrics.observeIterations(m.String(), res.Iterations)

	return res, nil
}

func (s *Server) handleIterative(w http.ResponseWriter, r *http.Request) {
	var req iterativeRequest
	if err := s.decode(r, &req); err != nil {
		fail(w, r, err, "")
		return
	}
	method, err := iterative.ParseMethod(orDefault(req.Method, "gauss_seidel"))
	if err != nil {
		fail(w, r, err, "")
		return
	}
	opts, err := s.iterOptions(r.Context(), req.Tolerance, req.MaxIterations, req.Initial)
	if err != nil {
		fail(w, r, err, "")
		return
	}

	res, err := s.iterate(engineIterative, method, func() (*iterative.Result, error) {
		return iterative.Solve(req.Matrix, req.Vector, method, opts)
	})
	if err != nil {
		fail(w, r, err, iterativeSteps(res))
		return
	}

	writeResult(w, iterativeView{
		Method:       method.String(),
		Solution:     res.X,
		Iterations:   res.Iterations,
		Converged:    res.Converged,
		MaxRelChange: res.MaxRelChange,
		System:       linsolve.FormatSystem(req.Matrix, req.Vector),
		Steps:        res.Trace.String(),
	})
}

func iterativeSteps(res *iterative.Result) string {
	if res == nil {
		return ""
	}
	return res.Trace.String()
}

// --- regression ---------------------------------------------------------

type fitView struct {
	Coefficients []float64 `json:"coefficients,omitempty"`
	SSE          float64   `json:"sse"`
	Equation     string    `json:"equation,omitempty"`
	Steps        string    `json:"steps,omitempty"`
	Error        string    `json:"error,omitempty"`
}

func (s *Server) handleRegression(w http.ResponseWriter, r *http.Request) {
	var req samplesRequest
	if err := s.decode(r, &req); err != nil {
		fail(w, r, err, "")
		return
	}
	x, y, err := parse.Pair(req.X, req.Y)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	kinds := regression.Kinds
	if req.Method != "" {
		k, err := regression.ParseKind(req.Method)
		if err != nil {
			fail(w, r, err, "")
			return
		}
		kinds = []regression.Kind{k}
	}

	views := make([]fitView, len(kinds))
	g, ctx := errgroup.WithContext(r.Context())
	for i, k := range kinds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			res, err := regression.Fit(x, y, k)
			if err != nil {
				s.metrics.observe(engineRegression, k.String(), outcomeError, start)
				_, msg := classify(err)
				views[i] = fitView{Error: msg}
				return nil
			}
			s.metrics.observe(engineRegression, k.String(), outcomeOK, start)
			views[i] = fitView{
				Coefficients: res.Coefficients,
				SSE:          res.SSE,
				Equation:     res.Equation,
				Steps:        res.Trace.String(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fail(w, r, err, "")
		return
	}

	out := make(map[string]fitView, len(kinds))
	for i, k := range kinds {
		out[k.String()] = views[i]
	}
	writeResult(w, map[string]any{"points": len(x), "fits": out})
}

// --- integration --------------------------------------------------------

type integrationView struct {
	Area          *float64 `json:"area"`
	Applicable    bool     `json:"applicable"`
	Intervals     int      `json:"intervals"`
	Mode          string   `json:"mode,omitempty"`
	Uniform       bool     `json:"uniform"`
	Step          float64  `json:"step,omitempty"`
	SimpsonArea   float64  `json:"simpson_area,omitempty"`
	TrapezoidArea float64  `json:"trapezoid_area,omitempty"`
	Steps         string   `json:"steps,omitempty"`
	Error         string   `json:"error,omitempty"`
}

func (s *Server) handleIntegration(w http.ResponseWriter, r *http.Request) {
	var req samplesRequest
	if err := s.decode(r, &req); err != nil {
		fail(w, r, err, "")
		return
	}
	x, y, err := parse.Pair(req.X, req.Y)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	methods := []quadrature.Method{quadrature.Trapezoid, quadrature.Hybrid}
	if req.Method != "" {
		m, err := quadrature.ParseMethod(req.Method)
		if err != nil {
			fail(w, r, err, "")
			return
		}
		methods = []quadrature.Method{m}
	}

	views := make([]integrationView, len(methods))
	g, ctx := errgroup.WithContext(r.Context())
	for i, m := range methods {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			res, err := quadrature.Integrate(x, y, m)
			if err != nil {
				s.metrics.observe(engineIntegration, m.String(), outcomeError, start)
				_, msg := classify(err)
				views[i] = integrationView{Error: msg}
				return nil
			}
			outcome := outcomeOK
			v := integrationView{
				Applicable:    res.Applicable,
				Intervals:     res.Intervals,
				Mode:          string(res.Mode),
				Uniform:       res.Uniform,
				Step:          res.Step,
				SimpsonArea:   res.SimpsonArea,
				TrapezoidArea: res.TrapezoidArea,
				Steps:         res.Trace.String(),
			}
			if res.Applicable {
				area := res.Area
				v.Area = &area
			} else {
				outcome = outcomeSoftFail
			}
			s.metrics.observe(engineIntegration, m.String(), outcome, start)
			views[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fail(w, r, err, "")
		return
	}

	out := make(map[string]integrationView, len(methods))
	for i, m := range methods {
		out[m.String()] = views[i]
	}
	writeResult(w, map[string]any{"points": len(x), "results": out})
}

// --- growth -------------------------------------------------------------

type predictionView struct {
	X        float64 `json:"x"`
	LogValue float64 `json:"log_value"`
	Value    float64 `json:"value"`
}

type growthView struct {
	A            float64          `json:"a"`
	B            float64          `json:"b"`
	SSE          float64          `json:"sse"`
	Equation     string           `json:"equation"`
	DoublingTime float64          `json:"doubling_time"`
	Predictions  []predictionView `json:"predictions"`
	Steps        string           `json:"steps"`
}

func (s *Server) handleGrowth(w http.ResponseWriter, r *http.Request) {
	var req growthRequest
	if err := s.decode(r, &req); err != nil {
		fail(w, r, err, "")
		return
	}
	x, y, err := parse.Pair(req.X, req.Y)
	if err != nil {
		fail(w, r, err, "")
		return
	}
	var at []float64
	if req.Predict != "" {
		if at, err = parse.Floats(req.Predict); err != nil {
			fail(w, r, err, "")
			return
		}
	}

	start := time.Now()
	res, err := growth.Fit(x, y, at)
	if err == nil {
		for _, p := range res.Predictions {
			if math.IsInf(p.Value, 0) || math.IsNaN(p.Value) {
				err = errOverflow
				break
			}
		}
	}
	if err != nil {
		s.metrics.observe(engineGrowth, "log10_linear", outcomeError, start)
		fail(w, r, err, "")
		return
	}
	s.metrics.observe(engineGrowth, "log10_linear", outcomeOK, start)

	view := growthView{
		A:            res.A,
		B:            res.B,
		SSE:          res.SSE,
		Equation:     res.Equation,
		DoublingTime: res.DoublingTime,
		Predictions:  make([]predictionView, len(res.Predictions)),
		Steps:        res.Trace.String(),
	}
	for i, p := range res.Predictions {
		view.Predictions[i] = predictionView(p)
	}
	writeResult(w, view)
}

// --- applications -------------------------------------------------------

type blendView struct {
	Method    string     `json:"method"`
	Amounts   [3]float64 `json:"amounts"`
	Materials [3]string  `json:"materials"`
	Residual  float64    `json:"residual"`
	System    string     `json:"system"`
	Steps     string     `json:"steps"`
}

func (s *Server) handleBlend(w http.ResponseWriter, r *http.Request) {
	var req blendRequest
	if err := s.decode(r, &req); err != nil {
		fail(w, r, err, "")
		return
	}
	method, err := linsolve.ParseMethod(orDefault(req.Method, "gauss"))
	if err != nil {
		fail(w, r, err, "")
		return
	}

	start := time.Now()
	res, err := problems.Blend{Demands: req.Demands, Composition: req.Composition}.Solve(method)
	if err != nil {
		s.metrics.observe(engineBlend, method.String(), outcomeError, start)
		steps := ""
		if res != nil {
			steps = linsolveSteps(res.Solve)
		}
		fail(w, r, err, steps)
		return
	}
	s.metrics.observe(engineBlend, method.String(), outcomeOK, start)

	writeResult(w, blendView{
		Method:    method.String(),
		Amounts:   res.Amounts,
		Materials: problems.Materials,
		Residual:  res.Solve.Residual,
		System:    res.System,
		Steps:     res.Solve.Trace.String(),
	})
}

type bridgeView struct {
	Method     string  `json:"method"`
	I1         float64 `json:"i1"`
	I2         float64 `json:"i2"`
	I3         float64 `json:"i3"`
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
	System     string  `json:"system"`
	Steps      string  `json:"steps"`
}

func (s *Server) handleBridge(w http.ResponseWriter, r *http.Request) {
	var req bridgeRequest
	if err := s.decode(r, &req); err != nil {
		fail(w, r, err, "")
		return
	}
	method, err := iterative.ParseMethod(orDefault(req.Method, "gauss_seidel"))
	if err != nil {
		fail(w, r, err, "")
		return
	}
	opts, err := s.iterOptions(r.Context(), req.Tolerance, req.MaxIterations, req.Initial)
	if err != nil {
		fail(w, r, err, "")
		return
	}

	bridge := problems.Bridge{E: req.E, R1: req.R1, R2: req.R2, R3: req.R3, R4: req.R4, R5: req.R5}
	var out *problems.BridgeResult
	_, err = s.iterate(engineBridge, method, func() (*iterative.Result, error) {
		var err error
		if out, err = bridge.Solve(method, opts); err != nil {
			return nil, err
		}
		return out.Solve, nil
	})
	if err != nil {
		fail(w, r, err, "")
		return
	}

	writeResult(w, bridgeView{
		Method:     method.String(),
		I1:         out.I1,
		I2:         out.I2,
		I3:         out.I3,
		Iterations: out.Solve.Iterations,
		Converged:  out.Solve.Converged,
		System:     out.System,
		Steps:      out.Solve.Trace.String(),
	})
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
