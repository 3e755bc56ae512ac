// SPDX-License-Identifier: MIT
package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/numlab/internal/config"
	"github.com/katalvlaran/numlab/internal/server"
)

type envelope struct {
	Success   bool            `json:"success"`
	Result    json.RawMessage `json:"result"`
	Error     string          `json:"error"`
	Steps     string          `json:"steps"`
	RequestID string          `json:"request_id"`
}

type ServerSuite struct {
	suite.Suite
	srv *server.Server
}

func (s *ServerSuite) SetupTest() {
	cfg := config.Default()
	cfg.Server.RateLimit = 0
	s.srv = server.New(cfg, zerolog.Nop())
}

func (s *ServerSuite) do(method, path, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.srv.Handler().ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func (s *ServerSuite) TestHealth() {
	rec, _ := s.do(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
	s.NotEmpty(rec.Header().Get(server.HeaderRequestID))
}

func (s *ServerSuite) TestRequestIDEchoed() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(server.HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	s.srv.Handler().ServeHTTP(rec, req)
	s.Equal("abc-123", rec.Header().Get(server.HeaderRequestID))
}

func (s *ServerSuite) TestDirect() {
	for _, m := range []string{"gauss", "jordan", "lu"} {
		rec, env := s.do(http.MethodPost, "/api/direct",
			`{"matrix":[[2,1],[1,3]],"vector":[3,5],"method":"`+m+`"}`)
		s.Require().Equal(http.StatusOK, rec.Code, m)
		s.True(env.Success)

		var out struct {
			Method   string    `json:"method"`
			Solution []float64 `json:"solution"`
			Steps    string    `json:"steps"`
			Perm     []int     `json:"perm"`
		}
		s.Require().NoError(json.Unmarshal(env.Result, &out))
		s.InDeltaSlice([]float64{0.8, 1.4}, out.Solution, 1e-12)
		s.NotEmpty(out.Steps)
		if m == "lu" {
			s.Len(out.Perm, 2)
		}
	}
}

func (s *ServerSuite) TestDirect_DefaultMethod() {
	_, env := s.do(http.MethodPost, "/api/direct", `{"matrix":[[4]],"vector":[2]}`)
	s.Require().True(env.Success)
	s.Contains(string(env.Result), `"method":"gauss"`)
}

func (s *ServerSuite) TestDirect_Singular() {
	rec, env := s.do(http.MethodPost, "/api/direct", `{"matrix":[[1,2],[2,4]],"vector":[3,6]}`)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.False(env.Success)
	s.Equal("the system is singular: no unique solution", env.Error)
	s.Contains(env.Steps, "ERROR: zero pivot found!")
	s.Equal(rec.Header().Get(server.HeaderRequestID), env.RequestID)
}

func (s *ServerSuite) TestDirect_Errors() {
	tests := []struct {
		name, body string
		status     int
		msg        string
	}{
		{"unknown method", `{"matrix":[[1]],"vector":[1],"method":"qr"}`, http.StatusBadRequest, "unknown method"},
		{"ragged", `{"matrix":[[1,2],[3]],"vector":[1,2]}`, http.StatusBadRequest, "inconsistent dimensions or too few points"},
		{"short rhs", `{"matrix":[[1,2],[3,4]],"vector":[1]}`, http.StatusBadRequest, "inconsistent dimensions or too few points"},
		{"missing vector", `{"matrix":[[1]]}`, http.StatusBadRequest, "invalid request"},
		{"bad json", `{"matrix":`, http.StatusBadRequest, "invalid JSON body"},
		{"unknown field", `{"matrix":[[1]],"vector":[1],"extra":1}`, http.StatusBadRequest, "invalid JSON body"},
	}
	for _, tc := range tests {
		rec, env := s.do(http.MethodPost, "/api/direct", tc.body)
		s.Equal(tc.status, rec.Code, tc.name)
		s.Equal(tc.msg, env.Error, tc.name)
	}
}

func (s *ServerSuite) TestIterative() {
	rec, env := s.do(http.MethodPost, "/api/iterative",
		`{"matrix":[[10,1],[1,10]],"vector":[11,11],"method":"jacobi","tolerance":1e-8}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	var out struct {
		Method     string    `json:"method"`
		Solution   []float64 `json:"solution"`
		Converged  bool      `json:"converged"`
		Iterations int       `json:"iterations"`
	}
	s.Require().NoError(json.Unmarshal(env.Result, &out))
	s.Equal("jacobi", out.Method)
	s.True(out.Converged)
	s.Positive(out.Iterations)
	s.InDeltaSlice([]float64{1, 1}, out.Solution, 1e-6)
}

func (s *ServerSuite) TestIterative_Errors() {
	rec, env := s.do(http.MethodPost, "/api/iterative", `{"matrix":[[0,1],[1,0]],"vector":[1,1]}`)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal("the matrix has a zero on its diagonal", env.Error)

	rec, env = s.do(http.MethodPost, "/api/iterative", `{"matrix":[[2]],"vector":[1],"max_iterations":1000000}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("invalid tolerance or iteration limit", env.Error)
}

func (s *ServerSuite) TestIterative_NotConvergedIsSuccess() {
	rec, env := s.do(http.MethodPost, "/api/iterative",
		`{"matrix":[[1,2],[3,1]],"vector":[1,1],"max_iterations":5}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Contains(string(env.Result), `"converged":false`)
}

func (s *ServerSuite) TestIterative_StepsBounded() {
	rec, env := s.do(http.MethodPost, "/api/iterative",
		`{"matrix":[[1,0.999],[0.999,1]],"vector":[1.999,1.999],"method":"jacobi","tolerance":1e-12,"max_iterations":1000}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Contains(string(env.Result), `"iterations":1000`)
	s.Contains(env.Steps, "--- Iteration 200 ---")
	s.NotContains(env.Steps, "--- Iteration 201 ---")
	s.Contains(env.Steps, "... sweeps after 200 are not recorded")
}

func (s *ServerSuite) TestIterative_Diverged() {
	rec, env := s.do(http.MethodPost, "/api/iterative", `{"matrix":[[1,2],[3,1]],"vector":[1,1]}`)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal("the iteration diverged", env.Error)
}

func (s *ServerSuite) TestRegression_Batch() {
	rec, env := s.do(http.MethodPost, "/api/regression", `{"x":"1,2,3,4","y":"-1,1,3,5"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	var out struct {
		Points int `json:"points"`
		Fits   map[string]struct {
			Coefficients []float64 `json:"coefficients"`
			SSE          float64   `json:"sse"`
			Error        string    `json:"error"`
		} `json:"fits"`
	}
	s.Require().NoError(json.Unmarshal(env.Result, &out))
	s.Equal(4, out.Points)
	s.Require().Len(out.Fits, 3)
	s.InDeltaSlice([]float64{-3, 2}, out.Fits["linear"].Coefficients, 1e-9)
	s.Empty(out.Fits["quadratic"].Error)
	s.Equal("values must be strictly positive for a logarithmic fit", out.Fits["exponential"].Error)
}

func (s *ServerSuite) TestRegression_SingleAndErrors() {
	_, env := s.do(http.MethodPost, "/api/regression", `{"x":"1,2,3","y":"2,4,8","method":"exponential"}`)
	s.Require().True(env.Success)
	s.Contains(string(env.Result), `"exponential"`)
	s.NotContains(string(env.Result), `"linear"`)

	rec, env := s.do(http.MethodPost, "/api/regression", `{"x":"1,a","y":"1,2"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("values must be comma-separated numbers", env.Error)

	rec, env = s.do(http.MethodPost, "/api/regression", `{"x":"1,2,3","y":"1,2"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("inconsistent dimensions or too few points", env.Error)
}

func (s *ServerSuite) TestIntegration() {
	rec, env := s.do(http.MethodPost, "/api/integration", `{"x":"0,1,2,3","y":"0,1,4,9"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	var out struct {
		Results map[string]struct {
			Area       *float64 `json:"area"`
			Applicable bool     `json:"applicable"`
			Mode       string   `json:"mode"`
		} `json:"results"`
	}
	s.Require().NoError(json.Unmarshal(env.Result, &out))
	s.Require().NotNil(out.Results["trapezoid"].Area)
	s.InDelta(9.5, *out.Results["trapezoid"].Area, 1e-12)
	s.Require().NotNil(out.Results["hybrid"].Area)
	s.InDelta(9.0+1.0/6, *out.Results["hybrid"].Area, 1e-12)
	s.Equal("simpson_trapezoid", out.Results["hybrid"].Mode)

	_, env = s.do(http.MethodPost, "/api/integration", `{"x":"0,1,2,3","y":"0,1,4,9","method":"simpson13"}`)
	s.Require().True(env.Success)
	s.Contains(string(env.Result), `"area":null`)
	s.Contains(string(env.Result), `"applicable":false`)
}

func (s *ServerSuite) TestGrowth() {
	rec, env := s.do(http.MethodPost, "/api/growth", `{"x":"0,1,2","y":"1,2,4","predict":"3"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	var out struct {
		DoublingTime float64 `json:"doubling_time"`
		Predictions  []struct {
			Value float64 `json:"value"`
		} `json:"predictions"`
	}
	s.Require().NoError(json.Unmarshal(env.Result, &out))
	s.InDelta(1.0, out.DoublingTime, 1e-9)
	s.Require().Len(out.Predictions, 1)
	s.InDelta(8.0, out.Predictions[0].Value, 1e-9)

	rec, env = s.do(http.MethodPost, "/api/growth", `{"x":"0,1","y":"1,0"}`)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal("values must be strictly positive for a logarithmic fit", env.Error)

	rec, env = s.do(http.MethodPost, "/api/growth", `{"x":"0,1","y":"1,1e300","predict":"10"}`)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal("the result is too large to represent", env.Error)
}

func (s *ServerSuite) TestBlend() {
	body := `{"demands":[167,190,243],"composition":[[52,30,18],[20,50,30],[25,20,55]]}`
	rec, env := s.do(http.MethodPost, "/api/blend", body)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Amounts   []float64 `json:"amounts"`
		Materials []string  `json:"materials"`
	}
	s.Require().NoError(json.Unmarshal(env.Result, &out))
	s.InDeltaSlice([]float64{100, 200, 300}, out.Amounts, 1e-9)
	s.Equal([]string{"sand", "fine gravel", "coarse gravel"}, out.Materials)

	rec, env = s.do(http.MethodPost, "/api/blend",
		`{"demands":[1,1,1],"composition":[[50,50,0],[50,50,0],[0,0,100]]}`)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.NotEmpty(env.Steps)

	rec, _ = s.do(http.MethodPost, "/api/blend", `{"demands":[1,1,1],"composition":[[150,0,0],[0,1,0],[0,0,1]]}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerSuite) TestBridge() {
	rec, env := s.do(http.MethodPost, "/api/bridge", `{"e":10,"r1":2,"r2":4,"r3":3,"r4":5,"r5":6}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Method    string  `json:"method"`
		I1        float64 `json:"i1"`
		Converged bool    `json:"converged"`
		System    string  `json:"system"`
	}
	s.Require().NoError(json.Unmarshal(env.Result, &out))
	s.Equal("gauss_seidel", out.Method)
	s.InDelta(5.0, out.I1, 1e-12)
	s.True(out.Converged)
	s.Contains(out.System, "Kirchhoff")

	rec, env = s.do(http.MethodPost, "/api/bridge", `{"e":10,"r1":2,"r2":4,"r3":0,"r4":5,"r5":6}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("invalid request", env.Error)
}

func (s *ServerSuite) TestRouting() {
	rec, env := s.do(http.MethodGet, "/api/nope", "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("endpoint not found", env.Error)

	for _, path := range []string{"/api/direct", "/api/iterative", "/api/bridge"} {
		rec, env = s.do(http.MethodGet, path, "")
		s.Equal(http.StatusMethodNotAllowed, rec.Code, path)
		s.Equal("method not allowed", env.Error, path)
	}

	rec, env = s.do(http.MethodPost, "/health", "")
	s.Equal(http.StatusMethodNotAllowed, rec.Code)
	s.Equal("method not allowed", env.Error)
}

func (s *ServerSuite) TestMetrics() {
	s.do(http.MethodPost, "/api/direct", `{"matrix":[[2,1],[1,3]],"vector":[3,5]}`)
	s.do(http.MethodPost, "/api/direct", `{"matrix":[[1,2],[2,4]],"vector":[3,6]}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.srv.Handler().ServeHTTP(rec, req)
	s.Require().Equal(http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	s.Require().NoError(err)
	s.Contains(string(body), `numlab_computations_total{engine="direct",method="gauss",outcome="ok"} 1`)
	s.Contains(string(body), `numlab_computations_total{engine="direct",method="gauss",outcome="error"} 1`)
	s.Contains(string(body), "numlab_computation_duration_seconds")
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func TestRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.RateLimit = 1
	cfg.Server.RateBurst = 1
	srv := server.New(cfg, zerolog.Nop())

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/direct",
			bytes.NewBufferString(`{"matrix":[[1]],"vector":[1]}`))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		return rec.Code
	}
	require.Equal(t, http.StatusOK, send())
	require.Equal(t, http.StatusTooManyRequests, send())

	// health is outside the limited subrouter
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBodyLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxBodyBytes = 16
	srv := server.New(cfg, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/direct",
		strings.NewReader(`{"matrix":[[1,2],[3,4]],"vector":[1,2]}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
