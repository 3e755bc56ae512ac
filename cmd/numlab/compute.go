// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/numlab/growth"
	"github.com/katalvlaran/numlab/internal/parse"
	"github.com/katalvlaran/numlab/internal/problems"
	"github.com/katalvlaran/numlab/iterative"
	"github.com/katalvlaran/numlab/linsolve"
	"github.com/katalvlaran/numlab/quadrature"
	"github.com/katalvlaran/numlab/regression"
)

var errNotConverged = errors.New("iteration limit reached without convergence")

// systemFlags binds --matrix (JSON rows) and --vector (comma list).
type systemFlags struct {
	matrix string
	vector string
}

func (f *systemFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.matrix, "matrix", "", `coefficient rows as JSON, e.g. "[[2,1],[1,3]]"`)
	cmd.Flags().StringVar(&f.vector, "vector", "", `right-hand side, e.g. "3,5"`)
	_ = cmd.MarkFlagRequired("matrix")
	_ = cmd.MarkFlagRequired("vector")
}

func (f *systemFlags) parse() ([][]float64, []float64, error) {
	var a [][]float64
	if err := json.Unmarshal([]byte(f.matrix), &a); err != nil {
		return nil, nil, fmt.Errorf("--matrix: %w", err)
	}
	b, err := parse.Floats(f.vector)
	if err != nil {
		return nil, nil, fmt.Errorf("--vector: %w", err)
	}

	return a, b, nil
}

// samplesFlags binds --x and --y comma lists.
type samplesFlags struct {
	x, y string
}

func (f *samplesFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.x, "x", "", "comma-separated x values")
	cmd.Flags().StringVar(&f.y, "y", "", "comma-separated y values")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")
}

// iterFlags binds the iterative solver options.
type iterFlags struct {
	tolerance float64
	maxIter   int
	initial   string
}

func (f *iterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", iterative.DefaultTolerance, "stop when the max relative change falls below this")
	cmd.Flags().IntVar(&f.maxIter, "max-iterations", iterative.DefaultMaxIterations, "sweep cap")
	cmd.Flags().StringVar(&f.initial, "initial", "", "initial estimate (default zero vector)")
}

func (f *iterFlags) options(cmd *cobra.Command) (iterative.Options, error) {
	opts := iterative.Options{Tolerance: f.tolerance, MaxIterations: f.maxIter, Ctx: cmd.Context()}
	if f.initial != "" {
		x0, err := parse.Floats(f.initial)
		if err != nil {
			return opts, fmt.Errorf("--initial: %w", err)
		}
		opts.Initial = x0
	}

	return opts, nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

func solveCmd() *cobra.Command {
	var (
		sys    systemFlags
		method string
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve A·x = b with Gauss, Gauss-Jordan or LU",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, b, err := sys.parse()
			if err != nil {
				return err
			}
			m, err := linsolve.ParseMethod(method)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			res, err := linsolve.Solve(a, b, m)
			if res != nil {
				printf(out, "%s\n", res.Trace)
			}
			if err != nil {
				return err
			}
			printf(out, "\nResidual ‖Ax − b‖∞ = %.3e\n", res.Residual)
			return nil
		},
	}
	sys.bind(cmd)
	cmd.Flags().StringVar(&method, "method", "gauss", "gauss|jordan|lu")

	return cmd
}

func iterateCmd() *cobra.Command {
	var (
		sys    systemFlags
		it     iterFlags
		method string
	)
	cmd := &cobra.Command{
		Use:   "iterate",
		Short: "Solve A·x = b with Jacobi or Gauss-Seidel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, b, err := sys.parse()
			if err != nil {
				return err
			}
			m, err := iterative.ParseMethod(method)
			if err != nil {
				return err
			}
			opts, err := it.options(cmd)
			if err != nil {
				return err
			}
			res, err := iterative.Solve(a, b, m, opts)
			if res != nil {
				printf(cmd.OutOrStdout(), "%s\n", res.Trace)
			}
			if err != nil {
				return err
			}
			if !res.Converged {
				return errNotConverged
			}
			return nil
		},
	}
	sys.bind(cmd)
	it.bind(cmd)
	cmd.Flags().StringVar(&method, "method", "gauss_seidel", "jacobi|gauss_seidel")

	return cmd
}

func fitCmd() *cobra.Command {
	var (
		s    samplesFlags
		kind string
	)
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Least-squares linear, quadratic and exponential fits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			x, y, err := parse.Pair(s.x, s.y)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if kind != "" {
				k, err := regression.ParseKind(kind)
				if err != nil {
					return err
				}
				res, err := regression.Fit(x, y, k)
				if err != nil {
					return err
				}
				printf(out, "%s\n", res.Trace)
				return nil
			}
			for _, o := range regression.FitAll(x, y) {
				if o.Err != nil {
					printf(out, "=== %s ===\n%v\n\n", o.Kind, o.Err)
					continue
				}
				printf(out, "%s\n\n", o.Result.Trace)
			}
			return nil
		},
	}
	s.bind(cmd)
	cmd.Flags().StringVar(&kind, "kind", "", "linear|quadratic|exponential (default all)")

	return cmd
}

func integrateCmd() *cobra.Command {
	var (
		s      samplesFlags
		method string
	)
	cmd := &cobra.Command{
		Use:   "integrate",
		Short: "Integrate sampled data with the trapezoid and Simpson rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			x, y, err := parse.Pair(s.x, s.y)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if method != "" {
				m, err := quadrature.ParseMethod(method)
				if err != nil {
					return err
				}
				res, err := quadrature.Integrate(x, y, m)
				if err != nil {
					return err
				}
				printf(out, "%s\n", res.Trace)
				return nil
			}
			for _, o := range quadrature.IntegrateAll(x, y) {
				if o.Err != nil {
					return o.Err
				}
				printf(out, "%s\n\n", o.Result.Trace)
			}
			return nil
		},
	}
	s.bind(cmd)
	cmd.Flags().StringVar(&method, "method", "", "trapezoid|simpson13|hybrid (default trapezoid and hybrid)")

	return cmd
}

func growthCmd() *cobra.Command {
	var (
		s       samplesFlags
		predict string
	)
	cmd := &cobra.Command{
		Use:   "growth",
		Short: "Fit an exponential growth trend on the log₁₀ scale",
		RunE: func(cmd *cobra.Command, _ []string) error {
			x, y, err := parse.Pair(s.x, s.y)
			if err != nil {
				return err
			}
			var at []float64
			if predict != "" {
				if at, err = parse.Floats(predict); err != nil {
					return fmt.Errorf("--predict: %w", err)
				}
			}
			res, err := growth.Fit(x, y, at)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s\n", res.Trace)
			return nil
		},
	}
	s.bind(cmd)
	cmd.Flags().StringVar(&predict, "predict", "", "x values to extrapolate to")

	return cmd
}

func blendCmd() *cobra.Command {
	var (
		demands, composition, method string
	)
	cmd := &cobra.Command{
		Use:   "blend",
		Short: "Solve the three-source material blending problem",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var b problems.Blend
			d, err := parse.Floats(demands)
			if err != nil {
				return fmt.Errorf("--demands: %w", err)
			}
			if len(d) != 3 {
				return fmt.Errorf("--demands: want 3 values, got %d", len(d))
			}
			copy(b.Demands[:], d)
			if err = json.Unmarshal([]byte(composition), &b.Composition); err != nil {
				return fmt.Errorf("--composition: %w", err)
			}
			m, err := linsolve.ParseMethod(method)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			res, err := b.Solve(m)
			if res != nil && res.Solve != nil {
				printf(out, "%s\n", res.Solve.Trace)
			}
			if err != nil {
				return err
			}
			printf(out, "\n")
			for i, name := range problems.Materials {
				printf(out, "Source %d: %.4f (%s row)\n", i+1, res.Amounts[i], name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&demands, "demands", "", "required amounts of sand, fine and coarse gravel")
	cmd.Flags().StringVar(&composition, "composition", "", "percentages per source as JSON 3×3 rows")
	cmd.Flags().StringVar(&method, "method", "gauss", "gauss|jordan|lu")
	_ = cmd.MarkFlagRequired("demands")
	_ = cmd.MarkFlagRequired("composition")

	return cmd
}

func bridgeCmd() *cobra.Command {
	var (
		br     problems.Bridge
		it     iterFlags
		method string
	)
	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Solve the Wheatstone bridge mesh currents iteratively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := iterative.ParseMethod(method)
			if err != nil {
				return err
			}
			opts, err := it.options(cmd)
			if err != nil {
				return err
			}
			res, err := br.Solve(m, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printf(out, "%s\n\n%s\n", res.System, res.Solve.Trace)
			printf(out, "\ni1 = %.6f A\ni2 = %.6f A\ni3 = %.6f A\n", res.I1, res.I2, res.I3)
			if !res.Solve.Converged {
				return errNotConverged
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&br.E, "e", 10, "source voltage")
	cmd.Flags().Float64Var(&br.R1, "r1", 2, "R1 (ohm)")
	cmd.Flags().Float64Var(&br.R2, "r2", 4, "R2 (ohm)")
	cmd.Flags().Float64Var(&br.R3, "r3", 3, "R3 (ohm)")
	cmd.Flags().Float64Var(&br.R4, "r4", 5, "R4 (ohm)")
	cmd.Flags().Float64Var(&br.R5, "r5", 6, "R5, the bridge branch (ohm)")
	it.bind(cmd)
	cmd.Flags().StringVar(&method, "method", "gauss_seidel", "jacobi|gauss_seidel")

	return cmd
}
