package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/restrictionless/opt/multivariate"
	"github.com/restrictionless/opt/univariate"
	"github.com/restrictionless/opt/write"
)

// shiftedParabola is f(x) = (x-1)² - 1, minimized at x = 1
func shiftedParabola(x float64) float64 {
	return (x-1)*(x-1) - 1
}

// sphereGrad and sphereHess describe f(x) = x₀² + x₁², minimized at the origin
func sphereGrad(grad, x []float64) {
	grad[0] = 2 * x[0]
	grad[1] = 2 * x[1]
}

func sphereHess(hess *mat.Dense, x []float64) {
	hess.Set(0, 0, 2)
	hess.Set(1, 1, 2)
}

type rootOpts struct {
	logLevel string
	verbose  bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOpts{}

	cmd := &cobra.Command{
		Use:           "restrictionless",
		Short:         "Unconstrained optimization demonstrations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			logrus.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "logging level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "display every iteration")

	cmd.AddCommand(
		newDichotomicCommand(opts),
		newGoldenCommand(opts),
		newNewtonCommand(opts),
	)
	return cmd
}

func displaySettings(opts *rootOpts, out io.Writer) *write.WriteSettings {
	if !opts.verbose {
		return write.DefaultWriteSettings()
	}
	return write.Verbose(out)
}

type bracketOpts struct {
	lower       float64
	upper       float64
	epsilon     float64
	uncertainty float64
}

func (o *bracketOpts) addFlags(cmd *cobra.Command, withEpsilon bool) {
	cmd.Flags().Float64Var(&o.lower, "lower", -5, "lower end of the initial interval")
	cmd.Flags().Float64Var(&o.upper, "upper", 5, "upper end of the initial interval")
	cmd.Flags().Float64Var(&o.uncertainty, "uncertainty", 0.001, "length below which the interval is accepted")
	if withEpsilon {
		cmd.Flags().Float64Var(&o.epsilon, "epsilon", 0.0001, "distance of each probe from the midpoint")
	}
}

func logBracket(name string, result *univariate.Result) {
	logrus.WithFields(logrus.Fields{
		"lower":       result.Lower,
		"upper":       result.Upper,
		"minimizer":   result.Midpoint(),
		"iterations":  result.Iterations,
		"evaluations": result.FunctionEvaluations,
		"status":      result.Status,
	}).Infof("%s search finished", name)
}

func newDichotomicCommand(root *rootOpts) *cobra.Command {
	opts := &bracketOpts{}
	cmd := &cobra.Command{
		Use:   "dichotomic",
		Short: "Minimize (x-1)²-1 with the dichotomic search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := univariate.DefaultSettings()
			settings.WriteSettings = displaySettings(root, cmd.OutOrStdout())
			result, err := univariate.DichotomicSearch(shiftedParabola, opts.lower, opts.upper, opts.epsilon, opts.uncertainty, settings)
			if err != nil {
				return err
			}
			logBracket("dichotomic", result)
			fmt.Fprintf(cmd.OutOrStdout(), "[%v, %v] after %d iterations\n", result.Lower, result.Upper, result.Iterations)
			return nil
		},
	}
	opts.addFlags(cmd, true)
	return cmd
}

func newGoldenCommand(root *rootOpts) *cobra.Command {
	opts := &bracketOpts{}
	cmd := &cobra.Command{
		Use:   "golden",
		Short: "Minimize (x-1)²-1 with the golden section search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := univariate.DefaultSettings()
			settings.WriteSettings = displaySettings(root, cmd.OutOrStdout())
			result, err := univariate.GoldenSectionSearch(shiftedParabola, opts.lower, opts.upper, opts.uncertainty, settings)
			if err != nil {
				return err
			}
			logBracket("golden section", result)
			fmt.Fprintf(cmd.OutOrStdout(), "[%v, %v] after %d iterations\n", result.Lower, result.Upper, result.Iterations)
			return nil
		},
	}
	opts.addFlags(cmd, false)
	return cmd
}

type newtonOpts struct {
	x0      []float64
	epsilon float64
	maxIter int
}

func newNewtonCommand(root *rootOpts) *cobra.Command {
	opts := &newtonOpts{}
	cmd := &cobra.Command{
		Use:   "newton",
		Short: "Minimize x₀²+x₁² with Newton's method",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.x0) != 2 {
				return fmt.Errorf("--x0 needs 2 coordinates, got %d", len(opts.x0))
			}
			settings := multivariate.DefaultSettings()
			settings.WriteSettings = displaySettings(root, cmd.OutOrStdout())
			result, err := multivariate.NewtonSearch(sphereGrad, sphereHess, opts.x0, opts.epsilon, opts.maxIter, settings)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"loc":        result.Loc,
				"iterations": result.Iterations,
				"step":       result.StepNorm,
			}).Info("newton finished")
			fmt.Fprintf(cmd.OutOrStdout(), "Found solution after %d iterations.\n%v\n", result.Iterations, result.Loc)
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&opts.x0, "x0", []float64{1, 3}, "initial point")
	cmd.Flags().Float64Var(&opts.epsilon, "epsilon", 1e-8, "step length below which the iteration stops")
	cmd.Flags().IntVar(&opts.maxIter, "max-iter", 10, "maximum number of Newton steps")
	return cmd
}
