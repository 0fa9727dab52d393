package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/star/starwindow/internal/crossing"
)

// cubic is x^3 - 4x^2 - x + 4 = (x+1)(x-1)(x-4).
func cubic(x, _ float64, _ ...any) (float64, error) {
	return x*x*x - 4*x*x - x + 4, nil
}

type rootsResult struct {
	Mode      string              `json:"mode"`
	Threshold float64             `json:"threshold"`
	Crossings []float64           `json:"crossings,omitempty"`
	Positive  []crossing.Interval `json:"positive"`
	Negative  []crossing.Interval `json:"negative"`
	Margins   []crossing.Bracket  `json:"margins,omitempty"`
	Stats     crossing.Stats      `json:"stats"`
}

func newRootsCmd() *cobra.Command {
	var (
		lo, hi    float64
		samples   int
		threshold float64
		mode      string
	)

	cmd := &cobra.Command{
		Use:   "roots",
		Short: "Classify the sign intervals of x^3 - 4x^2 - x + 4",
		Long: `roots runs the crossing engine on the cubic x^3 - 4x^2 - x + 4, whose
roots are -1, 1 and 4, and prints the resulting partition as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd, os.Getenv)

			if samples < 2 {
				return errors.New("samples must be at least 2")
			}
			if hi <= lo {
				return fmt.Errorf("empty range [%v, %v]", lo, hi)
			}

			var c crossing.Classifier
			switch mode {
			case "continuous":
				c = crossing.Continuous{}
			case "discrete":
				c = crossing.Discrete{}
			default:
				return fmt.Errorf("unknown mode %q (want continuous or discrete)", mode)
			}

			p, err := c.Classify(crossing.Problem{
				Domain:    linspace(lo, hi, samples),
				Threshold: threshold,
				Eval:      crossing.EvaluatorFunc(cubic),
			})
			if err != nil {
				return err
			}
			logger.Debug("classified cubic", "evaluations", p.Stats.Evaluations, "brackets", p.Stats.Brackets)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rootsResult{
				Mode:      mode,
				Threshold: threshold,
				Crossings: p.Crossings,
				Positive:  p.Positive,
				Negative:  p.Negative,
				Margins:   p.Margins,
				Stats:     p.Stats,
			})
		},
	}

	fs := cmd.Flags()
	fs.Float64Var(&lo, "lo", -2, "domain start")
	fs.Float64Var(&hi, "hi", 5, "domain end")
	fs.IntVar(&samples, "samples", 100, "number of evenly spaced samples")
	fs.Float64Var(&threshold, "threshold", 0, "threshold subtracted from the cubic")
	fs.StringVar(&mode, "mode", "continuous", "continuous or discrete")
	return cmd
}

// linspace returns n evenly spaced points from lo to hi inclusive.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
