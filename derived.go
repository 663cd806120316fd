package emfield

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

// DerivedMetric is a named expression evaluated once per above-
// threshold cell against that cell's field strength (bound as
// "field_dbuv_per_m", the only variable), the same optional-derived-
// output pattern InMAP's Outputter.outputVariables implements for
// user-requested post-processed fields.
type DerivedMetric struct {
	Name       string
	Expression string
}

// defaultDerivedFunctions mirrors the handful of math helpers InMAP's
// NewOutputter wires into govaluate by default (log10, sqrt and
// friends), so expressions can reference them by name.
func defaultDerivedFunctions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		"log10": func(args ...interface{}) (interface{}, error) {
			return math.Log10(args[0].(float64)), nil
		},
		"sqrt": func(args ...interface{}) (interface{}, error) {
			return math.Sqrt(args[0].(float64)), nil
		},
		"abs": func(args ...interface{}) (interface{}, error) {
			return math.Abs(args[0].(float64)), nil
		},
	}
}

// EvaluateDerived computes each metric's expression for every
// above-threshold cell of band's raster and returns name -> H×W
// values (NaN where the source cell was masked/sub-threshold).
// "field_dbuv_per_m" is the only variable bound; expressions cannot
// reference any other per-cell value (e.g. per-source fraction).
func EvaluateDerived(r *Result, bandName string, metrics []DerivedMetric) (map[string][]float64, error) {
	raster, ok := r.Rasters[bandName]
	if !ok {
		return nil, fmt.Errorf("emfield: unknown band %q", bandName)
	}

	funcs := defaultDerivedFunctions()
	exprs := make(map[string]*govaluate.EvaluableExpression, len(metrics))
	for _, m := range metrics {
		expr, err := govaluate.NewEvaluableExpressionWithFunctions(m.Expression, funcs)
		if err != nil {
			return nil, fmt.Errorf("emfield: parsing derived metric %q: %w", m.Name, err)
		}
		exprs[m.Name] = expr
	}

	n := len(raster.Elements)
	out := make(map[string][]float64, len(metrics))
	for _, m := range metrics {
		out[m.Name] = make([]float64, n)
	}

	vars := map[string]interface{}{}
	for i, field := range raster.Elements {
		if math.IsNaN(field) {
			for _, m := range metrics {
				out[m.Name][i] = math.NaN()
			}
			continue
		}
		vars["field_dbuv_per_m"] = field
		for _, m := range metrics {
			result, err := exprs[m.Name].Evaluate(vars)
			if err != nil {
				return nil, fmt.Errorf("emfield: evaluating derived metric %q: %w", m.Name, err)
			}
			val, ok := result.(float64)
			if !ok {
				return nil, fmt.Errorf("emfield: derived metric %q did not evaluate to a number", m.Name)
			}
			out[m.Name][i] = val
		}
	}
	return out, nil
}
