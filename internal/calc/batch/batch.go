package batch

import (
	"github.com/Davidson1997/bridge-calculator/internal/calc/assessment"
)

type Result struct {
	Count    int                  `json:"count"`
	Passed   int                  `json:"passed"`
	Outcomes []assessment.Outcome `json:"outcomes"`
}

// Run assesses every input independently; a failed item contributes its error
// outcome without stopping the rest.
func Run(inputs []assessment.Input) Result {
	res := Result{Count: len(inputs), Outcomes: make([]assessment.Outcome, 0, len(inputs))}
	for _, in := range inputs {
		outcome := assessment.Run(in)
		if outcome.Result != nil && outcome.Result.Pass {
			res.Passed++
		}
		res.Outcomes = append(res.Outcomes, outcome)
	}
	return res
}
