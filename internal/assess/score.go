package assess

import "math"

// Result is the scored outcome of a finished session.
type Result struct {
	Percentage int  `json:"percentage"`
	Passed     bool `json:"passed"`
}

// Evaluate turns an answer log into a percentage and pass verdict.
// Percentage is correct/total rounded to the nearest integer percent;
// unanswered questions count as incorrect.
func Evaluate(answers []Answer, totalQuestions, passThreshold int) Result {
	if totalQuestions <= 0 {
		return Result{}
	}
	correct := 0
	for _, a := range answers {
		if a.Correct {
			correct++
		}
	}
	pct := int(math.Round(float64(correct) / float64(totalQuestions) * 100))
	return Result{Percentage: pct, Passed: pct >= passThreshold}
}
