package assess

import "testing"

func answerSeq(correct ...bool) []Answer {
	out := make([]Answer, len(correct))
	for i, c := range correct {
		out[i] = Answer{QuestionIndex: i, Correct: c}
	}
	return out
}

func TestEvaluateThreeOfFivePasses(t *testing.T) {
	// 5 questions, threshold 60, correct on Q1-Q3
	res := Evaluate(answerSeq(true, true, true, false, false), 5, 60)
	if res.Percentage != 60 {
		t.Fatalf("percentage = %d, want 60", res.Percentage)
	}
	if !res.Passed {
		t.Fatalf("expected pass at exactly the threshold")
	}
}

func TestEvaluateRoundsToNearest(t *testing.T) {
	// 2/3 = 66.67 -> 67, 1/3 = 33.33 -> 33
	if res := Evaluate(answerSeq(true, true, false), 3, 60); res.Percentage != 67 {
		t.Fatalf("2/3 rounded to %d, want 67", res.Percentage)
	}
	if res := Evaluate(answerSeq(true, false, false), 3, 60); res.Percentage != 33 {
		t.Fatalf("1/3 rounded to %d, want 33", res.Percentage)
	}
}

func TestEvaluateUnansweredCountIncorrect(t *testing.T) {
	// only 2 answers logged against 4 questions
	res := Evaluate(answerSeq(true, true), 4, 60)
	if res.Percentage != 50 || res.Passed {
		t.Fatalf("got %+v, want 50%% fail", res)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	answers := answerSeq(true, false, true, true, false)
	first := Evaluate(answers, 5, 60)
	for i := 0; i < 10; i++ {
		if got := Evaluate(answers, 5, 60); got != first {
			t.Fatalf("evaluation not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestEvaluateZeroQuestions(t *testing.T) {
	if res := Evaluate(nil, 0, 60); res.Percentage != 0 || res.Passed {
		t.Fatalf("zero questions should score zero and fail, got %+v", res)
	}
}
