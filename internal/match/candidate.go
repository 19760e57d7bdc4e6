package match

import (
	"cmp"
	"slices"
)

// DefaultSuggestionScore is the minimum similarity for a name to be suggested.
const DefaultSuggestionScore = 0.6

// Candidate is a known name scored against a misspelled one.
type Candidate struct {
	Name  string
	Score float64 // NormalizedLevenshteinScore, 0 to 1
}

// CandidateList is ordered best first.
type CandidateList []Candidate

// RankCandidates scores every known name against input, best first. Equal
// scores are ordered by name.
func RankCandidates(input string, known []string) CandidateList {
	candidates := make(CandidateList, 0, len(known))

	for _, name := range known {
		candidates = append(candidates, Candidate{
			Name:  name,
			Score: NormalizedLevenshteinScore(input, name),
		})
	}

	slices.SortFunc(candidates, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return candidates
}

// AboveThreshold returns the candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	i := slices.IndexFunc(c, func(cand Candidate) bool { return cand.Score < threshold })
	if i < 0 {
		return c
	}

	return c[:i]
}

// Names returns the candidate names in order.
func (c CandidateList) Names() []string {
	if len(c) == 0 {
		return nil
	}

	names := make([]string, len(c))
	for i, cand := range c {
		names[i] = cand.Name
	}

	return names
}

// Suggest returns the known names close enough to input to be offered as a
// "did you mean" hint, best first. An exact match yields no suggestion.
func Suggest(input string, known []string, minScore float64) []string {
	if slices.Contains(known, input) {
		return nil
	}

	return RankCandidates(input, known).AboveThreshold(minScore).Names()
}
