package titlematch

import (
	"regexp"
	"slices"

	"github.com/hbollon/go-edlib"
)

var numberPattern = regexp.MustCompile(`\b\d+\b`)

// Confidence grades a match score.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // below 0.70
	ConfidenceLow                      // 0.70 and up
	ConfidenceMedium                   // 0.85 and up
	ConfidenceHigh                     // 0.95 and up
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

func confidenceFor(score float64) Confidence {
	switch {
	case score >= 0.95:
		return ConfidenceHigh
	case score >= 0.85:
		return ConfidenceMedium
	case score >= 0.70:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// Candidate is one title to rank. Year uses OMDb's format and may be empty.
type Candidate struct {
	Title string
	Year  string
}

// Match is the outcome of Best. Index is -1 when nothing scored high enough.
type Match struct {
	Index      int
	Score      float64
	Confidence Confidence
}

// Best ranks candidates against query by Jaro-Winkler similarity of their
// cleaned titles. Sequel numbers that agree raise the score and ones that
// disagree lower it. A year at the end of query ("Heat 1995") is matched
// against candidate years. Ties keep the earliest candidate, which is
// OMDb's own relevance order.
func Best(query string, candidates []Candidate) Match {
	best := Match{Index: -1}
	if len(candidates) == 0 {
		return best
	}

	title, year := SplitYear(query)
	want := Clean(title)
	wantNums := numberPattern.FindAllString(want, -1)

	for i, c := range candidates {
		got := Clean(c.Title)
		score := float64(edlib.JaroWinklerSimilarity(want, got))
		score = adjustForNumbers(score, wantNums, numberPattern.FindAllString(got, -1))
		score = adjustForYear(score, year, startYear(c.Year))

		if score > best.Score {
			best = Match{Index: i, Score: score}
		}
	}

	best.Confidence = confidenceFor(best.Score)
	if best.Confidence == ConfidenceNone {
		best.Index = -1
	}
	return best
}

func adjustForNumbers(score float64, want, got []string) float64 {
	if len(want) == 0 {
		return score
	}
	if len(got) == 0 {
		return score * 0.85
	}
	for _, n := range want {
		if slices.Contains(got, n) {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}

func adjustForYear(score float64, want, got int) float64 {
	switch {
	case want == 0 || got == 0:
		return score
	case want == got:
		return min(score*1.05, 1.0)
	case want-got == 1 || got-want == 1:
		// Festival and release years often differ by one.
		return score
	default:
		return score * 0.90
	}
}
