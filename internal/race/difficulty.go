package race

import "strings"

// Difficulty is one of six fixed labels derived from a race distance.
type Difficulty string

const (
	Beginner Difficulty = "Beginner"
	Easy     Difficulty = "Easy"
	Moderate Difficulty = "Moderate"
	Hard     Difficulty = "Hard"
	Expert   Difficulty = "Expert"
	Extreme  Difficulty = "Extreme"
)

// DefaultDifficulty is assigned when no keyword matches and to races
// without a usable distance.
const DefaultDifficulty = Moderate

// difficultyTable maps distance keywords to labels. Order matters:
// harder, more specific keywords come first so substring overlaps
// ("half marathon" vs "marathon", "15k" vs "5k", "100k" vs "10k")
// resolve to the longer keyword.
var difficultyTable = []struct {
	label    Difficulty
	keywords []string
}{
	{Extreme, []string{"ultra", "50k", "50 mile", "100k", "100 mile"}},
	{Hard, []string{"half marathon", "13.1", "15k"}},
	{Expert, []string{"marathon", "26.2", "full"}},
	{Moderate, []string{"10k", "6.2", "6 mile"}},
	{Easy, []string{"5k", "3.1", "3 mile"}},
	{Beginner, []string{"1k", "1 mile", "1mi", "fun run", "kids"}},
}

// ClassifyDistance maps a free-text distance string to a difficulty
// label. Matching is case-insensitive substring lookup; unmatched
// input gets DefaultDifficulty.
func ClassifyDistance(distance string) Difficulty {
	lower := strings.ToLower(distance)
	for _, row := range difficultyTable {
		for _, kw := range row.keywords {
			if strings.Contains(lower, kw) {
				return row.label
			}
		}
	}
	return DefaultDifficulty
}
