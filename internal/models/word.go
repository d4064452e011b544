package models

import "time"

// DictionaryWord is a candidate solution word with usage tracking.
// Frequency comes from the corpus import; TimesUsed counts how often the
// word has been picked as a puzzle solution.
type DictionaryWord struct {
	ID          int64
	Word        string
	Frequency   float64
	TimesUsed   int
	Explanation string
	CreatedAt   time.Time
}
