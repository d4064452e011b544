package game

import (
	"math"
	"math/rand"

	"wordstreak/internal/models"
)

// DefaultDecayFactor controls how strongly prior usage suppresses a
// word's selection probability.
const DefaultDecayFactor = 1.75

// WordWeight computes the selection weight for a dictionary word.
// Rarely-used words are favored: the weight decays with the number of
// times the word has already been a solution.
func WordWeight(w models.DictionaryWord, decayFactor float64) float64 {
	return w.Frequency / math.Pow(1+float64(w.TimesUsed), decayFactor)
}

// SelectWord draws one word from the candidates, weighted toward
// rarely-used words. randFloat must return values in [0, 1); pass
// rand.Float64 outside of tests. Returns ErrEmptyDictionary when the
// candidate list is empty.
func SelectWord(candidates []models.DictionaryWord, decayFactor float64, randFloat func() float64) (models.DictionaryWord, error) {
	if len(candidates) == 0 {
		return models.DictionaryWord{}, ErrEmptyDictionary
	}
	if randFloat == nil {
		randFloat = rand.Float64
	}

	totalWeight := 0.0
	for _, w := range candidates {
		totalWeight += WordWeight(w, decayFactor)
	}

	remainder := randFloat() * totalWeight
	for _, w := range candidates {
		remainder -= WordWeight(w, decayFactor)
		if remainder <= 0 {
			return w, nil
		}
	}

	// Floating-point rounding can leave a sliver of remainder after the
	// full walk; fall back to the last word.
	return candidates[len(candidates)-1], nil
}
