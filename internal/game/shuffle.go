package game

import "math/rand/v2"

// Shuffle returns a Fisher-Yates permutation of cards. The input is not
// modified. A nil rng uses the global source.
func Shuffle(rng *rand.Rand, cards []CardDescriptor) []CardDescriptor {
	shuffled := make([]CardDescriptor, len(cards))
	copy(shuffled, cards)

	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}

	for i := len(shuffled) - 1; i > 0; i-- {
		j := intN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
