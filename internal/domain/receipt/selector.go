package receipt

// Score rates how much usable structure a parse produced. Used to pick
// the best of several OCR passes over the same photo.
func Score(result ParseResult) int {
	score := 0
	if result.TotalCents > 0 {
		score += 10
	}
	score += 2 * len(result.Items)
	if result.StoreName != "" {
		score += 5
	}

	// A longer recognized text usually means the OCR pass kept more of
	// the receipt, capped so sheer volume cannot outvote structure.
	lengthBonus := len(result.RawText) / 200
	if lengthBonus > 10 {
		lengthBonus = 10
	}
	score += lengthBonus

	return score
}

// SelectBest returns the highest-scoring parse. Ties go to the earliest
// candidate, so callers should order passes from most to least trusted.
func SelectBest(results []ParseResult) (ParseResult, bool) {
	if len(results) == 0 {
		return ParseResult{}, false
	}

	best := results[0]
	bestScore := Score(best)
	for _, candidate := range results[1:] {
		if s := Score(candidate); s > bestScore {
			best = candidate
			bestScore = s
		}
	}
	return best, true
}
