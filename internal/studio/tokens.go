package studio

// completion budget used when the requested length is not one of the presets
const DefaultTokenBudget = 300

// article length presets (in words, as offered by the client) to max_tokens.
// budgets are token counts, not word counts.
var tokenBudgets = map[int]int{
	800:  300, // short
	1200: 450, // medium
	1600: 600, // long
}

// exact match on the preset; anything else, including zero or negatives, gets the default
func TokenBudgetFor(length int) int {
	if budget, ok := tokenBudgets[length]; ok {
		return budget
	}

	return DefaultTokenBudget
}
