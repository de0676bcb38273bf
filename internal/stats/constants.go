package stats

// TopReasonsLimit caps the reason breakdown.
const TopReasonsLimit = 20
