package players

// Stats is one participant's live race numbers, broadcast to the room as part
// of the leaderboard mapping.
type Stats struct {
	WPM      int `json:"wpm"`
	Accuracy int `json:"accuracy"`
	Progress int `json:"progress"`
}

// zeroStats is the starting point for every participant. Accuracy stays at 100
// until the client supplies ground truth to score against.
func zeroStats() Stats {
	return Stats{WPM: 0, Accuracy: 100, Progress: 0}
}
