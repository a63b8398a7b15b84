package report

// Band is a score range with its decision label.
type Band struct {
	Min   int
	Label string
}

// Bands are ordered from the highest threshold down.
var Bands = []Band{
	{Min: 85, Label: "Excellent Fit"},
	{Min: 70, Label: "Strong Fit"},
	{Min: 55, Label: "Moderate Fit"},
	{Min: 35, Label: "Weak Fit"},
	{Min: 0, Label: "Not a Fit"},
}

// DecisionFor maps a score to its band label.
func DecisionFor(score int) string {
	score = Clamp(score, 0, MaxScore)
	for _, b := range Bands {
		if score >= b.Min {
			return b.Label
		}
	}
	return Bands[len(Bands)-1].Label
}
