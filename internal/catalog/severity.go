package catalog

// Grade is one entry of a severity scale.
type Grade struct {
	Name  string
	Level int
}

// Scale is an ordered severity enumeration, mildest first.
type Scale []Grade

// Severity is the six level AQI scale.
var Severity = Scale{
	{Name: "Good", Level: 1},
	{Name: "Moderate", Level: 2},
	{Name: "Unhealthy for Sensitive Groups", Level: 3},
	{Name: "Unhealthy", Level: 4},
	{Name: "Very Unhealthy", Level: 5},
	{Name: "Hazardous", Level: 6},
}

// Names returns the category names in severity order.
func (s Scale) Names() []string {
	out := make([]string, len(s))
	for i, g := range s {
		out[i] = g.Name
	}
	return out
}
