package llm

import (
	"fmt"
	"strings"

	"github.com/loadrush/loadrush-backend/internal/models"
)

// BuildBackhaulPrompt asks for return loads near a delivered load's
// destination. The model must answer with a bare JSON array so the caller can
// parse it after fence stripping.
func BuildBackhaulPrompt(delivered *models.Load, candidates []models.Load) (system, user string) {
	system = "You are a freight dispatch assistant for a truck load marketplace. " +
		"Answer ONLY with a JSON array, no prose. Each element must have the keys " +
		`"load_id", "origin", "destination", "rate" and "reason".`

	var b strings.Builder
	fmt.Fprintf(&b, "A driver just delivered a load in %s and needs a backhaul.\n", delivered.Destination)
	b.WriteString("Available loads:\n")
	for i := range candidates {
		c := &candidates[i]
		fmt.Fprintf(&b, "- id=%s origin=%s destination=%s rate=%.2f weight=%.1ft\n",
			c.ID.String(), c.Origin, c.Destination, c.Amount(), c.Weight)
	}
	b.WriteString("\nPick up to 3 loads whose origin is closest to the driver's current city, ")
	b.WriteString("preferring higher rates. Return the JSON array only.")

	return system, b.String()
}

// BuildSummaryPrompt renders the current dashboard numbers into a prompt for
// a short plain-language narrative.
func BuildSummaryPrompt(lines []string) (system, user string) {
	system = "You are an analytics assistant for the LoadRush freight marketplace. " +
		"Summarize the week's platform metrics for an admin in 3-4 plain sentences. " +
		"No markdown, no bullet points."

	return system, "This week's metrics:\n" + strings.Join(lines, "\n")
}
