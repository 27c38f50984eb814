package services

import "strings"

// ClassifierRule maps a set of title keywords to an event type label.
// Rules are evaluated in order; the first rule with a matching keyword wins.
type ClassifierRule struct {
	Label    string
	Keywords []string
}

// EventClassifier assigns a type label to calendar events by keyword
// heuristics over the event title.
type EventClassifier struct {
	rules    []ClassifierRule
	fallback string
}

// NewEventClassifier creates a classifier with an ordered rule list and a
// fallback label for titles no rule matches
func NewEventClassifier(rules []ClassifierRule, fallback string) *EventClassifier {
	return &EventClassifier{rules: rules, fallback: fallback}
}

// DefaultEventClassifier returns the Polish-language rule set used for the
// parish calendar
func DefaultEventClassifier() *EventClassifier {
	return NewEventClassifier([]ClassifierRule{
		{Label: "Nabożeństwo", Keywords: []string{"nabożeństwo", "nabożeństwa", "msza", "liturgi"}},
		{Label: "Spotkanie", Keywords: []string{"spotkanie", "wieczór", "studium"}},
		{Label: "Koncert", Keywords: []string{"koncert", "muzyk"}},
		{Label: "Konferencja", Keywords: []string{"konferencja", "zjazd", "synod"}},
	}, "Wydarzenie")
}

// Classify returns the label of the first rule whose keyword appears in the
// title, case-insensitively
func (c *EventClassifier) Classify(title string) string {
	lower := strings.ToLower(title)
	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule.Label
			}
		}
	}
	return c.fallback
}
