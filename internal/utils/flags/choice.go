package flags

import (
	"errors"
	"fmt"
	"strings"
)

const (
	choicePlaceholderTemplate  = "<%s>"
	choiceSeparatorLiteral     = "|"
	choiceUsageEmptyTemplate   = "`%s`"
	choiceUsageFullTemplate    = "`%s` %s"
	unsupportedChoiceTemplate  = "%w %q (expected one of %s)"
	unsupportedChoiceMessage   = "unsupported choice"
	choiceListSeparatorLiteral = ", "
)

// ErrUnsupportedChoice indicates a flag or configuration value outside its allowed set.
var ErrUnsupportedChoice = errors.New(unsupportedChoiceMessage)

// FormatChoiceUsage builds a usage string listing choices with the default capitalized.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := normalizeChoice(defaultChoice)
	rendered := make([]string, 0, len(choices))
	for _, choice := range uniqueChoices(choices) {
		if normalizeChoice(choice) == normalizedDefault {
			choice = strings.ToUpper(choice)
		}
		rendered = append(rendered, choice)
	}

	placeholder := fmt.Sprintf(choicePlaceholderTemplate, strings.Join(rendered, choiceSeparatorLiteral))
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

// ResolveChoice returns the allowed choice matching candidate case-insensitively.
func ResolveChoice(candidate string, choices []string) (string, error) {
	normalizedCandidate := normalizeChoice(candidate)
	allowed := uniqueChoices(choices)
	for _, choice := range allowed {
		if normalizeChoice(choice) == normalizedCandidate {
			return choice, nil
		}
	}
	return "", fmt.Errorf(unsupportedChoiceTemplate, ErrUnsupportedChoice, strings.TrimSpace(candidate), strings.Join(allowed, choiceListSeparatorLiteral))
}

// uniqueChoices trims choices and drops blanks and case-insensitive duplicates, keeping order.
func uniqueChoices(choices []string) []string {
	unique := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		normalizedChoice := normalizeChoice(trimmedChoice)
		if len(normalizedChoice) == 0 {
			continue
		}
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}
		seen[normalizedChoice] = struct{}{}
		unique = append(unique, trimmedChoice)
	}
	return unique
}

func normalizeChoice(choice string) string {
	return strings.ToLower(strings.TrimSpace(choice))
}
