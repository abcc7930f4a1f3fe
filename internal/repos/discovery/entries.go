package discovery

import "strings"

const entrySeparatorConstant = "\n"

// ParseEntries splits newline-delimited search output into trimmed, non-blank entries, preserving order.
func ParseEntries(output string) []string {
	trimmedOutput := strings.TrimSpace(output)
	if len(trimmedOutput) == 0 {
		return nil
	}

	rawEntries := strings.Split(trimmedOutput, entrySeparatorConstant)
	entries := make([]string, 0, len(rawEntries))
	for _, rawEntry := range rawEntries {
		entry := strings.TrimSpace(rawEntry)
		if len(entry) == 0 {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}
