package scoring

import (
	"strings"

	"borderwatch/internal/domain"
)

// Checked in order; the first table with a hit wins.
var severityKeywords = []struct {
	severity domain.Severity
	words    []string
}{
	{domain.SeverityEmergency, []string{"attack", "explosion", "blast", "shelling", "killed", "terror", "bomb", "evacuat"}},
	{domain.SeverityAlert, []string{"infiltration", "ceasefire violation", "firing", "drone", "militant", "encounter", "gunfight"}},
	{domain.SeverityWarning, []string{"curfew", "protest", "suspicious", "tension", "unrest", "shutdown", "advisory", "restriction"}},
}

var categoryKeywords = []struct {
	category string
	words    []string
}{
	{"armed_conflict", []string{"shelling", "firing", "gunfight", "encounter", "ceasefire"}},
	{"infiltration", []string{"infiltration", "intrusion", "crossing"}},
	{"terrorism", []string{"terror", "militant", "bomb", "blast", "explosion"}},
	{"aerial", []string{"drone", "uav", "airspace"}},
	{"civil_unrest", []string{"protest", "curfew", "unrest", "shutdown", "strike"}},
	{"smuggling", []string{"smuggling", "narcotic", "contraband", "weapons haul"}},
}

func ClassifySeverity(text string) domain.Severity {
	t := strings.ToLower(text)
	for _, row := range severityKeywords {
		for _, w := range row.words {
			if strings.Contains(t, w) {
				return row.severity
			}
		}
	}
	return domain.SeverityInfo
}

func Categorize(text string) string {
	t := strings.ToLower(text)
	for _, row := range categoryKeywords {
		for _, w := range row.words {
			if strings.Contains(t, w) {
				return row.category
			}
		}
	}
	return "general"
}
