package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// spanishMonths maps uppercased month names to their one-based index.
var spanishMonths = []string{
	"ENERO", "FEBRERO", "MARZO", "ABRIL", "MAYO", "JUNIO",
	"JULIO", "AGOSTO", "SEPTIEMBRE", "OCTUBRE", "NOVIEMBRE", "DICIEMBRE",
}

var (
	reFourDigitYear     = regexp.MustCompile(`^\d{4}$`)
	reYearNamedMonth    = regexp.MustCompile(`^(\d{4}),? (\w+)$`)
	reYearNamedMonthDay = regexp.MustCompile(`^(\d{4}),? (\w+) (\d{2})$`)
	reNamedMonthYear    = regexp.MustCompile(`^(\w+),? (?:de )?(\d{4})$`)
	reDayNamedMonthYear = regexp.MustCompile(`^(\d{1,2}) de (\w+) de (\d{4})$`)
	reMonthSlashYear    = regexp.MustCompile(`^(\d{1,2})/(\d+)$`)
	reDayMonthYear      = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{2,4})$`)
)

// Date values the archive marks as unknown or approximate are passed through
// untouched.
var verbatimDateMarkers = []string{"Sin fecha", "Circa", "'s", "Posterior"}
var verbatimDateValues = map[string]bool{
	"No presenta": true,
	"No":          true,
	"S/F":         true,
	"Varias":      true,
}

// NormalizeDate reformats the recognized Spanish date shapes into
// YYYY-MM or YYYY-MM-DD. Anything it does not recognize is returned
// verbatim so no information is discarded.
func NormalizeDate(text string) string {
	text = strings.TrimSpace(text)

	if verbatimDateValues[text] {
		return text
	}
	for _, marker := range verbatimDateMarkers {
		if strings.Contains(text, marker) {
			return text
		}
	}
	if reFourDigitYear.MatchString(text) {
		return text
	}

	if m := reYearNamedMonth.FindStringSubmatch(text); m != nil {
		return formatNamedMonth(text, m[1], m[2], "")
	}
	if m := reYearNamedMonthDay.FindStringSubmatch(text); m != nil {
		return formatNamedMonth(text, m[1], m[2], m[3])
	}
	if m := reNamedMonthYear.FindStringSubmatch(text); m != nil {
		return formatNamedMonth(text, m[2], m[1], "")
	}
	if m := reDayNamedMonthYear.FindStringSubmatch(text); m != nil {
		return formatNamedMonth(text, m[3], m[2], m[1])
	}
	if m := reMonthSlashYear.FindStringSubmatch(text); m != nil {
		return formatDate(m[2], m[1], "")
	}
	if m := reDayMonthYear.FindStringSubmatch(text); m != nil {
		return formatDate(m[3], m[2], m[1])
	}

	return text
}

// formatNamedMonth resolves a Spanish month name; unknown names leave the
// raw text untouched.
func formatNamedMonth(raw, year, month, day string) string {
	upper := strings.ToUpper(month)
	for i, name := range spanishMonths {
		if name == upper {
			return formatDate(year, strconv.Itoa(i+1), day)
		}
	}
	return raw
}

// formatDate renders YYYY-MM or YYYY-MM-DD. Two-digit years in this archive
// are all twentieth century.
func formatDate(year, month, day string) string {
	if len(year) <= 2 {
		year = "19" + year
	}
	m, _ := strconv.Atoi(month)
	out := fmt.Sprintf("%s-%02d", year, m)
	if day != "" {
		d, _ := strconv.Atoi(day)
		out += fmt.Sprintf("-%02d", d)
	}
	return out
}
