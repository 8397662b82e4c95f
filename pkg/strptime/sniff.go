package strptime

// Sniff returns the first catalog pattern for kind under which sample
// parses. Datetime probing tries year-first then day-first datetime
// patterns, then falls back to the date-only patterns.
func Sniff(kind Kind, sample string) (string, bool) {
	for _, c := range catalog[kind] {
		p, err := c.format.Parse(sample)
		if err != nil {
			continue
		}
		if _, err := c.build(&p); err == nil {
			return c.format.String(), true
		}
	}
	return "", false
}
