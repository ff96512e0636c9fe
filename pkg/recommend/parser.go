package recommend

import (
	"strings"
)

// Section headers recognized in model output, matched by literal prefix.
const (
	headerApprove      = "APPROVE:"
	headerAlternatives = "SUGGEST_ALTERNATIVES:"
	headerAdditional   = "ADDITIONAL:"
)

// alternativeMarker introduces the suggested name inside an alternative
// bullet: "original: Better alternative is <name> because <reason>".
const alternativeMarker = "Better alternative is "

type section int

const (
	sectionNone section = iota
	sectionApprove
	sectionAlternatives
	sectionAdditional
)

// Parse turns a raw model response into a structured Recommendation.
//
// The input follows a loose line-oriented grammar: an APPROVE line with
// comma-separated names, a SUGGEST_ALTERNATIVES section with bullets of
// the form "original: Better alternative is <name> because <reason>", and
// an ADDITIONAL section with "name: reason" bullets. Each bullet belongs
// to the most recently seen section header.
//
// Malformed lines are dropped rather than reported: an alternative bullet
// without the marker phrase is skipped, and an additional bullet whose
// name contains a space or an "or"/"and" token is skipped (the model
// sometimes collapses several names into one entry).
//
// If nothing at all is recognized, every user package is approved
// unchanged: a refusal-style or garbled response must not drop the
// user's original request.
//
// A name suggested both as an alternative replacement and as an
// additional package is kept only as the alternative; the additional
// entry is dropped.
func Parse(raw string, userPackages []string) *Recommendation {
	rec := &Recommendation{Requested: append([]string(nil), userPackages...)}

	state := sectionNone
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, headerApprove):
			state = sectionApprove
			parseApprove(rec, strings.TrimPrefix(line, headerApprove))
		case strings.HasPrefix(line, headerAlternatives):
			state = sectionAlternatives
		case strings.HasPrefix(line, headerAdditional):
			state = sectionAdditional
		case strings.HasPrefix(line, "-"):
			body := strings.TrimSpace(strings.TrimPrefix(line, "-"))
			if body == "" {
				continue
			}
			switch state {
			case sectionAlternatives:
				parseAlternative(rec, body)
			case sectionAdditional:
				parseAdditional(rec, body)
			}
		}
	}

	if len(rec.Approved) == 0 && len(rec.Alternatives) == 0 && len(rec.Additional) == 0 {
		rec.Approved = append([]string(nil), userPackages...)
	}

	dropShadowedAdditional(rec)
	return rec
}

// parseApprove splits the comma-separated names following the APPROVE
// header on the same line.
func parseApprove(rec *Recommendation, rest string) {
	for _, name := range strings.Split(rest, ",") {
		name = strings.TrimSpace(name)
		if name != "" && !strings.EqualFold(name, "none") {
			rec.Approved = append(rec.Approved, name)
		}
	}
}

// parseAlternative handles one "original: Better alternative is <name>
// because <reason>" bullet. Bullets missing the marker phrase are dropped.
func parseAlternative(rec *Recommendation, body string) {
	original, rest, ok := strings.Cut(body, ":")
	if !ok {
		return
	}
	original = strings.TrimSpace(original)
	rest = strings.TrimSpace(rest)

	idx := strings.Index(rest, alternativeMarker)
	if original == "" || idx < 0 {
		return
	}
	rest = rest[idx+len(alternativeMarker):]

	suggested, reason, found := strings.Cut(rest, " because ")
	if !found {
		suggested = rest
		reason = ""
	}
	suggested = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(suggested), "."))
	if !validName(suggested) {
		return
	}

	rec.Alternatives = append(rec.Alternatives, Alternative{
		Original:  original,
		Suggested: suggested,
		Reason:    strings.TrimSpace(reason),
	})
}

// parseAdditional handles one "name: reason" bullet. Names containing an
// internal space or an "or"/"and" token are dropped.
func parseAdditional(rec *Recommendation, body string) {
	name, reason, ok := strings.Cut(body, ":")
	if !ok {
		return
	}
	name = strings.TrimSpace(name)
	if !validName(name) || strings.ContainsAny(name, " \t") {
		return
	}

	rec.Additional = append(rec.Additional, Additional{
		Name:   name,
		Reason: strings.TrimSpace(reason),
	})
}

// validName rejects empty names and names the model built by joining
// several packages with "or"/"and".
func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, tok := range strings.Fields(name) {
		if strings.EqualFold(tok, "or") || strings.EqualFold(tok, "and") {
			return false
		}
	}
	return true
}

// dropShadowedAdditional enforces the precedence rule: when a name is
// both an alternative's replacement and an additional entry, the
// alternative wins and the additional entry is removed.
func dropShadowedAdditional(rec *Recommendation) {
	if len(rec.Alternatives) == 0 || len(rec.Additional) == 0 {
		return
	}
	suggested := make(map[string]bool, len(rec.Alternatives))
	for _, alt := range rec.Alternatives {
		suggested[alt.Suggested] = true
	}
	kept := rec.Additional[:0]
	for _, add := range rec.Additional {
		if !suggested[add.Name] {
			kept = append(kept, add)
		}
	}
	rec.Additional = kept
}
