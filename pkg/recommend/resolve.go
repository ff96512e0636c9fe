package recommend

// Resolve computes the final install list from a recommendation and the
// user's accept/reject decisions.
//
// Names are inserted in a fixed order, each guarded by a seen-set:
// approved packages first, then for each alternative either the suggested
// replacement (accepted) or the original (rejected or undecided), then
// each accepted additional package. A name already present is never
// re-inserted or moved.
//
// If everything was rejected and the list comes out empty while the user
// originally requested packages, the request is returned verbatim: an
// empty list must never silently replace a non-empty request.
//
// Resolve is pure: identical inputs always yield the identical list.
func Resolve(rec *Recommendation, decisions Decisions) []string {
	var final []string
	seen := make(map[string]bool)
	insert := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			final = append(final, name)
		}
	}

	for _, name := range rec.Approved {
		insert(name)
	}

	for _, alt := range rec.Alternatives {
		if decisions[alt.Suggested] {
			insert(alt.Suggested)
		} else {
			insert(alt.Original)
		}
	}

	for _, add := range rec.Additional {
		if decisions[add.Name] {
			insert(add.Name)
		}
	}

	if len(final) == 0 && len(rec.Requested) > 0 {
		return append([]string(nil), rec.Requested...)
	}
	return final
}
