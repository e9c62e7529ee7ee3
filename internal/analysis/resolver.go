package analysis

import "strings"

// Resolver matches free-form team names from the odds feed's vocabulary
// (e.g. "Saint Mary's Gaels") against the projection feed's vocabulary
// (e.g. "St. Mary's").
//
// Matching is tiered, stopping at the first tier that succeeds:
//
//  1. exact alias lookup via the injected alias table
//  2. case-insensitive substring match, either direction
//  3. core-token match on the first whitespace-delimited token
//     (strips mascot suffixes like "Gaels" or "Huskies")
//
// Within a tier, the first catalog row in feed order wins; catalog ordering
// is stable per refresh, so resolution is deterministic. Prefix truncation
// (first-N-characters) is deliberately not a tier: it collides distinct
// programs such as "Miami (FL)" and "Miami (OH)".
type Resolver struct {
	catalog *Catalog
	aliases map[string]string
}

// NewResolver creates a resolver over a catalog. The alias table maps known
// odds-feed full names to projection-feed canonical names; it is injected
// configuration, never ambient state. A nil table disables tier 1.
func NewResolver(catalog *Catalog, aliases map[string]string) *Resolver {
	return &Resolver{
		catalog: catalog,
		aliases: aliases,
	}
}

// Resolve maps an odds-feed team name to a catalog record, or returns a
// TeamNotFoundError when no tier matches.
func (r *Resolver) Resolve(name string) (TeamRecord, error) {
	query := strings.TrimSpace(name)

	// Tier 1: curated alias, unambiguous when present.
	if canonical, ok := r.aliases[query]; ok {
		if rec, ok := r.findExact(canonical); ok {
			return rec, nil
		}
		// The alias target is still the better query for the looser tiers.
		query = canonical
	}

	if rec, ok := r.findSubstring(query); ok {
		return rec, nil
	}

	if rec, ok := r.findCoreToken(query); ok {
		return rec, nil
	}

	return TeamRecord{}, &TeamNotFoundError{Name: name}
}

// findExact matches the full catalog name, case-folded.
func (r *Resolver) findExact(query string) (TeamRecord, bool) {
	for _, e := range r.catalog.entries {
		if strings.EqualFold(e.name, query) {
			return r.catalog.record(e), true
		}
	}
	return TeamRecord{}, false
}

// findSubstring matches when either name contains the other, case-folded.
func (r *Resolver) findSubstring(query string) (TeamRecord, bool) {
	q := strings.ToLower(query)
	if q == "" {
		return TeamRecord{}, false
	}
	for _, e := range r.catalog.entries {
		name := strings.ToLower(e.name)
		if strings.Contains(name, q) || strings.Contains(q, name) {
			return r.catalog.record(e), true
		}
	}
	return TeamRecord{}, false
}

// findCoreToken compares only the first whitespace-delimited token of each
// name, which drops mascot suffixes from the odds feed's naming.
func (r *Resolver) findCoreToken(query string) (TeamRecord, bool) {
	q := coreToken(query)
	if q == "" {
		return TeamRecord{}, false
	}
	for _, e := range r.catalog.entries {
		if strings.EqualFold(coreToken(e.name), q) {
			return r.catalog.record(e), true
		}
	}
	return TeamRecord{}, false
}

func coreToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
