package analysis

import (
	"strconv"
	"strings"
)

// RawRow is one projection-feed row as delivered: an ordered sequence of
// heterogeneous cells. The column holding the strength rating has moved
// between feed versions, so nothing here may hard-code an index.
type RawRow []any

// CatalogConfig controls how a rating is discovered inside a raw row.
// RatingColumn < 0 enables auto-discovery (first cell parsing as a float
// strictly between 0 and 1, skipping the team-name column). A fixed column
// is only honored when its cell actually holds a float in (0,1); otherwise
// discovery falls through to the scan.
type CatalogConfig struct {
	RatingColumn  int     `yaml:"rating_column"`
	DefaultRating float64 `yaml:"default_rating"`
}

// DefaultCatalogConfig returns the standard catalog policy: auto-discovery
// with a neutral 0.5 default for rows without a usable rating.
func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		RatingColumn:  -1,
		DefaultRating: 0.5,
	}
}

type catalogEntry struct {
	name      string
	rating    float64
	hasRating bool
}

// Catalog is an immutable, ordered view over projection rows, queryable by
// team name. It is rebuilt wholesale on every refresh; there is no
// incremental mutation.
type Catalog struct {
	entries []catalogEntry
	config  CatalogConfig
}

// NewCatalog builds a catalog from heterogeneous positional rows.
//
// Per row: the team name is the first cell holding non-numeric text; the
// rating is found by the column-discovery policy in CatalogConfig. Rows with
// no name cell are dropped; rows with a name but no discoverable rating are
// retained and answer queries with the default rating.
//
// Returns ErrCatalogEmpty when zero rows were usable. The catalog is still
// returned and serves lookups (all defaulted) so one bad projection feed
// does not take the market-side analysis down with it.
func NewCatalog(rows []RawRow, config CatalogConfig) (*Catalog, error) {
	c := &Catalog{config: config}

	for _, row := range rows {
		nameIdx, name, ok := findNameColumn(row)
		if !ok {
			continue
		}

		entry := catalogEntry{name: name}
		if rating, ok := discoverRating(row, nameIdx, config.RatingColumn); ok {
			entry.rating = rating
			entry.hasRating = true
		}

		c.entries = append(c.entries, entry)
	}

	if len(c.entries) == 0 {
		return c, ErrCatalogEmpty
	}

	return c, nil
}

// NewCatalogFromRecords builds a catalog from an already-tabular feed of
// {team_name, strength_rating} pairs. Ratings outside (0,1) are treated as
// missing rather than trusted.
func NewCatalogFromRecords(records []TeamRecord, config CatalogConfig) (*Catalog, error) {
	c := &Catalog{config: config}

	for _, rec := range records {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			continue
		}

		entry := catalogEntry{name: name}
		if rec.Rating > 0 && rec.Rating < 1 {
			entry.rating = rec.Rating
			entry.hasRating = true
		}

		c.entries = append(c.entries, entry)
	}

	if len(c.entries) == 0 {
		return c, ErrCatalogEmpty
	}

	return c, nil
}

// Len returns the number of retained rows.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Records returns the catalog contents in feed order, with the default
// rating applied to rows whose rating could not be discovered.
func (c *Catalog) Records() []TeamRecord {
	records := make([]TeamRecord, len(c.entries))
	for i, e := range c.entries {
		records[i] = c.record(e)
	}
	return records
}

// FindByName resolves a free-form team name to a catalog record using the
// tiered resolver with no alias table. Callers that have a curated alias
// mapping should build a Resolver directly.
func (c *Catalog) FindByName(query string) (TeamRecord, error) {
	return NewResolver(c, nil).Resolve(query)
}

func (c *Catalog) record(e catalogEntry) TeamRecord {
	rating := c.config.DefaultRating
	if e.hasRating {
		rating = e.rating
	}
	return TeamRecord{Name: e.name, Rating: rating}
}

// findNameColumn locates the lookup key: the first cell holding text that
// does not itself parse as a number. The observed feed keeps the name at
// index 1, but the layout is not stable enough to rely on.
func findNameColumn(row RawRow) (int, string, bool) {
	for i, cell := range row {
		s, ok := cell.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			continue // numeric text, not a name
		}
		return i, s, true
	}
	return 0, "", false
}

// discoverRating applies the column-discovery policy: a configured fixed
// column wins when its cell parses as a float in (0,1); otherwise the row is
// scanned left-to-right for the first such cell, skipping the name column.
func discoverRating(row RawRow, nameIdx, fixedColumn int) (float64, bool) {
	if fixedColumn >= 0 && fixedColumn < len(row) && fixedColumn != nameIdx {
		if v, ok := parseCellFloat(row[fixedColumn]); ok && v > 0 && v < 1 {
			return v, true
		}
	}

	for i, cell := range row {
		if i == nameIdx {
			continue
		}
		if v, ok := parseCellFloat(cell); ok && v > 0 && v < 1 {
			return v, true
		}
	}

	return 0, false
}

// parseCellFloat coerces a heterogeneous feed cell to a float. JSON decoding
// delivers numbers as float64, but several feed versions quote them.
func parseCellFloat(cell any) (float64, bool) {
	switch v := cell.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
