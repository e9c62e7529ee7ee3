package analysis

import (
	"errors"
	"fmt"
)

// ErrCatalogEmpty reports that the projection feed yielded zero usable rows.
// A catalog built in this state still serves lookups; every query resolves to
// the default rating.
var ErrCatalogEmpty = errors.New("projection catalog has no usable rows")

// InvalidOddsError reports an American odds price that cannot be converted
// to a probability (zero is not a valid price).
type InvalidOddsError struct {
	Price int
}

func (e *InvalidOddsError) Error() string {
	return fmt.Sprintf("invalid american odds price: %d", e.Price)
}

// MalformedQuoteError reports a game whose outcome data is present but
// missing the numeric price field.
type MalformedQuoteError struct {
	HomeTeam string
	AwayTeam string
	Reason   string
}

func (e *MalformedQuoteError) Error() string {
	return fmt.Sprintf("malformed quote for %s @ %s: %s", e.AwayTeam, e.HomeTeam, e.Reason)
}

// TeamNotFoundError reports a team name that no resolver tier could match
// against the projection catalog.
type TeamNotFoundError struct {
	Name string
}

func (e *TeamNotFoundError) Error() string {
	return fmt.Sprintf("team %q not found in projection catalog", e.Name)
}
