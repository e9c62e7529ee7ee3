package analysis

// ImpliedProbability converts an American odds price to the probability the
// market is pricing in. Zero is rejected rather than silently defaulted so
// that malformed feed data surfaces as a dropped quote instead of a bogus 0%.
func ImpliedProbability(price int) (float64, error) {
	if price == 0 {
		return 0, &InvalidOddsError{Price: price}
	}

	if price < 0 {
		p := float64(-price)
		return p / (p + 100), nil
	}

	return 100 / (float64(price) + 100), nil
}

// NormalizeQuote extracts the representative quote from one game record:
// the first bookmaker's first market's first outcome. It does not average
// across books.
//
// A game with no bookmakers is not an error; it returns ok=false and the
// caller skips it. Outcome data that is present but has no numeric price
// is a MalformedQuoteError.
func NormalizeQuote(game GameRecord) (Quote, bool, error) {
	if len(game.Bookmakers) == 0 {
		return Quote{}, false, nil
	}

	book := game.Bookmakers[0]
	if len(book.Markets) == 0 || len(book.Markets[0].Outcomes) == 0 {
		return Quote{}, false, &MalformedQuoteError{
			HomeTeam: game.HomeTeam,
			AwayTeam: game.AwayTeam,
			Reason:   "bookmaker has no priced outcomes",
		}
	}

	outcome := book.Markets[0].Outcomes[0]
	if outcome.Price == nil {
		return Quote{}, false, &MalformedQuoteError{
			HomeTeam: game.HomeTeam,
			AwayTeam: game.AwayTeam,
			Reason:   "outcome is missing the price field",
		}
	}

	return Quote{
		HomeTeam: game.HomeTeam,
		AwayTeam: game.AwayTeam,
		Price:    *outcome.Price,
	}, true, nil
}
