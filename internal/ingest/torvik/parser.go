package torvik

import (
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/analysis"
)

// ParseRatingsHTML extracts projection rows from the rankings page. Every
// table cell becomes a positional text cell; interpreting which column holds
// the rating stays with the catalog's column discovery, since the page
// layout shifts between seasons just like the JSON feed does.
func ParseRatingsHTML(html string) ([]analysis.RawRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing rankings page: %w", err)
	}

	var rows []analysis.RawRow

	doc.Find("table tbody tr").Each(func(i int, tr *goquery.Selection) {
		var row analysis.RawRow
		tr.Find("td").Each(func(j int, td *goquery.Selection) {
			row = append(row, strings.TrimSpace(td.Text()))
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})

	// Some season pages render the data without a tbody wrapper.
	if len(rows) == 0 {
		doc.Find("table tr").Each(func(i int, tr *goquery.Selection) {
			var row analysis.RawRow
			tr.Find("td").Each(func(j int, td *goquery.Selection) {
				row = append(row, strings.TrimSpace(td.Text()))
			})
			if len(row) > 0 {
				rows = append(rows, row)
			}
		})
	}

	log.Printf("[torvik] parsed %d rows from rankings page", len(rows))
	return rows, nil
}
