package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T, records ...TeamRecord) *Catalog {
	t.Helper()
	catalog, err := NewCatalogFromRecords(records, DefaultCatalogConfig())
	require.NoError(t, err)
	return catalog
}

func TestResolveViaAlias(t *testing.T) {
	catalog := testCatalog(t, TeamRecord{Name: "Connecticut", Rating: 0.91})
	resolver := NewResolver(catalog, map[string]string{"UConn Huskies": "Connecticut"})

	rec, err := resolver.Resolve("UConn Huskies")
	require.NoError(t, err)
	assert.Equal(t, "Connecticut", rec.Name)
	assert.InDelta(t, 0.91, rec.Rating, 1e-9)
}

func TestResolveAliasWinsOverLooserTiers(t *testing.T) {
	// "Saint Mary's Gaels" would core-token match "Saint Louis" (token
	// "Saint") if the alias tier did not run first.
	catalog := testCatalog(t,
		TeamRecord{Name: "Saint Louis", Rating: 0.4},
		TeamRecord{Name: "St. Mary's", Rating: 0.85},
	)
	resolver := NewResolver(catalog, map[string]string{"Saint Mary's Gaels": "St. Mary's"})

	rec, err := resolver.Resolve("Saint Mary's Gaels")
	require.NoError(t, err)
	assert.Equal(t, "St. Mary's", rec.Name)
}

func TestResolveViaSubstring(t *testing.T) {
	catalog := testCatalog(t, TeamRecord{Name: "North Carolina", Rating: 0.88})
	resolver := NewResolver(catalog, nil)

	// catalog name is a substring of the query
	rec, err := resolver.Resolve("North Carolina Tar Heels")
	require.NoError(t, err)
	assert.Equal(t, "North Carolina", rec.Name)

	// query is a substring of the catalog name
	rec, err = resolver.Resolve("carolina")
	require.NoError(t, err)
	assert.Equal(t, "North Carolina", rec.Name)
}

func TestResolveViaCoreToken(t *testing.T) {
	catalog := testCatalog(t, TeamRecord{Name: "Wisconsin", Rating: 0.3})
	resolver := NewResolver(catalog, nil)

	rec, err := resolver.Resolve("Wisconsin Badgers")
	require.NoError(t, err)
	assert.Equal(t, "Wisconsin", rec.Name)
}

func TestResolveAliasedQueryFlowsIntoLooserTiers(t *testing.T) {
	// Alias maps to a name that is not an exact catalog entry; the mapped
	// name should still drive the substring tier.
	catalog := testCatalog(t, TeamRecord{Name: "N.C. State Wolfpack", Rating: 0.6})
	resolver := NewResolver(catalog, map[string]string{"NC State Wolfpack": "N.C. State"})

	rec, err := resolver.Resolve("NC State Wolfpack")
	require.NoError(t, err)
	assert.Equal(t, "N.C. State Wolfpack", rec.Name)
}

func TestResolveNotFound(t *testing.T) {
	catalog := testCatalog(t, TeamRecord{Name: "Oregon", Rating: 0.8})
	resolver := NewResolver(catalog, nil)

	_, err := resolver.Resolve("Fictional University")
	var notFound *TeamNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Fictional University", notFound.Name)
}

func TestResolveFirstCatalogRowWinsWithinTier(t *testing.T) {
	catalog := testCatalog(t,
		TeamRecord{Name: "Miami FL", Rating: 0.7},
		TeamRecord{Name: "Miami OH", Rating: 0.4},
	)
	resolver := NewResolver(catalog, nil)

	// Both rows substring-match "Miami"; catalog order decides.
	rec, err := resolver.Resolve("Miami")
	require.NoError(t, err)
	assert.Equal(t, "Miami FL", rec.Name)
}

func TestResolveDistinguishesMiamiPrograms(t *testing.T) {
	catalog := testCatalog(t,
		TeamRecord{Name: "Miami OH", Rating: 0.4},
		TeamRecord{Name: "Miami FL", Rating: 0.7},
	)
	resolver := NewResolver(catalog, map[string]string{"Miami (FL) Hurricanes": "Miami FL"})

	rec, err := resolver.Resolve("Miami (FL) Hurricanes")
	require.NoError(t, err)
	assert.Equal(t, "Miami FL", rec.Name)
}

func TestResolveIsDeterministic(t *testing.T) {
	catalog := testCatalog(t,
		TeamRecord{Name: "Michigan", Rating: 0.75},
		TeamRecord{Name: "Michigan St.", Rating: 0.72},
	)
	resolver := NewResolver(catalog, nil)

	first, err := resolver.Resolve("Michigan Wolverines")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		rec, err := resolver.Resolve("Michigan Wolverines")
		require.NoError(t, err)
		assert.Equal(t, first, rec)
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	catalog := testCatalog(t, TeamRecord{Name: "GONZAGA", Rating: 0.93})
	resolver := NewResolver(catalog, nil)

	rec, err := resolver.Resolve("gonzaga bulldogs")
	require.NoError(t, err)
	assert.Equal(t, "GONZAGA", rec.Name)
}
