package geo

import "testing"

func TestCatalogFind(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	pos, ok := catalog.Find("US", "Chicago")
	if !ok {
		t.Fatal("expected to find US/Chicago")
	}
	if pos.Lat() != 41.85003 || pos.Lon() != -87.65005 {
		t.Errorf("unexpected position for Chicago: (%g, %g)", pos.Lat(), pos.Lon())
	}

	// City names match case-insensitively.
	if _, ok := catalog.Find("RU", "mOsCoW"); !ok {
		t.Error("city lookup should be case-insensitive")
	}

	// Country codes match exactly.
	if _, ok := catalog.Find("us", "Chicago"); ok {
		t.Error("country lookup should be case-sensitive")
	}

	if _, ok := catalog.Find("US", "Sanity"); ok {
		t.Error("unknown city should not resolve")
	}
}

func TestCatalogParseError(t *testing.T) {
	if _, err := parseCatalog([]byte("not json")); err == nil {
		t.Error("expected error for malformed dataset")
	}
}
