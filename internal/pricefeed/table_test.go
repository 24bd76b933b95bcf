package pricefeed

import (
	"reflect"
	"testing"

	"currency-swap/internal/domain"
)

func TestIngest_LatestObservationWins(t *testing.T) {
	table := Ingest([]RawEntry{
		{Currency: "ETH", Price: 1600, Date: "2023-08-29T07:10:52.000Z"},
		{Currency: "ETH", Price: 1650, Date: "2023-08-29T09:10:52.000Z"},
		{Currency: "ETH", Price: 1500, Date: "2023-08-29T08:10:52.000Z"},
	})

	entry, ok := table.Lookup("ETH")
	if !ok {
		t.Fatal("ETH missing from table")
	}
	if got := entry.Price.String(); got != "1650" {
		t.Errorf("Expected latest price 1650, got %s", got)
	}
	if table.Len() != 1 {
		t.Errorf("Expected 1 currency, got %d", table.Len())
	}
}

func TestIngest_UnparseableDateNeverReplaces(t *testing.T) {
	table := Ingest([]RawEntry{
		{Currency: "BTC", Price: 26000, Date: "2023-08-29T07:10:52.000Z"},
		{Currency: "BTC", Price: 1, Date: "not-a-date"},
	})

	entry, _ := table.Lookup("BTC")
	if got := entry.Price.String(); got != "26000" {
		t.Errorf("Unparseable date displaced a valid entry: price %s", got)
	}
}

func TestIngest_UnparseableDateStillDiscovers(t *testing.T) {
	// A currency whose only observation has a bad date is still listed;
	// it just sorts as earliest-possible for dedupe.
	table := Ingest([]RawEntry{
		{Currency: "LUNA", Price: 0.5, Date: "garbage"},
	})
	if !table.Has("LUNA") {
		t.Error("Currency with unparseable date should still be discovered")
	}
}

func TestIngest_DropsInvalidEntries(t *testing.T) {
	table := Ingest([]RawEntry{
		{Currency: "", Price: 10, Date: "2023-08-29T07:10:52.000Z"},
		{Currency: "ZERO", Price: 0, Date: "2023-08-29T07:10:52.000Z"},
		{Currency: "NEG", Price: -3, Date: "2023-08-29T07:10:52.000Z"},
		{Currency: "OK", Price: 1, Date: "2023-08-29T07:10:52.000Z"},
	})
	if got := table.Currencies(); !reflect.DeepEqual(got, []string{"OK"}) {
		t.Errorf("Expected only OK, got %v", got)
	}
}

func TestTable_FirstSeenOrder(t *testing.T) {
	table := Ingest([]RawEntry{
		{Currency: "USD", Price: 1, Date: "2023-08-29T07:10:52.000Z"},
		{Currency: "ETH", Price: 1600, Date: "2023-08-29T07:10:52.000Z"},
		{Currency: "USD", Price: 1.01, Date: "2023-08-29T09:10:52.000Z"},
		{Currency: "BTC", Price: 26000, Date: "2023-08-29T07:10:52.000Z"},
	})

	want := []string{"USD", "ETH", "BTC"}
	if got := table.Currencies(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected order %v, got %v", want, got)
	}
}

func TestTable_DefaultPair(t *testing.T) {
	empty := Ingest(nil)
	if pair := empty.DefaultPair(); pair.Complete() {
		t.Errorf("Empty table should yield empty pair, got %+v", pair)
	}

	single := Ingest([]RawEntry{{Currency: "ETH", Price: 1600, Date: "2023-08-29T07:10:52.000Z"}})
	if pair := single.DefaultPair(); pair.From != "ETH" || pair.To != "ETH" {
		t.Errorf("Single-currency table should select it twice, got %+v", pair)
	}

	two := Ingest([]RawEntry{
		{Currency: "ETH", Price: 1600, Date: "2023-08-29T07:10:52.000Z"},
		{Currency: "BTC", Price: 26000, Date: "2023-08-29T07:10:52.000Z"},
	})
	if pair := two.DefaultPair(); pair.From != "ETH" || pair.To != "BTC" {
		t.Errorf("Expected ETH/BTC, got %+v", pair)
	}
}

func TestTable_Filter(t *testing.T) {
	table := Ingest([]RawEntry{
		{Currency: "ETH", Price: 1600, Date: "2023-08-29T07:10:52.000Z"},
		{Currency: "stETH", Price: 1595, Date: "2023-08-29T07:10:52.000Z"},
		{Currency: "BTC", Price: 26000, Date: "2023-08-29T07:10:52.000Z"},
	})

	if got := table.Filter("eth"); !reflect.DeepEqual(got, []string{"ETH", "stETH"}) {
		t.Errorf("Case-insensitive substring filter failed: %v", got)
	}
	if got := table.Filter(""); len(got) != 3 {
		t.Errorf("Empty query should return full table, got %v", got)
	}
	if got := table.Filter("xyz"); len(got) != 0 {
		t.Errorf("Non-matching query should return nothing, got %v", got)
	}
}

func TestStore_ReplaceWholesale(t *testing.T) {
	store := NewStore()
	if store.Snapshot().Len() != 0 {
		t.Fatal("New store should hold an empty table")
	}

	first := Ingest([]RawEntry{{Currency: "ETH", Price: 1600, Date: "2023-08-29T07:10:52.000Z"}})
	store.Replace(first)
	if store.Snapshot() != first {
		t.Error("Replace should install the new table")
	}

	// Nil replace models a failed refresh: previous table is retained.
	store.Replace(nil)
	if store.Snapshot() != first {
		t.Error("Failed refresh must retain the previous table")
	}
	if pair := store.Snapshot().DefaultPair(); pair != (domain.SelectionPair{From: "ETH", To: "ETH"}) {
		t.Errorf("Retained table should still drive defaults, got %+v", pair)
	}
}
