package supplier

import "testing"

func TestDecodeList(t *testing.T) {
	data := []byte(`[{"supplierId":"s1","businessName":"Cup Co","city":"Riyadh","avgRating":4.5,"ratingsCount":10}]`)
	got, err := DecodeList(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 supplier, got %d", len(got))
	}
	if got[0].ID() != "s1" || got[0].BusinessName() != "Cup Co" || got[0].City() != "Riyadh" {
		t.Errorf("unexpected supplier: %+v", got[0])
	}
	if got[0].AvgRating() != 4.5 || got[0].RatingsCount() != 10 {
		t.Errorf("unexpected ratings: %v %d", got[0].AvgRating(), got[0].RatingsCount())
	}
}

func TestDecodeList_MissingID(t *testing.T) {
	if _, err := DecodeList([]byte(`[{"businessName":"x"}]`)); err == nil {
		t.Fatal("expected error for missing supplierId")
	}
}
