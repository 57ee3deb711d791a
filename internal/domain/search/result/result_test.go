package result

import (
	"testing"

	"github.com/kailas-cloud/storefront/internal/domain/item"
)

func TestScored_ItemAccessorsChain(t *testing.T) {
	price := 9.5
	it, err := item.NewProduct(item.Common{ID: "p-1", Name: "Blue Mug"}, &price, nil)
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}

	rs := []Scored{New(it, 1, 2)}
	if got := rs[0].Item().ID(); got != "p-1" {
		t.Errorf("ID = %q, want p-1", got)
	}
	if p, ok := rs[0].Item().Price(); !ok || p != 9.5 {
		t.Errorf("Price = %v, %v, want 9.5, true", p, ok)
	}
	if rs[0].Rank() != 1 || rs[0].Score() != 2 {
		t.Errorf("rank/score = %d/%d, want 1/2", rs[0].Rank(), rs[0].Score())
	}
}
