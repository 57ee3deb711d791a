package result

import "github.com/kailas-cloud/storefront/internal/domain/item"

// Scored is a ranked similarity hit.
type Scored struct {
	item  item.Item
	rank  int
	score int
}

// New creates a scored result. Rank is 1-based.
func New(it item.Item, rank, score int) Scored {
	return Scored{item: it, rank: rank, score: score}
}

// Item returns the matched catalog item.
func (s *Scored) Item() *item.Item { return &s.item }

// Rank returns the 1-based position in the ranked sequence.
func (s *Scored) Rank() int { return s.rank }

// Score returns the number of reference tokens the item matched.
func (s *Scored) Score() int { return s.score }
