package domain

// PricePoint is a single day in the historical price series.
type PricePoint struct {
	Date   string  // calendar day, DateLayout
	Price  float64 // closing price, finite and positive
	Volume float64 // traded volume, 0 when upstream omits it
}

// MarketSnapshot holds the current quote and the historical series.
// History is strictly ascending by date with unique dates.
type MarketSnapshot struct {
	CurrentPrice float64
	History      []PricePoint
}

// LastDate returns the date of the newest history point, or "" when empty.
func (s *MarketSnapshot) LastDate() string {
	if len(s.History) == 0 {
		return ""
	}
	return s.History[len(s.History)-1].Date
}

// Clone returns a deep copy so readers can never alias store-owned state.
func (s *MarketSnapshot) Clone() MarketSnapshot {
	out := MarketSnapshot{CurrentPrice: s.CurrentPrice}
	if len(s.History) > 0 {
		out.History = make([]PricePoint, len(s.History))
		copy(out.History, s.History)
	}
	return out
}
