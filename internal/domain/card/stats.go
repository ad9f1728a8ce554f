package card

// Stats holds the dashboard summary figures.
type Stats struct {
	TotalBalance    float64 `json:"totalBalance"`
	TotalMinimumDue float64 `json:"totalMinimumDue"`
}

// Totals reduces a card collection into summary statistics. Both sums
// run over the whole collection; the minimum-due figure is not scoped
// to the current month. An empty collection yields zero totals.
func Totals(cards []Card) Stats {
	var s Stats
	for _, c := range cards {
		s.TotalBalance += c.StatementBalance
		s.TotalMinimumDue += c.MinimumPayment
	}
	return s
}

// Combine merges two partial summaries. Totals is associative under
// concatenation: Totals(a ++ b) == Combine(Totals(a), Totals(b)).
func Combine(a, b Stats) Stats {
	return Stats{
		TotalBalance:    a.TotalBalance + b.TotalBalance,
		TotalMinimumDue: a.TotalMinimumDue + b.TotalMinimumDue,
	}
}
