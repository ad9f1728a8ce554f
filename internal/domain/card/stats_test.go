package card

import (
	"testing"
	"time"
)

func TestTotals(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		cards []Card
		want  Stats
	}{
		{
			name:  "Empty Collection",
			cards: nil,
			want:  Stats{},
		},
		{
			name: "Two Cards",
			cards: []Card{
				{Name: "A", StatementBalance: 100, MinimumPayment: 10, DueDate: now.AddDate(0, 0, 2)},
				{Name: "B", StatementBalance: 50, MinimumPayment: 5, DueDate: now.AddDate(0, 0, 10)},
			},
			want: Stats{TotalBalance: 150, TotalMinimumDue: 15},
		},
		{
			name: "Minimum Due Is Not Date Filtered",
			cards: []Card{
				{Name: "A", StatementBalance: 100, MinimumPayment: 10, DueDate: now.AddDate(0, 2, 0)},
				{Name: "B", StatementBalance: 50, MinimumPayment: 5},
			},
			want: Stats{TotalBalance: 150, TotalMinimumDue: 15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Totals(tt.cards); got != tt.want {
				t.Errorf("Totals() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTotalsAssociative(t *testing.T) {
	a := []Card{{StatementBalance: 100, MinimumPayment: 10}, {StatementBalance: 25.5, MinimumPayment: 2.5}}
	b := []Card{{StatementBalance: 50, MinimumPayment: 5}}

	concat := Totals(append(append([]Card{}, a...), b...))
	combined := Combine(Totals(a), Totals(b))

	if concat != combined {
		t.Errorf("Totals(a ++ b) = %+v, Combine = %+v", concat, combined)
	}
}
