// Package core provides the domain model of the finance tracker.
//
// This file contains the balance type: a signed amount tagged with a
// Surplus/Deficit verdict, rendered the way the tracker reports it.
package core

import "strconv"

// Verdict tags a balance as non-negative (Surplus) or negative (Deficit).
type Verdict string

const (
	Surplus Verdict = "Surplus"
	Deficit Verdict = "Deficit"
)

// Balance is the result of summing income amounts minus expense amounts
// over some aggregation window.
type Balance struct {
	Amount  float64 `json:"amount"`
	Verdict Verdict `json:"verdict"`
}

// NewBalance tags an amount: zero counts as a surplus.
func NewBalance(amount float64) Balance {
	if amount >= 0 {
		return Balance{Amount: amount, Verdict: Surplus}
	}
	return Balance{Amount: amount, Verdict: Deficit}
}

func (b Balance) String() string {
	return strconv.FormatFloat(b.Amount, 'f', -1, 64) + " " + string(b.Verdict)
}
