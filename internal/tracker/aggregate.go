package tracker

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/core"
)

// A window decides whether an entry's creation time falls inside the
// aggregation period anchored at the current wall-clock time.
//
// The day and month windows compare only the calendar day-of-month and month
// number: an entry from the same month of a previous year still matches.
// That cross-year aliasing is the tracker's documented behavior and is kept
// as is.
type window func(entry, now time.Time) bool

func allTime(_, _ time.Time) bool { return true }

func sameDayOfMonth(entry, now time.Time) bool { return entry.Day() == now.Day() }

func sameMonthNumber(entry, now time.Time) bool { return entry.Month() == now.Month() }

func sameYear(entry, now time.Time) bool { return entry.Year() == now.Year() }

// ListIncome returns every income entry of the active session's user.
func (s *Service) ListIncome(ctx context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listForUser(ctx, core.KindIncome, allTime)
}

// ListExpenses returns every expense entry of the active session's user.
func (s *Service) ListExpenses(ctx context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listForUser(ctx, core.KindExpense, allTime)
}

// ListIncomeForCurrentMonth keeps income entries whose creation month number
// equals the current calendar month, regardless of year.
func (s *Service) ListIncomeForCurrentMonth(ctx context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listForUser(ctx, core.KindIncome, sameMonthNumber)
}

// ListExpensesForCurrentMonth keeps expense entries whose creation month
// number equals the current calendar month, regardless of year.
func (s *Service) ListExpensesForCurrentMonth(ctx context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listForUser(ctx, core.KindExpense, sameMonthNumber)
}

// ListTransactionsForCurrentYear merges this year's income and expense
// entries into one sequence of tagged entries. The sequence carries no
// chronological ordering guarantee.
func (s *Service) ListTransactionsForCurrentYear(ctx context.Context) ([]core.TaggedTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	incomes, err := s.listForUser(ctx, core.KindIncome, sameYear)
	if err != nil {
		return nil, err
	}
	expenses, err := s.listForUser(ctx, core.KindExpense, sameYear)
	if err != nil {
		return nil, err
	}

	merged := make([]core.TaggedTransaction, 0, len(incomes)+len(expenses))
	for _, t := range incomes {
		merged = append(merged, t.Tagged(core.KindIncome))
	}
	for _, t := range expenses {
		merged = append(merged, t.Tagged(core.KindExpense))
	}
	return merged, nil
}

// Balance is the all-time net balance of the active session's user.
func (s *Service) Balance(ctx context.Context) (core.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance(ctx, allTime)
}

// BalanceForCurrentDay nets entries whose day-of-month matches today's,
// regardless of month and year.
func (s *Service) BalanceForCurrentDay(ctx context.Context) (core.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance(ctx, sameDayOfMonth)
}

// BalanceForCurrentMonth nets entries whose month number matches the current
// one, regardless of year.
func (s *Service) BalanceForCurrentMonth(ctx context.Context) (core.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance(ctx, sameMonthNumber)
}

// BalanceForCurrentYear nets entries created in the current calendar year.
func (s *Service) BalanceForCurrentYear(ctx context.Context) (core.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance(ctx, sameYear)
}

// listForUser scans the whole table for the kind and keeps entries owned by
// the session user that fall inside the window. Fails with core.ErrNoSession
// when nobody is logged in.
func (s *Service) listForUser(ctx context.Context, kind core.Kind, within window) ([]core.Transaction, error) {
	u, err := s.session.Current()
	if err != nil {
		return nil, err
	}

	all, err := s.store.AllTransactions(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", kind, err)
	}

	now := s.now()
	out := make([]core.Transaction, 0, len(all))
	for _, t := range all {
		if t.UserID != u.ID {
			continue
		}
		// Entry and clock compare calendar fields in the same location.
		if !within(t.Time().In(now.Location()), now) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Service) balance(ctx context.Context, within window) (core.Balance, error) {
	incomes, err := s.listForUser(ctx, core.KindIncome, within)
	if err != nil {
		return core.Balance{}, err
	}
	expenses, err := s.listForUser(ctx, core.KindExpense, within)
	if err != nil {
		return core.Balance{}, err
	}

	var total float64
	for _, t := range incomes {
		total += t.Amount
	}
	for _, t := range expenses {
		total -= t.Amount
	}
	return core.NewBalance(total), nil
}
