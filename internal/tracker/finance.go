package tracker

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DefaultMoneyRules is the personal-finance checklist offered to new users.
var DefaultMoneyRules = []string{
	"pay_yourself_first",
	"emergency_fund",
	"no_consumer_debt",
	"automate_savings",
	"invest_monthly",
	"track_spending",
}

type FinanceInput struct {
	Type        FinanceType
	Category    string
	Amount      int64
	Description string
	Date        time.Time
}

func (in FinanceInput) normalize(now time.Time) (FinanceInput, error) {
	if _, err := ParseFinanceType(string(in.Type)); err != nil {
		return in, err
	}
	if in.Amount <= 0 {
		return in, fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		in.Category = "other"
	}
	if in.Date.IsZero() {
		in.Date = now
	}
	return in, nil
}

func findFinanceEntry(st *State, id string) int {
	for i := range st.Finance.Entries {
		if st.Finance.Entries[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) AddFinanceEntry(in FinanceInput) (FinanceEntry, error) {
	in, err := in.normalize(t.clock())
	if err != nil {
		return FinanceEntry{}, err
	}
	var created FinanceEntry
	err = t.mutate(func(st *State) error {
		created = FinanceEntry{
			ID:          t.newID(),
			Type:        in.Type,
			Category:    in.Category,
			Amount:      in.Amount,
			Description: in.Description,
			Date:        in.Date,
		}
		st.Finance.Entries = append(st.Finance.Entries, created)
		t.award(st, Points.FinanceEntry)
		return nil
	})
	return created, err
}

// UpdateFinanceEntry replaces the entry's fields. A zero Date keeps the
// entry's original date. Editing never awards points.
func (t *Tracker) UpdateFinanceEntry(id string, in FinanceInput) error {
	in, err := in.normalize(time.Time{})
	if err != nil {
		return err
	}
	return t.mutate(func(st *State) error {
		i := findFinanceEntry(st, id)
		if i < 0 {
			return notFound("finance entry", id)
		}
		e := &st.Finance.Entries[i]
		e.Type = in.Type
		e.Category = in.Category
		e.Amount = in.Amount
		e.Description = in.Description
		if !in.Date.IsZero() {
			e.Date = in.Date
		}
		return nil
	})
}

func (t *Tracker) DeleteFinanceEntry(id string) error {
	return t.mutate(func(st *State) error {
		i := findFinanceEntry(st, id)
		if i < 0 {
			return notFound("finance entry", id)
		}
		st.Finance.Entries = append(st.Finance.Entries[:i], st.Finance.Entries[i+1:]...)
		return nil
	})
}

// ToggleMoneyRule flips a checklist rule. Checking a rule awards points;
// unchecking takes nothing back.
func (t *Tracker) ToggleMoneyRule(key string) (bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, fmt.Errorf("%w: rule key is empty", ErrInvalid)
	}
	var on bool
	err := t.mutate(func(st *State) error {
		if st.Finance.MoneyRules == nil {
			st.Finance.MoneyRules = map[string]bool{}
		}
		on = !st.Finance.MoneyRules[key]
		st.Finance.MoneyRules[key] = on
		if on {
			t.award(st, Points.MoneyRule)
		}
		return nil
	})
	return on, err
}

// FinanceTotals are sums in cents per entry type.
type FinanceTotals struct {
	Income      int64
	Expenses    int64
	Savings     int64
	Investments int64
}

// Net is income minus everything that left the account.
func (f FinanceTotals) Net() int64 {
	return f.Income - f.Expenses - f.Savings - f.Investments
}

// SavingsRate is the whole percentage of income saved or invested. It is 0
// without income.
func (f FinanceTotals) SavingsRate() int {
	if f.Income <= 0 {
		return 0
	}
	return int((f.Savings + f.Investments) * 100 / f.Income)
}

// SummarizeFinance totals entries dated within [from, to). Zero bounds are open.
func SummarizeFinance(entries []FinanceEntry, from, to time.Time) FinanceTotals {
	var out FinanceTotals
	for _, e := range entries {
		if !from.IsZero() && e.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !e.Date.Before(to) {
			continue
		}
		switch e.Type {
		case FinanceIncome:
			out.Income += e.Amount
		case FinanceExpense:
			out.Expenses += e.Amount
		case FinanceSaving:
			out.Savings += e.Amount
		case FinanceInvestment:
			out.Investments += e.Amount
		}
	}
	return out
}

// FinanceSummary totals every recorded entry.
func (t *Tracker) FinanceSummary() FinanceTotals {
	st := t.Snapshot()
	return SummarizeFinance(st.Finance.Entries, time.Time{}, time.Time{})
}

// FormatCents renders cents as a decimal amount, e.g. -1234 as "-12.34".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// maxWholeUnits is the largest whole amount whose cents, fraction included,
// still fit in an int64.
const maxWholeUnits = (math.MaxInt64 - 99) / 100

// ParseCents parses "12", "12.3" or "12.34" into cents.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || (hasFrac && (frac == "" || len(frac) > 2)) {
		return 0, fmt.Errorf("%w: amount %q", ErrInvalid, s)
	}
	var cents int64
	for _, r := range whole {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: amount %q", ErrInvalid, s)
		}
		d := int64(r - '0')
		if cents > (maxWholeUnits-d)/10 {
			return 0, fmt.Errorf("%w: amount %q is too large", ErrInvalid, s)
		}
		cents = cents*10 + d
	}
	cents *= 100
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		for i, r := range frac {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("%w: amount %q", ErrInvalid, s)
			}
			if i == 0 {
				cents += int64(r-'0') * 10
			} else {
				cents += int64(r - '0')
			}
		}
	}
	if neg {
		cents = -cents
	}
	return cents, nil
}
