package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/superiorbooks/backend-pos/internal/closure"
	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/events"
	"github.com/superiorbooks/backend-pos/internal/invoice"
	"github.com/superiorbooks/backend-pos/internal/ledger"
	"github.com/superiorbooks/backend-pos/internal/pricing"
)

// Summary is the accrual-basis financial picture for a date range. Only
// activity swept into received closures counts; pending drawers are still the
// operator's responsibility.
type Summary struct {
	Range         common.DateRange `json:"range"`
	TotalRevenue  pricing.Money    `json:"totalRevenue"`
	TotalRefunds  pricing.Money    `json:"totalRefunds"`
	NetRevenue    pricing.Money    `json:"netRevenue"`
	TotalExpenses pricing.Money    `json:"totalExpenses"`
	NetProfit     pricing.Money    `json:"netProfit"`
	SalesCount    int              `json:"salesCount"`
	RefundsCount  int              `json:"refundsCount"`
	ExpensesCount int              `json:"expensesCount"`

	Sales    []invoice.Invoice `json:"sales"`
	Refunds  []ledger.Refund   `json:"refunds"`
	Expenses []Expense         `json:"expenses"`
}

// Service aggregates received closures, the sale ledger, and expenses into
// accrual summaries.
type Service struct {
	Ledger   *ledger.Store
	Closures *closure.Store
	Expenses *ExpenseStore
	Events   *events.Bus
	Now      func() time.Time
}

// Summarize builds the accrual summary for the range. Revenue is attributed
// to each sale's own date. A refund is attributed to its original sale's
// date, so a day-three refund of a day-one sale lands on day one; refunds
// whose original sale is unknown are excluded.
func (s *Service) Summarize(dateRange common.DateRange) Summary {
	sum := Summary{
		Range:    dateRange,
		Sales:    []invoice.Invoice{},
		Refunds:  []ledger.Refund{},
		Expenses: []Expense{},
	}

	receivedSales := make(map[string]bool)
	receivedRefunds := make(map[string]bool)
	for _, c := range s.Closures.Received() {
		for _, id := range c.SalesInvoices {
			receivedSales[id] = true
		}
		for _, id := range c.RefundInvoices {
			receivedRefunds[id] = true
		}
	}

	for sale := range s.Ledger.QuerySales(ledger.SaleFilter{}) {
		if !receivedSales[sale.ID] || !dateRange.Contains(sale.Date) {
			continue
		}
		sum.TotalRevenue += sale.Total
		sum.SalesCount++
		sum.Sales = append(sum.Sales, sale)
	}

	for ref := range s.Ledger.QueryRefunds(ledger.RefundFilter{}) {
		if !receivedRefunds[ref.ID] {
			continue
		}
		original, err := s.Ledger.GetSale(ref.OriginalSaleID)
		if err != nil {
			continue
		}
		if !dateRange.Contains(original.Date) {
			continue
		}
		sum.TotalRefunds += ref.Amount
		sum.RefundsCount++
		sum.Refunds = append(sum.Refunds, ref)
	}

	for _, e := range s.Expenses.List() {
		if !dateRange.ContainsDay(e.Date) {
			continue
		}
		sum.TotalExpenses += e.Amount
		sum.ExpensesCount++
		sum.Expenses = append(sum.Expenses, e)
	}

	sum.NetRevenue = sum.TotalRevenue - sum.TotalRefunds
	sum.NetProfit = sum.NetRevenue - sum.TotalExpenses
	return sum
}

// RecordExpense stores a new expense dated today unless a day is given.
func (s *Service) RecordExpense(ctx context.Context, op common.Operator, e Expense) (Expense, error) {
	if e.Date == "" {
		e.Date = common.Day(s.now())
	}
	e.OperatorID = op.ID
	e.OperatorName = op.Name
	saved := s.Expenses.Add(e)
	if err := s.Events.Emit(ctx, events.Event{
		Topic:      events.TopicExpenseRecorded,
		Operator:   op,
		ResourceID: saved.ID,
		Detail:     fmt.Sprintf("Recorded %s expense of Rs %s", saved.Category, pricing.FormatMoney(saved.Amount)),
	}); err != nil {
		return saved, err
	}
	return saved, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
