// Package report assembles the dashboard summary: one point-in-time snapshot
// of counts, balances and trailing series. Read-only; it never blocks writers
// and does not promise a single atomic snapshot across its queries.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"frota/models"
	"frota/pkg/money"
)

type StatusCount struct {
	Status models.VehicleStatus `json:"status"`
	Count  int64                `json:"count"`
}

type ValuePoint struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

type RentSeriesPoint struct {
	Label     string          `json:"label"`
	Due       decimal.Decimal `json:"due"`
	Collected decimal.Decimal `json:"collected"`
}

type PartnerBalance struct {
	Partner           string          `json:"partner"`
	ContributionTotal decimal.Decimal `json:"contribution_total"`
	WithdrawalTotal   decimal.Decimal `json:"withdrawal_total"`
	Balance           decimal.Decimal `json:"balance"`
}

type Summary struct {
	TotalVehiclesStock     int64           `json:"total_vehicles_stock"`
	VehiclesRented         int64           `json:"vehicles_rented"`
	VehiclesSoldYTD        int64           `json:"vehicles_sold_ytd"`
	CapitalInTotal         decimal.Decimal `json:"capital_in_total"`
	CapitalOutTotal        decimal.Decimal `json:"capital_out_total"`
	RentCollectedYTD       decimal.Decimal `json:"rent_collected_ytd"`
	ProfitRealizedSalesYTD decimal.Decimal `json:"profit_realized_sales_ytd"`
	OutstandingRentTotal   decimal.Decimal `json:"outstanding_rent_total"`
	OpenRentPayments       int             `json:"open_rent_payments"`
	CashBalance            decimal.Decimal `json:"cash_balance"`

	VehicleStatusBreakdown    []StatusCount     `json:"vehicle_status_breakdown"`
	RentCollectionLast6Months []RentSeriesPoint `json:"rent_collection_last_6_months"`
	ExpensesLast6Months       []ValuePoint      `json:"expenses_last_6_months"`
	ExpensesByCategoryYTD     []ValuePoint      `json:"expenses_by_category_ytd"`
	CapitalBalanceByPartner   []PartnerBalance  `json:"capital_balance_by_partner"`
}

type monthKey struct {
	Year  int
	Month time.Month
}

func monthStart(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
}

// recentMonthStarts returns the first day of each of the trailing n calendar
// months ending with the month containing today, in chronological order.
func recentMonthStarts(today time.Time, n int) []time.Time {
	current := monthStart(today)
	starts := make([]time.Time, n)
	for i := n - 1; i >= 0; i-- {
		starts[i] = current
		current = current.AddDate(0, -1, 0)
	}
	return starts
}

func monthLabel(start time.Time) string {
	return start.Format("Jan/06")
}

func keyOf(t time.Time) monthKey {
	return monthKey{Year: t.Year(), Month: t.Month()}
}

// buildRentSeries zero-fills one point per month; months with no rows yield
// zero values, never absent points.
func buildRentSeries(starts []time.Time, due, collected map[monthKey]decimal.Decimal) []RentSeriesPoint {
	points := make([]RentSeriesPoint, 0, len(starts))
	for _, start := range starts {
		k := keyOf(start)
		points = append(points, RentSeriesPoint{
			Label:     monthLabel(start),
			Due:       money.Round(due[k]),
			Collected: money.Round(collected[k]),
		})
	}
	return points
}

func buildValueSeries(starts []time.Time, values map[monthKey]decimal.Decimal) []ValuePoint {
	points := make([]ValuePoint, 0, len(starts))
	for _, start := range starts {
		points = append(points, ValuePoint{
			Label: monthLabel(start),
			Value: money.Round(values[keyOf(start)]),
		})
	}
	return points
}

// statusBreakdown emits every enumerated status, zero-count ones included.
func statusBreakdown(counts map[models.VehicleStatus]int64) []StatusCount {
	out := make([]StatusCount, 0, 3)
	for _, st := range models.AllVehicleStatuses() {
		out = append(out, StatusCount{Status: st, Count: counts[st]})
	}
	return out
}

type partnerTotalsRow struct {
	Partner string
	Type    models.CapitalType
	Total   decimal.Decimal
}

// partnerBalances folds grouped capital totals into per-partner balances,
// sorted by partner name.
func partnerBalances(rows []partnerTotalsRow) []PartnerBalance {
	type totals struct{ in, out decimal.Decimal }
	byPartner := make(map[string]*totals)
	for _, row := range rows {
		t, ok := byPartner[row.Partner]
		if !ok {
			t = &totals{in: decimal.Zero, out: decimal.Zero}
			byPartner[row.Partner] = t
		}
		if row.Type == models.CapitalContribution {
			t.in = t.in.Add(row.Total)
		} else {
			t.out = t.out.Add(row.Total)
		}
	}
	names := make([]string, 0, len(byPartner))
	for name := range byPartner {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]PartnerBalance, 0, len(names))
	for _, name := range names {
		t := byPartner[name]
		out = append(out, PartnerBalance{
			Partner:           name,
			ContributionTotal: money.Round(t.in),
			WithdrawalTotal:   money.Round(t.out),
			Balance:           money.Round(t.in.Sub(t.out)),
		})
	}
	return out
}

func sumWhere(db *gorm.DB, model interface{}, column, cond string, args ...interface{}) (decimal.Decimal, error) {
	var res struct{ Total decimal.Decimal }
	err := db.Model(model).
		Select(fmt.Sprintf("COALESCE(SUM(%s), 0) AS total", column)).
		Where(cond, args...).
		Scan(&res).Error
	return res.Total, err
}

// GetSummary builds the dashboard snapshot for a reference date.
func GetSummary(db *gorm.DB, today time.Time) (*Summary, error) {
	yearStart := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
	s := &Summary{}

	// Scalar vehicle counts.
	if err := db.Model(&models.Vehicle{}).Where("status = ?", models.VehicleStock).
		Count(&s.TotalVehiclesStock).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Vehicle{}).Where("status = ?", models.VehicleRented).
		Count(&s.VehiclesRented).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Vehicle{}).
		Where("status = ? AND sale_date >= ? AND sale_date <= ?", models.VehicleSold, yearStart, today).
		Count(&s.VehiclesSoldYTD).Error; err != nil {
		return nil, err
	}

	// Capital totals, all-time.
	var err error
	if s.CapitalInTotal, err = sumWhere(db, &models.CapitalEntry{}, "amount",
		"type = ?", models.CapitalContribution); err != nil {
		return nil, err
	}
	s.CapitalInTotal = money.Round(s.CapitalInTotal)
	if s.CapitalOutTotal, err = sumWhere(db, &models.CapitalEntry{}, "amount",
		"type = ?", models.CapitalWithdrawal); err != nil {
		return nil, err
	}
	s.CapitalOutTotal = money.Round(s.CapitalOutTotal)

	// Rent collected in the year-to-date window.
	if s.RentCollectedYTD, err = sumWhere(db, &models.RentPayment{}, "paid_amount",
		"payment_date IS NOT NULL AND payment_date >= ? AND payment_date <= ?", yearStart, today); err != nil {
		return nil, err
	}
	s.RentCollectedYTD = money.Round(s.RentCollectedYTD)

	// Realized profit over vehicles sold YTD; vehicles without a profit figure
	// are skipped, the sum rounds once.
	var sold []models.Vehicle
	if err := db.Preload("Expenses").
		Where("status = ? AND sale_date >= ? AND sale_date <= ?", models.VehicleSold, yearStart, today).
		Find(&sold).Error; err != nil {
		return nil, err
	}
	profitTotal := decimal.Zero
	for i := range sold {
		sold[i].SyncStatus()
		if p := sold[i].Profit(); p != nil {
			profitTotal = profitTotal.Add(*p)
		}
	}
	s.ProfitRealizedSalesYTD = money.Round(profitTotal)

	// Cash balance, all-time.
	cashIn, err := sumWhere(db, &models.CashTxn{}, "amount", "type = ?", models.CashInflow)
	if err != nil {
		return nil, err
	}
	cashOut, err := sumWhere(db, &models.CashTxn{}, "amount", "type = ?", models.CashOutflow)
	if err != nil {
		return nil, err
	}
	s.CashBalance = money.Round(cashIn.Sub(cashOut))

	// Outstanding rent: positive balances over open payments.
	var openRows []struct {
		DueAmount  decimal.Decimal
		LateFee    decimal.Decimal
		PaidAmount decimal.Decimal
	}
	if err := db.Model(&models.RentPayment{}).
		Select("due_amount, late_fee, paid_amount").
		Where("due_amount + late_fee > paid_amount").
		Scan(&openRows).Error; err != nil {
		return nil, err
	}
	outstanding := decimal.Zero
	for _, row := range openRows {
		balance := row.DueAmount.Add(row.LateFee).Sub(row.PaidAmount)
		if balance.IsPositive() {
			outstanding = outstanding.Add(balance)
		}
	}
	s.OutstandingRentTotal = money.Round(outstanding)
	s.OpenRentPayments = len(openRows)

	// Vehicle status breakdown with zero-count statuses represented.
	var statusRows []struct {
		Status models.VehicleStatus
		Count  int64
	}
	if err := db.Model(&models.Vehicle{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&statusRows).Error; err != nil {
		return nil, err
	}
	statusCounts := make(map[models.VehicleStatus]int64, len(statusRows))
	for _, row := range statusRows {
		statusCounts[row.Status] = row.Count
	}
	s.VehicleStatusBreakdown = statusBreakdown(statusCounts)

	// Trailing six calendar months, bucketed in Go the way the rows relate:
	// due amounts by period start, collections by payment date, expenses by
	// expense date.
	starts := recentMonthStarts(today, 6)
	rangeStart := starts[0]

	dueMap := make(map[monthKey]decimal.Decimal)
	collectedMap := make(map[monthKey]decimal.Decimal)
	expenseMap := make(map[monthKey]decimal.Decimal)

	var dueRows []struct {
		PeriodStart time.Time
		DueAmount   decimal.Decimal
		LateFee     decimal.Decimal
	}
	if err := db.Model(&models.RentPayment{}).
		Select("period_start, due_amount, late_fee").
		Where("period_start >= ?", rangeStart).
		Scan(&dueRows).Error; err != nil {
		return nil, err
	}
	for _, row := range dueRows {
		k := keyOf(row.PeriodStart)
		dueMap[k] = dueMap[k].Add(row.DueAmount).Add(row.LateFee)
	}

	var paidRows []struct {
		PaymentDate time.Time
		PaidAmount  decimal.Decimal
	}
	if err := db.Model(&models.RentPayment{}).
		Select("payment_date, paid_amount").
		Where("payment_date IS NOT NULL AND payment_date >= ?", rangeStart).
		Scan(&paidRows).Error; err != nil {
		return nil, err
	}
	for _, row := range paidRows {
		k := keyOf(row.PaymentDate)
		collectedMap[k] = collectedMap[k].Add(row.PaidAmount)
	}

	var expenseRows []struct {
		Date   time.Time
		Amount decimal.Decimal
	}
	if err := db.Model(&models.Expense{}).
		Select("date, amount").
		Where("date >= ?", rangeStart).
		Scan(&expenseRows).Error; err != nil {
		return nil, err
	}
	for _, row := range expenseRows {
		k := keyOf(row.Date)
		expenseMap[k] = expenseMap[k].Add(row.Amount)
	}

	s.RentCollectionLast6Months = buildRentSeries(starts, dueMap, collectedMap)
	s.ExpensesLast6Months = buildValueSeries(starts, expenseMap)

	// Expense totals per category, year-to-date; empty categories omitted.
	var categoryRows []struct {
		Category string
		Total    decimal.Decimal
	}
	if err := db.Model(&models.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("date >= ? AND date <= ?", yearStart, today).
		Group("category").
		Order("category").
		Scan(&categoryRows).Error; err != nil {
		return nil, err
	}
	for _, row := range categoryRows {
		s.ExpensesByCategoryYTD = append(s.ExpensesByCategoryYTD, ValuePoint{
			Label: row.Category,
			Value: money.Round(row.Total),
		})
	}

	// Capital balances per partner, sorted by name.
	var capitalRows []partnerTotalsRow
	if err := db.Model(&models.CapitalEntry{}).
		Select("partners.name AS partner, capital_entries.type AS type, COALESCE(SUM(capital_entries.amount), 0) AS total").
		Joins("JOIN partners ON partners.id = capital_entries.partner_id").
		Group("partners.name, capital_entries.type").
		Scan(&capitalRows).Error; err != nil {
		return nil, err
	}
	s.CapitalBalanceByPartner = partnerBalances(capitalRows)

	return s, nil
}
