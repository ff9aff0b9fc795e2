// Package stats computes unit-price statistics over stock records.
//
// The aggregation is a pure function: it never mutates its input and the
// same input always produces the same output, so callers can re-run it on
// every dependency change (record list or date filter).
package stats

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"time"
)

// RecordType classifies a stock record. The same enumeration is carried
// through the local mirror and the backend ledger, so no side of the system
// has to guess a default.
type RecordType string

const (
	// TypePurchase is priced inbound stock (a buy).
	TypePurchase RecordType = "PURCHASE"
	// TypeSale is outbound stock; price may be absent for unpriced outflows.
	TypeSale RecordType = "SALE"
	// TypeInbound is unpriced inbound stock (e.g. a transfer in). It counts
	// toward inbound quantity only and never participates in pricing.
	TypeInbound RecordType = "INBOUND"
)

// Record is the minimal view of a stock record the aggregator needs.
// Price is the total amount of the line, not a per-unit price; the unit
// price of one record is Price/Count.
type Record struct {
	Type  RecordType
	Date  string
	Price *int64
	Count int64
}

// RangeMode selects how the date filter is applied.
type RangeMode string

const (
	// RangeAll disables date filtering.
	RangeAll RangeMode = "ALL"
	// RangeCustom keeps records with day in [From, To], inclusive.
	RangeCustom RangeMode = "CUSTOM"
)

// Filter is a date range filter over day keys (YYYY-MM-DD).
type Filter struct {
	Mode RangeMode
	From string
	To   string
}

// DayStat holds per-day accumulators and derived unit prices for one
// calendar day bucket.
type DayStat struct {
	Day string

	PurchaseAmount    int64
	PurchaseQty       int64
	PricedPurchaseQty int64
	SaleAmount        int64
	SaleQty           int64
	PricedSaleQty     int64
	InboundQty        int64

	// PurchaseUnit is round(PurchaseAmount/PricedPurchaseQty); nil when the
	// day has zero priced purchase quantity. SaleUnit likewise over priced
	// sales.
	PurchaseUnit *int64
	SaleUnit     *int64
}

// Summary is the aggregate over all day buckets in the filtered range.
//
// Min/Max unit prices are running extrema over per-record unit prices
// (price/count of a single record), not over the daily buckets. Averages
// are round(total priced amount / total priced quantity).
type Summary struct {
	Days []DayStat

	PurchaseAmount    int64
	PurchaseQty       int64
	PricedPurchaseQty int64
	SaleAmount        int64
	SaleQty           int64
	PricedSaleQty     int64
	InboundQty        int64

	AvgPurchaseUnit *int64
	MinPurchaseUnit *int64
	MaxPurchaseUnit *int64
	AvgSaleUnit     *int64
	MinSaleUnit     *int64
	MaxSaleUnit     *int64

	// MissingPurchaseQty is max(0, InboundQty-PurchaseQty): inbound stock
	// that no priced purchase accounts for. MissingSaleQty is
	// max(0, SaleQty-PricedSaleQty): outbound stock sold without a price.
	// Both are reporting heuristics, not a ledger reconciliation.
	MissingPurchaseQty int64
	MissingSaleQty     int64
}

var isoDayPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// DayKey normalizes any date-like input to its YYYY-MM-DD calendar day.
// ISO-prefixed strings are truncated as-is; everything else goes through
// time parsing with UTC truncation.
func DayKey(s string) (string, error) {
	if isoDayPrefix.MatchString(s) {
		return s[:10], nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unparseable date %q", s)
}

// Aggregate filters records to the given range, buckets them by calendar
// day, and computes per-day and aggregate unit prices.
func Aggregate(records []Record, f Filter) (*Summary, error) {
	days := map[string]*DayStat{}
	s := &Summary{}

	for _, r := range records {
		day, err := DayKey(r.Date)
		if err != nil {
			return nil, err
		}
		if f.Mode == RangeCustom && (day < f.From || day > f.To) {
			continue
		}

		d, ok := days[day]
		if !ok {
			d = &DayStat{Day: day}
			days[day] = d
		}

		switch r.Type {
		case TypeInbound:
			d.InboundQty += r.Count
			s.InboundQty += r.Count
		case TypePurchase:
			d.PurchaseQty += r.Count
			s.PurchaseQty += r.Count
			if r.Price != nil {
				d.PurchaseAmount += *r.Price
				d.PricedPurchaseQty += r.Count
				s.PurchaseAmount += *r.Price
				s.PricedPurchaseQty += r.Count
				trackExtrema(&s.MinPurchaseUnit, &s.MaxPurchaseUnit, unitPrice(*r.Price, r.Count))
			}
		case TypeSale:
			d.SaleQty += r.Count
			s.SaleQty += r.Count
			if r.Price != nil {
				d.SaleAmount += *r.Price
				d.PricedSaleQty += r.Count
				s.SaleAmount += *r.Price
				s.PricedSaleQty += r.Count
				trackExtrema(&s.MinSaleUnit, &s.MaxSaleUnit, unitPrice(*r.Price, r.Count))
			}
		default:
			return nil, fmt.Errorf("unknown record type %q", r.Type)
		}
	}

	for _, d := range days {
		if d.PricedPurchaseQty > 0 {
			d.PurchaseUnit = ptr(unitPrice(d.PurchaseAmount, d.PricedPurchaseQty))
		}
		if d.PricedSaleQty > 0 {
			d.SaleUnit = ptr(unitPrice(d.SaleAmount, d.PricedSaleQty))
		}
		s.Days = append(s.Days, *d)
	}
	sort.Slice(s.Days, func(i, j int) bool { return s.Days[i].Day < s.Days[j].Day })

	if s.PricedPurchaseQty > 0 {
		s.AvgPurchaseUnit = ptr(unitPrice(s.PurchaseAmount, s.PricedPurchaseQty))
	}
	if s.PricedSaleQty > 0 {
		s.AvgSaleUnit = ptr(unitPrice(s.SaleAmount, s.PricedSaleQty))
	}

	s.MissingPurchaseQty = max64(0, s.InboundQty-s.PurchaseQty)
	s.MissingSaleQty = max64(0, s.SaleQty-s.PricedSaleQty)

	return s, nil
}

func unitPrice(amount, qty int64) int64 {
	return int64(math.Round(float64(amount) / float64(qty)))
}

func trackExtrema(min, max **int64, unit int64) {
	if *min == nil || unit < **min {
		*min = ptr(unit)
	}
	if *max == nil || unit > **max {
		*max = ptr(unit)
	}
}

func ptr(v int64) *int64 { return &v }

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
