package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/stockbook-app/stockbook/internal/stats"
)

// AddRecord collects record fields and writes a new stock record for an
// entry. Price is the line total in the smallest currency unit; a blank
// price records quantity only.
func (a *App) AddRecord(ctx context.Context) error {
	entryID, err := getSimpleText(a.reader, "Enter entry id", os.Stdout)
	if err != nil {
		return err
	}

	typeText, err := getSimpleText(a.reader, "Enter type (purchase, sale or inbound)", os.Stdout)
	if err != nil {
		return err
	}
	var recType stats.RecordType
	switch strings.ToLower(typeText) {
	case "purchase":
		recType = stats.TypePurchase
	case "sale":
		recType = stats.TypeSale
	case "inbound":
		recType = stats.TypeInbound
	default:
		log.Printf("unknown record type: %q", typeText)
		return fmt.Errorf("unknown record type %q", typeText)
	}

	date, err := getSimpleText(a.reader, "Enter date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return err
	}

	var price *int64
	total, err := GetInt(a.reader, "Enter total price (blank if unknown)", os.Stdout)
	if err != nil && !errors.Is(err, errEmptyInput) {
		log.Printf("error: %v", err)
		return err
	}
	if err == nil {
		price = &total
	}

	count, err := GetInt(a.reader, "Enter count", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	memo, err := getSimpleText(a.reader, "Enter memo (optional)", os.Stdout)
	if err != nil {
		return err
	}

	rec, err := a.records.Add(ctx, entryID, date, recType, price, count, memo)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Added %s\n", rec.ID)
	return nil
}

// EditRecord loads a record by id and rewrites date, price, count and memo
// in place. A blank answer keeps the current value.
func (a *App) EditRecord(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter record id", os.Stdout)
	if err != nil {
		return err
	}

	rec, err := a.records.Get(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	date, err := getSimpleText(a.reader, fmt.Sprintf("Enter date [%s]", rec.Date), os.Stdout)
	if err != nil {
		return err
	}
	if date != "" {
		rec.Date = date
	}

	total, err := GetInt(a.reader, fmt.Sprintf("Enter total price [%s]", fmtUnit(rec.Price)), os.Stdout)
	if err != nil && !errors.Is(err, errEmptyInput) {
		log.Printf("error: %v", err)
		return err
	}
	if err == nil {
		rec.Price = &total
	}

	count, err := GetInt(a.reader, fmt.Sprintf("Enter count [%d]", rec.Count), os.Stdout)
	if err != nil && !errors.Is(err, errEmptyInput) {
		log.Printf("error: %v", err)
		return err
	}
	if err == nil {
		rec.Count = count
	}

	memo, err := getSimpleText(a.reader, "Enter memo (blank keeps current)", os.Stdout)
	if err != nil {
		return err
	}
	if memo != "" {
		rec.Memo = memo
	}

	if err := a.records.Update(ctx, rec); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Updated %s\n", rec.ID)
	return nil
}

// DeleteRecord removes one record and any queued remote write for it.
func (a *App) DeleteRecord(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter record id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.records.Delete(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Deleted %s\n", id)
	return nil
}

// ListRecords prints all records of an entry ordered by date.
func (a *App) ListRecords(ctx context.Context) error {
	entryID, err := getSimpleText(a.reader, "Enter entry id", os.Stdout)
	if err != nil {
		return err
	}
	recs, err := a.records.ListByEntry(ctx, entryID)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	for _, r := range recs {
		price := "-"
		if r.Price != nil {
			price = fmt.Sprintf("%d", *r.Price)
		}
		fmt.Printf("%s  %s  %-8s  price=%s count=%d [%s]\n", r.ID, r.Date, r.Type, price, r.Count, r.SyncStatus)
	}
	return nil
}

// Stats prompts for an entry and an optional date range and prints the
// aggregated statistics: per-day unit prices plus totals, extrema, and the
// missing-quantity heuristics.
func (a *App) Stats(ctx context.Context) error {
	entryID, err := getSimpleText(a.reader, "Enter entry id", os.Stdout)
	if err != nil {
		return err
	}

	filter := stats.Filter{Mode: stats.RangeAll}
	from, err := getSimpleText(a.reader, "Enter start date (blank for all)", os.Stdout)
	if err != nil {
		return err
	}
	if from != "" {
		to, err := getSimpleText(a.reader, "Enter end date", os.Stdout)
		if err != nil {
			return err
		}
		filter = stats.Filter{Mode: stats.RangeCustom, From: from, To: to}
	}

	summary, err := a.records.Stats(ctx, entryID, filter)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	for _, d := range summary.Days {
		fmt.Printf("%s  purchase %s x%d  sale %s x%d  inbound x%d\n",
			d.Day, fmtUnit(d.PurchaseUnit), d.PurchaseQty, fmtUnit(d.SaleUnit), d.SaleQty, d.InboundQty)
	}
	fmt.Printf("purchase: qty=%d amount=%d unit min/avg/max %s/%s/%s\n",
		summary.PurchaseQty, summary.PurchaseAmount,
		fmtUnit(summary.MinPurchaseUnit), fmtUnit(summary.AvgPurchaseUnit), fmtUnit(summary.MaxPurchaseUnit))
	fmt.Printf("sale:     qty=%d amount=%d unit min/avg/max %s/%s/%s\n",
		summary.SaleQty, summary.SaleAmount,
		fmtUnit(summary.MinSaleUnit), fmtUnit(summary.AvgSaleUnit), fmtUnit(summary.MaxSaleUnit))
	fmt.Printf("inbound:  qty=%d\n", summary.InboundQty)
	if summary.MissingPurchaseQty > 0 {
		fmt.Printf("inbound stock without a priced purchase: %d\n", summary.MissingPurchaseQty)
	}
	if summary.MissingSaleQty > 0 {
		fmt.Printf("sales without a price: %d\n", summary.MissingSaleQty)
	}
	return nil
}

func fmtUnit(v *int64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
