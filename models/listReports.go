package models

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mmdatafocus/recon_backend/config"
	"github.com/mmdatafocus/recon_backend/utils"
)

// Merge-state categories. Classification looks only at the presence of the
// two business-key columns, and the four filters partition any result set:
// a report carrying both keys is ALREADY_MERGED, not MERGE_WITH_INVOICE.
const (
	StatusNoMerge          = "NO_MERGE"
	StatusMergeWithInvoice = "MERGE_WITH_INVOICE"
	StatusMergeWithOrder   = "MERGE_WITH_ORDER"
	StatusAlreadyMerged    = "ALREADY_MERGED"
)

// reportListOrder sorts newest delivery date first, then plant code, then the
// numeric tail of the delivery number so "A00002" lists before "A00010" even
// though the column is a string.
const reportListOrder = "del_date DESC, plant_code ASC, CAST(RIGHT(del_number, 5) AS UNSIGNED) ASC"

// MonthWindow resolves a "MM/yyyy" value to the [start, end) range covering
// that whole month in loc. The end bound is the first instant of the next
// month, so month length and leap years never matter.
func MonthWindow(monthly string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("01/2006", monthly, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("monthly must be MM/yyyy: %w", err)
	}
	return start, start.AddDate(0, 1, 0), nil
}

// statusClause maps a merge-state filter to its WHERE condition. Unknown
// values behave like an absent filter.
func statusClause(status string) (string, bool) {
	switch status {
	case StatusNoMerge:
		return "invoice_invoice_no IS NULL AND delivery_delivery_no IS NULL", true
	case StatusMergeWithInvoice:
		return "invoice_invoice_no IS NOT NULL AND delivery_delivery_no IS NULL", true
	case StatusMergeWithOrder:
		return "delivery_delivery_no IS NOT NULL AND invoice_invoice_no IS NULL", true
	case StatusAlreadyMerged:
		return "invoice_invoice_no IS NOT NULL AND delivery_delivery_no IS NOT NULL", true
	}
	return "", false
}

// ListReports returns one page of reports whose del_date falls in the given
// month, plus the total count of the filtered set (counted before ordering
// and pagination).
func ListReports(ctx context.Context, loc *time.Location, monthly string, status string, limit int, offset int) ([]*Report, int64, error) {

	start, end, err := MonthWindow(monthly, loc)
	if err != nil {
		return nil, 0, utils.NewBadRequest(err)
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&Report{}).
		Where("del_date >= ? AND del_date < ?", start, end)
	dbCtx = applyStatusFilter(dbCtx, status)

	var count int64
	if err := dbCtx.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var reports []*Report
	err = dbCtx.Order(reportListOrder).
		Limit(limit).
		Offset(offset).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, count, nil
}

func applyStatusFilter(dbCtx *gorm.DB, status string) *gorm.DB {
	if clause, ok := statusClause(status); ok {
		return dbCtx.Where(clause)
	}
	return dbCtx
}
