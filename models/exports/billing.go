package exports

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmdatafocus/recon_backend/config"
	"github.com/mmdatafocus/recon_backend/models"
	"github.com/mmdatafocus/recon_backend/utils"
)

// Billing export layouts.
const (
	BillingTypeDIT  = "DIT"
	BillingTypeDITT = "DITT"
)

// ExportBilling writes the selected invoice numbers as a DIT or DITT
// workbook and then marks the exported reports for that layout.
func ExportBilling(ctx context.Context, w http.ResponseWriter, loc *time.Location, billings []string, billingType string) error {
	reports, err := fetchBillingReports(ctx, billings)
	if err != nil {
		return err
	}

	rows := buildBillingRows(reports, billingType, loc)
	if err := writeWorkbook(w, "billings.xlsx", "Billings", billingHeaders(billingType), staticPages(rows)); err != nil {
		return err
	}
	// The response is already committed; a flag-update failure is logged by
	// markExported and must not turn into an error body.
	_ = markExported(ctx, reports, billingType)
	return nil
}

// ExportBillingText is the flat-file variant of ExportBilling, emitting the
// same logical rows tab separated without a header line.
func ExportBillingText(ctx context.Context, w http.ResponseWriter, loc *time.Location, billings []string, billingType string) error {
	reports, err := fetchBillingReports(ctx, billings)
	if err != nil {
		return err
	}

	rows := buildBillingRows(reports, billingType, loc)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=data.txt")
	if err := WriteTextRows(w, rows); err != nil {
		logger := config.GetLogger()
		config.LogError(logger, "exports", "ExportBillingText", "write rows", billingType, err)
		return nil
	}
	_ = markExported(ctx, reports, billingType)
	return nil
}

func billingHeaders(billingType string) []string {
	if billingType == BillingTypeDIT {
		return DITHeaders
	}
	return DITTHeaders
}

func buildBillingRows(reports []*models.Report, billingType string, loc *time.Location) [][]interface{} {
	now := time.Now().In(loc)
	if billingType == BillingTypeDIT {
		return BuildDITRows(reports, now, loc)
	}
	return BuildDITTRows(reports, now, loc)
}

// fetchBillingReports loads the fully merged reports behind the requested
// invoice numbers. An empty result is an error so callers can answer 404
// before any response bytes go out.
func fetchBillingReports(ctx context.Context, billings []string) ([]*models.Report, error) {
	if len(billings) == 0 {
		return nil, utils.ErrBillingNotFound
	}

	db := config.GetDB()
	var reports []*models.Report
	err := db.WithContext(ctx).
		Where("invoice_invoice_no IS NOT NULL").
		Where("delivery_delivery_no IS NOT NULL").
		Where("invoice_invoice_no IN ?", billings).
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, utils.ErrBillingNotFound
	}
	return reports, nil
}

// markExported flips the per-layout exported flag on every report that just
// went out, so the billing listing can tell new invoices from re-exports.
func markExported(ctx context.Context, reports []*models.Report, billingType string) error {
	column := "is_exported_ditt"
	if billingType == BillingTypeDIT {
		column = "is_exported_dit"
	}

	ids := make([]string, 0, len(reports))
	for _, r := range reports {
		ids = append(ids, r.ID)
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Model(&models.Report{}).
		Where("id IN ?", ids).
		Update(column, true).Error
	if err != nil {
		logger := config.GetLogger()
		config.LogError(logger, "exports", "markExported", fmt.Sprintf("update %s", column), ids, err)
		return err
	}
	return nil
}
