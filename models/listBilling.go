package models

import (
	"context"
	"strings"
	"time"

	"github.com/mmdatafocus/recon_backend/config"
	"github.com/mmdatafocus/recon_backend/utils"
)

// Export-state filters for the billing listing.
const (
	BillingStatusAll          = "ALL"
	BillingStatusNew          = "NEW"
	BillingStatusExported     = "EXPORTED"
	BillingStatusExportedDIT  = "EXPORTED_DIT"
	BillingStatusExportedDITT = "EXPORTED_DITT"
)

// Billing is one distinct invoice number from the fully merged reports,
// carried both as the stored string and as the numeric sort key the listing
// is ordered by (so "9" comes before "10").
type Billing struct {
	InvoiceInvoiceNo       string `json:"invoiceInvoiceNo"`
	InvoiceInvoiceNoNumber int64  `json:"invoiceInvoiceNoNumber"`
}

// ListBilling returns the distinct invoice numbers of reports that carry both
// merge groups, optionally narrowed by a del_date window (dd-MM-yyyy, start
// inclusive, end exclusive), a case-insensitive partial plant-code match and
// an export-state category. Export state is judged per invoice number across
// all of its reports: NEW means no report was exported in either layout,
// EXPORTED means every report went out in both.
func ListBilling(ctx context.Context, loc *time.Location, startDate string, endDate string, status string, plantCode string) ([]*Billing, error) {

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&Report{}).
		Select("invoice_invoice_no AS invoice_invoice_no, CAST(invoice_invoice_no AS UNSIGNED) AS invoice_invoice_no_number").
		Where("invoice_invoice_no IS NOT NULL").
		Where("delivery_delivery_no IS NOT NULL").
		Group("invoice_invoice_no")

	if startDate != "" && endDate != "" {
		start, err := utils.ParseDateIn(startDate, utils.DateLayoutDashDMY, loc)
		if err != nil {
			return nil, utils.NewBadRequest(err)
		}
		end, err := utils.ParseDateIn(endDate, utils.DateLayoutDashDMY, loc)
		if err != nil {
			return nil, utils.NewBadRequest(err)
		}
		dbCtx = dbCtx.Where("del_date >= ? AND del_date < ?", start, end)
	}

	if plantCode != "" {
		dbCtx = dbCtx.Where("LOWER(plant_code) LIKE ?", "%"+strings.ToLower(plantCode)+"%")
	}

	switch status {
	case BillingStatusNew:
		dbCtx = dbCtx.Having("MAX(is_exported_dit) = 0 AND MAX(is_exported_ditt) = 0")
	case BillingStatusExported:
		dbCtx = dbCtx.Having("MIN(is_exported_dit) = 1 AND MIN(is_exported_ditt) = 1")
	case BillingStatusExportedDIT:
		dbCtx = dbCtx.Having("MIN(is_exported_dit) = 1")
	case BillingStatusExportedDITT:
		dbCtx = dbCtx.Having("MIN(is_exported_ditt) = 1")
	case BillingStatusAll, "":
		// no filter
	}

	var billings []*Billing
	err := dbCtx.Order("invoice_invoice_no_number ASC").Scan(&billings).Error
	if err != nil {
		return nil, err
	}
	return billings, nil
}
