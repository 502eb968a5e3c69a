package exports

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmdatafocus/recon_backend/models"
	"github.com/mmdatafocus/recon_backend/utils"
)

// Constants fixed by the downstream billing systems.
const (
	idCode            = "VM1050"
	branchId          = "0000"
	dittTrailerNo     = "9999999999"
	ditTrailerPartNo  = "999999999999999"
	vatApplicableFlag = "VAT"
)

// vatRate is the fixed 7% applied to a DIT group's sales total when the
// group's VAT flag applies.
var vatRate = decimal.New(7, -2)

var ReportHeaders = []string{
	"Plant Code", "Vendor Code", "Del No", "Del Date", "Del. Period",
	"Del Slide Date", "Del. Slide Period", "Received Date", "Del. Ctl",
	"Work Group", "Po No", "Material No", "Material Name", "PO Qty.",
	"Received Qty.", "Receive Area", "Following Proc", "Privilege Flag",
	"Barcode Status", "Tag ID", "Organize Id", "VAT Sale Flag",
	"DATE SHIPPED", "INVOICE NO.(KSBP)", "CUSTOMER ORDER NUMBE", "PRICE",
	"SALES AMOUNT",
	"Vendor_code", "Plant_code", "Delivery_No", "Delivery_Date", "Part_No",
	"Q'ty", "Receive_area", "Following_proc", "Vat", "Privilege_Flag",
	"Reference_No_Tag",
}

func ReportRow(r *models.Report, loc *time.Location) []interface{} {
	delSlideDate := ""
	if r.DelSlideDate != nil {
		delSlideDate = utils.FormatDate(*r.DelSlideDate, loc)
	}
	deliveryDate := ""
	if r.DeliveryDeliveryDate != nil {
		deliveryDate = utils.FormatDate(*r.DeliveryDeliveryDate, loc)
	}
	return []interface{}{
		r.PlantCode,
		r.VenderCode,
		r.DelNumber,
		utils.FormatDate(r.DelDate, loc),
		r.DelPeriod,
		delSlideDate,
		utils.DereferencePtr(r.DelSlidePeriod),
		utils.FormatDate(r.ReceivedDate, loc),
		r.DelCtl,
		utils.DereferencePtr(r.WorkGroup),
		utils.DereferencePtr(r.PoNo),
		r.MaterialNo,
		r.MaterialName,
		r.PoQty,
		r.ReceiveQty,
		r.ReceiveArea,
		r.FollowingProc,
		r.PrivilegeFlag,
		r.BarcodeStatus,
		r.TagId,
		r.OrganizeId,
		r.VatSaleFlag,
		utils.DereferencePtr(r.InvoiceDateShipped),
		utils.DereferencePtr(r.InvoiceInvoiceNo),
		utils.DereferencePtr(r.InvoiceCustomerOrderNumber),
		utils.DereferencePtr(r.InvoicePrice),
		utils.DereferencePtr(r.InvoiceSalesAmount),
		utils.DereferencePtr(r.DeliveryVenderCode),
		utils.DereferencePtr(r.DeliveryPlantCode),
		utils.DereferencePtr(r.DeliveryDeliveryNo),
		deliveryDate,
		utils.DereferencePtr(r.DeliveryPartNo),
		utils.DereferencePtr(r.DeliveryQty),
		utils.DereferencePtr(r.DeliveryReceiveArea),
		utils.DereferencePtr(r.DeliveryFollowingProc),
		utils.DereferencePtr(r.DeliveryVat),
		utils.DereferencePtr(r.DeliveryPrivilegeFlag),
		utils.DereferencePtr(r.DeliveryReferenceNoTag),
	}
}

var DeliveryHeaders = []string{
	"Vendor_code", "Plant_code", "Delivery_No", "Delivery_Date", "Part_No",
	"Q'ty", "Receive_area", "Following_proc", "Vat", "Privilege_Flag",
	"Reference_No_Tag",
}

func DeliveryRow(d *models.Delivery, loc *time.Location) []interface{} {
	return []interface{}{
		d.VenderCode,
		d.PlantCode,
		d.DeliveryNo,
		utils.FormatDate(d.DeliveryDate, loc),
		d.PartNo,
		d.Qty,
		d.ReceiveArea,
		d.FollowingProc,
		d.Vat,
		d.PrivilegeFlag,
		d.ReferenceNoTag,
	}
}

var DITHeaders = []string{
	"id_code", "vendor_code", "plant_code", "invoice_no", "invoice_date",
	"receive_date", "part_no", "qty", "unit_price", "amount", "vat",
	"create_date", "create_time", "privilege_flag", "branch_id",
}

// BuildDITRows renders the DIT layout: data rows grouped by invoice number
// in numeric order, each group followed by a trailer row carrying the group
// count, the group sales total and the 7% VAT amount when the group's VAT
// flag applies.
func BuildDITRows(reports []*models.Report, now time.Time, loc *time.Location) [][]interface{} {
	createDate := utils.FormatDate(now, loc)
	createTime := now.In(loc).Format(utils.TimeLayoutHM)

	rows := make([][]interface{}, 0, len(reports)+1)
	for _, group := range groupByInvoiceNumber(reports) {
		sum := decimal.Zero
		for _, r := range group {
			if amount, err := decimal.NewFromString(utils.DereferencePtr(r.InvoiceSalesAmount)); err == nil {
				sum = sum.Add(amount)
			}
			rows = append(rows, []interface{}{
				idCode,
				r.VenderCode,
				r.PlantCode,
				utils.DereferencePtr(r.InvoiceInvoiceNo),
				formatShippedDate(utils.DereferencePtr(r.InvoiceDateShipped), loc),
				utils.FormatDate(r.ReceivedDate, loc),
				r.MaterialNo,
				r.PoQty,
				utils.DereferencePtr(r.InvoicePrice),
				utils.DereferencePtr(r.InvoiceSalesAmount),
				r.VatSaleFlag,
				createDate,
				createTime,
				r.PrivilegeFlag,
				branchId,
			})
		}

		first := group[0]
		vat := decimal.Zero
		if first.VatSaleFlag == vatApplicableFlag {
			vat = sum.Mul(vatRate)
		}
		rows = append(rows, []interface{}{
			idCode,
			first.VenderCode,
			first.PlantCode,
			utils.DereferencePtr(first.InvoiceInvoiceNo),
			formatShippedDate(utils.DereferencePtr(first.InvoiceDateShipped), loc),
			utils.FormatDate(first.ReceivedDate, loc),
			ditTrailerPartNo,
			len(group),
			"",
			sum.String(),
			vat.String(),
			createDate,
			createTime,
			first.PrivilegeFlag,
			branchId,
		})
	}
	return rows
}

var DITTHeaders = []string{
	"id_code", "vendor_code", "plant_code", "delivery_no", "delivery_date",
	"part_no", "qty", "receive_area", "following_proc", "create_date",
	"create_time", "invoice_no", "invoice_date", "privilege_flag",
	"reference_no_tag", "branch_id",
}

// BuildDITTRows renders the DITT layout: ungrouped data rows sorted by
// numeric invoice number, closed by a single trailer row carrying the total
// record count.
func BuildDITTRows(reports []*models.Report, now time.Time, loc *time.Location) [][]interface{} {
	createDate := utils.FormatDate(now, loc)
	createTime := now.In(loc).Format(utils.TimeLayoutHM)

	sorted := sortByInvoiceNumber(reports)
	rows := make([][]interface{}, 0, len(sorted)+1)
	for _, r := range sorted {
		deliveryDate := ""
		if r.DeliveryDeliveryDate != nil {
			deliveryDate = utils.FormatDate(*r.DeliveryDeliveryDate, loc)
		}
		rows = append(rows, []interface{}{
			idCode,
			r.VenderCode,
			r.PlantCode,
			r.DelNumber,
			deliveryDate,
			r.MaterialNo,
			r.PoQty,
			r.ReceiveArea,
			r.FollowingProc,
			createDate,
			createTime,
			utils.DereferencePtr(r.InvoiceInvoiceNo),
			formatShippedDate(utils.DereferencePtr(r.InvoiceDateShipped), loc),
			r.PrivilegeFlag,
			utils.DereferencePtr(r.DeliveryReferenceNoTag),
			branchId,
		})
	}

	if len(sorted) > 0 {
		first := sorted[0]
		rows = append(rows, []interface{}{
			idCode,
			first.VenderCode,
			first.PlantCode,
			dittTrailerNo,
			"",
			"",
			len(sorted),
			"",
			"",
			createDate,
			createTime,
			"",
			"",
			"",
			"",
			"",
		})
	}
	return rows
}

// formatShippedDate turns a compact yyyyMMdd invoice date into the display
// format; unparsable values pass through unchanged.
func formatShippedDate(v string, loc *time.Location) string {
	t, err := time.ParseInLocation(utils.DateLayoutCompact, v, loc)
	if err != nil {
		return v
	}
	return t.Format(utils.DateLayoutSlashDMY)
}

func invoiceNumber(r *models.Report) int64 {
	n, _ := strconv.ParseInt(utils.DereferencePtr(r.InvoiceInvoiceNo), 10, 64)
	return n
}

func sortByInvoiceNumber(reports []*models.Report) []*models.Report {
	sorted := make([]*models.Report, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return invoiceNumber(sorted[i]) < invoiceNumber(sorted[j])
	})
	return sorted
}

// groupByInvoiceNumber splits the reports into runs of equal invoice number,
// ordered by the numeric value of that number.
func groupByInvoiceNumber(reports []*models.Report) [][]*models.Report {
	sorted := sortByInvoiceNumber(reports)
	var groups [][]*models.Report
	for _, r := range sorted {
		n := len(groups)
		if n > 0 && utils.DereferencePtr(groups[n-1][0].InvoiceInvoiceNo) == utils.DereferencePtr(r.InvoiceInvoiceNo) {
			groups[n-1] = append(groups[n-1], r)
			continue
		}
		groups = append(groups, []*models.Report{r})
	}
	return groups
}
