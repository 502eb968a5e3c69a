package exports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mmdatafocus/recon_backend/models"
)

func strPtr(s string) *string { return &s }

func billingReport(invoiceNo string, salesAmount string, vatFlag string) *models.Report {
	return &models.Report{
		PlantCode:          "P01",
		VenderCode:         "V01",
		DelNumber:          "A00001",
		ReceivedDate:       time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		MaterialNo:         "M-100",
		PoQty:              10,
		PrivilegeFlag:      "Y",
		VatSaleFlag:        vatFlag,
		InvoiceInvoiceNo:   strPtr(invoiceNo),
		InvoiceDateShipped: strPtr("20240105"),
		InvoicePrice:       strPtr("5.00"),
		InvoiceSalesAmount: strPtr(salesAmount),
	}
}

func TestBuildDITRowsGroupsNumerically(t *testing.T) {
	now := time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC)
	reports := []*models.Report{
		billingReport("10", "100.00", "VAT"),
		billingReport("9", "50.00", "NON"),
		billingReport("10", "25.00", "VAT"),
	}

	rows := BuildDITRows(reports, now, time.UTC)

	// one data row + trailer for "9", two data rows + trailer for "10"
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows; got %d", len(rows))
	}
	// "9" sorts before "10" numerically even though "10" < "9" as a string
	if rows[0][3] != "9" {
		t.Fatalf("expected invoice 9 first; got %v", rows[0][3])
	}
	if rows[2][3] != "10" || rows[3][3] != "10" {
		t.Fatalf("expected invoice 10 rows next; got %v / %v", rows[2][3], rows[3][3])
	}

	trailer9 := rows[1]
	if trailer9[6] != ditTrailerPartNo {
		t.Fatalf("expected trailer part_no sentinel; got %v", trailer9[6])
	}
	if trailer9[7] != 1 {
		t.Fatalf("expected group count 1; got %v", trailer9[7])
	}
	if trailer9[9] != "50" {
		t.Fatalf("expected group sum 50; got %v", trailer9[9])
	}
	// non-VAT group carries a zero VAT amount
	if trailer9[10] != "0" {
		t.Fatalf("expected zero VAT for non-VAT group; got %v", trailer9[10])
	}

	trailer10 := rows[4]
	if trailer10[7] != 2 {
		t.Fatalf("expected group count 2; got %v", trailer10[7])
	}
	if trailer10[9] != "125" {
		t.Fatalf("expected group sum 125; got %v", trailer10[9])
	}
	// 7% of 125.00
	if trailer10[10] != "8.75" {
		t.Fatalf("expected VAT 8.75; got %v", trailer10[10])
	}
}

func TestBuildDITRowsFirstAndLastColumns(t *testing.T) {
	now := time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC)
	rows := BuildDITRows([]*models.Report{billingReport("7", "10.00", "NON")}, now, time.UTC)

	for _, row := range rows {
		if len(row) != len(DITHeaders) {
			t.Fatalf("expected %d cells; got %d", len(DITHeaders), len(row))
		}
		if row[0] != idCode {
			t.Fatalf("expected id_code %q; got %v", idCode, row[0])
		}
		if row[len(row)-1] != branchId {
			t.Fatalf("expected branch_id %q; got %v", branchId, row[len(row)-1])
		}
	}
	if rows[0][11] != "10/01/2024" || rows[0][12] != "14:30" {
		t.Fatalf("unexpected create date/time: %v %v", rows[0][11], rows[0][12])
	}
}

func TestBuildDITTRowsSingleTrailer(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	reports := []*models.Report{
		billingReport("10", "100.00", "VAT"),
		billingReport("9", "50.00", "NON"),
		billingReport("10", "25.00", "VAT"),
	}

	rows := BuildDITTRows(reports, now, time.UTC)

	if len(rows) != 4 {
		t.Fatalf("expected 3 data rows + 1 trailer; got %d", len(rows))
	}
	for _, row := range rows {
		if len(row) != len(DITTHeaders) {
			t.Fatalf("expected %d cells; got %d", len(DITTHeaders), len(row))
		}
	}

	trailer := rows[3]
	if trailer[3] != dittTrailerNo {
		t.Fatalf("expected trailer delivery_no sentinel; got %v", trailer[3])
	}
	if trailer[6] != 3 {
		t.Fatalf("expected total count 3; got %v", trailer[6])
	}
	// data rows stay sorted by numeric invoice number
	if rows[0][11] != "9" || rows[1][11] != "10" || rows[2][11] != "10" {
		t.Fatalf("unexpected row order: %v %v %v", rows[0][11], rows[1][11], rows[2][11])
	}
}

func TestBuildDITTRowsEmptyInput(t *testing.T) {
	rows := BuildDITTRows(nil, time.Now(), time.UTC)
	if len(rows) != 0 {
		t.Fatalf("expected no rows (not even a trailer); got %d", len(rows))
	}
}

func TestFormatShippedDate(t *testing.T) {
	if got := formatShippedDate("20240131", time.UTC); got != "31/01/2024" {
		t.Fatalf("expected 31/01/2024; got %q", got)
	}
	// unparsable values pass through unchanged
	if got := formatShippedDate("not-a-date", time.UTC); got != "not-a-date" {
		t.Fatalf("expected passthrough; got %q", got)
	}
	if got := formatShippedDate("", time.UTC); got != "" {
		t.Fatalf("expected empty passthrough; got %q", got)
	}
}

func TestWriteTextRows(t *testing.T) {
	var buf bytes.Buffer
	rows := [][]interface{}{
		{"a", 1, "b"},
		{"c", 2, "d"},
	}
	if err := WriteTextRows(&buf, rows); err != nil {
		t.Fatalf("WriteTextRows: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines; got %d", len(lines))
	}
	if lines[0] != "a\t1\tb" || lines[1] != "c\t2\td" {
		t.Fatalf("unexpected output: %q", lines)
	}
}

func TestReportRowMatchesHeaderWidth(t *testing.T) {
	r := billingReport("1", "10.00", "VAT")
	r.DelDate = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	row := ReportRow(r, time.UTC)
	if len(row) != len(ReportHeaders) {
		t.Fatalf("expected %d cells; got %d", len(ReportHeaders), len(row))
	}
	// nil merge-group pointers render as empty strings, not "<nil>"
	if row[29] != "" {
		t.Fatalf("expected empty delivery_no cell; got %v", row[29])
	}
}

func TestDeliveryRowMatchesHeaderWidth(t *testing.T) {
	d := &models.Delivery{
		VenderCode:   "V01",
		PlantCode:    "P01",
		DeliveryNo:   "A00001",
		DeliveryDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
	}
	row := DeliveryRow(d, time.UTC)
	if len(row) != len(DeliveryHeaders) {
		t.Fatalf("expected %d cells; got %d", len(DeliveryHeaders), len(row))
	}
	if row[3] != "04/03/2024" {
		t.Fatalf("expected formatted delivery date; got %v", row[3])
	}
}
