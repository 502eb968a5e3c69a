package exports

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mmdatafocus/recon_backend/config"
	"github.com/mmdatafocus/recon_backend/models"
)

// ExportPageSize is how many rows each fetch pulls while streaming a
// workbook. Exports walk pages until an empty one comes back, so rows
// upserted mid-export can still appear.
const ExportPageSize = 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportReports streams the filtered report listing into an xlsx workbook
// written straight to the response.
func ExportReports(ctx context.Context, w http.ResponseWriter, loc *time.Location, monthly string, status string) error {
	fetch := func(page int) ([][]interface{}, error) {
		reports, _, err := models.ListReports(ctx, loc, monthly, status, ExportPageSize, page*ExportPageSize)
		if err != nil {
			return nil, err
		}
		rows := make([][]interface{}, 0, len(reports))
		for _, r := range reports {
			rows = append(rows, ReportRow(r, loc))
		}
		return rows, nil
	}
	return writeWorkbook(w, "reports.xlsx", "Reports", ReportHeaders, fetch)
}

// ExportDeliveryReports streams the unmerged delivery reports into an xlsx
// workbook written straight to the response.
func ExportDeliveryReports(ctx context.Context, w http.ResponseWriter, loc *time.Location, dateStart string, dateEnd string) error {
	fetch := func(page int) ([][]interface{}, error) {
		deliveries, _, err := models.ListDeliveryReports(ctx, loc, dateStart, dateEnd, ExportPageSize, page*ExportPageSize)
		if err != nil {
			return nil, err
		}
		rows := make([][]interface{}, 0, len(deliveries))
		for _, d := range deliveries {
			rows = append(rows, DeliveryRow(d, loc))
		}
		return rows, nil
	}
	return writeWorkbook(w, "delivery_reports.xlsx", "Delivery Reports", DeliveryHeaders, fetch)
}

// writeWorkbook builds a single-sheet workbook through the stream writer,
// pulling row pages from fetch until it returns an empty page, and only then
// commits the response headers and body.
func writeWorkbook(w http.ResponseWriter, filename string, sheetName string, headers []string, fetch func(page int) ([][]interface{}, error)) error {
	logger := config.GetLogger()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			config.LogError(logger, "exports", "writeWorkbook", "close workbook", filename, err)
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := sw.SetRow("A1", headerRow); err != nil {
		return err
	}

	rowNo := 2
	for page := 0; ; page++ {
		rows, err := fetch(page)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			break
		}
		for _, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, rowNo)
			if err != nil {
				return err
			}
			if err := sw.SetRow(cell, row); err != nil {
				return err
			}
			rowNo++
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	if err := f.Write(w); err != nil {
		// Headers are already committed, so all that is left is logging.
		config.LogError(logger, "exports", "writeWorkbook", "write workbook", filename, err)
		return nil
	}
	return nil
}

// staticPages adapts an already built row set to the paged fetch shape.
func staticPages(rows [][]interface{}) func(page int) ([][]interface{}, error) {
	return func(page int) ([][]interface{}, error) {
		if page > 0 {
			return nil, nil
		}
		return rows, nil
	}
}
