package models

import (
	"context"
	"strings"

	"github.com/mmdatafocus/recon_backend/config"
)

// NewInvoiceReport is a transient invoice payload record. It is never
// persisted on its own; it is pushed straight into the invoice group of the
// report whose del_number equals the customer order number.
type NewInvoiceReport struct {
	DateShipped         string `json:"dateShipped" binding:"required"`
	InvoiceNo           string `json:"invoiceNo" binding:"required"`
	CustomerOrderNumber string `json:"customerOrderNumber" binding:"required"`
	Price               string `json:"price"`
	SalesAmount         string `json:"salesAmount"`
}

// MergeInvoiceReports rewrites the invoice group of every report whose
// del_number appears in the payload, as a single bulk update. The payload is
// bound as a derived table of placeholder rows joined on the business key, so
// no payload value is ever concatenated into the statement text. Reports
// outside the key set are untouched; storage errors propagate to the caller
// unmodified.
func MergeInvoiceReports(ctx context.Context, inputs []*NewInvoiceReport) error {
	if len(inputs) == 0 {
		return nil
	}

	inputs = DeduplicateBy(inputs, func(i *NewInvoiceReport) string { return i.CustomerOrderNumber })

	var sb strings.Builder
	args := make([]interface{}, 0, len(inputs)*5)
	for i, input := range inputs {
		if i == 0 {
			sb.WriteString("SELECT ? AS customer_order_number, ? AS date_shipped, ? AS invoice_no, ? AS price, ? AS sales_amount")
		} else {
			sb.WriteString(" UNION ALL SELECT ?, ?, ?, ?, ?")
		}
		args = append(args, input.CustomerOrderNumber, input.DateShipped, input.InvoiceNo, input.Price, input.SalesAmount)
	}

	sql := `
UPDATE reports r
JOIN (` + sb.String() + `) src ON r.del_number = src.customer_order_number
SET
	r.invoice_date_shipped = src.date_shipped,
	r.invoice_invoice_no = src.invoice_no,
	r.invoice_customer_order_number = src.customer_order_number,
	r.invoice_price = src.price,
	r.invoice_sales_amount = src.sales_amount,
	r.updated_at = NOW()
`

	db := config.GetDB()
	return db.WithContext(ctx).Exec(sql, args...).Error
}
