package models

import (
	"strings"
	"testing"
	"time"
)

func TestMonthWindow(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Bangkok")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	cases := []struct {
		monthly   string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"01/2024", time.Date(2024, 1, 1, 0, 0, 0, 0, loc), time.Date(2024, 2, 1, 0, 0, 0, 0, loc)},
		// leap year February still ends at March 1st
		{"02/2024", time.Date(2024, 2, 1, 0, 0, 0, 0, loc), time.Date(2024, 3, 1, 0, 0, 0, 0, loc)},
		{"12/2023", time.Date(2023, 12, 1, 0, 0, 0, 0, loc), time.Date(2024, 1, 1, 0, 0, 0, 0, loc)},
	}
	for _, tc := range cases {
		start, end, err := MonthWindow(tc.monthly, loc)
		if err != nil {
			t.Fatalf("MonthWindow(%q): %v", tc.monthly, err)
		}
		if !start.Equal(tc.wantStart) || !end.Equal(tc.wantEnd) {
			t.Fatalf("MonthWindow(%q) = [%v, %v); want [%v, %v)",
				tc.monthly, start, end, tc.wantStart, tc.wantEnd)
		}
	}
}

func TestMonthWindowRejectsBadInput(t *testing.T) {
	for _, monthly := range []string{"", "2024/01", "13/2024", "Jan 2024", "01-2024"} {
		if _, _, err := MonthWindow(monthly, time.UTC); err == nil {
			t.Fatalf("MonthWindow(%q): expected error", monthly)
		}
	}
}

func TestStatusClausePartitionsOnBusinessKeys(t *testing.T) {
	cases := []struct {
		status       string
		wantInvoice  string
		wantDelivery string
	}{
		{StatusNoMerge, "invoice_invoice_no IS NULL", "delivery_delivery_no IS NULL"},
		{StatusMergeWithInvoice, "invoice_invoice_no IS NOT NULL", "delivery_delivery_no IS NULL"},
		{StatusMergeWithOrder, "invoice_invoice_no IS NULL", "delivery_delivery_no IS NOT NULL"},
		{StatusAlreadyMerged, "invoice_invoice_no IS NOT NULL", "delivery_delivery_no IS NOT NULL"},
	}
	for _, tc := range cases {
		clause, ok := statusClause(tc.status)
		if !ok {
			t.Fatalf("statusClause(%q): expected a clause", tc.status)
		}
		if !strings.Contains(clause, tc.wantInvoice) || !strings.Contains(clause, tc.wantDelivery) {
			t.Fatalf("statusClause(%q) = %q; want conditions %q and %q",
				tc.status, clause, tc.wantInvoice, tc.wantDelivery)
		}
	}
}

func TestStatusClauseIgnoresUnknownValues(t *testing.T) {
	for _, status := range []string{"", "ALL", "no_merge", "SOMETHING"} {
		if clause, ok := statusClause(status); ok {
			t.Fatalf("statusClause(%q) = %q; expected no clause", status, clause)
		}
	}
}
