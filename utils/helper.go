package utils

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Date layouts used by the upload payloads and the export files.
const (
	DateLayoutSlashDMY = "02/01/2006" // report upload + export display
	DateLayoutSlashYMD = "2006/01/02" // delivery-report upload
	DateLayoutDashDMY  = "02-01-2006" // list/billing query params
	DateLayoutCompact  = "20060102"   // invoice date-shipped payloads
	TimeLayoutHM       = "15:04"
)

const (
	DefaultPageLimit  = 20
	DefaultPageOffset = 0
)

// ParsePagination resolves limit/offset query strings. Non-numeric or
// non-positive input falls back to the defaults.
func ParsePagination(limitStr string, offsetStr string) (limit int, offset int) {
	limit = DefaultPageLimit
	offset = DefaultPageOffset
	if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
		limit = n
	}
	if n, err := strconv.Atoi(offsetStr); err == nil && n > 0 {
		offset = n
	}
	return limit, offset
}

// ParseDateIn parses a date string in the given layout, anchored to loc.
func ParseDateIn(value string, layout string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(layout, value, loc)
}

// FormatDate renders a stored timestamp as dd/MM/yyyy in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayoutSlashDMY)
}

// Chunk splits records into consecutive slices of at most size elements.
func Chunk[T any](records []T, size int) [][]T {
	if size <= 0 || len(records) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(records)+size-1)/size)
	for size < len(records) {
		records, chunks = records[size:], append(chunks, records[:size])
	}
	return append(chunks, records)
}

func NewFalse() *bool {
	b := false
	return &b
}

// DereferencePtr returns the pointed-to value, or the optional default (zero
// value otherwise) when ptr is nil.
func DereferencePtr[T any](ptr *T, def ...T) T {
	if ptr != nil {
		return *ptr
	}
	if len(def) > 0 {
		return def[0]
	}
	var zero T
	return zero
}

func ProcessValidationErrors(err error) map[string]string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	errorResponse := make(map[string]string)
	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}
	return errorResponse
}
