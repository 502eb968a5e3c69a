package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

// ErrBillingNotFound is returned by the billing exporters when none of the
// requested invoice numbers match a fully merged report.
var ErrBillingNotFound = errors.New("Not found any billing")

// BadRequestError marks a failure caused by the client's payload (typically a
// storage constraint violation during a batch upsert). The Detail string is
// safe to surface in the HTTP response.
type BadRequestError struct {
	Detail string
}

func (e *BadRequestError) Error() string {
	return e.Detail
}

func NewBadRequest(err error) *BadRequestError {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &BadRequestError{Detail: detail}
}
