package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrCustomerNotFound   = errors.New("CUSTOMER_NOT_FOUND")
	ErrTicketNotFound     = errors.New("TICKET_NOT_FOUND")
	ErrInvoiceNotFound    = errors.New("INVOICE_NOT_FOUND")
	ErrDeviceNotFound     = errors.New("DEVICE_NOT_FOUND")
	ErrPlanNotFound       = errors.New("PLAN_NOT_FOUND")
	ErrEmployeeNotFound   = errors.New("EMPLOYEE_NOT_FOUND")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
)
