package payroll

import "errors"

var (
	ErrRecordNotFound           = errors.New("payroll record not found")
	ErrRecordAlreadyExists      = errors.New("payroll record already exists for this period")
	ErrInvalidStatusTransition  = errors.New("payroll status may only move from processed to paid")
	ErrInvalidPeriod            = errors.New("invalid payroll period")
	ErrNoCompensationForPayroll = errors.New("employee has no compensation profile configured")
)
