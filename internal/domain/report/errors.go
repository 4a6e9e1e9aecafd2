package report

import "errors"

var (
	ErrUnknownType      = errors.New("unknown report type")
	ErrRowNotFound      = errors.New("report row not found")
	ErrGenerationFailed = errors.New("report generation failed")
	ErrUnknownFormat    = errors.New("unknown export format")
)
