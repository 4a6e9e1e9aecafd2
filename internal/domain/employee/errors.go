package employee

import "errors"

var (
	ErrEmployeeNotFound            = errors.New("employee not found")
	ErrCompensationProfileNotFound = errors.New("compensation profile not found")
)
