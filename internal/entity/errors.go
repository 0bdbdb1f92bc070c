package entity

import "errors"

var (
	ErrInvalidTaskData     = errors.New("invalid task data")
	ErrInvalidEmployeeData = errors.New("invalid employee data")
	ErrInvalidFilter       = errors.New("invalid filter")
)
