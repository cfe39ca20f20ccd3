package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrMonthClosed indicates a write against an accounting month that has
// already been closed. Closed months are immutable.
var ErrMonthClosed = errors.New("month already closed")

// ErrConfiguration indicates an inconsistency in the policy tables, such as
// a portfolio type with no lot factor or withdrawal entry. Fatal: it must
// surface, never be defaulted.
var ErrConfiguration = errors.New("configuration error")

// ErrUnavailable indicates the external data source (terminal bridge) could
// not be reached. Callers degrade to cached data where possible.
var ErrUnavailable = errors.New("data source unavailable")
