package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidCredentials indicates that no account matches the supplied
// identifier and PIN.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInsufficientFunds indicates that the account balance cannot cover the
// requested amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrBelowMinimum indicates that the amount is below the operation's fixed
// minimum.
var ErrBelowMinimum = errors.New("amount below minimum")

// ErrCardNotEligible indicates that the referenced card is missing or not
// active.
var ErrCardNotEligible = errors.New("card not found or not active")

// ErrLockTimeout indicates that a collection lock could not be acquired
// within the configured wait. Distinct from business-rule failures.
var ErrLockTimeout = errors.New("timed out waiting for collection lock")

// ErrStoreUnavailable indicates that the document store rejected a read or
// write. A write failure after a mutation has been computed must surface this
// to the caller.
var ErrStoreUnavailable = errors.New("document store unavailable")
