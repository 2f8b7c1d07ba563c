package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrAlreadyPaid indicates an invoice is already paid; marking it paid again
// would double-post income, so the operation is refused.
var ErrAlreadyPaid = errors.New("invoice already paid")

// ErrProtected indicates a delete was blocked because other records still
// reference the resource (e.g. a category with transactions).
var ErrProtected = errors.New("resource is referenced by other records")
