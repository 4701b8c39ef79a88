// Package validation provides request and config validation helpers.
// It offers a fluent Validator for hand-rolled checks and a struct-tag
// validator backed by go-playground/validator, both producing
// errors.AppError values suitable for the HTTP boundary.
package validation
