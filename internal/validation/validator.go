// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

// Package validation provides struct validation using go-playground/validator
// v10 behind a thread-safe singleton. Request types declare their contracts
// with struct tags; handlers call ValidateStruct and translate the result
// into a 400 response naming the offending field.
//
//	type ExploreRequest struct {
//	    Latitude  *float64 `validate:"required,latitude"`
//	    Longitude *float64 `validate:"required,longitude"`
//	    Language  string   `validate:"omitempty,oneof=en es"`
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single field validation failure.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return e.Message
}

// RequestError collects the validation failures for one request body.
type RequestError struct {
	fields []FieldError
}

// Fields returns all field failures, in declaration order.
func (e *RequestError) Fields() []FieldError {
	return e.fields
}

// First returns the first failing field. Validation always produces at
// least one field error, mirroring the API contract of reporting a single
// offending field per 400 response.
func (e *RequestError) First() FieldError {
	return e.fields[0]
}

// Error implements the error interface with all failures joined.
func (e *RequestError) Error() string {
	messages := make([]string, len(e.fields))
	for i, f := range e.fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// Validator returns the singleton validator instance. The built-in
// latitude, longitude and oneof validators cover the API's needs.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct validates s, returning nil on success or a *RequestError
// describing every failing field.
func ValidateStruct(s interface{}) *RequestError {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &RequestError{fields: []FieldError{{
			Field:   "unknown",
			Tag:     "unknown",
			Message: err.Error(),
		}}}
	}

	fields := make([]FieldError, len(verrs))
	for i, fe := range verrs {
		fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translate(fe),
		}
	}
	return &RequestError{fields: fields}
}

var messageTemplates = map[string]string{
	"required":  "%s is required",
	"latitude":  "%s must be a valid latitude (-90 to 90)",
	"longitude": "%s must be a valid longitude (-180 to 180)",
}

var messageTemplatesWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"max":   "%s must be at most %s",
	"min":   "%s must be at least %s",
}

// translate converts a validator.FieldError into a user-facing message.
func translate(fe validator.FieldError) string {
	if tmpl, ok := messageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Field())
	}
	if tmpl, ok := messageTemplatesWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
