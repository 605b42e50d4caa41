package convert

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formcheck/pkg/message"
)

// ErrConversion is the sentinel every ConversionError matches with errors.Is.
var ErrConversion = errors.New("convert: conversion failed")

// ConversionError reports a value that could not be converted. Message is
// the user-facing payload forwarded to message widgets.
type ConversionError struct {
	Message message.Message
	Err     error
}

// NewConversionError builds a ConversionError carrying m.
func NewConversionError(m message.Message) *ConversionError {
	return &ConversionError{Message: m}
}

// ConversionErrorf builds a ConversionError whose summary and detail are the
// formatted text.
func ConversionErrorf(format string, args ...any) *ConversionError {
	return &ConversionError{Message: message.Text(fmt.Sprintf(format, args...))}
}

func (e *ConversionError) Error() string {
	if e == nil {
		return ErrConversion.Error()
	}
	if text := e.Message.String(); text != "" {
		return "convert: " + text
	}
	if e.Err != nil {
		return "convert: " + e.Err.Error()
	}
	return ErrConversion.Error()
}

// Unwrap exposes the cause, if any, and the ErrConversion sentinel.
func (e *ConversionError) Unwrap() []error {
	if e == nil {
		return nil
	}
	if e.Err != nil {
		return []error{ErrConversion, e.Err}
	}
	return []error{ErrConversion}
}
