package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is matched (via errors.Is) by every validation failure
// returned from this module, before any simulation or formula runs.
var ErrInvalidInput = errors.New("invalid input")

// InputError names the offending field so callers can point the user at it.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a finite number")
	}
	return nil
}

// CheckNonNegative rejects NaN, ±Inf and negative values.
func CheckNonNegative(field string, v float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return invalid(field, "must be >= 0")
	}
	return nil
}

// CheckPositive rejects NaN, ±Inf and values <= 0.
func CheckPositive(field string, v float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return invalid(field, "must be > 0")
	}
	return nil
}

// CheckFraction requires v in [0, 1].
func CheckFraction(field string, v float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v < 0 || v > 1 {
		return invalid(field, "must be in [0, 1]")
	}
	return nil
}

// CheckEfficiency requires v in (0, 1].
func CheckEfficiency(field string, v float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v <= 0 || v > 1 {
		return invalid(field, "must be in (0, 1]")
	}
	return nil
}
