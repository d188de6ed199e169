// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recipe

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedStandard is returned when the C++ standard available in
	// the toolchain is below the recipe's minimum.
	ErrUnsupportedStandard = errors.New("unsupported C++ standard")

	// ErrMissingOption is returned when code references an option that is
	// not present for the current platform.
	ErrMissingOption = errors.New("missing option")

	// ErrInvalidOption is returned for option values outside the declared set.
	ErrInvalidOption = errors.New("invalid option value")

	// ErrInvalidConfiguration is returned when a recipe rejects the
	// requested settings/options combination.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrUnmappedOption is returned when an option that affects the build
	// is not bound to exactly one toolchain variable.
	ErrUnmappedOption = errors.New("unmapped option")
)

// StandardError reports a C++ standard below the required minimum.
type StandardError struct {
	Have string
	Want string
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("%v: current cppstd (%s) is lower than the required C++ standard (%s)", ErrUnsupportedStandard, e.Have, e.Want)
}

func (e *StandardError) Unwrap() error {
	return ErrUnsupportedStandard
}

// OptionError reports a reference to an option that does not exist.
type OptionError struct {
	Name string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("%v: option %q does not exist for this configuration", ErrMissingOption, e.Name)
}

func (e *OptionError) Unwrap() error {
	return ErrMissingOption
}

// Invalid returns an ErrInvalidConfiguration error with a formatted reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
