// SPDX-License-Identifier: MIT

package model

import "errors"

var (
	// ErrUnknownMode is returned by Lookup for a mode outside the preset table.
	ErrUnknownMode = errors.New("model: unknown mode")

	// ErrDegenerateParams indicates a preset constant that is not a positive
	// finite number. Such constants can drive the total transit time to zero.
	ErrDegenerateParams = errors.New("model: degenerate physiological parameters")

	// ErrInvalidVolume indicates a target volume that is not a positive finite number.
	ErrInvalidVolume = errors.New("model: target volume must be positive and finite")
)
