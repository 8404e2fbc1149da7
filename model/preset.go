// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"strings"
)

// Preset is a named bundle of four physiological constants.
type Preset struct {
	Name string

	// SystemicResistance is RS.
	SystemicResistance float64
	// PulmonaryResistance is RP.
	PulmonaryResistance float64
	// SystemicScale is KR, the time-constant scale of the systemic side.
	SystemicScale float64
	// PulmonaryScale is KL, the time-constant scale of the pulmonary side.
	PulmonaryScale float64
}

// Mode names.
const (
	Healthy      = "healthy"
	HeartFailure = "heart-failure"
	Hypertension = "hypertension"
)

// presets is the closed preset table, in display order.
var presets = [...]Preset{
	{Name: Healthy, SystemicResistance: 17.5, PulmonaryResistance: 1.79, SystemicScale: 2.8, PulmonaryScale: 1.12},
	{Name: HeartFailure, SystemicResistance: 6.82, PulmonaryResistance: 1.36, SystemicScale: 4.72, PulmonaryScale: 9.5},
	{Name: Hypertension, SystemicResistance: 40.5, PulmonaryResistance: 3.21, SystemicScale: 3, PulmonaryScale: 1.7},
}

// Lookup returns the preset registered under name. Names are matched exactly.
func Lookup(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}

	return Preset{}, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownMode, name, strings.Join(Modes(), ", "))
}

// Modes lists the preset names in table order.
func Modes() []string {
	out := make([]string, len(presets))
	for i, p := range presets {
		out[i] = p.Name
	}

	return out
}

// Presets returns a copy of the preset table.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets[:])

	return out
}
