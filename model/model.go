// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"math"

	"github.com/katalvlaran/cardiocomp/symbolic"
)

// Compliance indices of a candidate vector. The order is fixed and shared by
// the volume, objective and gradient functions.
const (
	Csa = iota // systemic arterial
	Csv        // systemic venous
	Cpa        // pulmonary arterial
	Cpv        // pulmonary venous
)

// SymbolNames are the variable names bound to the Csa..Cpv positions.
var SymbolNames = [4]string{"Csa", "Csv", "Cpa", "Cpv"}

// Config is the read-only input of Build: one preset and the target volume.
type Config struct {
	Preset Preset
	Volume float64
}

// Expressions are the symbolic forms a Model was compiled from.
type Expressions struct {
	Volume    symbolic.Expr
	Objective symbolic.Expr
	// Gradient holds ∂Objective/∂Csa..∂Cpv.
	Gradient [4]symbolic.Expr
}

// Model evaluates the compiled volume, objective and gradient functions.
// It is immutable after Build and safe for concurrent use.
type Model struct {
	preset Preset
	target float64
	exprs  Expressions

	volume    symbolic.Func
	objective symbolic.Func
	gradient  symbolic.GradFunc
}

// Build validates cfg, constructs the transit-time equations and compiles
// the three numeric functions.
//
// Errors: ErrDegenerateParams, ErrInvalidVolume (both wrapped with the
// offending field), or a symbolic binding error.
func Build(cfg Config) (*Model, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	var (
		p   = cfg.Preset
		csa = symbolic.V(SymbolNames[Csa])
		csv = symbolic.V(SymbolNames[Csv])
		cpa = symbolic.V(SymbolNames[Cpa])
		cpv = symbolic.V(SymbolNames[Cpv])
		rs  = symbolic.C(p.SystemicResistance)
		rp  = symbolic.C(p.PulmonaryResistance)
		kr  = symbolic.C(p.SystemicScale)
		kl  = symbolic.C(p.PulmonaryScale)
		v   = symbolic.C(cfg.Volume)
	)

	// Transit times: arterial compartments add the resistive term.
	tsa := symbolic.Sum(symbolic.Quotient(csa, kr), symbolic.Product(csa, rs))
	tsv := symbolic.Quotient(csv, kr)
	tpa := symbolic.Sum(symbolic.Quotient(cpa, kl), symbolic.Product(cpa, rp))
	tpv := symbolic.Quotient(cpv, kl)
	tsum := symbolic.Sum(tsa, tsv, tpa, tpv)

	share := func(t symbolic.Expr) symbolic.Expr {
		return symbolic.Quotient(symbolic.Product(t, v), tsum)
	}

	exprs := Expressions{
		Volume:    symbolic.Sum(share(tsa), share(tsv), share(tpa), share(tpv)),
		Objective: symbolic.Quotient(v, tsum),
	}
	copy(exprs.Gradient[:], symbolic.Partials(exprs.Objective, SymbolNames[:]...))

	m := &Model{preset: p, target: cfg.Volume, exprs: exprs}

	var err error
	if m.volume, err = symbolic.Compile(exprs.Volume, SymbolNames[:]...); err != nil {
		return nil, fmt.Errorf("model: compile volume: %w", err)
	}
	if m.objective, err = symbolic.Compile(exprs.Objective, SymbolNames[:]...); err != nil {
		return nil, fmt.Errorf("model: compile objective: %w", err)
	}
	if m.gradient, err = symbolic.Gradient(exprs.Objective, SymbolNames[:]...); err != nil {
		return nil, fmt.Errorf("model: compile gradient: %w", err)
	}

	return m, nil
}

func validate(cfg Config) error {
	fields := [...]struct {
		name string
		val  float64
	}{
		{"systemic resistance", cfg.Preset.SystemicResistance},
		{"pulmonary resistance", cfg.Preset.PulmonaryResistance},
		{"systemic scale", cfg.Preset.SystemicScale},
		{"pulmonary scale", cfg.Preset.PulmonaryScale},
	}
	for _, f := range fields {
		if !positiveFinite(f.val) {
			return fmt.Errorf("%w: %s=%v", ErrDegenerateParams, f.name, f.val)
		}
	}
	if !positiveFinite(cfg.Volume) {
		return fmt.Errorf("%w: got %v", ErrInvalidVolume, cfg.Volume)
	}

	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Volume returns the total distributed volume at x.
func (m *Model) Volume(x [4]float64) float64 { return m.volume(x[:]) }

// Objective returns V/Tsum at x.
func (m *Model) Objective(x [4]float64) float64 { return m.objective(x[:]) }

// Gradient returns ∂Objective/∂(Csa, Csv, Cpa, Cpv) at x.
func (m *Model) Gradient(x [4]float64) [4]float64 {
	var g [4]float64
	copy(g[:], m.gradient(x[:]))

	return g
}

// TargetVolume reports the volume the model was built for.
func (m *Model) TargetVolume() float64 { return m.target }

// Preset reports the constants the model was built from.
func (m *Model) Preset() Preset { return m.preset }

// Expressions returns the symbolic forms behind the compiled functions.
func (m *Model) Expressions() Expressions { return m.exprs }
