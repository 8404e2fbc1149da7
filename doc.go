// SPDX-License-Identifier: MIT

// Package cardiocomp estimates the four vascular compliances of a lumped
// circulation model (systemic/pulmonary × arterial/venous) for a named
// physiological preset and a target blood volume.
//
// 🚀 What is cardiocomp?
//
//	A small, deterministic toolkit that brings together:
//		• an expression kernel with symbolic derivatives (symbolic/)
//		• the transit-time circulation model and its presets (model/)
//		• a coordinate-descent minimizer with a volume-feasibility patch (minimize/)
//		• YAML run configuration (config/) and a CLI driver (cmd/cardiocomp)
//
// ✨ Why this layout?
//
//   - Build once, evaluate many: formulas are differentiated up front and
//     the hot loop calls compiled closures only
//   - Reproducible: an injected start vector and a fixed iteration count
//     give a bit-for-bit identical trajectory
//   - Observable: an optional per-iteration hook and zap logger
//
// Under the hood:
//
//	symbolic/        — Const/Var/Add/Mul/Div/Neg nodes, Diff, Compile, Gradient
//	model/           — Preset table, Build → Volume/Objective/Gradient over [4]float64
//	minimize/        — Run(ctx, problem, opts...) → Result{Best, BestValue, ...}
//	config/          — Run{Mode, Volume, Iterations, Seed}, Load/Save/Validate
//	cmd/cardiocomp/  — cobra command: estimate, presets, describe
//
// Quick picture of the circuit:
//
//	   ┌── Csa ──► Csv ──┐
//	   │   (RS)          │
//	 heart             heart
//	   │   (RP)          │
//	   └── Cpv ◄── Cpa ──┘
//
//	go install github.com/katalvlaran/cardiocomp/cmd/cardiocomp@latest
package cardiocomp
