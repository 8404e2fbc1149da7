// SPDX-License-Identifier: MIT

// Package model builds the volume, objective and gradient functions of a
// four-compartment lumped-parameter circulation (systemic/pulmonary ×
// arterial/venous) from a named physiological preset and a target volume.
//
// Each compartment gets a transit time derived from its compliance:
//
//	Tsa = Csa/KR + Csa·RS     Tsv = Csv/KR
//	Tpa = Cpa/KL + Cpa·RP     Tpv = Cpv/KL
//	Tsum = Tsa + Tsv + Tpa + Tpv
//
// The target volume V is shared in proportion to transit time
// (Vi = Ti·V/Tsum); the volume function is the sum of the four shares and
// the objective is V/Tsum. The gradient of the objective is derived
// symbolically in the fixed order (Csa, Csv, Cpa, Cpv) and compiled once, so
// a built *Model is immutable and cheap to evaluate.
//
// Presets:
//
//	mode            RS     RP     KR     KL
//	healthy         17.5   1.79   2.8    1.12
//	heart-failure   6.82   1.36   4.72   9.5
//	hypertension    40.5   3.21   3      1.7
package model
