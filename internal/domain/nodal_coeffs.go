package domain

// nodalRuleKind selects how a constituent's (f, u) pair is derived.
type nodalRuleKind int

const (
	// ruleDirect: f = sqrt(t1² + t2²), u = atan(t1/t2).
	ruleDirect nodalRuleKind = iota
	// ruleUnity: f = 1, u = 0.
	ruleUnity
	// ruleAlias: same table entry as base.
	ruleAlias
	// rulePower: f = f_base^power, u = power * u_base.
	rulePower
	// ruleProduct: f = f_base * f_other, u = u_base + u_other.
	ruleProduct
)

// nodalRule describes the derivation of one catalogue constituent.
type nodalRule struct {
	name  string
	kind  nodalRuleKind
	terms func(a *nodalArgs) (t1, t2 float64) // ruleDirect only.
	base  string
	other string
	power int
}

// nodalRules is ordered so that every base precedes its dependents.
// Coefficients follow the harmonic prediction tables used by OTPS/XTide.
//
//nolint:gochecknoglobals // Read-only rule table.
var nodalRules = []nodalRule{
	{name: "M2", kind: ruleDirect, terms: func(a *nodalArgs) (float64, float64) {
		return -0.03731*a.sinN + 0.00052*a.sin2N, 1.0 - 0.03731*a.cosN + 0.00052*a.cos2N
	}},
	{name: "S2", kind: ruleUnity},
	{name: "K1", kind: ruleDirect, terms: func(a *nodalArgs) (float64, float64) {
		return -0.1554*a.sinN + 0.0031*a.sin2N, 1.0 + 0.1158*a.cosN - 0.0028*a.cos2N
	}},
	{name: "O1", kind: ruleDirect, terms: func(a *nodalArgs) (float64, float64) {
		return 0.1886*a.sinN - 0.0058*a.sin2N - 0.0065*a.sin2N, 1.0 + 0.1886*a.cosN - 0.0058*a.cos2N - 0.0065*a.cos2P
	}},
	{name: "N2", kind: ruleAlias, base: "M2"},
	{name: "P1", kind: ruleDirect, terms: func(a *nodalArgs) (float64, float64) {
		return -0.0112 * a.sinN, 1.0 - 0.0112*a.cosN
	}},
	{name: "K2", kind: ruleDirect, terms: func(a *nodalArgs) (float64, float64) {
		return -0.3108*a.sinN - 0.0324*a.sin2N, 1.0 + 0.2853*a.cosN + 0.0324*a.cos2N
	}},
	{name: "Q1", kind: ruleDirect, terms: func(a *nodalArgs) (float64, float64) {
		return 0.1886 * a.sinN, 1.0 + 0.1886*a.cosN
	}},
	{name: "2N2", kind: ruleAlias, base: "M2"},
	{name: "MU2", kind: ruleAlias, base: "M2"},
	{name: "NU2", kind: ruleAlias, base: "M2"},
	{name: "L2", kind: ruleDirect, terms: func(a *nodalArgs) (float64, float64) {
		return -0.250*a.sin2P - 0.110*a.sin2PN, 1.0 - 0.250*a.cos2P - 0.110*a.cos2PN - 0.037*a.cosN
	}},
	{name: "T2", kind: ruleUnity},
	{name: "J1", kind: ruleDirect, terms: func(a *nodalArgs) (float64, float64) {
		return -0.227 * a.sinN, 1.0 + 0.169*a.cosN
	}},
	// Assumes the M1 argument includes p.
	{name: "M1", kind: ruleDirect, terms: func(a *nodalArgs) (float64, float64) {
		return -0.2294*a.sinN - 0.3594*a.sin2P - 0.0664*a.sin2PN, 1.0 + 0.1722*a.cosN + 0.3594*a.cos2P + 0.0664*a.cos2PN
	}},
	{name: "OO1", kind: ruleDirect, terms: func(a *nodalArgs) (float64, float64) {
		return -0.640*a.sinN - 0.134*a.sin2N - 0.150*a.sin2P, 1.0 + 0.640*a.cosN + 0.134*a.cos2N + 0.150*a.cos2P
	}},
	{name: "RHO1", kind: ruleAlias, base: "Q1"},
	{name: "MF", kind: ruleDirect, terms: func(a *nodalArgs) (float64, float64) {
		return -0.04324*a.sin2P - 0.41465*a.sinN - 0.03873*a.sin2N, 1.0 + 0.04324*a.cos2P + 0.41465*a.cosN + 0.03873*a.cos2N
	}},
	{name: "MM", kind: ruleDirect, terms: func(a *nodalArgs) (float64, float64) {
		return -0.0534*a.sin2P - 0.0219*a.sin2PN, 1.0 - 0.1308*a.cosN - 0.0534*a.cos2P - 0.0219*a.cos2PN
	}},
	{name: "SSA", kind: ruleUnity},
	{name: "M4", kind: rulePower, base: "M2", power: 2},
	// Same coefficients as M2, evaluated on its own.
	{name: "MS4", kind: ruleDirect, terms: func(a *nodalArgs) (float64, float64) {
		return -0.03731*a.sinN + 0.00052*a.sin2N, 1.0 - 0.03731*a.cosN + 0.00052*a.cos2N
	}},
	{name: "MN4", kind: ruleAlias, base: "M4"},
	{name: "M6", kind: rulePower, base: "M2", power: 3},
	{name: "M8", kind: rulePower, base: "M2", power: 4},
	{name: "MK3", kind: ruleProduct, base: "M2", other: "K1"},
	{name: "S6", kind: ruleUnity},
	{name: "2SM2", kind: ruleAlias, base: "M2"},
	{name: "2MK3", kind: ruleUnity},
}
