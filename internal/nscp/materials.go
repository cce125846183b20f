package nscp

import "math"

// NSCP 2015 Material Constants

const (
	// Modulus of elasticity for steel (Section 420.2.2)
	Es = 200000.0 // MPa
)

// ConcreteModulus returns the modulus of elasticity of normal weight concrete
// NSCP 2015 Section 419.2.2.1(b): Ec = 4700√f'c
func ConcreteModulus(fc float64) float64 {
	if fc <= 0 {
		return 0
	}
	return 4700 * math.Sqrt(fc)
}

// ConcreteModulusWc returns Ec for concrete with density wc between
// 1440 and 2560 kg/m³
// NSCP 2015 Section 419.2.2.1(a): Ec = wc^1.5 · 0.043√f'c
func ConcreteModulusWc(fc, wc float64) float64 {
	if fc <= 0 || wc <= 0 {
		return 0
	}
	return math.Pow(wc, 1.5) * 0.043 * math.Sqrt(fc)
}

// CrackedInertiaFactor is the stiffness reduction applied to the gross
// moment of inertia of beams in analysis
// NSCP 2015 Table 406.6.3.1.1(a): 0.35Ig for beams
const CrackedInertiaFactor = 0.35
