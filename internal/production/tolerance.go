package production

// Tolerances are kept in one place and referenced everywhere a plan value
// or a feasibility check needs rounding, so the assembler and the
// verifier never disagree about what counts as zero or as a violation.
var (
	PlanValueClamp    = 1e-8
	FeasibilityTol    = 1e-6
	ReconciliationTol = 1e-6
)

// Configure overrides the package tolerances from loaded configuration.
// Call once at startup before serving any request.
func Configure(planClamp, feasibilityTol, reconciliationTol float64) {
	if planClamp > 0 {
		PlanValueClamp = planClamp
	}
	if feasibilityTol > 0 {
		FeasibilityTol = feasibilityTol
	}
	if reconciliationTol > 0 {
		ReconciliationTol = reconciliationTol
	}
}
