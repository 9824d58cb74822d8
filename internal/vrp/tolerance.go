package vrp

// Tolerances mirror production's package-level knobs (internal/production/
// tolerance.go) so both domains read the same configured numeric-tolerance
// and search-budget values instead of carrying their own copies.
var (
	FeasibilityTol    = 1e-6
	MaxBranchAndBound = 200000
)

// Configure overrides the package tolerances from loaded configuration.
// Call once at startup before serving any request.
func Configure(feasibilityTol float64, maxBranchAndBound int) {
	if feasibilityTol > 0 {
		FeasibilityTol = feasibilityTol
	}
	if maxBranchAndBound > 0 {
		MaxBranchAndBound = maxBranchAndBound
	}
}
