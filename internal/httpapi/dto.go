package httpapi

// optimizersResponse is the body of GET /optimizers.
type optimizersResponse struct {
	Optimizers []string `json:"optimizers"`
}

// errorResponse is the minimal envelope written for validation failures,
// unknown-optimizer lookups, and uncaught engine errors, built from an
// *apperror.Error rather than a full production.Result.
type errorResponse struct {
	Status           string   `json:"status"`
	SolverMessage    string   `json:"solver_message"`
	ValidationErrors []string `json:"validation_errors,omitempty"`
}
