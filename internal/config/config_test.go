package config

import "testing"

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				HTTP:      HTTPConfig{Port: 8080},
				Optimizer: OptimizerConfig{FeasibilityTol: 1e-6, ReconciliationTol: 1e-6, MaxBranchAndBound: 200000},
			},
			wantErr: false,
		},
		{
			name: "port zero",
			cfg: Config{
				HTTP:      HTTPConfig{Port: 0},
				Optimizer: OptimizerConfig{FeasibilityTol: 1e-6, ReconciliationTol: 1e-6, MaxBranchAndBound: 200000},
			},
			wantErr: true,
		},
		{
			name: "port too high",
			cfg: Config{
				HTTP:      HTTPConfig{Port: 70000},
				Optimizer: OptimizerConfig{FeasibilityTol: 1e-6, ReconciliationTol: 1e-6, MaxBranchAndBound: 200000},
			},
			wantErr: true,
		},
		{
			name: "negative plan value clamp",
			cfg: Config{
				HTTP:      HTTPConfig{Port: 8080},
				Optimizer: OptimizerConfig{PlanValueClamp: -1, FeasibilityTol: 1e-6, ReconciliationTol: 1e-6, MaxBranchAndBound: 200000},
			},
			wantErr: true,
		},
		{
			name: "non-positive feasibility tolerance",
			cfg: Config{
				HTTP:      HTTPConfig{Port: 8080},
				Optimizer: OptimizerConfig{FeasibilityTol: 0, ReconciliationTol: 1e-6, MaxBranchAndBound: 200000},
			},
			wantErr: true,
		},
		{
			name: "non-positive reconciliation tolerance",
			cfg: Config{
				HTTP:      HTTPConfig{Port: 8080},
				Optimizer: OptimizerConfig{FeasibilityTol: 1e-6, ReconciliationTol: 0, MaxBranchAndBound: 200000},
			},
			wantErr: true,
		},
		{
			name: "non-positive max branch and bound nodes",
			cfg: Config{
				HTTP:      HTTPConfig{Port: 8080},
				Optimizer: OptimizerConfig{FeasibilityTol: 1e-6, ReconciliationTol: 1e-6, MaxBranchAndBound: 0},
			},
			wantErr: true,
		},
		{
			name: "multiple errors still reported as one",
			cfg: Config{
				HTTP:      HTTPConfig{Port: 0},
				Optimizer: OptimizerConfig{FeasibilityTol: 0, ReconciliationTol: 0, MaxBranchAndBound: 0},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"production", false},
		{"staging", false},
	}

	for _, tt := range tests {
		cfg := &Config{App: AppConfig{Environment: tt.env}}
		if got := cfg.IsDevelopment(); got != tt.want {
			t.Errorf("IsDevelopment() for %s = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"production", true},
		{"development", false},
		{"staging", false},
	}

	for _, tt := range tests {
		cfg := &Config{App: AppConfig{Environment: tt.env}}
		if got := cfg.IsProduction(); got != tt.want {
			t.Errorf("IsProduction() for %s = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestLoader_Load_Defaults(t *testing.T) {
	cfg, err := NewLoader(WithConfigPaths(), WithEnvPrefix("OPTISERVE_TEST_NONEXISTENT_")).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTP.Port != 8080 {
		t.Errorf("HTTP.Port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.HTTP.BasePath != "/production" {
		t.Errorf("HTTP.BasePath = %q, want /production", cfg.HTTP.BasePath)
	}
	if cfg.Optimizer.MaxBranchAndBound != 200000 {
		t.Errorf("Optimizer.MaxBranchAndBound = %d, want 200000", cfg.Optimizer.MaxBranchAndBound)
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q, want /metrics", cfg.Metrics.Path)
	}
}
