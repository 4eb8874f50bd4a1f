package config

// Projectfile represents the structure of the quire.yaml configuration file.
type Projectfile struct {
	Version     string           `yaml:"version"`
	Root        string           `yaml:"root"`
	Entry       string           `yaml:"entry"`
	Diagnostics DiagnosticsDTO   `yaml:"diagnostics"`
	Tasks       []map[string]any `yaml:"tasks"`
}

// DiagnosticsDTO holds the diagnostics policies per document variant.
type DiagnosticsDTO struct {
	Paged VariantDiagnosticsDTO `yaml:"paged"`
	HTML  VariantDiagnosticsDTO `yaml:"html"`
}

// VariantDiagnosticsDTO holds the diagnostics policies of one variant.
type VariantDiagnosticsDTO struct {
	Continuous string `yaml:"continuous"`
	Explicit   string `yaml:"explicit"`
}
