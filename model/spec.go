package model

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ExecutionSpecification is the immutable, persisted record produced by a
// measure phase and consumed read-only by every later test phase. The
// concrete serialisation form is out of scope for the core (per spec.md
// §1); YAML is simply the choice made by the persistence helpers below,
// matching the rest of this repo's config files.
type ExecutionSpecification struct {
	SpecID               string                `yaml:"specId"`
	UseCaseID            string                `yaml:"useCaseId"`
	Version              string                `yaml:"version"`
	GeneratedAt          time.Time             `yaml:"generatedAt"`
	Baseline             *BaselineData         `yaml:"empiricalBasis,omitempty"`
	FactorSourceMetadata *FactorSourceMetadata `yaml:"factorSourceMetadata,omitempty"`
	Covariates           *CovariateProfile     `yaml:"covariateProfile,omitempty"`
	Expiration           *ExpirationPolicy     `yaml:"expirationPolicy,omitempty"`
}

// HasBaseline reports whether the spec carries baseline data. Per spec.md
// §3's invariant, any mode other than spec-less consuming this spec
// requires HasBaseline() to be true.
func (s *ExecutionSpecification) HasBaseline() bool {
	return s != nil && s.Baseline != nil
}

// SaveSpec marshals spec to YAML and writes it to path.
func SaveSpec(path string, spec *ExecutionSpecification) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadSpec reads and unmarshals an ExecutionSpecification from path.
func LoadSpec(path string) (*ExecutionSpecification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec ExecutionSpecification
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}
