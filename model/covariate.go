package model

import (
	"fmt"
	"hash/fnv"
)

// CovariateValueKind discriminates CovariateValue's two variants.
type CovariateValueKind int

const (
	CovariateKindString CovariateValueKind = iota
	CovariateKindTimeWindow
)

// CovariateValue is a closed sum type: either a plain string or a named
// time window. Only the fields matching Kind are meaningful.
type CovariateValue struct {
	Kind          CovariateValueKind
	StringValue   string
	WindowStart   string // RFC3339; kept as string to stay canonicalisation-stable
	WindowEnd     string
	WindowTZ      string
}

// StringCovariate builds a CovariateValue holding a plain string.
func StringCovariate(s string) CovariateValue {
	return CovariateValue{Kind: CovariateKindString, StringValue: s}
}

// TimeWindowCovariate builds a CovariateValue holding a time window.
func TimeWindowCovariate(start, end, timezone string) CovariateValue {
	return CovariateValue{Kind: CovariateKindTimeWindow, WindowStart: start, WindowEnd: end, WindowTZ: timezone}
}

func (v CovariateValue) canonical() string {
	switch v.Kind {
	case CovariateKindString:
		return "s:" + v.StringValue
	case CovariateKindTimeWindow:
		return fmt.Sprintf("w:%s|%s|%s", v.WindowStart, v.WindowEnd, v.WindowTZ)
	default:
		return ""
	}
}

// covariateEntry is one ordered (key, value) pair of a CovariateProfile.
type covariateEntry struct {
	Key   string
	Value CovariateValue
}

// CovariateProfile is an ordered mapping from covariate key to
// CovariateValue. Insertion order is part of its identity: two profiles
// with identical entries in a different order are unequal and hash
// differently.
type CovariateProfile struct {
	entries []covariateEntry
}

// NewCovariateProfile returns an empty profile.
func NewCovariateProfile() CovariateProfile {
	return CovariateProfile{}
}

// With returns a new profile with (key, value) appended, preserving
// insertion order. The receiver is not mutated.
func (p CovariateProfile) With(key string, value CovariateValue) CovariateProfile {
	out := make([]covariateEntry, len(p.entries), len(p.entries)+1)
	copy(out, p.entries)
	out = append(out, covariateEntry{Key: key, Value: value})
	return CovariateProfile{entries: out}
}

// Len returns the number of entries.
func (p CovariateProfile) Len() int { return len(p.entries) }

// Equal reports whether two profiles have identical entries in the same
// order.
func (p CovariateProfile) Equal(other CovariateProfile) bool {
	if len(p.entries) != len(other.entries) {
		return false
	}
	for i, e := range p.entries {
		o := other.entries[i]
		if e.Key != o.Key || e.Value.canonical() != o.Value.canonical() {
			return false
		}
	}
	return true
}

// ComputeHash returns an 8-hex-digit digest over the canonicalised ordered
// entries. An empty profile hashes to the empty string.
func (p CovariateProfile) ComputeHash() string {
	if len(p.entries) == 0 {
		return ""
	}
	h := fnv.New32a()
	for _, e := range p.entries {
		fmt.Fprintf(h, "%s=%s;", e.Key, e.Value.canonical())
	}
	return fmt.Sprintf("%08x", h.Sum32())
}

// covariateYAML is the wire shape for one CovariateProfile entry, used to
// preserve insertion order through YAML marshal/unmarshal (a plain map
// would not).
type covariateYAML struct {
	Key         string `yaml:"key"`
	Kind        string `yaml:"kind"`
	StringValue string `yaml:"value,omitempty"`
	WindowStart string `yaml:"windowStart,omitempty"`
	WindowEnd   string `yaml:"windowEnd,omitempty"`
	WindowTZ    string `yaml:"windowTz,omitempty"`
}

// MarshalYAML implements yaml.Marshaler, preserving entry order.
func (p CovariateProfile) MarshalYAML() (interface{}, error) {
	out := make([]covariateYAML, 0, len(p.entries))
	for _, e := range p.entries {
		switch e.Value.Kind {
		case CovariateKindString:
			out = append(out, covariateYAML{Key: e.Key, Kind: "string", StringValue: e.Value.StringValue})
		case CovariateKindTimeWindow:
			out = append(out, covariateYAML{Key: e.Key, Kind: "timeWindow", WindowStart: e.Value.WindowStart, WindowEnd: e.Value.WindowEnd, WindowTZ: e.Value.WindowTZ})
		}
	}
	return out, nil
}

// UnmarshalYAML implements yaml.Unmarshaler, restoring entry order.
func (p *CovariateProfile) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw []covariateYAML
	if err := unmarshal(&raw); err != nil {
		return err
	}
	entries := make([]covariateEntry, 0, len(raw))
	for _, r := range raw {
		switch r.Kind {
		case "timeWindow":
			entries = append(entries, covariateEntry{Key: r.Key, Value: TimeWindowCovariate(r.WindowStart, r.WindowEnd, r.WindowTZ)})
		default:
			entries = append(entries, covariateEntry{Key: r.Key, Value: StringCovariate(r.StringValue)})
		}
	}
	p.entries = entries
	return nil
}
