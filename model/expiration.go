package model

import "time"

// ExpirationPolicy declares how long a baseline observation remains valid.
type ExpirationPolicy struct {
	Days            int
	BaselineEndTime time.Time
}

// Evaluate compares the policy against now and returns the resulting
// status. A zero-value ExpirationPolicy (Days == 0) is treated as "not
// configured" by callers holding an *ExpirationPolicy == nil; Evaluate
// itself assumes a configured policy was passed.
func (p ExpirationPolicy) Evaluate(now time.Time) ExpirationStatus {
	expiresAt := p.BaselineEndTime.AddDate(0, 0, p.Days)
	if now.After(expiresAt) {
		return ExpirationExpired
	}
	return ExpirationActive
}
