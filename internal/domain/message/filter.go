package message

// DefaultListLimit caps list results when the caller gives no limit.
const DefaultListLimit = 100

// Filter holds optional filter criteria for listing messages.
// Zero-value fields mean "no filter" for that dimension.
type Filter struct {
	Status Status
	Limit  int
}

// EffectiveLimit returns the limit to apply, defaulting and clamping to
// DefaultListLimit.
func (f Filter) EffectiveLimit() int {
	if f.Limit <= 0 || f.Limit > DefaultListLimit {
		return DefaultListLimit
	}
	return f.Limit
}
