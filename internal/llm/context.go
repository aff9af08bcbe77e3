package llm

import "context"

// Purposes label LLM requests in the event log.
const (
	PurposeHint    = "hint"
	PurposeUnknown = "unknown"
)

type purposeKey struct{}

// WithPurpose tags ctx so that logged requests can be grouped by feature.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}
