package plan

// FeatureKey identifies a gated product capability. The set is closed:
// every tier must define a limit for every key, which Matrix validation
// enforces at construction time.
type FeatureKey string

const (
	FeatureMaxStories      FeatureKey = "max_stories"
	FeatureMaxCharacters   FeatureKey = "max_characters"
	FeatureAIPrompts       FeatureKey = "ai_prompts"
	FeatureCommunityAccess FeatureKey = "community_access"
	FeatureCustomAI        FeatureKey = "custom_ai"
	FeatureMaxGroups       FeatureKey = "max_groups"
)

// FeatureKeys lists every gated feature. Matrix validation iterates this
// set to guarantee totality.
var FeatureKeys = []FeatureKey{
	FeatureMaxStories,
	FeatureMaxCharacters,
	FeatureAIPrompts,
	FeatureCommunityAccess,
	FeatureCustomAI,
	FeatureMaxGroups,
}

// Valid reports whether k is a known feature key.
func (k FeatureKey) Valid() bool {
	for _, known := range FeatureKeys {
		if k == known {
			return true
		}
	}
	return false
}

// ParseFeatureKey converts a string (e.g. from a query parameter) into a
// FeatureKey, returning ErrUnknownFeature for anything outside the closed set.
func ParseFeatureKey(s string) (FeatureKey, error) {
	k := FeatureKey(s)
	if !k.Valid() {
		return "", ErrUnknownFeature
	}
	return k, nil
}
