package entities

// ExistingReference records that a known campaign element is mentioned in a
// note. References are recomputed on every note view and never persisted.
type ExistingReference struct {
	ElementID      string     `json:"element_id"`
	Kind           EntityKind `json:"kind"`
	DisplayTitle   string     `json:"display_title"`
	MatchedStrings []string   `json:"matched_strings"`
}
