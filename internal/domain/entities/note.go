// Package entities contains core domain data structures.
package entities

import "time"

// EntityKind represents the category of a campaign element or candidate.
type EntityKind string

// The four campaign element kinds.
const (
	KindNPC      EntityKind = "npc"
	KindLocation EntityKind = "location"
	KindQuest    EntityKind = "quest"
	KindRumor    EntityKind = "rumor"
)

// AllKinds lists every element kind in display order.
var AllKinds = []EntityKind{KindNPC, KindLocation, KindQuest, KindRumor}

// IsValidKind reports whether the given kind is one of the four element kinds.
func IsValidKind(kind EntityKind) bool {
	switch kind {
	case KindNPC, KindLocation, KindQuest, KindRumor:
		return true
	}
	return false
}

// CandidateEntity is a possible campaign element mentioned in note text, not
// yet confirmed by a user. IsConverted is append-only: once a candidate has
// been converted to a campaign element it never reverts.
type CandidateEntity struct {
	ID            string         `json:"id"`
	Text          string         `json:"text"`
	Kind          EntityKind     `json:"kind"`
	Confidence    float64        `json:"confidence"`
	IsConverted   bool           `json:"is_converted"`
	ConvertedToID string         `json:"converted_to_id,omitempty"`
	Extra         map[string]any `json:"extra,omitempty"`
}

// DedupKey returns the candidate's deduplication key: its kind plus
// normalized text. Two candidates with equal keys describe the same entity.
func (c CandidateEntity) DedupKey() string {
	return string(c.Kind) + "\x00" + NormalizeText(c.Text)
}

// Note is a free-text session note with its stored candidate entities.
type Note struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Entities  []CandidateEntity `json:"entities,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ConvertedEntities returns the note's candidates that have already been
// converted to campaign elements. Converted candidates bypass deduplication
// and reconciliation entirely.
func (n *Note) ConvertedEntities() []CandidateEntity {
	converted := make([]CandidateEntity, 0, len(n.Entities))
	for _, e := range n.Entities {
		if e.IsConverted {
			converted = append(converted, e)
		}
	}
	return converted
}
