package entities

import "time"

// CampaignElement is a confirmed campaign element (NPC, location, quest or
// rumor). Name and, when distinct, Title both participate in note matching.
type CampaignElement struct {
	ID        string     `json:"id"`
	Kind      EntityKind `json:"kind"`
	Name      string     `json:"name"`
	Title     string     `json:"title,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// MatchStrings returns the element's candidate strings for note matching:
// the name and, if it differs, the title. Empty strings are omitted.
func (e *CampaignElement) MatchStrings() []string {
	strs := make([]string, 0, 2)
	if e.Name != "" {
		strs = append(strs, e.Name)
	}
	if e.Title != "" && e.Title != e.Name {
		strs = append(strs, e.Title)
	}
	return strs
}

// DisplayTitle returns the element's preferred display string.
func (e *CampaignElement) DisplayTitle() string {
	if e.Title != "" {
		return e.Title
	}
	return e.Name
}
