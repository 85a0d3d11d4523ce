package services

import "github.com/Haugenau20/campaign-companion/internal/domain/entities"

// Deduplicate merges candidates that share a (kind, normalized text) key.
// The highest-confidence duplicate wins regardless of arrival order; an
// exact confidence tie keeps the first seen. Output order follows the first
// appearance of each key, so a later higher-confidence duplicate replaces
// the earlier entry in place.
func Deduplicate(candidates []entities.CandidateEntity) []entities.CandidateEntity {
	index := make(map[string]int, len(candidates))
	out := make([]entities.CandidateEntity, 0, len(candidates))

	for _, c := range candidates {
		key := c.DedupKey()
		if i, seen := index[key]; seen {
			if c.Confidence > out[i].Confidence {
				out[i] = c
			}
			continue
		}
		index[key] = len(out)
		out = append(out, c)
	}

	return out
}
