package services

import (
	"errors"
	"fmt"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
)

// ErrContentTooShort is returned when a note's content is below the minimum
// length for extraction. It is caught before any quota or inference call.
var ErrContentTooShort = errors.New("note content is too short for entity extraction")

// ErrExtractionFailed is the generic error surfaced for inference-service
// failures. The underlying cause is wrapped for logs; user-facing output
// should present only this sentinel's message.
var ErrExtractionFailed = errors.New("extraction failed")

// ContactInfo is the static escalation payload returned alongside quota
// rejections so users can request a higher limit.
type ContactInfo struct {
	Message          string `json:"message"`
	ContactURL       string `json:"contact_url"`
	PrefilledSubject string `json:"prefilled_subject"`
}

// QuotaExceededError is returned when a reservation is denied. It carries
// the usage snapshot and the contact payload; it is never retried silently.
type QuotaExceededError struct {
	Status  entities.UsageStatus
	Contact ContactInfo
}

// Error implements the error interface.
func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("extraction quota exceeded for the %s window", e.Status.ExceededPeriod)
}
