package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Display defaults used when a profile omits a field.
const (
	UnknownName         = "Unknown"
	MissingBio          = "No bio available."
	PlaceholderPhotoURL = "https://via.placeholder.com/300x300?text=Dev+Tinder"

	// MaxDisplayedSkills caps the number of skill badges shown on a card.
	MaxDisplayedSkills = 5
)

var validate = validator.New()

// Candidate is a profile eligible for a swipe decision. Candidates are
// immutable once fetched: the feed never edits them, it only removes them
// from its queue after a decision.
//
// Only the identifier is validated. Display fields are shown as the backend
// sent them, with fallbacks for missing values.
type Candidate struct {
	ID        string   `json:"id" validate:"required"`
	Name      string   `json:"name,omitempty"`
	FirstName string   `json:"first_name,omitempty"`
	PhotoURL  string   `json:"photo_url,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	About     string   `json:"about,omitempty"`
	Location  string   `json:"location,omitempty"`
}

// Validate checks that the candidate has a usable identifier.
// The returned error wraps ErrInvalidID.
func (c Candidate) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return NewValidationError("id", "is required", ErrInvalidID)
	}

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return NewValidationError(strings.ToLower(fe.Field()), "failed "+fe.Tag()+" check", ErrInvalidID)
		}
		return NewValidationError("candidate", err.Error(), ErrValidation)
	}

	return nil
}

// DisplayName returns the name shown on the card.
func (c Candidate) DisplayName() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	if name := strings.TrimSpace(c.FirstName); name != "" {
		return name
	}
	return UnknownName
}

// DisplayBio returns the bio shown on the card.
func (c Candidate) DisplayBio() string {
	if bio := strings.TrimSpace(c.Bio); bio != "" {
		return bio
	}
	if about := strings.TrimSpace(c.About); about != "" {
		return about
	}
	return MissingBio
}

// DisplayPhotoURL returns the photo URL, or a placeholder when none is set.
// Relative URLs are returned as is; they resolve against the backend host.
func (c Candidate) DisplayPhotoURL() string {
	if url := strings.TrimSpace(c.PhotoURL); url != "" {
		return url
	}
	return PlaceholderPhotoURL
}

// DisplaySkills returns at most MaxDisplayedSkills skills in their original order.
func (c Candidate) DisplaySkills() []string {
	n := len(c.Skills)
	if n > MaxDisplayedSkills {
		n = MaxDisplayedSkills
	}
	out := make([]string, n)
	copy(out, c.Skills[:n])
	return out
}
