package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidateValidate(t *testing.T) {
	t.Run("valid candidate", func(t *testing.T) {
		c := Candidate{ID: "64f1c2", Name: "Ada", PhotoURL: "https://example.com/a.png"}
		assert.NoError(t, c.Validate())
	})

	t.Run("missing id", func(t *testing.T) {
		err := Candidate{Name: "Ada"}.Validate()
		assert.ErrorIs(t, err, ErrInvalidID)

		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "id", verr.Field)
	})

	t.Run("blank id", func(t *testing.T) {
		assert.ErrorIs(t, Candidate{ID: "   "}.Validate(), ErrInvalidID)
	})

	t.Run("display fields are not validated", func(t *testing.T) {
		c := Candidate{
			ID:       "1",
			Name:     strings.Repeat("n", 300),
			PhotoURL: "/uploads/a.png",
			Skills:   []string{strings.Repeat("x", 101)},
			About:    strings.Repeat("a", 2001),
		}
		assert.NoError(t, c.Validate())
	})
}

func TestCandidateDisplayPhotoURL(t *testing.T) {
	assert.Equal(t, "/uploads/a.png", Candidate{ID: "1", PhotoURL: "/uploads/a.png"}.DisplayPhotoURL())
	assert.Equal(t, "https://example.com/a.png", Candidate{ID: "1", PhotoURL: " https://example.com/a.png "}.DisplayPhotoURL())
	assert.Equal(t, PlaceholderPhotoURL, Candidate{ID: "1", PhotoURL: "   "}.DisplayPhotoURL())
}

func TestCandidateDisplayFallbacks(t *testing.T) {
	empty := Candidate{ID: "1"}
	assert.Equal(t, UnknownName, empty.DisplayName())
	assert.Equal(t, MissingBio, empty.DisplayBio())
	assert.Equal(t, PlaceholderPhotoURL, empty.DisplayPhotoURL())
	assert.Empty(t, empty.DisplaySkills())

	firstOnly := Candidate{ID: "2", FirstName: "Grace", About: "Compilers."}
	assert.Equal(t, "Grace", firstOnly.DisplayName())
	assert.Equal(t, "Compilers.", firstOnly.DisplayBio())

	full := Candidate{ID: "3", Name: "Linus", FirstName: "L", Bio: "Kernels.", About: "ignored"}
	assert.Equal(t, "Linus", full.DisplayName())
	assert.Equal(t, "Kernels.", full.DisplayBio())
}

func TestCandidateDisplaySkillsCapped(t *testing.T) {
	c := Candidate{ID: "1", Skills: []string{"go", "sql", "k8s", "react", "rust", "zig", "c"}}

	skills := c.DisplaySkills()
	assert.Equal(t, []string{"go", "sql", "k8s", "react", "rust"}, skills)

	skills[0] = "mutated"
	assert.Equal(t, "go", c.Skills[0], "DisplaySkills must return a copy")
}
