package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundingBox_Validate(t *testing.T) {
	valid := BoundingBox{North: 40.80, South: 40.70, East: -73.90, West: -74.00}
	require.NoError(t, valid.Validate())

	flippedLat := BoundingBox{North: 40.70, South: 40.80, East: -73.90, West: -74.00}
	assert.Error(t, flippedLat.Validate())

	flippedLng := BoundingBox{North: 40.80, South: 40.70, East: -74.00, West: -73.90}
	assert.Error(t, flippedLng.Validate())

	degenerate := BoundingBox{North: 40.70, South: 40.70, East: -73.90, West: -74.00}
	assert.Error(t, degenerate.Validate())
}

func TestBoundingBox_Center(t *testing.T) {
	box := BoundingBox{North: 40.80, South: 40.70, East: -73.90, West: -74.00}
	lat, lng := box.Center()
	assert.InDelta(t, 40.75, lat, 1e-9)
	assert.InDelta(t, -73.95, lng, 1e-9)
}

func TestBoundingBox_Contains(t *testing.T) {
	box := BoundingBox{North: 40.80, South: 40.70, East: -73.90, West: -74.00}
	assert.True(t, box.Contains(40.75, -73.95))
	assert.False(t, box.Contains(40.85, -73.95)) // north of box
	assert.False(t, box.Contains(40.75, -74.10)) // west of box
}

func TestPartition_Counts(t *testing.T) {
	p := Partition{
		Approved: []VerifiedCandidate{{}, {}},
		Rejected: []VerifiedCandidate{{}},
	}
	a, r, e := p.Counts()
	assert.Equal(t, 2, a)
	assert.Equal(t, 1, r)
	assert.Equal(t, 0, e)
}

func TestSocialSuggestion_Instagram(t *testing.T) {
	platform, link := SocialSuggestion("Green Loaf", []string{"bakery", "point_of_interest"})
	assert.Equal(t, "Instagram", platform)
	assert.Equal(t, "https://www.instagram.com/explore/tags/greenloaf/", link)
}

func TestSocialSuggestion_LinkedInDefault(t *testing.T) {
	platform, link := SocialSuggestion("Acme Consulting", []string{"accounting", "finance"})
	assert.Equal(t, "LinkedIn", platform)
	assert.Contains(t, link, "linkedin.com/search")
	assert.Contains(t, link, "Acme%20Consulting")
}

func TestSocialSuggestion_NoCategories(t *testing.T) {
	platform, _ := SocialSuggestion("Mystery Biz", nil)
	assert.Equal(t, "LinkedIn", platform)
}
