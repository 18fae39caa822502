package model

import (
	"net/url"
	"strings"
)

// instagramCategories lists B2C place types that perform better on Instagram.
// Everything else defaults to LinkedIn.
var instagramCategories = map[string]struct{}{
	"cafe":               {},
	"restaurant":         {},
	"bakery":             {},
	"bar":                {},
	"night_club":         {},
	"clothing_store":     {},
	"beauty_salon":       {},
	"spa":                {},
	"gym":                {},
	"florist":            {},
	"meal_delivery":      {},
	"meal_takeaway":      {},
	"store":              {},
	"shopping_mall":      {},
	"tourist_attraction": {},
}

// SocialSuggestion picks the social network worth prospecting on for a
// business, based on its category membership, and returns a search URL.
func SocialSuggestion(name string, categories []string) (platform, link string) {
	for _, c := range categories {
		if _, ok := instagramCategories[c]; ok {
			tag := strings.ToLower(strings.ReplaceAll(name, " ", ""))
			return "Instagram", "https://www.instagram.com/explore/tags/" + tag + "/"
		}
	}
	return "LinkedIn", "https://www.linkedin.com/search/results/all/?keywords=" + url.PathEscape(name)
}
