package model

import "strings"

// HoursPerDay is the length of the representative day.
const HoursPerDay = 24

// HourlyProfile is a normalized (0..1) shape over the representative day.
// It is an array so that handing it out never exposes the package constants.
type HourlyProfile [HoursPerDay]float64

// LoadArchetype selects one of the canonical daily load shapes.
type LoadArchetype string

const (
	ArchetypeCommercial  LoadArchetype = "commercial"
	ArchetypeIndustrial  LoadArchetype = "industrial"
	ArchetypeResidential LoadArchetype = "residential"
)

// Archetypes lists the supported load archetypes in display order.
var Archetypes = []LoadArchetype{ArchetypeCommercial, ArchetypeIndustrial, ArchetypeResidential}

var loadProfiles = map[LoadArchetype]HourlyProfile{
	// Low at night, high during business hours.
	ArchetypeCommercial: {
		0.3, 0.3, 0.3, 0.3, 0.3, 0.4, 0.6, 0.8, 0.9, 0.95, 1.0, 1.0,
		0.95, 0.9, 0.85, 0.85, 0.8, 0.75, 0.7, 0.6, 0.5, 0.4, 0.35, 0.3,
	},
	// Relatively flat baseload.
	ArchetypeIndustrial: {
		0.85, 0.85, 0.85, 0.85, 0.85, 0.9, 0.95, 1.0, 1.0, 1.0, 1.0, 1.0,
		1.0, 1.0, 1.0, 1.0, 1.0, 0.95, 0.9, 0.9, 0.9, 0.85, 0.85, 0.85,
	},
	// Morning and evening peaks.
	ArchetypeResidential: {
		0.4, 0.35, 0.3, 0.3, 0.35, 0.5, 0.7, 0.85, 0.75, 0.6, 0.55, 0.5,
		0.5, 0.5, 0.55, 0.6, 0.7, 0.85, 1.0, 0.95, 0.8, 0.65, 0.55, 0.45,
	},
}

// PVProfile is a bell curve peaking at noon, relative to nameplate.
var PVProfile = HourlyProfile{
	0, 0, 0, 0, 0, 0, 0.1, 0.3, 0.5, 0.7, 0.85, 0.95,
	1.0, 0.95, 0.85, 0.7, 0.5, 0.3, 0.1, 0, 0, 0, 0, 0,
}

// WindProfile is higher at night; it is scaled by the wind capacity factor.
var WindProfile = HourlyProfile{
	0.7, 0.75, 0.8, 0.8, 0.75, 0.7, 0.6, 0.5, 0.45, 0.4, 0.35, 0.3,
	0.3, 0.35, 0.4, 0.45, 0.5, 0.6, 0.65, 0.7, 0.75, 0.75, 0.7, 0.7,
}

// ParseLoadArchetype accepts the archetype tag case-insensitively.
func ParseLoadArchetype(s string) (LoadArchetype, error) {
	a := LoadArchetype(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := loadProfiles[a]; !ok {
		return "", invalid("load_profile", "must be one of commercial, industrial, residential")
	}
	return a, nil
}

func (a LoadArchetype) Valid() bool {
	_, ok := loadProfiles[a]
	return ok
}

// LoadProfile returns the normalized load shape for the archetype.
func (a LoadArchetype) LoadProfile() (HourlyProfile, bool) {
	p, ok := loadProfiles[a]
	return p, ok
}

// Sum returns the area under the profile in hours.
func (p HourlyProfile) Sum() float64 {
	s := 0.0
	for _, v := range p {
		s += v
	}
	return s
}
