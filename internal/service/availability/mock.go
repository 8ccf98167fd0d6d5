package availability

import (
	"fmt"

	"github.com/courtify/courtify/internal/domain"
)

const defaultPreferredTime = "18:00"

// mockServices is the canned catalog served when no provider credentials are
// configured. The entries are fixed so the frontend always has data to show.
func mockServices() []domain.Service {
	return []domain.Service{
		{ID: "svc-1", Name: "Badminton - Single Court", Description: "Standard indoor badminton court", Duration: 60, Price: 250},
		{ID: "svc-2", Name: "Tennis Court (Outdoor)", Description: "Outdoor tennis court", Duration: 60, Price: 400},
		{ID: "svc-3", Name: "Basketball Pickup (Half-court)", Description: "Indoor half-court booking", Duration: 60, Price: 600},
	}
}

// mockAvailability fabricates one service with two units, each offering a
// single slot on dateFrom at the preferred time. Deterministic for identical
// inputs; no filtering runs on this path.
func mockAvailability(input CheckInput) []domain.ServiceAvailability {
	pref := input.PreferredTime
	if pref == "" {
		pref = defaultPreferredTime
	}
	sport := input.Sport
	if sport == "" {
		sport = "Badminton"
	}
	location := input.PreferredLocation
	if location == "" {
		location = "Makati Sports Center"
	}

	return []domain.ServiceAvailability{
		{
			Service: domain.ServiceRef{ID: "svc-1", Name: sport + " (mock)", Duration: 60},
			Units: []domain.UnitAvailability{
				{
					Unit:       domain.Unit{ID: "u-1", Name: fmt.Sprintf("%s (Indoor #1)", location), Description: "Mock court"},
					StartTimes: domain.SlotMatrix{input.DateFrom: []string{pref}},
				},
				{
					Unit:       domain.Unit{ID: "u-2", Name: "Riverside Arena (Indoor #2)", Description: "Mock court 2"},
					StartTimes: domain.SlotMatrix{input.DateFrom: []string{pref}},
				},
			},
		},
	}
}
