package domain

import "encoding/json"

// ID is a provider entity identifier. SimplyBook returns ids as numbers in
// some methods and as strings in others, so decoding accepts both.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Service is a bookable activity type from the provider catalog.
type Service struct {
	ID          ID             `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Duration    int            `json:"duration"`
	Price       float64        `json:"price,omitempty"`
	UnitMap     map[string]any `json:"unit_map,omitempty"`
}

// EligibleUnit reports whether the unit may serve this service. An absent
// unit_map means every unit is eligible.
func (s Service) EligibleUnit(unitID ID) bool {
	if s.UnitMap == nil {
		return true
	}
	_, ok := s.UnitMap[string(unitID)]
	return ok
}

// Unit is a concrete bookable resource, e.g. one specific court.
type Unit struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalog bundles the two provider catalogs fetched per availability request.
type Catalog struct {
	Services []Service `json:"services"`
	Units    []Unit    `json:"units"`
}

// SlotMatrix maps a calendar date (provider date format) to the ordered
// bookable start times remaining on that date.
type SlotMatrix map[string][]string

// ServiceRef is the trimmed service shape embedded in availability results.
type ServiceRef struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
}

// UnitAvailability holds one unit's slot matrix, or the error that prevented
// fetching it. A failed unit never fails the whole request.
type UnitAvailability struct {
	Unit       Unit       `json:"unit"`
	StartTimes SlotMatrix `json:"startTimes,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// ServiceAvailability is one service's per-unit availability, in catalog order.
type ServiceAvailability struct {
	Service ServiceRef         `json:"service"`
	Units   []UnitAvailability `json:"units"`
}
