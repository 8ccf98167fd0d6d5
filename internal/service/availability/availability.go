package availability

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/courtify/courtify/internal/domain"
	"go.uber.org/zap"
)

// preferredWindowMinutes is the half-width of the preferred-time window.
// A slot exactly on the boundary is kept.
const preferredWindowMinutes = 30

const defaultMaxFetches = 8

// UseCase is the availability surface the HTTP layer consumes.
type UseCase interface {
	Services(ctx context.Context) ([]domain.Service, error)
	Check(ctx context.Context, input CheckInput) ([]domain.ServiceAvailability, error)
}

// Provider is the slice of the SimplyBook client the aggregator needs.
type Provider interface {
	EventList(ctx context.Context) ([]domain.Service, error)
	UnitList(ctx context.Context) ([]domain.Unit, error)
	StartTimeMatrix(ctx context.Context, dateFrom, dateTo string, serviceID, unitID domain.ID, count int) (domain.SlotMatrix, error)
}

// Cache is an optional read-through store for the provider catalogs.
type Cache interface {
	GetCatalog(ctx context.Context) (*domain.Catalog, error)
	SetCatalog(ctx context.Context, catalog *domain.Catalog) error
}

type CheckInput struct {
	DateFrom          string `json:"dateFrom"`
	DateTo            string `json:"dateTo"`
	PreferredLocation string `json:"preferredLocation"`
	IndoorOutdoor     string `json:"indoorOutdoor"`
	Sport             string `json:"sport"`
	PreferredTime     string `json:"preferredTime"`
}

type Service struct {
	provider   Provider
	cache      Cache
	log        *zap.Logger
	mock       bool
	maxFetches int
}

type Option func(*Service)

func WithCache(cache Cache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithMaxFetches(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxFetches = n
		}
	}
}

func New(provider Provider, log *zap.Logger, mock bool, opts ...Option) *Service {
	service := &Service{
		provider:   provider,
		log:        log,
		mock:       mock,
		maxFetches: defaultMaxFetches,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Services lists the bookable service catalog.
func (s *Service) Services(ctx context.Context) ([]domain.Service, error) {
	if s.mock {
		return mockServices(), nil
	}
	services, _, err := s.catalogs(ctx)
	return services, err
}

// Check runs the availability pipeline: catalog fetch, sport/location/
// indoor-outdoor filtering, per-unit eligibility, concurrent slot-matrix
// fetches, preferred-time filtering, ordered assembly.
func (s *Service) Check(ctx context.Context, input CheckInput) ([]domain.ServiceAvailability, error) {
	if input.DateFrom == "" || input.DateTo == "" {
		return nil, domain.NewValidationError("dateFrom and dateTo required")
	}

	if s.mock {
		return mockAvailability(input), nil
	}

	preferredMinutes := -1
	if input.PreferredTime != "" {
		mins, err := parseMinutes(input.PreferredTime)
		if err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("invalid preferredTime %q", input.PreferredTime))
		}
		preferredMinutes = mins
	}

	services, units, err := s.catalogs(ctx)
	if err != nil {
		return nil, err
	}

	candidateServices := filterServices(services, input.Sport)
	matchingUnits := filterUnits(units, input.PreferredLocation, input.IndoorOutdoor)

	results := make([]domain.ServiceAvailability, 0, len(candidateServices))
	for _, svc := range candidateServices {
		allowed := make([]domain.Unit, 0, len(matchingUnits))
		for _, u := range matchingUnits {
			if svc.EligibleUnit(u.ID) {
				allowed = append(allowed, u)
			}
		}

		results = append(results, domain.ServiceAvailability{
			Service: domain.ServiceRef{ID: svc.ID, Name: svc.Name, Duration: svc.Duration},
			Units:   s.fetchUnits(ctx, input, svc, allowed, preferredMinutes),
		})
	}
	return results, nil
}

// fetchUnits queries each unit's slot matrix concurrently, bounded by
// maxFetches. A failing unit is recorded, never fatal; the join waits for
// every fetch to settle.
func (s *Service) fetchUnits(ctx context.Context, input CheckInput, svc domain.Service, units []domain.Unit, preferredMinutes int) []domain.UnitAvailability {
	out := make([]domain.UnitAvailability, len(units))
	sem := make(chan struct{}, s.maxFetches)
	var wg sync.WaitGroup

	for i, unit := range units {
		wg.Add(1)
		go func(i int, unit domain.Unit) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			matrix, err := s.provider.StartTimeMatrix(ctx, input.DateFrom, input.DateTo, svc.ID, unit.ID, 1)
			if err != nil {
				s.log.Warn("slot matrix fetch failed",
					zap.String("service_id", string(svc.ID)),
					zap.String("unit_id", string(unit.ID)),
					zap.Error(err),
				)
				out[i] = domain.UnitAvailability{Unit: unit, Error: err.Error()}
				return
			}
			if preferredMinutes >= 0 {
				filterMatrix(matrix, preferredMinutes)
			}
			out[i] = domain.UnitAvailability{Unit: unit, StartTimes: matrix}
		}(i, unit)
	}
	wg.Wait()
	return out
}

// catalogs returns the service and unit catalogs, read through the cache
// when one is configured.
func (s *Service) catalogs(ctx context.Context) ([]domain.Service, []domain.Unit, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetCatalog(ctx); err == nil && cached != nil {
			return cached.Services, cached.Units, nil
		}
	}

	services, err := s.provider.EventList(ctx)
	if err != nil {
		return nil, nil, err
	}
	units, err := s.provider.UnitList(ctx)
	if err != nil {
		return nil, nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetCatalog(ctx, &domain.Catalog{Services: services, Units: units}); err != nil {
			s.log.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return services, units, nil
}

func filterServices(services []domain.Service, sport string) []domain.Service {
	sportLower := strings.ToLower(sport)
	out := make([]domain.Service, 0, len(services))
	for _, svc := range services {
		if sportLower == "" || strings.Contains(strings.ToLower(svc.Name+" "+svc.Description), sportLower) {
			out = append(out, svc)
		}
	}
	return out
}

// filterUnits applies the location substring match and the indoor/outdoor
// keyword heuristic. The keywords are fixed free-text rules, not a
// structured attribute; downstream consumers depend on the exact matching.
func filterUnits(units []domain.Unit, location, indoorOutdoor string) []domain.Unit {
	locationLower := strings.ToLower(location)
	out := make([]domain.Unit, 0, len(units))
	for _, u := range units {
		text := strings.ToLower(u.Name + " " + u.Description)
		if locationLower != "" && !strings.Contains(text, locationLower) {
			continue
		}
		switch indoorOutdoor {
		case "indoor":
			if !strings.Contains(text, "indoor") {
				continue
			}
		case "outdoor":
			if !strings.Contains(text, "outdoor") && !strings.Contains(text, "park") && !strings.Contains(text, "field") {
				continue
			}
		}
		out = append(out, u)
	}
	return out
}

// filterMatrix keeps only times within the preferred window, deleting dates
// that end up with no remaining times.
func filterMatrix(matrix domain.SlotMatrix, preferredMinutes int) {
	for date, times := range matrix {
		kept := times[:0]
		for _, t := range times {
			mins, err := parseMinutes(t)
			if err != nil {
				continue
			}
			diff := mins - preferredMinutes
			if diff < 0 {
				diff = -diff
			}
			if diff <= preferredWindowMinutes {
				kept = append(kept, t)
			}
		}
		if len(kept) == 0 {
			delete(matrix, date)
		} else {
			matrix[date] = kept
		}
	}
}

// parseMinutes converts "HH:MM" to minutes since midnight. A bare "HH"
// counts as "HH:00".
func parseMinutes(t string) (int, error) {
	hh, mm, found := strings.Cut(t, ":")
	hours, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	minutes := 0
	if found {
		minutes, err = strconv.Atoi(strings.TrimSpace(mm))
		if err != nil {
			return 0, fmt.Errorf("invalid time %q", t)
		}
	}
	return hours*60 + minutes, nil
}

var _ UseCase = (*Service)(nil)
