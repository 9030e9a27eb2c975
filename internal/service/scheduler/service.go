package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jwalitptl/hms-api/internal/model"
	"github.com/jwalitptl/hms-api/internal/repository"
	apperrors "github.com/jwalitptl/hms-api/pkg/errors"
	"github.com/jwalitptl/hms-api/pkg/logger"
	"github.com/jwalitptl/hms-api/pkg/metrics"
)

// weekAheadDays is how many calendar days past the preferred date the
// fallback pass scans.
const weekAheadDays = 7

type MatchStatus string

const (
	StatusExactMatch   MatchStatus = "ExactMatch"
	StatusNoExactMatch MatchStatus = "NoExactMatch"
)

// TheaterSlot is one candidate (theater, date) pairing with the open
// window it was matched against.
type TheaterSlot struct {
	TheaterID   uuid.UUID `json:"theater_id"`
	Theater     string    `json:"theater"`
	WindowStart string    `json:"window_start"`
	WindowEnd   string    `json:"window_end"`
	Date        string    `json:"date"`
	Weekday     string    `json:"weekday"`
}

// Availability is the matcher's tagged result. On ExactMatch only
// AvailableOTs is populated; the alternate buckets are suppressed even
// though they were computed.
type Availability struct {
	Status                  MatchStatus           `json:"status"`
	Request                 *model.SurgeryRequest `json:"request"`
	AvailableOTs            []TheaterSlot         `json:"available_ots,omitempty"`
	SameDayDifferentTimeOTs []TheaterSlot         `json:"same_day_different_time_ots,omitempty"`
	WeekAvailableOTs        []TheaterSlot         `json:"week_available_ots,omitempty"`
}

// Service is the availability matcher: a brute-force bucketed search over
// the tenant's active theaters. Theater counts per tenant are small, so
// up to theaters x 8 point queries per search is acceptable.
type Service struct {
	theaters repository.TheaterRepository
	bookings repository.BookingRepository
	requests repository.SurgeryRequestRepository
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

func NewService(
	theaters repository.TheaterRepository,
	bookings repository.BookingRepository,
	requests repository.SurgeryRequestRepository,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Service {
	return &Service{
		theaters: theaters,
		bookings: bookings,
		requests: requests,
		metrics:  metrics,
		logger:   logger,
	}
}

// FindAvailability resolves a surgery request and partitions the tenant's
// active theaters into exact-match, same-day-alternate-time and week-ahead
// buckets for its preferred slot.
func (s *Service) FindAvailability(ctx context.Context, tenantID, requestID uuid.UUID) (*Availability, error) {
	timer := prometheus.NewTimer(s.metrics.AvailabilityLatency)
	defer timer.ObserveDuration()

	request, err := s.requests.Get(ctx, tenantID, requestID)
	if err != nil {
		return nil, err
	}

	weekday, err := model.WeekdayName(request.PreferredDate)
	if err != nil {
		return nil, apperrors.BadRequest("invalid preferred date", err)
	}

	theaters, err := s.theaters.ListActive(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list theaters: %w", err)
	}

	var matching, sameDay []TheaterSlot
	for _, theater := range theaters {
		window, open := theater.WeeklyWindows[weekday]
		if !open {
			continue
		}

		taken, err := s.bookings.IsSlotTaken(ctx, tenantID, theater.Name, request.PreferredDate, request.PreferredTime, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to check slot: %w", err)
		}
		if taken {
			continue
		}

		slot := TheaterSlot{
			TheaterID:   theater.ID,
			Theater:     theater.Name,
			WindowStart: window.Open,
			WindowEnd:   window.Close,
			Date:        request.PreferredDate,
			Weekday:     weekday,
		}
		if window.Contains(request.PreferredTime) {
			matching = append(matching, slot)
		} else {
			sameDay = append(sameDay, slot)
		}
	}

	// The fallback pass always runs, regardless of the primary pass
	// outcome; the result only carries its bucket when nothing matched
	// exactly.
	weekAhead, err := s.collectWeekAhead(ctx, tenantID, theaters, request)
	if err != nil {
		return nil, err
	}

	if len(matching) > 0 {
		s.metrics.AvailabilitySearches.WithLabelValues("exact_match").Inc()
		return &Availability{
			Status:       StatusExactMatch,
			Request:      request,
			AvailableOTs: matching,
		}, nil
	}

	s.metrics.AvailabilitySearches.WithLabelValues("no_exact_match").Inc()
	s.progressRequestStatus(ctx, request, len(sameDay)+len(weekAhead))

	return &Availability{
		Status:                  StatusNoExactMatch,
		Request:                 request,
		SameDayDifferentTimeOTs: sameDay,
		WeekAvailableOTs:        weekAhead,
	}, nil
}

func (s *Service) collectWeekAhead(ctx context.Context, tenantID uuid.UUID, theaters []*model.OperatingTheater, request *model.SurgeryRequest) ([]TheaterSlot, error) {
	var weekAhead []TheaterSlot
	for day := 1; day <= weekAheadDays; day++ {
		date, err := model.AddDays(request.PreferredDate, day)
		if err != nil {
			return nil, apperrors.BadRequest("invalid preferred date", err)
		}
		weekday, err := model.WeekdayName(date)
		if err != nil {
			return nil, apperrors.BadRequest("invalid preferred date", err)
		}

		for _, theater := range theaters {
			window, open := theater.WeeklyWindows[weekday]
			if !open {
				continue
			}

			taken, err := s.bookings.IsSlotTaken(ctx, tenantID, theater.Name, date, request.PreferredTime, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to check slot: %w", err)
			}
			if taken {
				continue
			}

			weekAhead = append(weekAhead, TheaterSlot{
				TheaterID:   theater.ID,
				Theater:     theater.Name,
				WindowStart: window.Open,
				WindowEnd:   window.Close,
				Date:        date,
				Weekday:     weekday,
			})
		}
	}
	return weekAhead, nil
}

// progressRequestStatus advances the request after an unmatched search:
// alternates found -> time_suggested, nothing anywhere -> ot_unavailable.
// The write is best-effort; a read must not fail on it.
func (s *Service) progressRequestStatus(ctx context.Context, request *model.SurgeryRequest, alternatives int) {
	status := model.SurgeryRequestStatusOTUnavailable
	if alternatives > 0 {
		status = model.SurgeryRequestStatusTimeSuggested
	}
	if request.Status == status {
		return
	}

	request.Status = status
	if err := s.requests.Update(ctx, request); err != nil {
		s.logger.Error(err, "failed to update surgery request status",
			"request_id", request.ID.String())
	}
}
