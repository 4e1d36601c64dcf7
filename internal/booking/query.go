package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ListQuery is a caller's view request: their own appointments (all of
// them for admins), optionally narrowed by status and search text, newest
// scheduled first, optionally capped.
type ListQuery struct {
	CallerID   uuid.UUID
	CallerRole Role
	Status     Status // zero value = all statuses
	Limit      int
	Search     string
}

// List resolves a query through the primary sorted store path, falling
// back to fetch-then-sort only when the store reports it cannot serve the
// sorted shape. Both paths yield identical results for the same snapshot;
// the fallback exists for availability, not as a different feature.
func (s *Service) List(ctx context.Context, q ListQuery) ([]Appointment, error) {
	appts, err := s.appts.List(ctx, ListFilter{
		ParticipantID: q.CallerID,
		Role:          q.CallerRole,
		Status:        q.Status,
		Limit:         q.Limit,
		Sorted:        true,
	})
	switch {
	case err == nil:
	case errors.Is(err, ErrSortUnsupported):
		s.log.Debug().Str("caller_id", q.CallerID.String()).Msg("sorted query unsupported, using fallback")
		appts, err = s.listFallback(ctx, q)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	return filterSearch(appts, q.Search), nil
}

// listFallback fetches by identity alone and reproduces the ordering,
// status filter, and cap in memory. The sort over an uncapped result can
// be large, so cancellation is honored between steps.
func (s *Service) listFallback(ctx context.Context, q ListQuery) ([]Appointment, error) {
	appts, err := s.appts.List(ctx, ListFilter{
		ParticipantID: q.CallerID,
		Role:          q.CallerRole,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: fallback list failed: %v", ErrUnavailable, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(appts, func(i, j int) bool {
		if !appts[i].ScheduledAt.Equal(appts[j].ScheduledAt) {
			return appts[i].ScheduledAt.After(appts[j].ScheduledAt)
		}
		if !appts[i].CreatedAt.Equal(appts[j].CreatedAt) {
			return appts[i].CreatedAt.After(appts[j].CreatedAt)
		}
		return appts[i].ID.String() < appts[j].ID.String()
	})

	out := make([]Appointment, 0, len(appts))
	for _, a := range appts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if q.Status != "" && a.Status != q.Status {
			continue
		}
		out = append(out, a)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

// filterSearch keeps appointments whose title, owner name, or requester
// name contains the search text, case-insensitively. Always in memory,
// over the already-fetched page.
func filterSearch(appts []Appointment, search string) []Appointment {
	search = strings.TrimSpace(strings.ToLower(search))
	if search == "" {
		return appts
	}
	out := make([]Appointment, 0, len(appts))
	for _, a := range appts {
		if strings.Contains(strings.ToLower(a.Title), search) ||
			strings.Contains(strings.ToLower(a.OwnerName), search) ||
			strings.Contains(strings.ToLower(a.RequesterName), search) {
			out = append(out, a)
		}
	}
	return out
}
