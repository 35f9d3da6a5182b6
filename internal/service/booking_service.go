package service

import (
	"context"
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo     domain.Repository
	items    *itemLookup
	eventBus domain.EventPublisher
	clock    domain.Clock
	logger   *zerolog.Logger
}

func NewBookingService(repo domain.Repository, cache domain.ItemCache, eventBus domain.EventPublisher, clock domain.Clock, logger *zerolog.Logger) *BookingService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &BookingService{
		repo:     repo,
		items:    &itemLookup{repo: repo, cache: cache, logger: logger},
		eventBus: eventBus,
		clock:    clock,
		logger:   logger,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, bookerID int64, input models.BookingInput) (*models.BookingView, error) {
	booker, err := s.repo.GetUserByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.get(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	start, end := input.Start.Time(), input.End.Time()
	if err := validateInterval(start, end, s.clock.Now()); err != nil {
		s.logger.Warn().Err(err).Int64("booker_id", bookerID).Int64("item_id", item.ID).Msg("Booking rejected")
		return nil, err
	}
	// self-booking is reported as a missing item
	if item.OwnerID == bookerID {
		return nil, fmt.Errorf("%w: item %d cannot be booked by its owner", domain.ErrNotFound, item.ID)
	}
	if !item.Available {
		return nil, fmt.Errorf("%w: item %d is not available for booking", domain.ErrInvalidRequest, item.ID)
	}

	booking := &models.Booking{
		ItemID:   item.ID,
		BookerID: booker.ID,
		Start:    start,
		End:      end,
		Status:   models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		s.logger.Error().Err(err).Int64("item_id", item.ID).Msg("Failed to persist booking")
		return nil, err
	}

	metrics.IncBookingCreated()
	s.publish(events.EventBookingCreated, booking, item)
	s.logger.Info().Int64("booking_id", booking.ID).Int64("item_id", item.ID).Int64("booker_id", booker.ID).Msg("Booking created")

	view := models.NewBookingView(booking, *item, *booker)
	return &view, nil
}

// validateInterval requires now <= start < end.
func validateInterval(start, end, now time.Time) error {
	switch {
	case start.IsZero() || end.IsZero():
		return fmt.Errorf("%w: start and end are required", domain.ErrInvalidRequest)
	case start.Before(now):
		return fmt.Errorf("%w: start %s is in the past", domain.ErrInvalidRequest, models.LocalDateTime(start))
	case end.Before(now):
		return fmt.Errorf("%w: end %s is in the past", domain.ErrInvalidRequest, models.LocalDateTime(end))
	case !start.Before(end):
		return fmt.Errorf("%w: start must be before end", domain.ErrInvalidRequest)
	}
	return nil
}

func (s *BookingService) SetApproval(ctx context.Context, ownerID, bookingID int64, approved bool) (*models.BookingView, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.get(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: booking %d", domain.ErrNotFound, bookingID)
	}

	status := models.StatusRejected
	if approved {
		if booking.Status == models.StatusApproved {
			return nil, fmt.Errorf("%w: booking %d is already APPROVED", domain.ErrInvalidRequest, bookingID)
		}
		status = models.StatusApproved
	}

	if err := s.repo.UpdateBookingStatusWithVersion(ctx, booking.ID, booking.Version, status); err != nil {
		s.logger.Warn().Err(err).Int64("booking_id", bookingID).Msg("Booking decision not applied")
		return nil, err
	}
	booking.Status = status
	booking.Version++

	booker, err := s.repo.GetUserByID(ctx, booking.BookerID)
	if err != nil {
		return nil, err
	}

	metrics.IncBookingDecision(string(status))
	eventType := events.EventBookingRejected
	if approved {
		eventType = events.EventBookingApproved
	}
	s.publish(eventType, booking, item)
	s.logger.Info().Int64("booking_id", booking.ID).Str("status", string(status)).Msg("Booking decision applied")

	view := models.NewBookingView(booking, *item, *booker)
	return &view, nil
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID, requesterID int64) (*models.BookingView, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.get(ctx, booking.ItemID)
	if err != nil {
		return nil, err
	}
	if requesterID != booking.BookerID && requesterID != item.OwnerID {
		return nil, fmt.Errorf("%w: booking %d", domain.ErrNotFound, bookingID)
	}

	booker, err := s.repo.GetUserByID(ctx, booking.BookerID)
	if err != nil {
		return nil, err
	}
	view := models.NewBookingView(booking, *item, *booker)
	return &view, nil
}

func (s *BookingService) ListBookings(ctx context.Context, userID int64, role models.BookingRole, stateToken string, page models.Page) ([]models.BookingView, error) {
	if !page.Valid() {
		return nil, invalidPage()
	}
	return s.listBookings(ctx, userID, role, stateToken, page.Size, page.From)
}

// ExportBookings returns up to limit bookings for the export endpoint.
func (s *BookingService) ExportBookings(ctx context.Context, ownerID int64, stateToken string, limit int) ([]models.BookingView, error) {
	if limit <= 0 {
		limit = models.ExportRowLimit
	}
	return s.listBookings(ctx, ownerID, models.RoleOwner, stateToken, limit, 0)
}

func (s *BookingService) listBookings(ctx context.Context, userID int64, role models.BookingRole, stateToken string, limit, offset int) ([]models.BookingView, error) {
	state, ok := models.ParseBookingState(stateToken)
	if !ok {
		return nil, fmt.Errorf("%w: Unknown state: %s", domain.ErrUnsupportedState, stateToken)
	}

	bookings, err := s.repo.ListBookings(ctx, domain.BookingFilter{
		UserID: userID,
		Role:   role,
		State:  state,
		Now:    s.clock.Now(),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	return s.views(ctx, bookings)
}

// views resolves items and bookers in two batched reads.
func (s *BookingService) views(ctx context.Context, bookings []*models.Booking) ([]models.BookingView, error) {
	result := make([]models.BookingView, 0, len(bookings))
	if len(bookings) == 0 {
		return result, nil
	}

	itemIDs := make([]int64, 0, len(bookings))
	userIDs := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		itemIDs = append(itemIDs, b.ItemID)
		userIDs = append(userIDs, b.BookerID)
	}
	items, err := s.repo.GetItemsByIDs(ctx, uniqueIDs(itemIDs))
	if err != nil {
		return nil, err
	}
	users, err := s.repo.GetUsersByIDs(ctx, uniqueIDs(userIDs))
	if err != nil {
		return nil, err
	}

	for _, b := range bookings {
		item, okItem := items[b.ItemID]
		booker, okUser := users[b.BookerID]
		if !okItem || !okUser {
			// orphaned rows are left out of listings
			s.logger.Warn().Int64("booking_id", b.ID).Int64("item_id", b.ItemID).Int64("booker_id", b.BookerID).Msg("Booking references a deleted record")
			continue
		}
		result = append(result, models.NewBookingView(b, *item, *booker))
	}
	return result, nil
}

func (s *BookingService) publish(eventType string, b *models.Booking, item *models.Item) {
	if s.eventBus == nil {
		return
	}
	payload := events.BookingEventPayload{
		BookingID: b.ID,
		ItemID:    b.ItemID,
		BookerID:  b.BookerID,
		OwnerID:   item.OwnerID,
		Status:    string(b.Status),
		Start:     b.Start,
		End:       b.End,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event", eventType).Int64("booking_id", b.ID).Msg("Failed to publish booking event")
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func invalidPage() error {
	return fmt.Errorf("%w: from must be >= 0 and size > 0", domain.ErrInvalidRequest)
}
