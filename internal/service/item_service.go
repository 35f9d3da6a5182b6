package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo     domain.Repository
	items    *itemLookup
	eventBus domain.EventPublisher
	clock    domain.Clock
	logger   *zerolog.Logger
}

func NewItemService(repo domain.Repository, cache domain.ItemCache, eventBus domain.EventPublisher, clock domain.Clock, logger *zerolog.Logger) *ItemService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ItemService{
		repo:     repo,
		items:    &itemLookup{repo: repo, cache: cache, logger: logger},
		eventBus: eventBus,
		clock:    clock,
		logger:   logger,
	}
}

func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, input models.ItemInput) (*models.Item, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if input.RequestID != nil {
		if _, err := s.repo.GetItemRequest(ctx, *input.RequestID); err != nil {
			return nil, err
		}
	}

	item := &models.Item{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		OwnerID:     ownerID,
		RequestID:   input.RequestID,
	}
	if input.Available != nil {
		item.Available = *input.Available
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("Item created")
	return item, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID int64, patch models.ItemPatch) (*models.Item, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: item %d for owner %d", domain.ErrNotFound, itemID, ownerID)
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		item.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) != "" {
		item.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	s.items.invalidate(ctx, itemID)
	s.publishChange(item, false)
	return item, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, ownerID, itemID int64) error {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.OwnerID != ownerID {
		return fmt.Errorf("%w: item %d for owner %d", domain.ErrNotFound, itemID, ownerID)
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	s.items.invalidate(ctx, itemID)
	s.publishChange(item, true)
	return nil
}

// GetItem returns the item with comments; booking summaries are shown to
// the owner only.
func (s *ItemService) GetItem(ctx context.Context, itemID, requesterID int64) (*models.ItemView, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	views, err := s.itemViews(ctx, []*models.Item{item}, item.OwnerID == requesterID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *ItemService) GetOwnerItems(ctx context.Context, ownerID int64) ([]models.ItemView, error) {
	if _, err := s.repo.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.repo.GetItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.itemViews(ctx, items, true)
}

// SearchItems returns nothing for blank text.
func (s *ItemService) SearchItems(ctx context.Context, text string) ([]*models.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []*models.Item{}, nil
	}
	return s.repo.SearchAvailableItems(ctx, text)
}

func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, input models.CommentInput) (*models.CommentView, error) {
	author, err := s.repo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetItemByID(ctx, itemID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	used, err := s.repo.HasStartedBooking(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !used {
		return nil, fmt.Errorf("%w: user %d has not booked item %d", domain.ErrInvalidRequest, authorID, itemID)
	}

	comment := &models.Comment{
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Text:       strings.TrimSpace(input.Text),
		Created:    now,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	view := models.NewCommentView(comment)
	return &view, nil
}

func (s *ItemService) itemViews(ctx context.Context, items []*models.Item, withBookings bool) ([]models.ItemView, error) {
	views := make([]models.ItemView, 0, len(items))
	if len(items) == 0 {
		return views, nil
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	comments, err := s.repo.GetCommentsByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[int64][]models.CommentView)
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], models.NewCommentView(c))
	}

	bookingsByItem := make(map[int64][]*models.Booking)
	if withBookings {
		approved, err := s.repo.GetBookingsByItems(ctx, ids, models.StatusApproved)
		if err != nil {
			return nil, err
		}
		for _, b := range approved {
			bookingsByItem[b.ItemID] = append(bookingsByItem[b.ItemID], b)
		}
	}

	now := s.clock.Now()
	for _, item := range items {
		view := models.ItemView{Item: *item, Comments: commentsByItem[item.ID]}
		if view.Comments == nil {
			view.Comments = []models.CommentView{}
		}
		if withBookings {
			last, next := nearestBookings(bookingsByItem[item.ID], now)
			view.LastBooking = models.NewBookingShort(last)
			view.NextBooking = models.NewBookingShort(next)
		}
		views = append(views, view)
	}

	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views, nil
}

// nearestBookings picks the latest booking that has started and the
// earliest one still in the future.
func nearestBookings(bookings []*models.Booking, now time.Time) (last, next *models.Booking) {
	for _, b := range bookings {
		if b.Start.Before(now) {
			if last == nil || b.Start.After(last.Start) {
				last = b
			}
		} else if b.Start.After(now) {
			if next == nil || b.Start.Before(next.Start) {
				next = b
			}
		}
	}
	return last, next
}

func (s *ItemService) publishChange(item *models.Item, deleted bool) {
	if s.eventBus == nil {
		return
	}
	payload := events.ItemEventPayload{ItemID: item.ID, OwnerID: item.OwnerID, Deleted: deleted}
	if err := s.eventBus.PublishJSON(events.EventItemChanged, payload); err != nil {
		s.logger.Error().Err(err).Int64("item_id", item.ID).Msg("Failed to publish item event")
	}
}
