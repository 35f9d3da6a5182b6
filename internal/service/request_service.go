package service

import (
	"context"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemRequestService struct {
	repo   domain.Repository
	clock  domain.Clock
	logger *zerolog.Logger
}

func NewItemRequestService(repo domain.Repository, clock domain.Clock, logger *zerolog.Logger) *ItemRequestService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ItemRequestService{repo: repo, clock: clock, logger: logger}
}

func (s *ItemRequestService) CreateRequest(ctx context.Context, userID int64, input models.ItemRequestInput) (*models.ItemRequestView, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	request := &models.ItemRequest{
		Description: strings.TrimSpace(input.Description),
		RequesterID: userID,
		Created:     s.clock.Now(),
	}
	if err := s.repo.CreateItemRequest(ctx, request); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("request_id", request.ID).Int64("user_id", userID).Msg("Item request created")

	view := models.NewItemRequestView(request, nil)
	return &view, nil
}

func (s *ItemRequestService) GetOwnRequests(ctx context.Context, userID int64) ([]models.ItemRequestView, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.repo.GetItemRequestsByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

func (s *ItemRequestService) GetOtherRequests(ctx context.Context, userID int64, page models.Page) ([]models.ItemRequestView, error) {
	if !page.Valid() {
		return nil, invalidPage()
	}
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.repo.GetItemRequestsExcept(ctx, userID, page.Size, page.From)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

func (s *ItemRequestService) GetRequest(ctx context.Context, userID, requestID int64) (*models.ItemRequestView, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	request, err := s.repo.GetItemRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	views, err := s.withItems(ctx, []*models.ItemRequest{request})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// withItems attaches the items created in answer to each request.
func (s *ItemRequestService) withItems(ctx context.Context, requests []*models.ItemRequest) ([]models.ItemRequestView, error) {
	views := make([]models.ItemRequestView, 0, len(requests))
	if len(requests) == 0 {
		return views, nil
	}

	ids := make([]int64, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	items, err := s.repo.GetItemsByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[int64][]models.Item)
	for _, item := range items {
		if item.RequestID != nil {
			byRequest[*item.RequestID] = append(byRequest[*item.RequestID], *item)
		}
	}

	for _, r := range requests {
		views = append(views, models.NewItemRequestView(r, byRequest[r.ID]))
	}
	return views, nil
}
