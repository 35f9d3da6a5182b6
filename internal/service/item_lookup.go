package service

import (
	"context"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// itemLookup reads items through an optional cache. Cache failures are
// logged and the store answers instead.
type itemLookup struct {
	repo   domain.ItemRepository
	cache  domain.ItemCache
	logger *zerolog.Logger
}

func (l *itemLookup) get(ctx context.Context, id int64) (*models.Item, error) {
	if l.cache != nil {
		item, err := l.cache.GetItem(ctx, id)
		switch {
		case err != nil:
			l.logger.Warn().Err(err).Int64("item_id", id).Msg("Item cache read failed")
		case item != nil:
			return item, nil
		}
	}

	item, err := l.repo.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.SetItem(ctx, item); err != nil {
			l.logger.Warn().Err(err).Int64("item_id", id).Msg("Item cache write failed")
		}
	}
	return item, nil
}

func (l *itemLookup) invalidate(ctx context.Context, id int64) {
	if l.cache == nil {
		return
	}
	if err := l.cache.InvalidateItem(ctx, id); err != nil {
		l.logger.Warn().Err(err).Int64("item_id", id).Msg("Item cache invalidation failed")
	}
}
