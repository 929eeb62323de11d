package usecase

import (
	"context"

	"medisafe/internal/converter"
	"medisafe/internal/delivery/dto"
	"medisafe/internal/service"
)

const defaultActivityLimit = 20

type ActivityUsecase interface {
	Recent(ctx context.Context, limit int) ([]dto.ActivityEventResponse, error)
	Clear(ctx context.Context) error
}

type activityUsecase struct {
	feed *service.ActivityFeed
}

func NewActivityUsecase(feed *service.ActivityFeed) ActivityUsecase {
	return &activityUsecase{feed: feed}
}

func (u *activityUsecase) Recent(ctx context.Context, limit int) ([]dto.ActivityEventResponse, error) {
	if limit < 1 {
		limit = defaultActivityLimit
	}
	events, err := u.feed.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return converter.ActivityEventsToResponses(events), nil
}

func (u *activityUsecase) Clear(ctx context.Context) error {
	return u.feed.Clear(ctx)
}
