package usecase_test

import (
	"context"

	"flickr-embed/domain/model"

	"github.com/stretchr/testify/mock"
)

type MockFlickr struct {
	mock.Mock
}

func (m *MockFlickr) GetPhotoInfo(ctx context.Context, photoID string) (*model.PhotoInfo, error) {
	args := m.Called(ctx, photoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PhotoInfo), args.Error(1)
}

func (m *MockFlickr) GetPhotoSizes(ctx context.Context, photoID string) ([]model.PhotoSize, error) {
	args := m.Called(ctx, photoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PhotoSize), args.Error(1)
}

type MockPhotoCache struct {
	mock.Mock
}

func (m *MockPhotoCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockPhotoCache) Set(ctx context.Context, key string, value []byte, expiry model.Expiry) error {
	args := m.Called(ctx, key, value, expiry)
	return args.Error(0)
}

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, photoID string) (*model.PhotoMetadata, error) {
	args := m.Called(ctx, photoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PhotoMetadata), args.Error(1)
}
