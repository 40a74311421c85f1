package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/leadgen/internal/entity"
	"github.com/xavierca1/leadgen/internal/usecase"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateOutreachStatus(ctx context.Context, id int64, update entity.OutreachUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateResponse(ctx context.Context, id int64, status, text string) error {
	args := m.Called(ctx, id, status, text)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateNotes(ctx context.Context, id int64, notes string) error {
	args := m.Called(ctx, id, notes)
	return args.Error(0)
}

func (m *MockLeadRepository) SetAIMessage(ctx context.Context, id int64, message string) error {
	args := m.Called(ctx, id, message)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishLeadRegistered(ctx context.Context, event usecase.LeadRegisteredEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func boolPtr(b bool) *bool { return &b }
