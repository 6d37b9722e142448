package mocks

import (
	"context"

	"github.com/pageza/recipes/backend/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockRecipeStore is a mock implementation of the recipe store
type MockRecipeStore struct {
	mock.Mock
}

// Create mocks the Create method
func (m *MockRecipeStore) Create(ctx context.Context, recipe *models.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

// FindByID mocks the FindByID method
func (m *MockRecipeStore) FindByID(ctx context.Context, id int) (*models.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

// Update mocks the Update method
func (m *MockRecipeStore) Update(ctx context.Context, recipe *models.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

// Delete mocks the Delete method
func (m *MockRecipeStore) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// FindByCategory mocks the FindByCategory method
func (m *MockRecipeStore) FindByCategory(ctx context.Context, category string) ([]*models.Recipe, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

// FindByNameContaining mocks the FindByNameContaining method
func (m *MockRecipeStore) FindByNameContaining(ctx context.Context, name string) ([]*models.Recipe, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}
