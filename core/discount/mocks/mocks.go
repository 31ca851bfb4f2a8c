package mocks

import (
	"context"

	"bundle-manager/core/discount"

	"github.com/stretchr/testify/mock"
)

// Finder is a mock implementation of discount.Finder
type Finder struct {
	mock.Mock
}

func (m *Finder) FindForUpdate(ctx context.Context, code string) (*discount.Record, error) {
	args := m.Called(ctx, code)
	if rec, ok := args.Get(0).(*discount.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

// Mutator is a mock implementation of discount.Mutator
type Mutator struct {
	mock.Mock
}

func (m *Mutator) Create(ctx context.Context, terms discount.Terms) (string, error) {
	args := m.Called(ctx, terms)
	return args.String(0), args.Error(1)
}

func (m *Mutator) Update(ctx context.Context, id string, terms discount.Terms) error {
	args := m.Called(ctx, id, terms)
	return args.Error(0)
}

func (m *Mutator) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
