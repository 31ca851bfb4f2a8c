package mocks

import (
	"context"

	"bundle-manager/core/graphql"

	"github.com/stretchr/testify/mock"
)

// ClientFactory is a mock implementation of bundle.ClientFactory
type ClientFactory struct {
	mock.Mock
}

func (m *ClientFactory) ForShop(ctx context.Context, shop string) (graphql.Client, error) {
	args := m.Called(ctx, shop)
	if c, ok := args.Get(0).(graphql.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
