package mocks

import (
	"context"

	"bundle-manager/core/graphql"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of graphql.Client
type Client struct {
	mock.Mock
}

func (m *Client) Do(ctx context.Context, query string, variables map[string]any) (*graphql.Response, error) {
	args := m.Called(ctx, query, variables)
	if resp, ok := args.Get(0).(*graphql.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}
