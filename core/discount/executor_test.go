package discount

import (
	"context"
	"errors"
	"testing"
	"time"

	"bundle-manager/core/graphql"
	"bundle-manager/core/graphql/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testTerms = NewTerms(Tier{Count: 3, Percentage: 10}, "fubndl", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

func TestExecutorCreate(t *testing.T) {
	client := new(mocks.Client)
	client.On("Do", mock.Anything, createMutation, mock.MatchedBy(func(v map[string]any) bool {
		input, ok := v["basicCodeDiscount"].(map[string]any)
		return ok && input["code"] == "fubndl-10"
	})).Return(dataResponse(`{"discountCodeBasicCreate":{"codeDiscountNode":{"id":"gid://new"},"userErrors":[]}}`), nil)

	id, err := NewExecutor(client, zap.NewNop()).Create(context.Background(), testTerms)

	require.NoError(t, err)
	assert.Equal(t, "gid://new", id)
}

func TestExecutorCreate_UserErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "string field",
			body: `{"discountCodeBasicCreate":{"codeDiscountNode":null,"userErrors":[{"field":"code","message":"already exists"}]}}`,
			want: "code: already exists",
		},
		{
			name: "path field",
			body: `{"discountCodeBasicCreate":{"codeDiscountNode":null,"userErrors":[{"field":["basicCodeDiscount","code"],"message":"is taken"},{"field":null,"message":"try again"}]}}`,
			want: "basicCodeDiscount.code: is taken, try again",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.Client)
			client.On("Do", mock.Anything, createMutation, mock.Anything).Return(dataResponse(tt.body), nil)

			_, err := NewExecutor(client, zap.NewNop()).Create(context.Background(), testTerms)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestExecutorUpdate(t *testing.T) {
	client := new(mocks.Client)
	client.On("Do", mock.Anything, updateMutation, mock.MatchedBy(func(v map[string]any) bool {
		return v["id"] == "gid://10"
	})).Return(dataResponse(`{"discountCodeBasicUpdate":{"codeDiscountNode":{"id":"gid://10"},"userErrors":[]}}`), nil)

	err := NewExecutor(client, zap.NewNop()).Update(context.Background(), "gid://10", testTerms)

	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestExecutorDelete(t *testing.T) {
	client := new(mocks.Client)
	client.On("Do", mock.Anything, deleteMutation, map[string]any{"id": "gid://5"}).
		Return(dataResponse(`{"discountCodeDelete":{"deletedCodeDiscountId":"gid://5","userErrors":[]}}`), nil)

	err := NewExecutor(client, zap.NewNop()).Delete(context.Background(), "gid://5")

	assert.NoError(t, err)
}

func TestExecutor_ClassifiesFailures(t *testing.T) {
	t.Run("transport", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("Do", mock.Anything, deleteMutation, mock.Anything).
			Return(nil, &graphql.StatusError{StatusCode: 502, Body: "bad gateway"})

		err := NewExecutor(client, zap.NewNop()).Delete(context.Background(), "gid://5")

		var transportErr *TransportError
		require.ErrorAs(t, err, &transportErr)
		var statusErr *graphql.StatusError
		assert.True(t, errors.As(err, &statusErr))
		assert.Equal(t, 502, statusErr.StatusCode)
	})

	t.Run("graph", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("Do", mock.Anything, deleteMutation, mock.Anything).
			Return(&graphql.Response{Errors: []graphql.Error{{Message: "Access denied"}}}, nil)

		err := NewExecutor(client, zap.NewNop()).Delete(context.Background(), "gid://5")

		var graphErr *GraphError
		require.ErrorAs(t, err, &graphErr)
		assert.Equal(t, "Access denied", err.Error())
	})

	t.Run("missing payload", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("Do", mock.Anything, deleteMutation, mock.Anything).
			Return(dataResponse(`{"somethingElse":{}}`), nil)

		err := NewExecutor(client, zap.NewNop()).Delete(context.Background(), "gid://5")

		var graphErr *GraphError
		require.ErrorAs(t, err, &graphErr)
	})
}
