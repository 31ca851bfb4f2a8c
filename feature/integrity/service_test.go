package integrity

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"bundle-manager/core/graphql"
	"bundle-manager/feature/bundle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeShop answers config reads and discount searches.
type fakeShop struct {
	metafields map[string]string
	discounts  map[string]string // code -> __typename
	searchErr  string
}

func (s *fakeShop) Do(_ context.Context, query string, variables map[string]any) (*graphql.Response, error) {
	var data any
	switch {
	case strings.Contains(query, "GetBundleConfig"):
		var metafield any
		if v, ok := s.metafields[variables["key"].(string)]; ok {
			metafield = map[string]any{"value": v}
		}
		data = map[string]any{"shop": map[string]any{"metafield": metafield}}
	case strings.Contains(query, "codeDiscountNodes"):
		if s.searchErr != "" {
			return &graphql.Response{Errors: []graphql.Error{{Message: s.searchErr}}}, nil
		}
		code := strings.TrimPrefix(variables["query"].(string), "code:")
		nodes := []any{}
		if typeName, ok := s.discounts[code]; ok {
			nodes = append(nodes, map[string]any{
				"id": "gid://" + code,
				"codeDiscount": map[string]any{
					"__typename": typeName,
					"title":      code,
					"codes":      map[string]any{"nodes": []any{map[string]any{"code": code}}},
				},
			})
		}
		data = map[string]any{"codeDiscountNodes": map[string]any{"nodes": nodes}}
	default:
		return nil, errors.New("unexpected operation")
	}
	raw, _ := json.Marshal(data)
	return &graphql.Response{Data: raw}, nil
}

type factory struct {
	shop *fakeShop
}

func (f factory) ForShop(_ context.Context, shop string) (graphql.Client, error) {
	if shop == "" {
		return nil, errors.New("shop is required")
	}
	return f.shop, nil
}

func TestCheckSurface(t *testing.T) {
	shop := &fakeShop{
		metafields: map[string]string{
			"config": `{"products":[],"discounts":[{"count":2,"percentage":5},{"count":3,"percentage":10},{"count":4,"percentage":20},{"count":5,"percentage":20}]}`,
		},
		discounts: map[string]string{
			"fubndl-5":  "DiscountCodeBasic",
			"fubndl-20": "DiscountCodeFreeShipping",
		},
	}
	svc := NewService(factory{shop: shop}, zap.NewNop())

	report, err := svc.CheckSurface(context.Background(), "demo.myshopify.com", bundle.Cart)
	require.NoError(t, err)

	assert.True(t, report.Stored)
	require.Len(t, report.Checks, 3)
	assert.Equal(t, StatusOK, report.Checks[0].Status)
	assert.Equal(t, StatusMissing, report.Checks[1].Status)
	assert.Equal(t, "fubndl-10", report.Checks[1].Code)
	assert.Equal(t, StatusIncompatible, report.Checks[2].Status)
	assert.Equal(t, 1, report.Missing)
	assert.Equal(t, 1, report.Incompatible)
	assert.False(t, report.Healthy())
}

func TestCheckSurface_NothingStored(t *testing.T) {
	svc := NewService(factory{shop: &fakeShop{}}, zap.NewNop())

	report, err := svc.CheckSurface(context.Background(), "demo.myshopify.com", bundle.ProductPage)
	require.NoError(t, err)

	assert.False(t, report.Stored)
	assert.Empty(t, report.Checks)
	assert.True(t, report.Healthy())
}

func TestCheckSurface_LookupErrors(t *testing.T) {
	shop := &fakeShop{
		metafields: map[string]string{"config": `{"discounts":[{"count":2,"percentage":5}]}`},
		searchErr:  "Throttled",
	}
	svc := NewService(factory{shop: shop}, zap.NewNop())

	report, err := svc.CheckSurface(context.Background(), "demo.myshopify.com", bundle.Cart)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Errors)
	assert.Equal(t, "Throttled", report.Checks[0].Error)
}

func TestCheckAll(t *testing.T) {
	shop := &fakeShop{
		metafields: map[string]string{
			"config":       `{"discounts":[{"count":2,"percentage":5}]}`,
			"product_page": `{"discounts":[{"count":2,"percentage":5}]}`,
		},
		discounts: map[string]string{"fubndl-5": "DiscountCodeBasic", "fuprbl-5": "DiscountCodeBasic"},
	}
	svc := NewService(factory{shop: shop}, zap.NewNop())

	reports, err := svc.CheckAll(context.Background(), "demo.myshopify.com")
	require.NoError(t, err)
	require.Len(t, reports, 2)
	for _, r := range reports {
		assert.True(t, r.Healthy(), r.Surface)
	}

	_, err = svc.CheckAll(context.Background(), "")
	assert.Error(t, err)
}
