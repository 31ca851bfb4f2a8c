package discount

import (
	"context"

	"bundle-manager/core/graphql"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const createMutation = `mutation CreateBundleDiscount($basicCodeDiscount: DiscountCodeBasicInput!) {
  discountCodeBasicCreate(basicCodeDiscount: $basicCodeDiscount) {
    codeDiscountNode { id }
    userErrors { field message }
  }
}`

const updateMutation = `mutation UpdateBundleDiscount($id: ID!, $basicCodeDiscount: DiscountCodeBasicInput!) {
  discountCodeBasicUpdate(id: $id, basicCodeDiscount: $basicCodeDiscount) {
    codeDiscountNode { id }
    userErrors { field message }
  }
}`

const deleteMutation = `mutation DeleteBundleDiscount($id: ID!) {
  discountCodeDelete(id: $id) {
    deletedCodeDiscountId
    userErrors { field message }
  }
}`

type mutationPayload struct {
	CodeDiscountNode *struct {
		ID string `json:"id"`
	} `json:"codeDiscountNode"`
	DeletedCodeDiscountID string      `json:"deletedCodeDiscountId"`
	UserErrors            []userError `json:"userErrors"`
}

// Executor issues create, update and delete mutations for Basic code discounts.
type Executor struct {
	client graphql.Client
	logger *zap.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(client graphql.Client, logger *zap.Logger) *Executor {
	return &Executor{client: client, logger: logger}
}

// Create creates a Basic code discount and returns its remote id.
func (e *Executor) Create(ctx context.Context, terms Terms) (string, error) {
	payload, err := e.mutate(ctx, createMutation, "discountCodeBasicCreate", map[string]any{
		"basicCodeDiscount": terms.Input(),
	})
	if err != nil {
		return "", err
	}
	var id string
	if payload.CodeDiscountNode != nil {
		id = payload.CodeDiscountNode.ID
	}
	e.logger.Debug("Created discount", zap.String("code", terms.Code), zap.String("id", id))
	return id, nil
}

// Update rewrites the terms of an existing Basic code discount.
func (e *Executor) Update(ctx context.Context, id string, terms Terms) error {
	if _, err := e.mutate(ctx, updateMutation, "discountCodeBasicUpdate", map[string]any{
		"id":                id,
		"basicCodeDiscount": terms.Input(),
	}); err != nil {
		return err
	}
	e.logger.Debug("Updated discount", zap.String("code", terms.Code), zap.String("id", id))
	return nil
}

// Delete removes a code discount by remote id.
func (e *Executor) Delete(ctx context.Context, id string) error {
	if _, err := e.mutate(ctx, deleteMutation, "discountCodeDelete", map[string]any{
		"id": id,
	}); err != nil {
		return err
	}
	e.logger.Debug("Deleted discount", zap.String("id", id))
	return nil
}

func (e *Executor) mutate(ctx context.Context, document, field string, variables map[string]any) (*mutationPayload, error) {
	resp, err := e.client.Do(ctx, document, variables)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	var data map[string]*mutationPayload
	if err := resp.Decode(&data); err != nil {
		return nil, &GraphError{Message: err.Error()}
	}
	payload := data[field]
	if payload == nil {
		return nil, &GraphError{Message: errors.Newf("response is missing %s", field).Error()}
	}
	if err := validationError(payload.UserErrors); err != nil {
		return nil, err
	}
	return payload, nil
}
