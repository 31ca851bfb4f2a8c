package discount

import (
	"context"
	"encoding/json"
	"strings"

	"bundle-manager/core/graphql"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const searchPageSize = 25

const findQuery = `query FindBundleDiscounts($query: String!, $first: Int!) {
  codeDiscountNodes(first: $first, query: $query) {
    nodes {
      id
      codeDiscount {
        __typename
        ... on DiscountCodeBasic { title codes(first: 1) { nodes { code } } }
        ... on DiscountCodeBxgy { title codes(first: 1) { nodes { code } } }
        ... on DiscountCodeFreeShipping { title codes(first: 1) { nodes { code } } }
        ... on DiscountCodeApp { title codes(first: 1) { nodes { code } } }
      }
    }
  }
}`

type searchData struct {
	CodeDiscountNodes struct {
		Nodes []struct {
			ID           string          `json:"id"`
			CodeDiscount json.RawMessage `json:"codeDiscount"`
		} `json:"nodes"`
	} `json:"codeDiscountNodes"`
}

// Lookup resolves discount codes to remote records.
type Lookup struct {
	client graphql.Client
	logger *zap.Logger
}

// NewLookup creates a new Lookup.
func NewLookup(client graphql.Client, logger *zap.Logger) *Lookup {
	return &Lookup{client: client, logger: logger}
}

// FindByCode returns the record whose code equals code, compared case-insensitively.
// The field-scoped search runs first; the free-text search runs only when it
// produced no exact match. Returns ErrNotFound when neither does.
func (l *Lookup) FindByCode(ctx context.Context, code string) (*Record, error) {
	candidates, err := l.search(ctx, "code:"+code)
	if err != nil {
		return nil, err
	}
	if match, ok := l.match(candidates, code); ok {
		return &match, nil
	}

	fallback, err := l.search(ctx, code)
	if err != nil {
		return nil, err
	}
	candidates = lo.UniqBy(append(candidates, fallback...), func(r Record) string { return r.ID })
	if match, ok := l.match(candidates, code); ok {
		return &match, nil
	}
	return nil, errors.Wrapf(ErrNotFound, "code %s", code)
}

// FindForUpdate is FindByCode for callers that will mutate the record.
// A non-Basic match is refused with *IncompatibleKindError.
func (l *Lookup) FindForUpdate(ctx context.Context, code string) (*Record, error) {
	rec, err := l.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if rec.Kind != KindBasic {
		return nil, &IncompatibleKindError{Code: code, ID: rec.ID, Kind: rec.Kind}
	}
	return rec, nil
}

func (l *Lookup) search(ctx context.Context, query string) ([]Record, error) {
	resp, err := l.client.Do(ctx, findQuery, map[string]any{
		"query": query,
		"first": searchPageSize,
	})
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}

	var data searchData
	if err := resp.Decode(&data); err != nil {
		return nil, &GraphError{Message: err.Error()}
	}

	records := make([]Record, 0, len(data.CodeDiscountNodes.Nodes))
	for _, node := range data.CodeDiscountNodes.Nodes {
		if len(node.CodeDiscount) == 0 || string(node.CodeDiscount) == "null" {
			continue
		}
		d, err := decodeCodeDiscount(node.CodeDiscount)
		if err != nil {
			l.logger.Warn("Skipping undecodable discount node", zap.String("id", node.ID), zap.Error(err))
			continue
		}
		records = append(records, d.record(node.ID))
	}
	l.logger.Debug("Discount search",
		zap.String("query", query),
		zap.Int("results", len(records)))
	return records, nil
}

// match picks the exact match for code. Multiple exact matches prefer a Basic record.
func (l *Lookup) match(candidates []Record, code string) (Record, bool) {
	exact := lo.Filter(candidates, func(r Record, _ int) bool {
		return strings.EqualFold(r.Code, code)
	})
	if len(exact) == 0 {
		return Record{}, false
	}
	if len(exact) > 1 {
		l.logger.Warn("Ambiguous discount code",
			zap.String("code", code),
			zap.Strings("ids", lo.Map(exact, func(r Record, _ int) string { return r.ID })))
	}
	if basic, ok := lo.Find(exact, func(r Record) bool { return r.Kind == KindBasic }); ok {
		return basic, true
	}
	return exact[0], true
}
