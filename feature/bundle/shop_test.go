package bundle_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"bundle-manager/core/graphql"
)

type fakeDiscount struct {
	id       string
	code     string
	typeName string
	input    map[string]any
}

type fakeProduct struct {
	title string
	image string
}

// fakeShop is an in-memory Admin API for one shop.
type fakeShop struct {
	mu            sync.Mutex
	metafields    map[string]string
	products      map[string]fakeProduct
	discounts     []*fakeDiscount
	operations    []string
	failMetafield bool
	nextID        int
}

func newFakeShop() *fakeShop {
	return &fakeShop{
		metafields: map[string]string{},
		products:   map[string]fakeProduct{},
	}
}

func (s *fakeShop) codes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []string{}
	for _, d := range s.discounts {
		out = append(out, d.code)
	}
	return out
}

func (s *fakeShop) seedDiscount(typeName, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.discounts = append(s.discounts, &fakeDiscount{id: fmt.Sprintf("gid://shopify/DiscountCodeNode/%d", s.nextID), code: code, typeName: typeName})
}

func (s *fakeShop) discountOperations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []string{}
	for _, op := range s.operations {
		if strings.HasPrefix(op, "discount") {
			out = append(out, op)
		}
	}
	return out
}

func (s *fakeShop) Do(_ context.Context, query string, variables map[string]any) (*graphql.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var data any
	switch {
	case strings.Contains(query, "GetBundleConfig"):
		var metafield any
		if v, ok := s.metafields[variables["key"].(string)]; ok {
			metafield = map[string]any{"value": v}
		}
		data = map[string]any{"shop": map[string]any{"metafield": metafield}}
	case strings.Contains(query, "GetShopId"):
		data = map[string]any{"shop": map[string]any{"id": "gid://shopify/Shop/1"}}
	case strings.Contains(query, "metafieldsSet"):
		s.operations = append(s.operations, "metafieldsSet")
		userErrors := []any{}
		if s.failMetafield {
			userErrors = append(userErrors, map[string]any{"field": []string{"metafields", "0", "value"}, "message": "is invalid"})
		} else {
			for _, mf := range variables["metafields"].([]map[string]any) {
				s.metafields[mf["key"].(string)] = mf["value"].(string)
			}
		}
		data = map[string]any{"metafieldsSet": map[string]any{"metafields": []any{}, "userErrors": userErrors}}
	case strings.Contains(query, "GetBundleProducts"):
		nodes := []any{}
		for _, id := range variables["ids"].([]string) {
			p, ok := s.products[id]
			if !ok {
				nodes = append(nodes, nil)
				continue
			}
			nodes = append(nodes, map[string]any{"id": id, "title": p.title, "featuredImage": map[string]any{"url": p.image}})
		}
		data = map[string]any{"nodes": nodes}
	case strings.Contains(query, "codeDiscountNodes"):
		data = s.search(variables["query"].(string))
	case strings.Contains(query, "discountCodeBasicCreate"):
		data = map[string]any{"discountCodeBasicCreate": s.create(variables["basicCodeDiscount"].(map[string]any))}
	case strings.Contains(query, "discountCodeBasicUpdate"):
		data = map[string]any{"discountCodeBasicUpdate": s.update(variables["id"].(string), variables["basicCodeDiscount"].(map[string]any))}
	case strings.Contains(query, "discountCodeDelete"):
		data = map[string]any{"discountCodeDelete": s.remove(variables["id"].(string))}
	default:
		return &graphql.Response{Errors: []graphql.Error{{Message: "unknown operation"}}}, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &graphql.Response{Data: raw}, nil
}

func (s *fakeShop) search(q string) map[string]any {
	term := strings.TrimPrefix(q, "code:")
	nodes := []any{}
	for _, d := range s.discounts {
		if !strings.EqualFold(d.code, term) {
			continue
		}
		nodes = append(nodes, map[string]any{
			"id": d.id,
			"codeDiscount": map[string]any{
				"__typename": d.typeName,
				"title":      d.code,
				"codes":      map[string]any{"nodes": []any{map[string]any{"code": d.code}}},
			},
		})
	}
	return map[string]any{"codeDiscountNodes": map[string]any{"nodes": nodes}}
}

func (s *fakeShop) create(input map[string]any) map[string]any {
	s.operations = append(s.operations, "discountCreate")
	s.nextID++
	id := fmt.Sprintf("gid://shopify/DiscountCodeNode/%d", s.nextID)
	s.discounts = append(s.discounts, &fakeDiscount{id: id, code: input["code"].(string), typeName: "DiscountCodeBasic", input: input})
	return map[string]any{"codeDiscountNode": map[string]any{"id": id}, "userErrors": []any{}}
}

func (s *fakeShop) update(id string, input map[string]any) map[string]any {
	s.operations = append(s.operations, "discountUpdate")
	for _, d := range s.discounts {
		if d.id == id {
			d.input = input
		}
	}
	return map[string]any{"codeDiscountNode": map[string]any{"id": id}, "userErrors": []any{}}
}

func (s *fakeShop) remove(id string) map[string]any {
	s.operations = append(s.operations, "discountDelete")
	for i, d := range s.discounts {
		if d.id == id {
			s.discounts = append(s.discounts[:i], s.discounts[i+1:]...)
			break
		}
	}
	return map[string]any{"deletedCodeDiscountId": id, "userErrors": []any{}}
}

// staticFactory hands out the same fake shop for every domain.
type staticFactory struct {
	shop    *fakeShop
	domains map[string]bool
}

func (f staticFactory) ForShop(_ context.Context, shop string) (graphql.Client, error) {
	if f.domains != nil && !f.domains[shop] {
		return nil, fmt.Errorf("No session found")
	}
	return f.shop, nil
}

func (f staticFactory) DefaultShop() string {
	return "demo.myshopify.com"
}
