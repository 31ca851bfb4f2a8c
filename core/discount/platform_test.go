package discount_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"bundle-manager/core/graphql"
)

type remoteDiscount struct {
	id       string
	typeName string
	code     string
	title    string
	input    map[string]any
}

// fakePlatform is an in-memory stand-in for the Admin API discount surface.
type fakePlatform struct {
	mu        sync.Mutex
	nextID    int
	discounts []*remoteDiscount
	creates   int
	updates   int
	deletes   int
	failCode  map[string]string
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{failCode: map[string]string{}}
}

func (p *fakePlatform) seed(typeName, code string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	id := fmt.Sprintf("gid://shopify/DiscountCodeNode/%d", p.nextID)
	p.discounts = append(p.discounts, &remoteDiscount{id: id, typeName: typeName, code: code, title: code})
	return id
}

func (p *fakePlatform) codes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.discounts))
	for _, d := range p.discounts {
		out = append(out, d.code)
	}
	return out
}

func (p *fakePlatform) byCode(code string) *remoteDiscount {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, d := range p.discounts {
		if strings.EqualFold(d.code, code) {
			return d
		}
	}
	return nil
}

func (p *fakePlatform) Do(_ context.Context, query string, variables map[string]any) (*graphql.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var data any
	switch {
	case strings.Contains(query, "codeDiscountNodes"):
		data = p.search(variables["query"].(string))
	case strings.Contains(query, "discountCodeBasicCreate"):
		data = map[string]any{"discountCodeBasicCreate": p.create(variables["basicCodeDiscount"].(map[string]any))}
	case strings.Contains(query, "discountCodeBasicUpdate"):
		data = map[string]any{"discountCodeBasicUpdate": p.update(variables["id"].(string), variables["basicCodeDiscount"].(map[string]any))}
	case strings.Contains(query, "discountCodeDelete"):
		data = map[string]any{"discountCodeDelete": p.remove(variables["id"].(string))}
	default:
		return &graphql.Response{Errors: []graphql.Error{{Message: "unknown operation"}}}, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &graphql.Response{Data: raw}, nil
}

func (p *fakePlatform) search(q string) map[string]any {
	exact := strings.HasPrefix(q, "code:")
	term := strings.TrimPrefix(q, "code:")

	nodes := []any{}
	for _, d := range p.discounts {
		matched := strings.EqualFold(d.code, term)
		if !exact {
			matched = strings.Contains(strings.ToLower(d.code), strings.ToLower(term))
		}
		if !matched {
			continue
		}
		nodes = append(nodes, map[string]any{
			"id": d.id,
			"codeDiscount": map[string]any{
				"__typename": d.typeName,
				"title":      d.title,
				"codes":      map[string]any{"nodes": []any{map[string]any{"code": d.code}}},
			},
		})
	}
	return map[string]any{"codeDiscountNodes": map[string]any{"nodes": nodes}}
}

func userErrors(field, message string) []any {
	return []any{map[string]any{"field": []string{field}, "message": message}}
}

func (p *fakePlatform) create(input map[string]any) map[string]any {
	code := input["code"].(string)
	if msg, ok := p.failCode[code]; ok {
		return map[string]any{"codeDiscountNode": nil, "userErrors": userErrors("code", msg)}
	}
	for _, d := range p.discounts {
		if strings.EqualFold(d.code, code) {
			return map[string]any{"codeDiscountNode": nil, "userErrors": userErrors("code", "already exists")}
		}
	}
	p.nextID++
	p.creates++
	id := fmt.Sprintf("gid://shopify/DiscountCodeNode/%d", p.nextID)
	p.discounts = append(p.discounts, &remoteDiscount{
		id: id, typeName: "DiscountCodeBasic", code: code, title: input["title"].(string), input: input,
	})
	return map[string]any{"codeDiscountNode": map[string]any{"id": id}, "userErrors": []any{}}
}

func (p *fakePlatform) update(id string, input map[string]any) map[string]any {
	for _, d := range p.discounts {
		if d.id == id {
			p.updates++
			d.title = input["title"].(string)
			d.input = input
			return map[string]any{"codeDiscountNode": map[string]any{"id": id}, "userErrors": []any{}}
		}
	}
	return map[string]any{"codeDiscountNode": nil, "userErrors": userErrors("id", "Discount does not exist")}
}

func (p *fakePlatform) remove(id string) map[string]any {
	for i, d := range p.discounts {
		if d.id == id {
			p.deletes++
			p.discounts = append(p.discounts[:i], p.discounts[i+1:]...)
			return map[string]any{"deletedCodeDiscountId": id, "userErrors": []any{}}
		}
	}
	return map[string]any{"deletedCodeDiscountId": nil, "userErrors": userErrors("id", "Discount does not exist")}
}
