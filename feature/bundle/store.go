package bundle

import (
	"context"
	"encoding/json"
	"strings"

	"bundle-manager/core/graphql"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

const getConfigQuery = `query GetBundleConfig($namespace: String!, $key: String!) {
  shop {
    metafield(namespace: $namespace, key: $key) {
      value
    }
  }
}`

const shopIDQuery = `query GetShopId {
  shop {
    id
  }
}`

const setConfigMutation = `mutation SetBundleConfig($metafields: [MetafieldsSetInput!]!) {
  metafieldsSet(metafields: $metafields) {
    metafields {
      id
    }
    userErrors {
      field
      message
    }
  }
}`

const productsQuery = `query GetBundleProducts($ids: [ID!]!) {
  nodes(ids: $ids) {
    ... on Product {
      id
      title
      handle
      featuredImage {
        url
      }
    }
  }
}`

type userError struct {
	Message string `json:"message"`
}

type productNode struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	FeaturedImage *struct {
		URL string `json:"url"`
	} `json:"featuredImage"`
}

// Store reads and writes surface configurations as shop metafields.
type Store struct {
	client graphql.Client
}

// NewStore creates a Store for one shop client.
func NewStore(client graphql.Client) *Store {
	return &Store{client: client}
}

// Get returns the configuration stored under key, or nil when nothing is stored.
func (s *Store) Get(ctx context.Context, key string) (*Config, error) {
	var data struct {
		Shop struct {
			Metafield *struct {
				Value string `json:"value"`
			} `json:"metafield"`
		} `json:"shop"`
	}
	if err := s.query(ctx, getConfigQuery, map[string]any{"namespace": Namespace, "key": key}, &data); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s.%s", Namespace, key)
	}
	if data.Shop.Metafield == nil || data.Shop.Metafield.Value == "" {
		return nil, nil
	}

	var cfg Config
	if err := json.Unmarshal([]byte(data.Shop.Metafield.Value), &cfg); err != nil {
		return nil, errors.Wrapf(err, "stored %s.%s is not valid JSON", Namespace, key)
	}
	return cfg.normalize(), nil
}

// Set writes cfg under key on the shop owner.
func (s *Store) Set(ctx context.Context, key string, cfg *Config) error {
	var shop struct {
		Shop struct {
			ID string `json:"id"`
		} `json:"shop"`
	}
	if err := s.query(ctx, shopIDQuery, nil, &shop); err != nil {
		return errors.Wrap(err, "failed to resolve shop id")
	}

	value, err := json.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to encode configuration")
	}

	var data struct {
		MetafieldsSet struct {
			UserErrors []userError `json:"userErrors"`
		} `json:"metafieldsSet"`
	}
	if err := s.query(ctx, setConfigMutation, map[string]any{
		"metafields": []map[string]any{{
			"ownerId":   shop.Shop.ID,
			"namespace": Namespace,
			"key":       key,
			"type":      "json",
			"value":     string(value),
		}},
	}, &data); err != nil {
		return errors.Wrapf(err, "failed to write %s.%s", Namespace, key)
	}
	if errs := data.MetafieldsSet.UserErrors; len(errs) > 0 {
		return errors.Newf("metafieldsSet rejected %s.%s: %s", Namespace, key,
			strings.Join(lo.Map(errs, func(e userError, _ int) string { return e.Message }), ", "))
	}
	return nil
}

// RefreshProducts updates titles and images from the live catalog.
// Products the catalog no longer returns keep their stored values.
func (s *Store) RefreshProducts(ctx context.Context, cfg *Config) error {
	if len(cfg.Products) == 0 {
		return nil
	}

	var data struct {
		Nodes []*productNode `json:"nodes"`
	}
	ids := lo.Map(cfg.Products, func(p Product, _ int) string { return p.ID })
	if err := s.query(ctx, productsQuery, map[string]any{"ids": ids}, &data); err != nil {
		return errors.Wrap(err, "failed to refresh products")
	}

	for i, p := range cfg.Products {
		node, ok := lo.Find(data.Nodes, func(n *productNode) bool { return n != nil && n.ID == p.ID })
		if !ok {
			continue
		}
		if node.Title != "" {
			cfg.Products[i].Title = node.Title
		}
		if node.FeaturedImage != nil && node.FeaturedImage.URL != "" {
			cfg.Products[i].Image = node.FeaturedImage.URL
		}
	}
	return nil
}

func (s *Store) query(ctx context.Context, document string, variables map[string]any, v any) error {
	resp, err := s.client.Do(ctx, document, variables)
	if err != nil {
		return err
	}
	if len(resp.Errors) > 0 {
		return errors.New(resp.Errors[0].Message)
	}
	return resp.Decode(v)
}
