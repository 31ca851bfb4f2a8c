package bundle

import (
	"bundle-manager/core/discount"

	"github.com/cockroachdb/errors"
)

// MaxTiers is the most tiers a surface may configure.
const MaxTiers = 5

// Product is a product picked for a bundle.
type Product struct {
	ID     string `json:"id"`
	Handle string `json:"handle,omitempty"`
	Title  string `json:"title,omitempty"`
	Image  string `json:"image,omitempty"`
}

// Config is the stored configuration of one surface.
type Config struct {
	Products  []Product       `json:"products"`
	Discounts []discount.Tier `json:"discounts"`
}

// DefaultConfig is what a surface shows before anything was saved.
func DefaultConfig() *Config {
	return &Config{
		Products: []Product{},
		Discounts: []discount.Tier{
			{Count: 2, Percentage: 5},
			{Count: 3, Percentage: 10},
			{Count: 4, Percentage: 15},
		},
	}
}

// EmptyConfig has no products and no tiers.
func EmptyConfig() *Config {
	return &Config{Products: []Product{}, Discounts: []discount.Tier{}}
}

// Validate rejects configurations the storefront could not honor.
func (c *Config) Validate() error {
	if len(c.Discounts) > MaxTiers {
		return errors.Newf("at most %d discount tiers are allowed, got %d", MaxTiers, len(c.Discounts))
	}
	for i, t := range c.Discounts {
		if err := t.Validate(); err != nil {
			return errors.Wrapf(err, "tier %d", i+1)
		}
	}
	return nil
}

// normalize replaces nil slices so the JSON form always carries arrays.
func (c *Config) normalize() *Config {
	if c.Products == nil {
		c.Products = []Product{}
	}
	if c.Discounts == nil {
		c.Discounts = []discount.Tier{}
	}
	return c
}
