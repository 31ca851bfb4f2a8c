package bundle

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface for the admin routes.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new bundle feature.
func NewFeature(service *Service, origin string) *Feature {
	return &Feature{service: service, handler: NewHandler(service, origin)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "bundle"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Storefront returns the public half of the feature, loaded ahead of authentication.
func (f *Feature) Storefront() *StorefrontFeature {
	return &StorefrontFeature{handler: f.handler}
}

// StorefrontFeature implements the loader.Feature interface for the storefront routes.
type StorefrontFeature struct {
	handler *Handler
}

// Name returns the name of the feature.
func (f *StorefrontFeature) Name() string {
	return "bundle-storefront"
}

// IsEnabled checks if the feature is enabled.
func (f *StorefrontFeature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *StorefrontFeature) Load(app fiber.Router) error {
	f.handler.RegisterStorefrontRoutes(app)
	return nil
}
