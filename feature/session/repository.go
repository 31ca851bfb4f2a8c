package session

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
)

// ErrNoSession is returned when no stored session matches a shop.
var ErrNoSession = errors.New("No session found")

// Repository reads and writes sessions through gorm.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the sessions table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Session{})
}

// FindByShop returns the newest session whose shop contains the given value.
func (r *Repository) FindByShop(ctx context.Context, shop string) (*Session, error) {
	shop = strings.TrimSpace(shop)
	if shop == "" {
		return nil, ErrNoSession
	}

	var s Session
	err := r.db.WithContext(ctx).
		Where("shop LIKE ?", "%"+shop+"%").
		Order("id DESC").
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load session for %s", shop)
	}
	return &s, nil
}

// Save inserts the session, or replaces the token and scope of an existing session for the same shop.
func (r *Repository) Save(ctx context.Context, s *Session) error {
	if s.Shop == "" || s.AccessToken == "" {
		return errors.New("shop and access token are required")
	}

	var existing Session
	err := r.db.WithContext(ctx).Where("shop = ?", s.Shop).Order("id DESC").First(&existing).Error
	switch {
	case err == nil:
		s.ID = existing.ID
		s.CreatedAt = existing.CreatedAt
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Wrapf(err, "failed to look up session for %s", s.Shop)
	}

	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return errors.Wrapf(err, "failed to save session for %s", s.Shop)
	}
	return nil
}
