package discount

// Config holds reconciliation settings.
type Config struct {
	// TierIdentity selects change detection: "percentage" or "percentage_count".
	TierIdentity string `mapstructure:"tier_identity" default:"percentage"`
}

// Options translates the configuration into reconciler options.
func (c Config) Options() ([]Option, error) {
	identity, err := ParseIdentity(c.TierIdentity)
	if err != nil {
		return nil, err
	}
	return []Option{WithIdentity(identity)}, nil
}
