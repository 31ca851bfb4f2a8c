package cmd

import (
	"context"
	"fmt"

	"bundle-manager/core/config"
	"bundle-manager/core/database"
	"bundle-manager/core/logger"
	"bundle-manager/feature/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	sessionShop    string
	sessionToken   string
	sessionScope   string
	sessionMigrate bool
)

// sessionCmd is the parent command for session store operations.
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage stored shop sessions",
}

// sessionPutCmd stores or replaces a shop's Admin API token.
var sessionPutCmd = &cobra.Command{
	Use:   "put",
	Short: "Store an Admin API access token for a shop",
	Long: `Stores an Admin API access token for a shop, replacing any token already
stored for the same domain.

Example:
  session put --shop demo.myshopify.com --token shpat_xxx --scope write_discounts --migrate`,
	RunE: runSessionPut,
}

func init() {
	sessionPutCmd.Flags().StringVar(&sessionShop, "shop", "", "Shop domain (e.g. demo.myshopify.com)")
	sessionPutCmd.Flags().StringVar(&sessionToken, "token", "", "Admin API access token")
	sessionPutCmd.Flags().StringVar(&sessionScope, "scope", "", "Granted access scopes")
	sessionPutCmd.Flags().BoolVar(&sessionMigrate, "migrate", false, "Create or update the sessions table first")
	_ = sessionPutCmd.MarkFlagRequired("shop")
	_ = sessionPutCmd.MarkFlagRequired("token")

	sessionCmd.AddCommand(sessionPutCmd)
	RootCmd.AddCommand(sessionCmd)
}

func runSessionPut(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := session.NewRepository(db)
	if sessionMigrate {
		if err := repo.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate sessions: %w", err)
		}
	}

	s := &session.Session{Shop: sessionShop, AccessToken: sessionToken, Scope: sessionScope}
	if err := repo.Save(context.Background(), s); err != nil {
		return err
	}

	l.Info("Session stored", zap.String("shop", s.Shop), zap.Uint("id", s.ID))
	return nil
}
