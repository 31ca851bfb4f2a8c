package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"bundle-manager/core/config"
	"bundle-manager/core/logger"
	"bundle-manager/feature/bundle"
	"bundle-manager/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	integrityShop string
	integrityJSON bool
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity [surface]",
	Short: "Check stored bundle tiers against the shop's discount codes",
	Long: `Reports discount codes that a stored configuration owns but the shop is
missing, or that a non-Basic discount holds. Nothing is changed; run
"reconcile <surface>" to repair drift.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIntegrity,
}

func init() {
	integrityCmd.Flags().StringVar(&integrityShop, "shop", "", "Shop domain (defaults to SHOP_DOMAIN)")
	integrityCmd.Flags().BoolVar(&integrityJSON, "json", false, "Save the detailed report to a JSON file")

	RootCmd.AddCommand(integrityCmd)
}

func runIntegrity(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	startTime := time.Now()

	surfaces := bundle.Surfaces()
	if len(args) == 1 {
		surface, err := bundle.ParseSurface(args[0])
		if err != nil {
			return err
		}
		surfaces = []bundle.Surface{surface}
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logg.Sync()

	svc := integrity.NewService(newClientProvider(cfg, logg), logg)

	reports := make([]*integrity.SurfaceReport, 0, len(surfaces))
	for _, surface := range surfaces {
		report, err := svc.CheckSurface(ctx, integrityShop, surface)
		if err != nil {
			return fmt.Errorf("integrity check for %s failed: %w", surface.Name, err)
		}
		reports = append(reports, report)
	}

	if integrityJSON {
		filename := fmt.Sprintf("integrity_discounts_%d.json", time.Now().Unix())
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return fmt.Errorf("failed to save JSON file: %w", err)
		}
		logg.Info("Detailed JSON report saved", zap.String("file", filename))
	}

	fmt.Println("\n=== Discount Integrity ===")
	for _, r := range reports {
		fmt.Printf("%s (%s): stored=%t codes=%d missing=%d incompatible=%d errors=%d\n",
			r.Surface, r.Prefix, r.Stored, len(r.Checks), r.Missing, r.Incompatible, r.Errors)
	}
	fmt.Printf("Execution Time: %s\n", time.Since(startTime).String())

	for _, r := range reports {
		if !r.Healthy() {
			return fmt.Errorf("discount drift detected on %s", r.Surface)
		}
	}
	return nil
}
