package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"bundle-manager/core/config"
	"bundle-manager/core/discount"
	"bundle-manager/core/logger"
	"bundle-manager/feature/bundle"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reconcileShop string
	dryRun        bool
	yesConfirm    bool
)

// reconcileCmd re-applies a stored surface configuration to the shop's discounts.
var reconcileCmd = &cobra.Command{
	Use:       "reconcile <surface>",
	Short:     "Re-apply a stored bundle configuration to the shop's discount codes",
	ValidArgs: []string{bundle.Cart.Name, bundle.ProductPage.Name},
	Args:      cobra.ExactArgs(1),
	Long: `Reads the stored configuration of a surface and rewrites every discount
code it owns. Codes that were deleted or edited on the shop are restored.

Examples:
  # Show the plan only
  reconcile cart --dry-run

  # Apply with interactive confirmation
  reconcile product_page --shop demo.myshopify.com

  # Apply non-interactively
  reconcile cart --yes`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileShop, "shop", "", "Shop domain (defaults to SHOP_DOMAIN)")
	reconcileCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the plan without mutating discounts")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm mutations (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	surface, err := bundle.ParseSurface(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	svc, err := newBundleService(ctx, cfg, newClientProvider(cfg, l), l)
	if err != nil {
		return err
	}

	// Step 1: Plan (always runs)
	l.Info("Planning reconciliation...", zap.String("surface", surface.Name))
	plan, err := svc.PlanStored(ctx, reconcileShop, surface)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}
	printPlan(l, plan)

	if plan.IsEmpty() {
		l.Info("Nothing stored for this surface. No changes were made.")
		return nil
	}
	if dryRun {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	// Step 2: Apply (if confirmed)
	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	l.Info("Applying plan...")
	out, err := svc.ApplyPlan(ctx, reconcileShop, surface, *plan)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}
	printOutcome(l, out)

	if !out.Success {
		return fmt.Errorf("reconciliation finished with errors: %s", out.Error)
	}
	return nil
}

// printPlan prints a plan using the logger.
func printPlan(l *zap.Logger, plan *discount.Plan) {
	l.Info("Reconciliation plan",
		zap.String("prefix", plan.Prefix),
		zap.Strings("to_delete", plan.ToDelete),
		zap.Int("to_upsert", len(plan.ToUpsert)),
	)
	for _, tier := range plan.ToUpsert {
		l.Info("Planned upsert",
			zap.String("code", discount.CodeFor(tier, plan.Prefix)),
			zap.String("title", discount.TitleFor(tier)),
		)
	}
}

// printOutcome prints per-step results using the logger.
func printOutcome(l *zap.Logger, out *discount.Outcome) {
	for _, step := range append(out.Deletes, out.Upserts...) {
		fields := []zap.Field{
			zap.String("action", string(step.Action)),
			zap.String("code", step.Code),
			zap.String("id", step.ID),
		}
		if step.Error != "" {
			l.Warn("Step failed", append(fields, zap.String("error", step.Error))...)
			continue
		}
		l.Info("Step done", fields...)
	}

	s := out.Summary
	l.Info("Reconciliation summary",
		zap.Bool("success", out.Success),
		zap.Int("created", s.Created),
		zap.Int("updated", s.Updated),
		zap.Int("deleted", s.Deleted),
		zap.Int("already_absent", s.AlreadyAbsent),
		zap.Int("failures", s.Failures),
		zap.Int("delete_failures", s.DeleteFailures),
	)
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to rewrite the shop's discount codes: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
