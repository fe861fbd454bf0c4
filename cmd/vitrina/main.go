// Command vitrina is a terminal client for the PeakSport store API:
// product administration, the shopping cart, product reviews and an
// inventory report, all against the backend's JSON endpoints.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/peaksport/vitrina/internal/catalog"
	"github.com/peaksport/vitrina/internal/config"
	"github.com/peaksport/vitrina/internal/fetch"
	"github.com/peaksport/vitrina/internal/logging"
	"github.com/peaksport/vitrina/internal/query"
	"github.com/peaksport/vitrina/internal/report"
	"github.com/peaksport/vitrina/internal/snapshot"
	"github.com/peaksport/vitrina/internal/ui"
)

const fetchTimeout = 30 * time.Second

var (
	cfg    *config.Config
	client *fetch.Client
)

var rootCmd = &cobra.Command{
	Use:   "vitrina",
	Short: "Terminal client for the PeakSport store",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; missing file is not an error.
		_ = godotenv.Load()

		if err := logging.Init(); err != nil {
			return fmt.Errorf("init logging: %w", err)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		client = fetch.NewClient(fetchTimeout)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Close()
	},
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage the product catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireAdmin(); err != nil {
			return err
		}
		snap := openSnapshot()
		if snap != nil {
			defer snap.Close()
		}
		return runProgram(ui.NewProducts(cfg, client, snap, false))
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog read-only",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := openSnapshot()
		if snap != nil {
			defer snap.Close()
		}
		return runProgram(ui.NewProducts(cfg, client, snap, true))
	},
}

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "View and edit the shopping cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProgram(ui.NewCart(cfg, client))
	},
}

var reviewsCmd = &cobra.Command{
	Use:   "reviews <product-id>",
	Short: "Read and write reviews for a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProgram(ui.NewReviews(cfg, client, args[0]))
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print an inventory report",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		req := query.Build(cfg.Endpoints.ProductList, query.Params{Page: 1, PerPage: 500})
		page, err := fetch.List[catalog.Product](ctx, client, req)
		if err != nil {
			// Report is a read-only flow: fall back to the snapshot
			// when the listing endpoint is unreachable or unbound.
			snap := openSnapshot()
			if snap == nil {
				return err
			}
			defer snap.Close()
			items, total, snapErr := snap.LoadProducts()
			if snapErr != nil {
				return err
			}
			logging.Warn("report built from snapshot", "fetchErr", err)
			page = fetch.Page[catalog.Product]{Items: items, Total: total}
		}

		out, err := report.Render(report.Build(page.Items, page.Total))
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func openSnapshot() *snapshot.Store {
	snap, err := snapshot.Open(cfg.SnapshotPath)
	if err != nil {
		logging.Warn("snapshot store unavailable", "path", cfg.SnapshotPath, "err", err)
		return nil
	}
	return snap
}

func runProgram(model tea.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func main() {
	rootCmd.AddCommand(productsCmd, browseCmd, cartCmd, reviewsCmd, reportCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
