package main

import (
	"fmt"
	"os"

	"github.com/portworks/craneview/internal/config"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/portworks/craneview/internal/db"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "craneview",
		Short: "Craneview — port crane productivity tracking",
		Long:  "Craneview aggregates crane operator lift logs, delays, and ratings into live fleet metrics.",
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDBCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newLiftCmd())
	cmd.AddCommand(newDelayCmd())
	cmd.AddCommand(newShiftCmd())
	cmd.AddCommand(newRateCmd())
	cmd.AddCommand(newVehicleCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newDigestCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "craneview %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

// connectFromConfig loads the config file and opens the database it names.
func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return cfg, gormDB, nil
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
