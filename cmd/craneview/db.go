package main

import (
	"context"
	"fmt"

	"github.com/portworks/craneview/internal/db"
	"github.com/portworks/craneview/internal/models"
	"github.com/portworks/craneview/internal/store"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBInitCmd())
	cmd.AddCommand(newDBSeedCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the Craneview database",
		Long:  "Connects to the configured database and migrates all tables.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "craneview.yaml", "path to Craneview config file")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Connected to %s database for port %q\n", cfg.Database.Driver, cfg.Port)

	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	fmt.Fprintln(out, "Craneview database initialized successfully.")
	return nil
}

func newDBSeedCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed demo operators and vehicles",
		Long:  "Inserts a small demo fleet for local development. Intended for fresh databases.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBSeed(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "craneview.yaml", "path to Craneview config file")
	return cmd
}

func runDBSeed(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	st := store.New(gormDB)

	operators := []models.Profile{
		{FullName: "Amira Hassan", EmployeeID: "EMP-001"},
		{FullName: "Bassem Nour", EmployeeID: "EMP-002"},
		{FullName: "Chidi Okoro", EmployeeID: "EMP-003"},
	}
	for _, op := range operators {
		op := op
		if err := st.InsertProfile(ctx, &op, models.RoleCraneOperator); err != nil {
			return fmt.Errorf("seed operator %s: %w", op.EmployeeID, err)
		}
		fmt.Fprintf(out, "Seeded operator %s (%s)\n", op.FullName, op.EmployeeID)
	}

	for i, vt := range models.VehicleTypes {
		v := models.Vehicle{
			VehicleNumber: fmt.Sprintf("VH-%03d", i+1),
			VehicleType:   vt,
		}
		if err := st.InsertVehicle(ctx, &v); err != nil {
			return fmt.Errorf("seed vehicle %s: %w", v.VehicleNumber, err)
		}
		fmt.Fprintf(out, "Seeded vehicle %s (%s)\n", v.VehicleNumber, v.VehicleType)
	}

	fmt.Fprintln(out, "Demo data seeded.")
	return nil
}
