package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/portworks/craneview/internal/models"
	"github.com/portworks/craneview/internal/submit"
	"github.com/spf13/cobra"
)

func newVehicleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicle",
		Short: "Fleet vehicle management commands",
	}

	cmd.AddCommand(newVehicleAddCmd())
	cmd.AddCommand(newVehicleStatusCmd())
	cmd.AddCommand(newVehicleListCmd())
	return cmd
}

func newVehicleAddCmd() *cobra.Command {
	var (
		configPath string
		number     string
		vtype      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a vehicle",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVehicleAdd(cmd, configPath, number, vtype)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "craneview.yaml", "path to Craneview config file")
	cmd.Flags().StringVar(&number, "number", "", "vehicle number")
	cmd.Flags().StringVar(&vtype, "type", "", fmt.Sprintf("vehicle type, e.g. %v", models.VehicleTypes))
	cmd.MarkFlagRequired("number")
	cmd.MarkFlagRequired("type")
	return cmd
}

func runVehicleAdd(cmd *cobra.Command, configPath, number, vtype string) error {
	st, err := storeFromConfig(configPath)
	if err != nil {
		return err
	}

	gate := submit.NewGate(st)
	v, err := gate.Vehicle(cmdContext(cmd), submit.VehicleInput{
		VehicleNumber: number,
		VehicleType:   vtype,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s), status %s\n",
		v.VehicleNumber, v.VehicleType, v.Status.Label())
	return nil
}

func newVehicleStatusCmd() *cobra.Command {
	var (
		configPath string
		id         string
		status     string
		assignTo   string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Change a vehicle's status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVehicleStatus(cmd, configPath, id, status, assignTo)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "craneview.yaml", "path to Craneview config file")
	cmd.Flags().StringVar(&id, "id", "", "vehicle ID")
	cmd.Flags().StringVar(&status, "status", "", "new status (available, in_use, maintenance, unavailable)")
	cmd.Flags().StringVar(&assignTo, "assign", "", "operator to assign (in_use only)")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("status")
	return cmd
}

func runVehicleStatus(cmd *cobra.Command, configPath, id, status, assignTo string) error {
	st, err := storeFromConfig(configPath)
	if err != nil {
		return err
	}

	var assignPtr *string
	if assignTo != "" {
		assignPtr = &assignTo
	}

	gate := submit.NewGate(st)
	if err := gate.VehicleStatus(cmdContext(cmd), id, models.VehicleStatus(status), assignPtr); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Vehicle %s is now %s\n", id, models.VehicleStatus(status).Label())
	return nil
}

func newVehicleListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered vehicles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVehicleList(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "craneview.yaml", "path to Craneview config file")
	return cmd
}

func runVehicleList(cmd *cobra.Command, configPath string) error {
	st, err := storeFromConfig(configPath)
	if err != nil {
		return err
	}

	vehicles, err := st.VehicleList(cmdContext(cmd))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(vehicles) == 0 {
		fmt.Fprintln(out, "No vehicles registered.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tTYPE\tSTATUS\tASSIGNED")
	for _, v := range vehicles {
		assigned := "-"
		if v.AssignedTo != nil {
			assigned = *v.AssignedTo
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", v.ID, v.VehicleNumber, v.VehicleType, v.Status.Label(), assigned)
	}
	return w.Flush()
}
