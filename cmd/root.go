package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"upc-cli/config"
	"upc-cli/logger"
	"upc-cli/reservation"
	"upc-cli/storage"

	"github.com/spf13/cobra"
)

var (
	outputJSON    bool
	outputCompact bool
	envFile       string
	cfg           *config.Config
	log           = logger.New()
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "upc",
		Short: "Mi UPC: reservations of sports spaces and laboratories",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if outputJSON && outputCompact {
				return fmt.Errorf("choose either --json or --compact")
			}
			loaded, err := config.Load(envFile)
			if err != nil {
				return err
			}
			cfg = loaded
			log = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Level)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output JSON")
	rootCmd.PersistentFlags().BoolVar(&outputCompact, "compact", false, "Output compact text")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Load environment from file if present")

	rootCmd.AddCommand(homeCmd())
	rootCmd.AddCommand(reserveCmd())
	rootCmd.AddCommand(availabilityCmd())
	rootCmd.AddCommand(reservationsCmd())
	rootCmd.AddCommand(spacesCmd())
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(ayudaCmd())
	return rootCmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// session is the storage and catalog wiring shared by the commands.
type session struct {
	device       *storage.DeviceStorage
	store        *storage.ReservationStore
	catalog      reservation.Catalog
	availability reservation.Availability
}

func openSession() (*session, error) {
	path := storage.DevicePath(cfg.DataDir)
	device, err := storage.OpenDevice(path)
	if err != nil {
		log.Error("open device storage", logger.Path(path), logger.Error(err))
		return nil, err
	}
	log.Debug("device storage opened", logger.Path(path))

	hours := reservation.DefaultAvailableHours
	if cfg.Availability.Hours != nil {
		hours = cfg.Availability.Hours
	}

	return &session{
		device:       device,
		store:        storage.NewReservationStore(device, log),
		catalog:      configuredCatalog(),
		availability: reservation.StaticAvailability(hours),
	}, nil
}

func configuredCatalog() reservation.Catalog {
	return reservation.DefaultCatalog().WithOverrides(
		cfg.Catalog.Campuses, cfg.Catalog.Sports, cfg.Catalog.Laboratory)
}

func (s *session) dashboard() *reservation.Dashboard {
	return reservation.NewDashboard(s.store, s.catalog, now)
}

func (s *session) Close() error {
	return s.device.Close()
}
