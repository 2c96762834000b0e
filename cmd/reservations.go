package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"upc-cli/logger"
	"upc-cli/reservation"
	"upc-cli/storage"

	"github.com/spf13/cobra"
)

func reservationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reservations",
		Aliases: []string{"reservas"},
		Short:   "Manage stored reservations",
	}

	cmd.AddCommand(reservationsListCmd())
	cmd.AddCommand(reservationsRemoveCmd())
	cmd.AddCommand(reservationsExportCmd())
	return cmd
}

func reservationsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reservations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			records := s.dashboard().Focus(cmd.Context())
			if outputJSON {
				return writeJSON(out, records)
			}
			if len(records) == 0 {
				fmt.Fprintln(out, reservation.EmptyMessage)
				return nil
			}
			return writeReservations(out, records)
		},
	}

	return cmd
}

func reservationsRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			dashboard := s.dashboard()
			dashboard.Focus(ctx)
			if _, ok := dashboard.Find(id); !ok {
				return fmt.Errorf("reservation %q not found", id)
			}

			p := newPrompter(cmd.InOrStdin(), out)
			removed, err := dashboard.Delete(ctx, id, p.confirmer(yes))
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(out, "Reservation kept.")
				return nil
			}

			log.Info("reservation deleted", logger.Action("remove"), logger.Reservation(id))
			fmt.Fprintf(out, "Removed reservation %s.\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation")
	return cmd
}

func reservationsExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export reservations as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			records := s.dashboard().Focus(cmd.Context())

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				file, err := os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}

			if err := storage.ExportCSV(w, records); err != nil {
				return err
			}
			log.Debug("reservations exported", logger.Path(output), logger.Count(len(records)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}
