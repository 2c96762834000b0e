package cmd

import (
	"fmt"

	"upc-cli/reservation"
	"upc-cli/storage"

	"github.com/spf13/cobra"
)

type AvailabilityOutput struct {
	Category  storage.Category   `json:"type"`
	Campus    string             `json:"campus"`
	SpaceType string             `json:"spaceType"`
	Date      string             `json:"date"`
	Slots     []reservation.Slot `json:"slots"`
}

func availabilityCmd() *cobra.Command {
	var in formInput

	cmd := &cobra.Command{
		Use:   "availability <sports|laboratory>",
		Short: "Show the hour slots of a space without reserving",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := storage.ParseCategory(args[0])
			if err != nil {
				return err
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			form, err := s.dashboard().Start(category)
			if err != nil {
				return err
			}
			intent, err := fillForm(form, in, newPrompter(cmd.InOrStdin(), out))
			if err != nil {
				return err
			}

			presenter := reservation.NewPresenter(intent, s.availability, s.store)
			if outputJSON {
				return writeJSON(out, AvailabilityOutput{
					Category:  intent.Category,
					Campus:    intent.Campus,
					SpaceType: intent.SpaceType,
					Date:      intent.DateLabel(),
					Slots:     presenter.Slots(),
				})
			}

			if !outputCompact {
				fmt.Fprintf(out, "%s · %s · %s\n", intent.Campus, intent.SpaceType, intent.DateLabel())
			}
			return writeSlots(out, presenter.Slots())
		},
	}

	in.bind(cmd)
	return cmd
}
