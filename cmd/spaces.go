package cmd

import (
	"fmt"
	"text/tabwriter"

	"upc-cli/reservation"
	"upc-cli/storage"

	"github.com/spf13/cobra"
)

type SpacesOutput struct {
	Category storage.Category `json:"type"`
	Title    string           `json:"title"`
	Campuses []string         `json:"campuses"`
	Spaces   []string         `json:"spaces"`
}

func spacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spaces [sports|laboratory]",
		Short: "List campuses and reservable spaces",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := storage.Categories()
			if len(args) == 1 {
				category, err := storage.ParseCategory(args[0])
				if err != nil {
					return err
				}
				categories = []storage.Category{category}
			}

			catalog := configuredCatalog()

			output := make([]SpacesOutput, 0, len(categories))
			for _, category := range categories {
				output = append(output, SpacesOutput{
					Category: category,
					Title:    reservation.Title(category),
					Campuses: catalog.Campuses,
					Spaces:   catalog.SpaceOptions(category),
				})
			}

			out := cmd.OutOrStdout()
			if outputJSON {
				return writeJSON(out, output)
			}

			writer := tabwriter.NewWriter(out, 2, 2, 2, ' ', 0)
			if !outputCompact {
				fmt.Fprintln(writer, "TYPE\tKIND\tOPTION")
			}
			for _, item := range output {
				for _, campus := range item.Campuses {
					fmt.Fprintf(writer, "%s\tcampus\t%s\n", item.Category, campus)
				}
				for _, space := range item.Spaces {
					fmt.Fprintf(writer, "%s\tspace\t%s\n", item.Category, space)
				}
			}
			return writer.Flush()
		},
	}

	return cmd
}

