package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"upc-cli/config"
	"upc-cli/reservation"
	"upc-cli/storage"

	"github.com/spf13/cobra"
)

var weekdays = [...]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

type ScheduleDay struct {
	Label   string         `json:"label"`
	Date    string         `json:"date"`
	Classes []config.Class `json:"classes"`
}

type HomeOutput struct {
	Name         string                `json:"name"`
	Today        ScheduleDay           `json:"today"`
	Tomorrow     ScheduleDay           `json:"tomorrow"`
	Entries      []reservation.Entry   `json:"entries"`
	Reservations []storage.Reservation `json:"reservations"`
}

func homeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "home",
		Short: "Show the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			return writeHome(cmd.OutOrStdout(), s.dashboard().Focus(cmd.Context()))
		},
	}

	return cmd
}

func scheduleDay(label string, day time.Time, classes []config.Class) ScheduleDay {
	return ScheduleDay{
		Label:   fmt.Sprintf("%s %s", label, weekdays[day.Weekday()]),
		Date:    day.Format("02/01"),
		Classes: classesOn(classes, day.Weekday()),
	}
}

// classesOn returns the classes held on weekday, accepting day names with or
// without accents.
func classesOn(classes []config.Class, weekday time.Weekday) []config.Class {
	name := foldAccents(weekdays[weekday])
	out := []config.Class{}
	for _, class := range classes {
		if strings.EqualFold(foldAccents(strings.TrimSpace(class.Day)), name) {
			out = append(out, class)
		}
	}
	return out
}

func foldAccents(value string) string {
	return strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "Á", "A", "É", "E").Replace(value)
}

func writeHome(w io.Writer, records []storage.Reservation) error {
	today := now()
	home := HomeOutput{
		Name:         cfg.Profile.Name,
		Today:        scheduleDay("Hoy", today, cfg.Classes),
		Tomorrow:     scheduleDay("Mañana", today.AddDate(0, 0, 1), cfg.Classes),
		Entries:      reservation.Entries(),
		Reservations: records,
	}
	if outputJSON {
		return writeJSON(w, home)
	}

	if !outputCompact {
		fmt.Fprintf(w, "Hola, %s\n¡Te damos la bienvenida!\n\n", home.Name)
		fmt.Fprintln(w, "HORARIOS")
	}
	for _, day := range []ScheduleDay{home.Today, home.Tomorrow} {
		fmt.Fprintf(w, "%s %s\n", day.Label, day.Date)
		if len(day.Classes) == 0 {
			fmt.Fprintln(w, "  Sin clases")
		}
		for _, class := range day.Classes {
			fmt.Fprintf(w, "  %s-%s  %s  NRC: %s", class.Start, class.End, class.Course, class.NRC)
			if class.Room != "" {
				fmt.Fprintf(w, "  • Salón: %s", class.Room)
			}
			fmt.Fprintln(w)
		}
	}

	if !outputCompact {
		fmt.Fprintln(w, "\nRESERVAS")
		for _, entry := range home.Entries {
			fmt.Fprintf(w, "  %s: %s (upc reserve %s)\n", entry.Title, entry.Description, entryArg(entry.Category))
		}
		fmt.Fprintln(w)
	}
	if len(records) == 0 {
		fmt.Fprintln(w, reservation.EmptyMessage)
		return nil
	}
	return writeReservations(w, records)
}

func entryArg(category storage.Category) string {
	if category == storage.CategorySports {
		return "sports"
	}
	return "laboratory"
}
