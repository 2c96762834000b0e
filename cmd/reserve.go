package cmd

import (
	"errors"
	"fmt"
	"time"

	"upc-cli/logger"
	"upc-cli/reservation"
	"upc-cli/storage"

	"github.com/spf13/cobra"
)

var now = time.Now

// formInput carries the form values given as flags. Empty values are
// prompted for on a terminal.
type formInput struct {
	campus string
	space  string
	date   string
}

func (in *formInput) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&in.campus, "campus", "", "Campus")
	cmd.Flags().StringVar(&in.space, "space", "", "Space type")
	cmd.Flags().StringVar(&in.date, "date", "", "Date (today, tomorrow, YYYY-MM-DD or DD/MM/YYYY)")
}

// fillForm drives form with the flag values and prompts, then submits it.
func fillForm(form *reservation.Form, in formInput, p *prompter) (reservation.Intent, error) {
	campus := in.campus
	if campus == "" && p.interactive {
		form.Toggle(reservation.DropdownCampus)
		value, err := p.choose("Campus", form.CampusOptions())
		if err != nil {
			return reservation.Intent{}, err
		}
		campus = value
	}
	if campus != "" {
		if err := form.SelectCampus(campus); err != nil {
			return reservation.Intent{}, err
		}
	}

	space := in.space
	if space == "" && p.interactive {
		form.Toggle(reservation.DropdownSpace)
		value, err := p.choose("Espacio", form.SpaceOptions())
		if err != nil {
			return reservation.Intent{}, err
		}
		space = value
	}
	if space != "" {
		if err := form.SelectSpace(space); err != nil {
			return reservation.Intent{}, err
		}
	}
	form.CloseAll()

	date := in.date
	if date == "" && p.interactive {
		form.OpenDatePicker()
		value, err := p.readLine(fmt.Sprintf("Día de reserva [%s]", form.DateLabel()))
		if err != nil {
			return reservation.Intent{}, err
		}
		date = value
	}
	if date != "" {
		day, err := parseDateInput(date, now())
		if err != nil {
			return reservation.Intent{}, err
		}
		if err := form.SetDate(day); err != nil {
			return reservation.Intent{}, err
		}
	}
	form.CloseAll()

	return form.Submit()
}

func reserveCmd() *cobra.Command {
	var in formInput
	var hour string

	cmd := &cobra.Command{
		Use:   "reserve <sports|laboratory>",
		Short: "Reserve a sports space or a laboratory",
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

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			p := newPrompter(cmd.InOrStdin(), out)

			dashboard := s.dashboard()
			form, err := dashboard.Start(category)
			if err != nil {
				return err
			}
			if p.interactive && !outputJSON {
				fmt.Fprintln(out, form.Title())
			}

			intent, err := fillForm(form, in, p)
			if err != nil {
				var validationErr *reservation.ValidationError
				if errors.As(err, &validationErr) {
					log.Warn("reservation form rejected", logger.Category(category.String()), logger.F("FIELD", validationErr.Field))
				}
				return err
			}

			presenter := reservation.NewPresenter(intent, s.availability, s.store,
				reservation.WithLogger(log), reservation.WithClock(now))
			available := presenter.AvailableHours()

			if hour == "" && p.interactive && len(available) > 0 {
				fmt.Fprintf(out, "%s · %s · %s\n", intent.Campus, intent.SpaceType, intent.DateLabel())
				if err := writeSlots(out, presenter.Slots()); err != nil {
					return err
				}
				value, err := p.choose("Hora", available)
				if err != nil {
					return err
				}
				hour = value
			}
			if len(available) == 0 {
				fmt.Fprintf(out, "No hay horarios disponibles para %s el %s.\n", intent.SpaceType, intent.DateLabel())
				return nil
			}
			if hour == "" {
				return fmt.Errorf("--hour is required (available: %v)", available)
			}
			if !presenter.Select(hour) {
				return fmt.Errorf("%w: %s", reservation.ErrSlotUnavailable, hour)
			}

			record, err := presenter.Reserve(ctx)
			if err != nil {
				return err
			}

			if outputJSON {
				return writeJSON(out, record)
			}
			fmt.Fprintln(out, reservation.SuccessMessage)
			fmt.Fprintf(out, "Reservation %s: %s\n", record.ID, reservation.Describe(record))

			if err := reservation.WaitReturn(ctx, cfg.ReturnDelay); err != nil {
				return nil
			}
			return writeHome(out, dashboard.Focus(ctx))
		},
	}

	in.bind(cmd)
	cmd.Flags().StringVar(&hour, "hour", "", "Hour slot (HH:MM)")
	return cmd
}
