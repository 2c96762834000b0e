package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"upc-cli/reservation"
	"upc-cli/storage"

	"golang.org/x/term"
)

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// parseDateInput accepts today/hoy, tomorrow/mañana, YYYY-MM-DD and
// DD/MM/YYYY, interpreted in the location of now.
func parseDateInput(input string, now time.Time) (time.Time, error) {
	loc := now.Location()
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "today", "hoy":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
	case "tomorrow", "mañana", "manana":
		t := now.AddDate(0, 0, 1)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
	}
	for _, layout := range []string{"2006-01-02", storage.DateLayout} {
		parsed, err := time.ParseInLocation(layout, strings.TrimSpace(input), loc)
		if err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or DD/MM/YYYY)", input)
}

// prompter reads answers from the command input. Prompts are only shown when
// the input is a terminal.
type prompter struct {
	reader      *bufio.Reader
	out         io.Writer
	interactive bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	interactive := false
	if file, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(file.Fd()))
	}
	return &prompter{reader: bufio.NewReader(in), out: out, interactive: interactive}
}

func (p *prompter) readLine(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	value, err := p.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && value != "") {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// choose lists options and accepts either their number or their exact text.
// An empty answer selects nothing.
func (p *prompter) choose(label string, options []string) (string, error) {
	fmt.Fprintln(p.out, label)
	for i, option := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, option)
	}
	answer, err := p.readLine("Opción")
	if err != nil || answer == "" {
		return "", err
	}
	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(options) {
			return "", fmt.Errorf("option %d out of range", n)
		}
		return options[n-1], nil
	}
	return answer, nil
}

func (p *prompter) confirm(prompt string) (bool, error) {
	answer, err := p.readLine(prompt + " [s/N]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "s", "si", "sí", "y", "yes":
		return true, nil
	}
	return false, nil
}

// confirmer approves without asking when yes is set, asks on a terminal and
// refuses otherwise.
func (p *prompter) confirmer(yes bool) reservation.ConfirmFunc {
	return func(prompt string) (bool, error) {
		if yes {
			return true, nil
		}
		if !p.interactive {
			return false, fmt.Errorf("confirmation required: pass --yes")
		}
		return p.confirm(prompt)
	}
}

func writeReservations(w io.Writer, records []storage.Reservation) error {
	writer := tabwriter.NewWriter(w, 2, 2, 2, ' ', 0)
	if !outputCompact {
		fmt.Fprintln(writer, "ID\tTYPE\tCAMPUS\tSPACE\tDATE\tHOUR")
	}
	for _, r := range records {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Category, r.Campus, r.SpaceType, r.Date, r.Hour)
	}
	return writer.Flush()
}

func writeSlots(w io.Writer, slots []reservation.Slot) error {
	writer := tabwriter.NewWriter(w, 2, 2, 2, ' ', 0)
	if !outputCompact {
		fmt.Fprintln(writer, "HOUR\tSTATUS")
	}
	for _, slot := range slots {
		status := "no disponible"
		switch {
		case slot.Selected:
			status = "seleccionado"
		case slot.Available:
			status = "disponible"
		}
		fmt.Fprintf(writer, "%s\t%s\n", slot.Hour, status)
	}
	return writer.Flush()
}
