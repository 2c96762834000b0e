package cmd

import (
	"fmt"
	"os/exec"
	"runtime"

	"upc-cli/config"
	"upc-cli/logger"

	"github.com/spf13/cobra"
)

type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// policyLinks are shown under the profile.
var policyLinks = []Link{
	{Title: "Términos y condiciones", URL: "https://www.upc.edu.pe/terminos"},
	{Title: "Política de privacidad", URL: "https://www.upc.edu.pe/privacidad"},
	{Title: "Portal PDF", URL: "https://www.upc.edu.pe/portal-pdf"},
	{Title: "Derechos ARCO", URL: "https://www.upc.edu.pe/arco"},
}

type ProfileOutput struct {
	config.Profile
	Links []Link `json:"links"`
}

func profileCmd() *cobra.Command {
	var open string

	cmd := &cobra.Command{
		Use:     "profile",
		Aliases: []string{"perfil"},
		Short:   "Show the student profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if open != "" {
				for _, link := range policyLinks {
					if link.Title == open || link.URL == open {
						return openURL(link.URL)
					}
				}
				return fmt.Errorf("unknown link %q", open)
			}

			profile := cfg.Profile
			if outputJSON {
				return writeJSON(out, ProfileOutput{Profile: profile, Links: policyLinks})
			}

			fmt.Fprintln(out, profile.Name)
			fmt.Fprintln(out, profile.Program)
			fmt.Fprintln(out, profile.Email)
			fmt.Fprintln(out, profile.Campus)
			fmt.Fprintf(out, "Código de alumno: %s\n", profile.StudentCode)
			fmt.Fprintf(out, "ID Banner: %s\n", profile.BannerID)
			if !outputCompact {
				fmt.Fprintln(out)
				for _, link := range policyLinks {
					fmt.Fprintf(out, "%s: %s\n", link.Title, link.URL)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&open, "open", "", "Open a policy link in the browser (title or URL)")
	return cmd
}

func openURL(url string) error {
	var name string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "windows":
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		name = "xdg-open"
	}
	if err := exec.Command(name, append(args, url)...).Start(); err != nil {
		log.Error("open link", logger.F("URL", url), logger.Error(err))
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

func ayudaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ayuda",
		Short: "Show help about the application",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			help := cfg.Help
			if outputJSON {
				return writeJSON(out, help)
			}

			if !outputCompact {
				fmt.Fprintln(out, "Ayuda")
			}
			fmt.Fprintln(out, help.Text)
			for _, section := range help.Sections {
				fmt.Fprintf(out, "\n%s\n%s\n", section.Title, section.Description)
			}
			return nil
		},
	}

	return cmd
}
