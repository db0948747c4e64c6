package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/financehub-dev/financehub/internal/finance"
	"github.com/financehub-dev/financehub/internal/model"
)

func newSettingsCommand(a *app) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
		Args:  cobra.NoArgs,
		RunE: a.withService(func(cmd *cobra.Command, _ []string, svc *finance.Service) error {
			md, err := a.renderer(svc).Settings()
			if err != nil {
				return err
			}
			return a.show(cmd, md)
		}),
	}
	settingsCmd.AddCommand(newSettingsSetCommand(a))
	return settingsCmd
}

func newSettingsSetCommand(a *app) *cobra.Command {
	var currency, theme, company, cnpj, email string
	var weekStart int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more preferences",
		Args:  cobra.NoArgs,
		RunE: a.withService(func(cmd *cobra.Command, _ []string, svc *finance.Service) error {
			f := cmd.Flags()
			var p model.SettingsPatch
			if f.Changed("currency") {
				code := strings.ToUpper(currency)
				p.Currency = &code
			}
			if f.Changed("week-start") {
				p.WeekStartsOn = &weekStart
			}
			if f.Changed("theme") {
				t := model.Theme(theme)
				p.Theme = &t
			}
			if f.Changed("company") {
				p.CompanyName = &company
			}
			if f.Changed("cnpj") {
				p.CNPJ = &cnpj
			}
			if f.Changed("email") {
				p.Email = &email
			}
			if p == (model.SettingsPatch{}) {
				return fmt.Errorf("nothing to change: pass at least one setting flag")
			}
			if _, err := svc.UpdateSettings(cmd.Context(), p); err != nil {
				return err
			}
			var changed []string
			for _, name := range []string{"currency", "week-start", "theme", "company", "cnpj", "email"} {
				if f.Changed(name) {
					changed = append(changed, name)
				}
			}
			a.record(cmd, "settings.set", "", strings.Join(changed, " "))
			fmt.Fprintln(cmd.OutOrStdout(), "Settings saved")
			return nil
		}),
	}

	f := cmd.Flags()
	f.StringVar(&currency, "currency", "", "ISO 4217 code, e.g. BRL")
	f.IntVar(&weekStart, "week-start", 1, "first day of the week, 0 = Sunday")
	f.StringVar(&theme, "theme", "", "light, dark or system")
	f.StringVar(&company, "company", "", "company name")
	f.StringVar(&cnpj, "cnpj", "", "company registration number")
	f.StringVar(&email, "email", "", "contact email")

	return cmd
}
