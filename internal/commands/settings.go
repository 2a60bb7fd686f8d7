package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"gtd/internal/models"
)

func addSettings(topLevel *cobra.Command) {
	var (
		todayLimit  int
		autoInclude string
		theme       string
		startOfWeek int
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Example: `
gtd settings
gtd settings --today-limit 5 --theme light
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}

			patch := models.SettingsPatch{}
			if cmd.Flags().Changed("today-limit") {
				patch.TodayTaskLimit = &todayLimit
			}
			if cmd.Flags().Changed("auto-include") {
				v := autoInclude == "on" || autoInclude == "true"
				patch.AutoIncludeDueToday = &v
			}
			if cmd.Flags().Changed("theme") {
				patch.Theme = &theme
			}
			if cmd.Flags().Changed("start-of-week") {
				patch.StartOfWeek = &startOfWeek
			}

			settings := s.Settings()
			if patch != (models.SettingsPatch{}) {
				settings = s.UpdateSettings(patch)
			}

			fmt.Printf("today task limit      %d\n", settings.TodayTaskLimit)
			fmt.Printf("auto-include due      %t\n", settings.AutoIncludeDueToday)
			fmt.Printf("theme                 %s\n", settings.Theme)
			fmt.Printf("start of week         %d\n", settings.StartOfWeek)
			return nil
		},
	}

	cmd.Flags().IntVar(&todayLimit, "today-limit", 0, "max tasks shown in today")
	cmd.Flags().StringVar(&autoInclude, "auto-include", "", "auto-include tasks due today: on or off")
	cmd.Flags().StringVar(&theme, "theme", "", "ui theme name")
	cmd.Flags().IntVar(&startOfWeek, "start-of-week", 0, "first weekday, 0 = Sunday")

	topLevel.AddCommand(cmd)
}
