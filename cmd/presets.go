package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/gifconverter-cli/internal/config"
	"github.com/mlihgenel/gifconverter-cli/internal/profile"
	"github.com/mlihgenel/gifconverter-cli/internal/ui"
)

var presetsSetDefault string

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Kullanılabilir kalite preset'lerini listele",
	Long: `GIF dönüşümünde kullanılabilecek hazır kalite preset'lerini listeler.

Örnekler:
  gifconverter-cli presets
  gifconverter-cli presets --set-default mini`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if presetsSetDefault != "" {
			p, err := profile.Resolve(presetsSetDefault)
			if err != nil {
				ui.PrintError(err.Error())
				return err
			}
			if err := config.SetDefaultPreset(p.Name); err != nil {
				ui.PrintError(fmt.Sprintf("Varsayılan preset kaydedilemedi: %s", err.Error()))
				return err
			}
			ui.PrintSuccess(fmt.Sprintf("Varsayılan preset ayarlandı: %s", p.Name))
			return nil
		}

		defaultName := config.GetDefaultPreset()
		if defaultName == "" {
			defaultName = profile.Default().Name
		}

		headers := []string{"Preset", "FPS", "Genişlik", "Renk", "Açıklama"}
		rows := make([][]string, 0, len(profile.All()))
		for _, p := range profile.All() {
			name := p.Name
			if p.Name == defaultName {
				name += " *"
			}
			rows = append(rows, []string{
				name,
				fmt.Sprintf("%d", p.FPS),
				fmt.Sprintf("%dpx", p.Width),
				fmt.Sprintf("%d", p.MaxColors),
				p.Description,
			})
		}

		ui.PrintTable(headers, rows)
		fmt.Println("  * varsayılan preset")
		return nil
	},
}

func init() {
	presetsCmd.Flags().StringVar(&presetsSetDefault, "set-default", "", "Varsayılan preset'i ayarla")
	rootCmd.AddCommand(presetsCmd)
}
