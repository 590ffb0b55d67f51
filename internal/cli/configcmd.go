package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/color-match/internal/config"
)

func newConfigCmd(root *Root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update persisted settings",
	}
	cmd.AddCommand(newConfigShowCmd(root))
	cmd.AddCommand(newConfigSetCmd(root))
	return cmd
}

func newConfigShowCmd(root *Root) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, path, err := root.loadSettings()
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(settings, "", "  ")
			if err != nil {
				return err
			}
			fmt.Printf("# %s\n%s\n", path, data)
			return nil
		},
	}
}

func newConfigSetCmd(root *Root) *cobra.Command {
	var (
		maskSpec  string
		tolerance int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update mask color and tolerance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, path, err := root.loadSettings()
			if err != nil {
				return err
			}

			if maskSpec != "" {
				mc, err := config.ParseMaskColor(maskSpec)
				if err != nil {
					return err
				}
				settings.MaskColor = mc
			}
			if cmd.Flags().Changed("tolerance") {
				settings.MaskTolerance = tolerance
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			if err := config.Save(path, settings); err != nil {
				return err
			}
			fmt.Printf("saved %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&maskSpec, "mask", "", "mask color as R,G,B")
	cmd.Flags().IntVar(&tolerance, "tolerance", 0, "per-channel mask tolerance 0-255")

	return cmd
}
