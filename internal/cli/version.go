package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(root *Root) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("color-match %s\n", root.info.Version)
			fmt.Printf("  Build time: %s\n", root.info.BuildTime)
			fmt.Printf("  Git commit: %s\n", root.info.GitCommit)
		},
	}
}
