package cmd

import (
	"github.com/spf13/cobra"

	"facscope/internal/render"
)

var (
	extractFlags     batchFlags
	extractSnapshots string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Run the pipeline over saved HTML snapshots",
	Long: `Run extraction and matching over pages saved earlier (for example with
tools/snapshot) instead of rendering them. Each URL is looked up in the
snapshot directory under its snapshot file name; file:// URLs are read
directly.`,
	Args: cobra.NoArgs,
	RunE: runExtractCommand,
}

func runExtractCommand(cmd *cobra.Command, args []string) error {
	return runBatch(cmd, &extractFlags, func() (render.Renderer, error) {
		return render.NewFileRenderer(extractSnapshots), nil
	})
}

func init() {
	addBatchFlags(extractCmd, &extractFlags)
	extractCmd.Flags().StringVar(&extractSnapshots, "snapshots", "snapshots", "Directory holding saved snapshots")
	rootCmd.AddCommand(extractCmd)
}
