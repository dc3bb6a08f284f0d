package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"facscope/internal/expertise"
)

var catalogName string

// catalogsCmd represents the catalogs command
var catalogsCmd = &cobra.Command{
	Use:   "catalogs",
	Short: "List subject catalogs",
	Long: `List the subject catalogs available for matching, including custom catalogs
from the config file and the combined "All" catalog.`,
	Args: cobra.NoArgs,
	RunE: runCatalogsCommand,
}

func runCatalogsCommand(cmd *cobra.Command, args []string) error {
	reg, err := cfg.Registry()
	if err != nil {
		return err
	}

	catalogs := reg.Catalogs()
	if catalogName != "" {
		c, err := reg.Lookup(catalogName)
		if err != nil {
			return err
		}
		catalogs = []expertise.Catalog{c}
	}

	out := cmd.OutOrStdout()
	for i, c := range catalogs {
		if i > 0 {
			fmt.Fprintln(out)
		}
		marker := ""
		if strings.EqualFold(c.Name, cfg.Catalog) {
			marker = " (default)"
		}
		fmt.Fprintf(out, "📚 %s%s\n", c.Name, marker)
		fmt.Fprintf(out, "   Subjects: %d\n", len(c.Subjects))
		for _, s := range c.Subjects {
			fmt.Fprintf(out, "   - %s\n", s)
		}
	}
	return nil
}

func init() {
	catalogsCmd.Flags().StringVar(&catalogName, "name", "", "Show a single catalog")
	rootCmd.AddCommand(catalogsCmd)
}
