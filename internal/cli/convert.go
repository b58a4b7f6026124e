package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	kio "github.com/matzehuels/kinship/pkg/io"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [people-file] [output]",
		Short: "Convert a people file to another format",
		Long: `Convert a people file between TOML, YAML and JSON.

The output format follows the output file's extension. Relation targets given
by name are rewritten to person ids; targets that match nobody keep their
name and stay placeholders.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(args[0], args[1])
		},
	}
}

func (c *CLI) runConvert(input, output string) error {
	if filepath.Clean(input) == filepath.Clean(output) {
		return fmt.Errorf("output %s would overwrite the input", output)
	}
	if _, err := kio.FormatFromPath(output); err != nil {
		return err
	}

	doc, err := kio.ImportPeople(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	people, err := doc.Build(c.pipelineOptions().Relations.Classifier())
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	out := kio.FromPeople(people, doc.Root)
	if err := kio.ExportPeople(out, output); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Converted %d persons", len(out.People))
	printFile(output)
	return nil
}
