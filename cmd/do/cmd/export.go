package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/goalpost/internal/repository"
	"github.com/templui/goalpost/internal/seed"
	"github.com/templui/goalpost/internal/service"
)

func ExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the seed data as an export document",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := repository.NewStore(seed.Load())
			export := service.NewExportService(store).Export()

			if output == "" || output == "-" {
				return writeExport(cmd.OutOrStdout(), export)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := writeExport(f, export); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", output, err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Wrote", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write, stdout when empty")
	return cmd
}

func writeExport(w io.Writer, export service.Export) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}
