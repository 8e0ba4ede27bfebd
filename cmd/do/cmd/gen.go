package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func GenCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate Go code from .templ files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && templUpToDate(".") {
				fmt.Fprintln(cmd.OutOrStdout(), "[templ] skipped")
				return nil
			}

			start := time.Now()
			gen := exec.Command("go", "tool", "templ", "generate")
			gen.Stdout = cmd.OutOrStdout()
			gen.Stderr = cmd.ErrOrStderr()
			if err := gen.Run(); err != nil {
				return fmt.Errorf("templ: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "[templ] done (%s)\n", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "regenerate even when outputs are newer than their sources")
	return cmd
}

// templUpToDate reports whether every .templ file under root has a
// generated _templ.go that is at least as new as it.
func templUpToDate(root string) bool {
	upToDate := true
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".templ") {
			return nil
		}
		out := strings.TrimSuffix(path, ".templ") + "_templ.go"
		if !isUpToDate(out, path) {
			upToDate = false
			return filepath.SkipAll
		}
		return nil
	})
	return upToDate
}

func isUpToDate(output, input string) bool {
	outInfo, err := os.Stat(output)
	if err != nil {
		return false
	}
	inInfo, err := os.Stat(input)
	if err != nil {
		return true
	}
	return !inInfo.ModTime().After(outInfo.ModTime())
}
