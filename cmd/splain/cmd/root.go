// Copyright 2024-2026 The Fathom Language Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmd implements the splain command line.
package cmd

import (
	"bytes"
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fathomlang/report"
	"github.com/fathomlang/report/reportyaml"
)

var (
	colorFlag string
	noLinks   bool
	jobs      int

	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var rootCmd = &cobra.Command{
	Use:   "splain [flags] file...",
	Short: "Render diagnostic descriptor files as graphical reports",
	Long: `splain reads YAML diagnostic descriptors and renders each one as a
graphical report: code rule, message, annotated source snippets with
underlines and rails, and help/documentation footers.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVar(&colorFlag, "color", "auto", "colorize output: auto, always, or never")
	rootCmd.Flags().BoolVar(&noLinks, "no-links", false, "disable documentation hyperlinks")
	rootCmd.Flags().IntVar(&jobs, "jobs", runtime.NumCPU(), "how many files to render concurrently")
}

func run(_ *cobra.Command, args []string) error {
	colored, err := useColors()
	if err != nil {
		return err
	}

	theme := report.UnicodeNoColor()
	if colored {
		theme = report.Unicode()
	}

	renderer := report.NewRenderer().WithTheme(theme)
	if noLinks {
		renderer.WithoutCodeLinking()
	}

	// Render every file into its own buffer, then print in argument order.
	rendered := make([]bytes.Buffer, len(args))
	severities := make([]report.Severity, len(args))

	var group errgroup.Group
	group.SetLimit(max(1, jobs))
	for i, path := range args {
		group.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			d, err := reportyaml.Unmarshal(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			severities[i] = d.Severity()
			if err := renderer.RenderReport(&rendered[i], d); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	var errorCount, warningCount int
	for i := range rendered {
		if i > 0 {
			fmt.Println()
		}
		os.Stdout.Write(rendered[i].Bytes())

		switch severities[i] {
		case report.Error:
			errorCount++
		case report.Warning:
			warningCount++
		}
	}

	fmt.Println()
	fmt.Println(summary(colored, errorCount, warningCount, len(args)))
	if errorCount > 0 {
		os.Exit(1)
	}
	return nil
}

// useColors resolves the --color flag, honoring NO_COLOR and TTY detection
// in auto mode.
func useColors() (bool, error) {
	switch colorFlag {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		return termenv.EnvColorProfile() != termenv.Ascii &&
			isatty.IsTerminal(os.Stdout.Fd()), nil
	default:
		return false, fmt.Errorf("invalid --color value %q", colorFlag)
	}
}

func summary(colored bool, errorCount, warningCount, total int) string {
	text := fmt.Sprintf("rendered %d report(s): %d error(s), %d warning(s)", total, errorCount, warningCount)

	if !colored {
		return text
	}
	switch {
	case errorCount > 0:
		return errorStyle.Render(text)
	case warningCount > 0:
		return warningStyle.Render(text)
	default:
		return okStyle.Render(text)
	}
}
