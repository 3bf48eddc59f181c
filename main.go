package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"slidewire/catalog"
	"slidewire/engine"
	"slidewire/export"
	"slidewire/scene"
	"slidewire/validation"
	"slidewire/viewer"
)

func main() {
	root := &cobra.Command{
		Use:   "slidewire",
		Short: "Shape connection-site and connector-routing engine",
		Long: `slidewire resolves connection sites on slide shapes, routes
connectors between them, and keeps attachments consistent as shapes move.

Scene documents are JSON files with elements and connectors.`,
		SilenceUsage: true,
	}

	root.AddCommand(renderCmd(), viewCmd(), sitesCmd(), checkCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadScene(filename string) (*scene.Scene, error) {
	s, err := scene.LoadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", filename, err)
	}
	return s, nil
}

func renderCmd() *cobra.Command {
	var output string
	var labels bool

	cmd := &cobra.Command{
		Use:   "render <scene.json>",
		Short: "Render a scene to SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScene(args[0])
			if err != nil {
				return err
			}

			exporter := export.NewSVGExporter()
			exporter.DrawLabels = labels
			data, err := exporter.Export(s)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(output, data, 0644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&labels, "labels", false, "draw shape type labels")
	return cmd
}

func viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <scene.json>",
		Short: "View and edit a scene interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScene(args[0])
			if err != nil {
				return err
			}
			return viewer.New(s, args[0]).Run()
		},
	}
}

func sitesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sites <scene.json>",
		Short: "Dump the resolved connection sites of every element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScene(args[0])
			if err != nil {
				return err
			}

			eng := engine.New()
			out := cmd.OutOrStdout()
			for _, el := range s.Elements {
				fmt.Fprintf(out, "%s (%s):\n", el.ID, el.ShapeType)
				for _, site := range eng.ResolveAllSites(el) {
					fmt.Fprintf(out, "  %-12s (%g, %g) angle %g\n",
						site.ID, site.Point.X, site.Point.Y, site.AngleDeg)
				}
			}
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <scene.json>",
		Short: "Validate a scene document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScene(args[0])
			if err != nil {
				return err
			}

			problems := validation.NewValidator(catalog.Builtin()).Validate(s)
			if len(problems) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "scene is valid")
				return nil
			}

			var messages []string
			for _, p := range problems {
				messages = append(messages, p.String())
			}
			return fmt.Errorf("scene has %d problem(s):\n  %s",
				len(problems), strings.Join(messages, "\n  "))
		},
	}
}
