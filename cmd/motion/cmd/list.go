package cmd

import (
	"fmt"

	"github.com/go-drift/motion/pkg/animation"
)

func init() {
	RegisterCommand(&Command{
		Name:  "list",
		Short: "List easings and catalog curves",
		Long: `List the built-in easing names and the curves defined in the
motion.yaml catalog, with their kind and parameters.`,
		Usage: "motion list",
		Run:   runList,
	})
}

func runList(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("list takes no arguments")
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Easings:")
	for _, e := range animation.Easings() {
		fmt.Fprintf(stdout, "  %s\n", e)
	}

	names := cat.Names()
	if len(names) == 0 {
		return nil
	}
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "Catalog (%s, %s):\n", cat.Path, cat.Version)
	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}
	for _, name := range names {
		c, _ := cat.Lookup(name)
		fmt.Fprintf(stdout, "  %-*s  %-6s  %s\n", width, name, c.Kind(), c)
	}
	return nil
}
