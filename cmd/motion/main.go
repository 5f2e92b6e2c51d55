// Command motion samples, plots and previews animation curves.
package main

import (
	"os"

	"github.com/go-drift/motion/cmd/motion/cmd"
	motionerrors "github.com/go-drift/motion/pkg/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		motionerrors.ReportErr("motion", err)
		os.Exit(1)
	}
}
