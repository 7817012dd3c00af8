package entities

import (
	"github.com/spf13/cobra"
)

// ControllerBind holds the Cobra command metadata exposed by a controller.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is implemented by every CLI controller so the main command
// can mount them as subcommands generically.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, args []string)
}
