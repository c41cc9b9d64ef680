package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/wfgraph/pkg/keyboard"
)

// keysCommand prints the editor shortcuts for the configured keyboard.
func (c *CLI) keysCommand() *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Show editor keyboard shortcuts",
		Long: `Show the workflow editor shortcuts with the key labels of a keyboard
family. The family comes from [keyboard] platform in the configuration
file, or from the operating system when it is "auto".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kb := c.Keyboard
			if platform != "" {
				family, err := keyboard.ParseOS(platform)
				if err != nil {
					return err
				}
				if family != keyboard.OSUnknown {
					kb = keyboard.ForOS(family)
				}
			}
			c.printKeys(kb)
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "keyboard family: mac, windows, linux")
	return cmd
}

func (c *CLI) printKeys(kb keyboard.Config) {
	out := c.printer()
	name := string(kb.OS())
	if name == "" {
		name = "generic"
	}
	out.info("Shortcuts for %s keyboards", StyleHighlight.Render(name))

	rows := make([][]string, 0, len(keyboard.Actions))
	for _, action := range keyboard.Actions {
		rows = append(rows, []string{action, kb.FormatShortcut(action)})
	}
	out.table([]string{"Action", "Shortcut"}, rows)
}
