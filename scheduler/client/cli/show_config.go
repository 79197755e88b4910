package cli

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/twitter/tasksched/common/client"
)

type showConfigCmd struct{}

func (c *showConfigCmd) RegisterFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "show_config",
		Short: "Prints the resolved configuration as JSON",
		Args:  cobra.NoArgs,
	}
}

func (c *showConfigCmd) Run(cl *client.SimpleClient, cmd *cobra.Command, args []string) error {
	b, err := json.MarshalIndent(cl.Config, "", "  ")
	if err != nil {
		return errors.Wrap(err, "couldn't marshal config")
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
