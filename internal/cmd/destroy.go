package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cdnops/fastly-sync/internal/enforcer"
)

var destroyCmd = &cobra.Command{
	Use:   "destroy <service-name>",
	Short: "Delete a service, deactivating its active version first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		res, err := enforcer.New(client).Destroy(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !res.Changed {
			cmd.Printf("service %q does not exist, nothing to do\n", args[0])
			return nil
		}
		cmd.Printf("deleted service %q (%s)\n", args[0], res.ServiceID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(destroyCmd)
}
