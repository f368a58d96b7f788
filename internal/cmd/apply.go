package cmd

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cdnops/fastly-sync/internal/enforcer"
	"github.com/cdnops/fastly-sync/internal/fastly/configuration"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Reconcile one or more service manifests against the Fastly API",
	Example: `  fastly-sync apply -f service.yaml
  fastly-sync apply -f frontend.yaml -f assets.yaml --activate=false`,
	RunE: runApply,
}

var (
	applyFiles    []string
	applyActivate bool
)

func init() {
	applyCmd.Flags().StringSliceVarP(&applyFiles, "filename", "f", nil, "service manifest to apply (repeatable)")
	applyCmd.Flags().BoolVar(&applyActivate, "activate", true, "activate the target version when it changed")
	cobra.CheckErr(applyCmd.MarkFlagRequired("filename"))
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd.Context())
	if err != nil {
		return err
	}
	enf := enforcer.New(client)

	failures := 0
	for _, file := range applyFiles {
		cfg, err := configuration.Load(file)
		if err != nil {
			return err
		}

		res, err := enf.Apply(cmd.Context(), cfg, applyActivate)
		if err != nil {
			return fmt.Errorf("reconciling %q: %w", cfg.Name, err)
		}

		printResult(cmd, cfg.Name, res)
		failures += len(res.Errors)
	}

	if failures > 0 {
		return fmt.Errorf("%d operations failed; the draft version was left mutable, re-run to retry", failures)
	}
	return nil
}

func printResult(cmd *cobra.Command, service string, res *enforcer.Result) {
	cmd.Printf("service %q: version %d, changed=%t\n", service, res.Version, res.Changed)
	for _, a := range res.Actions {
		cmd.Println("  -", a)
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"KIND", "CREATE", "UPDATE", "DELETE"})
	table.SetBorder(false)
	for _, s := range res.Summary {
		if s.Creates == 0 && s.Updates == 0 && s.Deletes == 0 {
			continue
		}
		table.Append([]string{
			string(s.Kind),
			strconv.Itoa(s.Creates),
			strconv.Itoa(s.Updates),
			strconv.Itoa(s.Deletes),
		})
	}
	if table.NumLines() > 0 {
		table.Render()
	}

	for _, opErr := range res.Errors {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", opErr.Error())
	}
}
