package main

import (
	"io"

	"github.com/spf13/cobra"

	"readrise/internal/bootstrap"
)

func newDigestCmd(opts *globalOptions) *cobra.Command {
	digest := &cobra.Command{Use: "digest", Short: "Weekly reading summary"}

	digest.AddCommand(&cobra.Command{
		Use:   "send",
		Short: "Send the weekly summary to every reader now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.DigestCLI.SendWeekly(cmd.Context())
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(w io.Writer) {
					printf(w, "sent %d, failed %d\n", out.Sent, out.Failed)
				})
			})
		},
	})

	digest.AddCommand(&cobra.Command{
		Use:   "preview",
		Short: "Print your weekly summary without sending it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.DigestCLI.Preview(cmd.Context(), app.Config.UserID)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, out, func(w io.Writer) {
					printf(w, "%s\n%s\n", out.Title, out.Body)
				})
			})
		},
	})
	return digest
}
