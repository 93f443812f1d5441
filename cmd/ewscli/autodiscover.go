package main

import (
	"errors"

	"github.com/ewsproto/ews-go/autodiscover"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var autodiscoverJSON bool

var autodiscoverCmd = &cobra.Command{
	Use:   "autodiscover <address>",
	Short: "Locate the EWS endpoint serving a mailbox",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address := args[0]
		ctx := cmd.Context()

		client := autodiscover.New(func(o *autodiscover.Options) {
			o.Logger = logAdapter{log}
		})

		if autodiscoverJSON {
			endpoint, err := client.LocateJSON(ctx, address)
			if err != nil {
				return err
			}
			color.Green("EWS endpoint URL: %s", endpoint)
			return nil
		}

		endpoint, err := client.Locate(ctx, address)
		if errors.Is(err, autodiscover.ErrAuthRequired) {
			color.Yellow("The server requires authentication.")
			password, perr := promptPassword()
			if perr != nil {
				return perr
			}
			client = autodiscover.New(
				autodiscover.WithCredentials(address, password),
				func(o *autodiscover.Options) { o.Logger = logAdapter{log} },
			)
			endpoint, err = client.Locate(ctx, address)
		}
		if err != nil {
			return err
		}

		color.Green("EWS endpoint URL: %s", endpoint)
		return nil
	},
}

func init() {
	autodiscoverCmd.Flags().BoolVar(&autodiscoverJSON, "json", false, "query the JSON v2 endpoint instead of POX")
	rootCmd.AddCommand(autodiscoverCmd)
}
