package main

import (
	"fmt"

	"github.com/ewsproto/ews-go/autoconfig"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var autoconfigCmd = &cobra.Command{
	Use:   "autoconfig <domain>",
	Short: "Look up a domain's mail settings in the Thunderbird ISPDB",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := autoconfig.Lookup(cmd.Context(), nil, args[0])
		if err != nil {
			return err
		}

		provider := config.EmailProvider
		color.Green("%s (%s)", provider.DisplayName, provider.ID)
		for _, server := range provider.IncomingServers {
			fmt.Printf("incoming  %-9s %s:%d (%s)\n", server.Type, server.Hostname, server.Port, server.SocketType)
		}
		for _, server := range provider.OutgoingServers {
			fmt.Printf("outgoing  %-9s %s:%d (%s)\n", server.Type, server.Hostname, server.Port, server.SocketType)
		}
		if config.OAuth2 != nil {
			fmt.Printf("oauth2    issuer %s\n", config.OAuth2.Issuer)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(autoconfigCmd)
}
