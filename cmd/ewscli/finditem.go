package main

import (
	"fmt"

	"github.com/ewsproto/ews-go/transport"
	"github.com/ewsproto/ews-go/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var (
	findItemEndpoint string
	findItemUsername string
	findItemFolder   string
)

var findItemCmd = &cobra.Command{
	Use:   "find-item",
	Short: "List the items in a mailbox folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword()
		if err != nil {
			return err
		}

		client := transport.New(
			transport.WithEndpoint(findItemEndpoint),
			transport.WithCredentials(findItemUsername, password),
			func(o *transport.Options) {
				o.Logger = logAdapter{log}
				o.Limiter = rate.NewLimiter(rate.Limit(2), 1)
			},
		)

		op := types.NewFindItem(
			types.TraversalShallow,
			types.ItemShape{BaseShape: types.BaseShapeDefault},
			types.FolderIdMemberDistinguishedFolderId{Id: findItemFolder},
		)

		resp, err := client.FindItem(cmd.Context(), op)
		if err != nil {
			return err
		}

		messages := resp.Messages()
		color.Green("%d message(s)", len(messages))
		for _, m := range messages {
			fmt.Printf("%s  %s\n", shortID(m.ItemId.Id), m.Subject)
		}
		return nil
	},
}

func shortID(id string) string {
	if len(id) > 10 {
		return id[:10]
	}
	return id
}

func init() {
	findItemCmd.Flags().StringVar(&findItemEndpoint, "endpoint", transport.DefaultEndpoint, "EWS endpoint URL")
	findItemCmd.Flags().StringVarP(&findItemUsername, "username", "u", "", "account to authenticate as")
	findItemCmd.Flags().StringVar(&findItemFolder, "folder", "inbox", "distinguished folder to search")
	findItemCmd.MarkFlagRequired("username")
	rootCmd.AddCommand(findItemCmd)
}
