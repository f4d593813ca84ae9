package admintools

import (
	"context"
	"fmt"
	"os"
	"time"

	"git.handmade.network/hmn/marsport/src/client"
	"git.handmade.network/hmn/marsport/src/config"
	"git.handmade.network/hmn/marsport/src/models"
	"git.handmade.network/hmn/marsport/src/website"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

const commandTimeout = 30 * time.Second

func init() {
	spacexCommand := &cobra.Command{
		Use:   "spacex",
		Short: "Fetch data from the SpaceX API the way the app does",
	}
	website.WebsiteCommand.AddCommand(spacexCommand)

	spacexCommand.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show company info",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := commandContext()
			defer cancel()
			printResult(newClient().GetInfo(ctx))
		},
	})

	spacexCommand.AddCommand(&cobra.Command{
		Use:   "history [event id]",
		Short: "List historical events, or show one in full",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := commandContext()
			defer cancel()
			c := newClient()
			if len(args) == 1 {
				printResult(c.GetHistoryEvent(ctx, args[0]))
			} else {
				printResult(c.GetHistory(ctx))
			}
		},
	})

	spacexCommand.AddCommand(&cobra.Command{
		Use:   "rockets [rocket id]",
		Short: "List rockets, or show one in full",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := commandContext()
			defer cancel()
			c := newClient()
			if len(args) == 1 {
				printResult(c.GetRocket(ctx, args[0]))
			} else {
				printResult(c.GetRockets(ctx))
			}
		},
	})

	spacexCommand.AddCommand(&cobra.Command{
		Use:   "roadster",
		Short: "Show where the Roadster is",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := commandContext()
			defer cancel()
			printResult(newClient().GetRoadster(ctx))
		},
	})

	shipmentsCommand := &cobra.Command{
		Use:   "shipments",
		Short: "Manage the Mars shipments of a running server",
	}
	website.WebsiteCommand.AddCommand(shipmentsCommand)

	shipmentsCommand.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List queued shipments",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := commandContext()
			defer cancel()
			printResult(newClient().GetSentToMars(ctx))
		},
	})

	var weight float64
	var color string
	var important bool
	sendCommand := &cobra.Command{
		Use:   "send [id] [name] [phone]",
		Short: "Queue an item for Mars",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 3 {
				fmt.Printf("You must provide an id, a name, and a phone number.\n\n")
				cmd.Usage()
				os.Exit(1)
			}

			item := models.Item{
				ID:    args[0],
				Name:  args[1],
				Phone: args[2],
			}
			if cmd.Flags().Changed("weight") {
				item.Weight = &weight
			}
			if cmd.Flags().Changed("color") {
				item.Color = &color
			}
			if cmd.Flags().Changed("important") {
				item.Important = &important
			}

			ctx, cancel := commandContext()
			defer cancel()
			printResult(newClient().SendToMars(ctx, item))
		},
	}
	sendCommand.Flags().Float64Var(&weight, "weight", 0, "Weight of the item in kg")
	sendCommand.Flags().StringVar(&color, "color", "", "Color of the item")
	sendCommand.Flags().BoolVar(&important, "important", false, "Whether the item is important")
	shipmentsCommand.AddCommand(sendCommand)

	shipmentsCommand.AddCommand(&cobra.Command{
		Use:   "cancel [id]",
		Short: "Cancel a queued item",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := commandContext()
			defer cancel()
			printResult(newClient().CancelSendingToMars(ctx, models.Item{ID: args[0]}))
		},
	})
}

func newClient() *client.Client {
	return client.New(config.Config.BaseUrl, config.Config.SpaceX.BaseUrl, nil)
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

func printResult[T any](result T, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(out))
}
