package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"polishstash/internal/client"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"
)

func main() {
	c := &cobra.Command{
		Use:     "stashc",
		Short:   "Polishstash client, manages the owned shades of your nail polish stash",
		Version: fmt.Sprintf("%s - build %.7s @ %s", version, revision, date),
		Args:    cobra.NoArgs,
	}
	c.AddCommand(registerCmd)
	c.AddCommand(loginCmd)
	c.AddCommand(logoutCmd)
	c.AddCommand(toggleCmd)
	c.AddCommand(listCmd)
	c.AddCommand(saveCmd)
	c.AddCommand(loadCmd)
	c.AddCommand(resetCmd)
	c.AddCommand(profileCmd)
	c.AddCommand(imageCmd)

	if err := c.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var listOpts client.ListOptions

var (
	registerCmd = &cobra.Command{
		Use:   "register",
		Short: "Create an account on the polishstash server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Register()
		},
	}

	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Login to the polishstash server and reconcile the owned-set",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Login()
		},
	}

	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Logout and clear the device owned-set",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Logout()
		},
	}

	toggleCmd = &cobra.Command{
		Use:   "toggle CODE...",
		Short: "Flip the owned state of the given shades",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Toggle(args)
		},
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List owned shades, or the whole catalog with owned markers",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.List(listOpts)
		},
	}

	saveCmd = &cobra.Command{
		Use:   "save",
		Short: "Replace the cloud inventory with the device owned-set",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.SaveStash()
		},
	}

	loadCmd = &cobra.Command{
		Use:   "load",
		Short: "Overwrite the device owned-set with the cloud inventory",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.LoadStash()
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Empty the cloud inventory (the device owned-set stays)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.ResetStash()
		},
	}

	profileCmd = &cobra.Command{
		Use:   "profile [NAME]",
		Short: "Show or set the business name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return client.ShowProfile()
			}
			return client.SetProfile(args[0])
		},
	}

	imageCmd = &cobra.Command{
		Use:   "image PRODUCT_URL",
		Short: "Resolve the product image of a product page",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Image(args[0])
		},
	}
)

func init() {
	listCmd.Flags().StringVarP(&listOpts.Catalog, "catalog", "c", "", "Catalog feed (path or URL)")
	listCmd.Flags().StringVarP(&listOpts.Query, "query", "q", "", "Free-text filter")
	listCmd.Flags().StringVarP(&listOpts.Collection, "collection", "C", "", "Collection filter")
}
