package main

import (
	"context"
	"fmt"
	"os"

	"github.com/backoffice-kit/backoffice/pkg/schema"
	"github.com/backoffice-kit/backoffice/pkg/sdk"
	"github.com/spf13/cobra"
)

// cli carries the global flags and the backend every subcommand talks to.
type cli struct {
	apiURL    string
	actorID   string
	actorName string
	jsonOut   bool

	// backend is set by tests; otherwise it is resolved from the flags.
	backend sdk.Backend
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&cli{})
}

func newRootCmdWith(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "backoffice",
		Short: "Manage company owners and browse the audit log",
		Long: `backoffice is the terminal front end of the back office API.
It talks to a remote server when --api-url (or BACKOFFICE_API_URL) is set
and runs against an embedded demo store otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&c.apiURL, "api-url", os.Getenv(sdk.EnvAPIURL), "Base URL of the API server")
	rootCmd.PersistentFlags().StringVar(&c.actorID, "actor", "", "Actor id recorded in the audit log")
	rootCmd.PersistentFlags().StringVar(&c.actorName, "actor-name", "", "Actor display name recorded in the audit log")
	rootCmd.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "Output in JSON format")

	rootCmd.AddCommand(c.newOwnersCmd(), c.newAuditCmd(), c.newOwnershipCmd())
	return rootCmd
}

// resolve returns the backend to use for this invocation.
func (c *cli) resolve(cmd *cobra.Command) sdk.Backend {
	if c.backend != nil {
		return c.backend
	}
	if c.apiURL != "" {
		c.backend = sdk.NewClient(c.apiURL, sdk.WithTracing())
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "No API URL configured, using the embedded demo store.")
		c.backend = sdk.New()
	}
	return c.backend
}

// context carries the actor named on the command line, if any.
func (c *cli) context(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if c.actorID == "" {
		return ctx
	}
	return schema.WithActor(ctx, schema.Actor{ID: c.actorID, Name: c.actorName})
}
