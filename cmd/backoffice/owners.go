package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/backoffice-kit/backoffice/pkg/engine"
	"github.com/backoffice-kit/backoffice/pkg/schema"
	"github.com/backoffice-kit/backoffice/pkg/sdk"
	"github.com/backoffice-kit/backoffice/pkg/view"
	"github.com/spf13/cobra"
)

// ownerList is a Migrate source over owners read from a file. Seed files
// written by hand may repeat or omit ids, which a store would reject.
type ownerList []schema.Owner

func (l ownerList) All(context.Context) ([]schema.Owner, error) { return l, nil }

func (c *cli) newOwnersCmd() *cobra.Command {
	ownersCmd := &cobra.Command{
		Use:     "owners",
		Aliases: []string{"owner"},
		Short:   "List, inspect and edit company owners",
	}
	ownersCmd.AddCommand(
		c.newOwnersListCmd(),
		c.newOwnersGetCmd(),
		c.newOwnersCreateCmd(),
		c.newOwnersUpdateCmd(),
		c.newOwnersDeleteCmd(),
		c.newOwnersImportCmd(),
		c.newOwnersExportCmd(),
	)
	return ownersCmd
}

func (c *cli) newOwnersListCmd() *cobra.Command {
	var (
		search   string
		role     string
		sortKey  string
		order    string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List owners as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != "" && !schema.OwnerRole(role).Valid() {
				return fmt.Errorf("unknown role %q, expected one of %v", role, schema.Roles)
			}
			if sortKey != "" && !view.OwnerSchema.Sortable(sortKey) {
				return fmt.Errorf("cannot sort by %q", sortKey)
			}
			dir, ok := view.ParseSortDirection(order)
			if !ok {
				return fmt.Errorf("order must be asc or desc, got %q", order)
			}
			if sortKey != "" && dir == view.SortNone {
				dir = view.SortAsc
			}
			if page < 1 || pageSize < 1 {
				return fmt.Errorf("page and page size must be at least 1")
			}

			owners, err := sdk.ListAll(c.context(cmd), c.resolve(cmd), "")
			if err != nil {
				return fmt.Errorf("loading owners: %w", err)
			}

			state := view.NewState(view.OwnerSchema, pageSize)
			state.SetRecords(owners)
			state.SetSearch(search)
			state.SetFilter("role", role)
			state.SetSort(sortKey, dir)
			state.SetPage(page)
			res := state.View()

			out := cmd.OutOrStdout()
			if c.jsonOut {
				return printJSON(out, schema.PaginationResponse[schema.Owner]{
					Data: res.Rows, Page: res.Page, PageSize: res.PageSize, Total: res.Total,
				})
			}
			if res.Total == 0 {
				fmt.Fprintln(out, "No owners found.")
				return nil
			}
			renderOwners(out, res.Rows)
			renderFooter(out, res.Page, res.TotalPages, res.Total, "owners")
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive match on name or email")
	cmd.Flags().StringVar(&role, "role", "", "Only show owners with this role")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort key (name, email, role, ownershipPercentage, createdAt, ...)")
	cmd.Flags().StringVar(&order, "order", "", "Sort order: asc or desc")
	cmd.Flags().IntVar(&page, "page", schema.DefaultPage, "Page to show")
	cmd.Flags().IntVar(&pageSize, "page-size", schema.DefaultPageSize, "Rows per page")
	return cmd
}

func (c *cli) newOwnersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show a single owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := c.resolve(cmd).Get(c.context(cmd), args[0])
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(cmd.OutOrStdout(), owner)
			}
			renderOwner(cmd.OutOrStdout(), owner)
			return nil
		},
	}
}

func (c *cli) newOwnersCreateCmd() *cobra.Command {
	var in schema.OwnerCreate
	var role string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Role = schema.OwnerRole(role)
			owner, err := c.resolve(cmd).Create(c.context(cmd), in)
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(cmd.OutOrStdout(), owner)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Owner created: %s (%s)\n", owner.ID, owner.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().Float64Var(&in.OwnershipPercentage, "percentage", 0, "Ownership percentage (0-100)")
	cmd.Flags().StringVar(&role, "role", "", "Role: CEO, CFO, CTO, Shareholder or Advisor")
	return cmd
}

func (c *cli) newOwnersUpdateCmd() *cobra.Command {
	var (
		name, email, role string
		percentage        float64
	)

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Change some fields of an owner",
		Long:  "Only the flags given on the command line are changed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch schema.OwnerPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = schema.Some(name)
			}
			if flags.Changed("email") {
				patch.Email = schema.Some(email)
			}
			if flags.Changed("percentage") {
				patch.OwnershipPercentage = schema.Some(percentage)
			}
			if flags.Changed("role") {
				patch.Role = schema.Some(schema.OwnerRole(role))
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update: pass at least one of --name, --email, --percentage or --role")
			}

			owner, err := c.resolve(cmd).Update(c.context(cmd), args[0], patch)
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(cmd.OutOrStdout(), owner)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Owner updated: %s (%s)\n", owner.ID, owner.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().Float64Var(&percentage, "percentage", 0, "Ownership percentage (0-100)")
	cmd.Flags().StringVar(&role, "role", "", "Role: CEO, CFO, CTO, Shareholder or Advisor")
	return cmd
}

func (c *cli) newOwnersDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an owner",
		Long:  "Delete permanently removes an owner. It asks for confirmation unless --yes is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			backend := c.resolve(cmd)
			ctx := c.context(cmd)

			if !yes {
				owner, err := backend.Get(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Delete owner %s (%s)? [y/N]: ", owner.ID, owner.Name)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(answer)) {
				case "y", "yes":
				default:
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			if err := backend.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Owner deleted: %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (c *cli) newOwnersImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Create every owner listed in a YAML or JSON seed file",
		Long:  "Import copies owners from a seed file into the backend. The backend assigns new ids and timestamps.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := engine.LoadSeed(args[0])
			if err != nil {
				return err
			}

			n, err := engine.Migrate(c.context(cmd), ownerList(seed.Owners), c.resolve(cmd))
			if err != nil {
				return fmt.Errorf("imported %d of %d owners: %w", n, len(seed.Owners), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d owners from %s\n", n, args[0])
			return nil
		},
	}
}

func (c *cli) newOwnersExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write every owner to a YAML or JSON seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owners, err := sdk.ListAll(c.context(cmd), c.resolve(cmd), "")
			if err != nil {
				return fmt.Errorf("loading owners: %w", err)
			}
			if err := engine.SaveSeed(args[0], engine.Seed{Owners: owners}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d owners to %s\n", len(owners), args[0])
			return nil
		},
	}
}
