package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/backoffice-kit/backoffice/pkg/schema"
	"github.com/spf13/cobra"
)

func (c *cli) newAuditCmd() *cobra.Command {
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Browse the audit log",
	}
	auditCmd.AddCommand(c.newAuditListCmd())
	return auditCmd
}

// parseDay accepts RFC 3339 or a plain date. A plain date used as an upper
// bound covers the whole day.
func parseDay(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func (c *cli) newAuditListCmd() *cobra.Command {
	var (
		q        schema.AuditQuery
		action   string
		from, to string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List audit log entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if q.Page < 1 || q.PageSize < 1 {
				return fmt.Errorf("page and page size must be at least 1")
			}
			var err error
			if q.From, err = parseDay(from, false); err != nil {
				return err
			}
			if q.To, err = parseDay(to, true); err != nil {
				return err
			}
			q.Action = schema.AuditAction(strings.ToUpper(action))

			page, err := c.resolve(cmd).ListAudit(c.context(cmd), q)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if c.jsonOut {
				return printJSON(out, page)
			}
			if page.Total == 0 {
				fmt.Fprintln(out, "No audit entries found.")
				return nil
			}
			renderAudit(out, page.Data)
			totalPages := (page.Total + page.PageSize - 1) / page.PageSize
			renderFooter(out, page.Page, totalPages, page.Total, "entries")
			return nil
		},
	}

	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "Case-insensitive match on user, entity or action")
	cmd.Flags().StringVar(&action, "action", "", "Only CREATE, UPDATE, DELETE or VIEW entries")
	cmd.Flags().StringVar(&q.EntityType, "entity-type", "", "Only entries for this entity type")
	cmd.Flags().StringVar(&q.User, "user", "", "Only entries by this user name")
	cmd.Flags().StringVar(&from, "from", "", "Earliest entry (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().StringVar(&to, "to", "", "Latest entry (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().StringVar(&q.SortKey, "sort", "", "Sort key (timestamp, action, entityType, entityId, user)")
	cmd.Flags().StringVar(&q.SortOrder, "order", "", "Sort order: asc or desc")
	cmd.Flags().IntVar(&q.Page, "page", schema.DefaultPage, "Page to show")
	cmd.Flags().IntVar(&q.PageSize, "page-size", schema.DefaultAuditPageSize, "Rows per page")
	return cmd
}

func (c *cli) newOwnershipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ownership",
		Short: "Show the ownership total and warn when it exceeds 100%",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := c.resolve(cmd).OwnershipSummary(c.context(cmd))
			if err != nil {
				return err
			}
			if c.jsonOut {
				return printJSON(cmd.OutOrStdout(), sum)
			}
			renderSummary(cmd.OutOrStdout(), sum)
			return nil
		},
	}
}
