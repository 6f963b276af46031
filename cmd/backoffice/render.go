package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/backoffice-kit/backoffice/pkg/schema"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.AlignHorizontal(lipgloss.Right)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

func formatDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

func renderOwners(w io.Writer, owners []schema.Owner) {
	rows := make([][]string, 0, len(owners))
	for _, o := range owners {
		rows = append(rows, []string{o.ID, o.Name, o.Email, string(o.Role), formatPercent(o.OwnershipPercentage), formatDate(o.CreatedAt)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ID", "NAME", "EMAIL", "ROLE", "OWNERSHIP", "CREATED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 4:
				return numberStyle
			default:
				return cellStyle
			}
		})
	fmt.Fprintln(w, t.String())
}

func renderOwner(w io.Writer, o schema.Owner) {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Row(headerStyle.Render("ID"), o.ID).
		Row(headerStyle.Render("Name"), o.Name).
		Row(headerStyle.Render("Email"), o.Email).
		Row(headerStyle.Render("Role"), string(o.Role)).
		Row(headerStyle.Render("Ownership"), formatPercent(o.OwnershipPercentage)).
		Row(headerStyle.Render("Created"), o.CreatedAt.UTC().Format(time.RFC3339)).
		Row(headerStyle.Render("Updated"), o.UpdatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintln(w, t.String())
}

func renderAudit(w io.Writer, entries []schema.AuditLogItem) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Timestamp.UTC().Format("2006-01-02 15:04:05"),
			string(e.Action),
			e.EntityType + "/" + e.EntityID,
			e.UserName,
			formatChanges(e.Changes),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("TIME", "ACTION", "ENTITY", "USER", "CHANGES").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.String())
}

// formatChanges renders field changes as "field: old → new", sorted by field.
func formatChanges(changes map[string]schema.FieldChange) string {
	if len(changes) == 0 {
		return ""
	}
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		ch := changes[k]
		switch {
		case ch.Old == nil:
			parts = append(parts, fmt.Sprintf("%s: %v", k, ch.New))
		case ch.New == nil:
			parts = append(parts, fmt.Sprintf("%s: %v (removed)", k, ch.Old))
		default:
			parts = append(parts, fmt.Sprintf("%s: %v → %v", k, ch.Old, ch.New))
		}
	}
	return strings.Join(parts, "\n")
}

func renderFooter(w io.Writer, page, totalPages, total int, noun string) {
	if totalPages == 0 {
		totalPages = 1
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("Page %d of %d (%d %s)", page, totalPages, total, noun)))
}

func renderSummary(w io.Writer, sum schema.OwnershipSummary) {
	fmt.Fprintf(w, "Owners: %d\n", sum.OwnerCount)
	fmt.Fprintf(w, "Total ownership: %s\n", formatPercent(sum.TotalOwnership))
	if sum.OverAllocated {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("Warning: Total ownership exceeds 100%% (%s)", formatPercent(sum.TotalOwnership))))
	}
}
