package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"pkt.systems/sndbq/internal/appconfig"
	"pkt.systems/sndbq/internal/classify"
	"pkt.systems/sndbq/internal/format"
	"pkt.systems/sndbq/internal/logx"
	"pkt.systems/sndbq/internal/store"
	"pkt.systems/sndbq/schema"
)

type lookupStore interface {
	Lookup(ctx context.Context, req schema.LookupRequest) (schema.Program, bool, error)
}

func newLookupCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "lookup TOKEN...",
		Short: "Look up identifiers once and print the result table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			db, err := store.Open(cmd.Context(), storeConfig(cfg))
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()
			return lookupTokens(cmd.Context(), db, cmd.OutOrStdout(), args)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	return cmd
}

// lookupTokens resolves every token sequentially and prints one table.
// Tokens that fail are reported below the table.
func lookupTokens(ctx context.Context, db lookupStore, w io.Writer, tokens []string) error {
	logger := pslog.Ctx(ctx)
	var rows [][]string
	var notes []string
	for _, token := range tokens {
		req, err := classify.Classify(token)
		if err != nil {
			notes = append(notes, err.Error())
			continue
		}
		program, found, err := db.Lookup(ctx, req)
		switch {
		case err != nil:
			logx.WithRequest(logger, req).Warn("lookup failed", "err", err)
			notes = append(notes, fmt.Sprintf("%s `%s`: lookup failed", req.Kind.Label(), req.Identifier))
		case !found:
			notes = append(notes, fmt.Sprintf("%s `%s` not found", req.Kind.Label(), req.Identifier))
		default:
			rows = append(rows, format.Row(program))
		}
	}
	var b strings.Builder
	if len(rows) > 0 {
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			Headers(format.Header...).
			Rows(rows...)
		b.WriteString(t.String())
		b.WriteString("\n")
	}
	for _, note := range notes {
		b.WriteString(note)
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
