package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pkt.systems/sndbq/internal/classify"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify TOKEN...",
		Short: "Show which lookup each identifier selects",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return classifyTokens(cmd.OutOrStdout(), args)
		},
	}
}

var errUnclassified = errors.New("some identifiers matched no pattern")

func classifyTokens(w io.Writer, tokens []string) error {
	failed := false
	for _, token := range tokens {
		req, err := classify.Classify(token)
		if err != nil {
			failed = true
			if _, werr := fmt.Fprintf(w, "%s\t-\t%v\n", token, err); werr != nil {
				return werr
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", token, req.Kind.Label()); err != nil {
			return err
		}
	}
	if failed {
		return errUnclassified
	}
	return nil
}
