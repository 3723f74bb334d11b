package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vcrobe/landing/appcomponents/pages"
)

func newSectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List the sections of every Home revision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "REVISION\tSECTIONS")
			for _, rev := range pages.Revisions() {
				names := rev.Sections()
				parts := make([]string, len(names))
				for i, n := range names {
					parts[i] = string(n)
				}
				marker := ""
				if rev == pages.LatestRevision {
					marker = " (latest)"
				}
				fmt.Fprintf(tw, "%s%s\t%s\n", rev, marker, strings.Join(parts, ", "))
			}
			return tw.Flush()
		},
	}
}
