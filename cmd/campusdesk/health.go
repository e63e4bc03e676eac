package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/naveenspark/campusdesk/pkg/client"
)

func newHealthCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check every backend service",
		Long:  "Check the health endpoint of every service. Exits with status 2 when any service is down.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return codeErr(runHealth(cmd.Context(), appFn()))
		},
	}
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, a *app) int {
	results := a.gateway.Health(ctx)
	if a.json {
		writeJSON(a.out, results) //nolint:errcheck
	} else {
		formatHealthHuman(a.out, results)
	}
	if !client.AllHealthy(results) {
		return 2
	}
	return 0
}

func formatHealthHuman(w io.Writer, results []client.ServiceHealth) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		state := okStyle.Render("healthy")
		detail := r.URL
		if !r.Healthy {
			state = errStyle.Render("down")
			if r.Error != "" {
				detail = r.Error
			} else if r.Status != "" {
				detail = "status " + r.Status
			}
		}
		rows = append(rows, []string{string(r.Service), state, detail})
	}
	writeTable(w, []string{"SERVICE", "STATE", "DETAIL"}, rows)

	down := 0
	for _, r := range results {
		if !r.Healthy {
			down++
		}
	}
	if down > 0 {
		fmt.Fprintf(w, "%s\n", errStyle.Render(fmt.Sprintf("%d of %d services down", down, len(results))))
	}
}
