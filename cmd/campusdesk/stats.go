package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/naveenspark/campusdesk/pkg/client"
)

func newStatsCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show statistics from every service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return codeErr(runStats(cmd.Context(), appFn()))
		},
	}
}

// runStats prints what every service reported. A service that could not be
// read gets an "unavailable" line and makes the command exit 1.
func runStats(ctx context.Context, a *app) int {
	o := a.gateway.Overview(ctx)
	if a.expired.Load() {
		return 1
	}
	if a.json {
		writeJSON(a.out, o) //nolint:errcheck
		return exitIf(o.Failed())
	}

	if s := o.Staff; s != nil {
		writeFields(a.out, "Staff",
			"students", fmt.Sprintf("%d (%d active)", s.TotalStudents, s.ActiveStudents),
			"teachers", fmt.Sprintf("%d (%d active)", s.TotalTeachers, s.ActiveTeachers),
		)
		writeBreakdown(a, "by course", s.StudentsByCourse)
		writeBreakdown(a, "by faculty", s.StudentsByFaculty)
	} else {
		writeUnavailable(a, "Staff", o.Errors[client.ServiceStaff])
	}
	fmt.Fprintln(a.out)

	if s := o.Applicants; s != nil {
		writeFields(a.out, "Applicants",
			"total", fmt.Sprint(s.TotalApplicants),
			"new", fmt.Sprint(s.NewApplicants),
			"contacted", fmt.Sprint(s.ContactedApplicants),
			"enrolled", fmt.Sprint(s.EnrolledApplicants),
			"rejected", fmt.Sprint(s.RejectedApplicants),
		)
		writeBreakdown(a, "by program", s.ApplicantsByProgram)
		writeBreakdown(a, "by source", s.ApplicantsBySource)
	} else {
		writeUnavailable(a, "Applicants", o.Errors[client.ServiceApplicants])
	}
	fmt.Fprintln(a.out)

	if s := o.Events; s != nil {
		writeFields(a.out, "Events",
			"total", fmt.Sprint(s.TotalEvents),
			"published", fmt.Sprint(s.PublishedEvents),
			"completed", fmt.Sprint(s.CompletedEvents),
		)
		writeBreakdown(a, "by category", s.EventsByCategory)
	} else {
		writeUnavailable(a, "Events", o.Errors[client.ServiceEvents])
	}
	fmt.Fprintln(a.out)

	if s := o.Certificates; s != nil {
		writeFields(a.out, "Certificates",
			"total", fmt.Sprint(s.TotalCertificates),
			"pending", fmt.Sprint(s.PendingCertificates),
			"processing", fmt.Sprint(s.ProcessingCertificates),
			"ready", fmt.Sprint(s.ReadyCertificates),
			"issued", fmt.Sprint(s.IssuedCertificates),
			"cancelled", fmt.Sprint(s.CancelledCertificates),
			"revenue", fmt.Sprintf("%.2f", s.TotalRevenue),
		)
		writeBreakdown(a, "by type", s.CertificatesByType)
	} else {
		writeUnavailable(a, "Certificates", o.Errors[client.ServiceCertificates])
	}
	fmt.Fprintln(a.out)

	if s := o.Library; s != nil {
		writeFields(a.out, "Library",
			"books", fmt.Sprint(s.TotalBooks),
			"copies", fmt.Sprintf("%d (%d available)", s.TotalCopies, s.AvailableCopies),
		)
		writeBreakdown(a, "by category", s.BooksByCategory)
	} else {
		writeUnavailable(a, "Library", o.Errors[client.ServiceLibrary])
	}
	return exitIf(o.Failed())
}

func exitIf(failed bool) int {
	if failed {
		return 1
	}
	return 0
}

func writeUnavailable(a *app, title, reason string) {
	fmt.Fprintln(a.out, titleStyle.Render(title))
	fmt.Fprintf(a.out, "  %s %s\n", errStyle.Render("unavailable:"), reason)
}

func writeBreakdown(a *app, label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(a.out, "  %s\n", dimStyle.Render(label+":"))
	for _, k := range keys {
		fmt.Fprintf(a.out, "    %-20s %d\n", k, counts[k])
	}
}
