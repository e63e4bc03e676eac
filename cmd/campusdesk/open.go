package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naveenspark/campusdesk/internal/browser"
)

func newOpenCmd(appFn func() *app) *cobra.Command {
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "open [section]",
		Short: "Open the web console in a browser",
		Long: fmt.Sprintf(`Open the web console, or one of its sections, in the default browser.

Sections: %s`, strings.Join(browser.Sections, ", ")),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: browser.Sections,
		RunE: func(cmd *cobra.Command, args []string) error {
			section := ""
			if len(args) == 1 {
				section = args[0]
			}
			open := browser.Open
			if printOnly {
				open = nil
			}
			return codeErr(runOpen(appFn(), section, open))
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the URL without opening a browser")
	return cmd
}

// runOpen resolves the section URL and hands it to open. A nil open only
// prints the URL.
func runOpen(a *app, section string, open func(string) error) int {
	u, err := browser.SectionURL(a.cfg.WebURL, section)
	if err != nil {
		return a.fail(err)
	}
	if open == nil {
		fmt.Fprintln(a.out, u)
		return 0
	}
	if err := open(u); err != nil {
		fmt.Fprintf(a.out, "Could not open browser. Visit this URL manually:\n  %s\n", u)
		return 0
	}
	fmt.Fprintf(a.out, "Opened %s\n", u)
	return 0
}
