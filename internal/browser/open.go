package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// Sections are the web console's top-level pages, in sidebar order.
var Sections = []string{"management", "timetable", "events", "certificates", "applicants", "library"}

// SectionURL returns the web console URL of section under webURL. An empty
// section is the home page.
func SectionURL(webURL, section string) (string, error) {
	base, err := checkURL(webURL)
	if err != nil {
		return "", err
	}
	base.Path = strings.TrimRight(base.Path, "/")
	if section == "" {
		base.Path += "/"
		return base.String(), nil
	}
	for _, s := range Sections {
		if s == section {
			base.Path += "/section/" + s
			return base.String(), nil
		}
	}
	return "", fmt.Errorf("unknown section %q (want one of %s)", section, strings.Join(Sections, ", "))
}

// Open opens the specified URL in the user's default browser. Only http and
// https URLs are accepted.
func Open(rawURL string) error {
	if _, err := checkURL(rawURL); err != nil {
		return err
	}
	cmd, err := command(runtime.GOOS, rawURL)
	if err != nil {
		return err
	}
	return cmd.Start()
}

func command(goos, rawURL string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", rawURL), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", rawURL), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}

func checkURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("refusing to open %q: want an http(s) URL", rawURL)
	}
	return u, nil
}
