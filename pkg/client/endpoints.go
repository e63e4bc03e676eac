package client

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Service names a backend microservice.
type Service string

const (
	ServiceAuth         Service = "auth"
	ServiceStaff        Service = "staff"
	ServiceTimetable    Service = "timetable"
	ServiceApplicants   Service = "applicants"
	ServiceEvents       Service = "events"
	ServiceLibrary      Service = "library"
	ServiceCertificates Service = "certificates"
)

// Services lists every backend service in display order.
var Services = []Service{
	ServiceAuth,
	ServiceStaff,
	ServiceTimetable,
	ServiceApplicants,
	ServiceEvents,
	ServiceLibrary,
	ServiceCertificates,
}

// DefaultPorts matches the docker-compose layout of the backend.
var DefaultPorts = map[Service]int{
	ServiceAuth:         8001,
	ServiceStaff:        8002,
	ServiceTimetable:    8003,
	ServiceApplicants:   8004,
	ServiceEvents:       8005,
	ServiceLibrary:      8006,
	ServiceCertificates: 8007,
}

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost"

// Endpoints resolves the root URL of every service.
type Endpoints struct {
	roots map[Service]string
}

// NewEndpoints derives each service root from baseURL plus the service's
// default port. Any port already present in baseURL is replaced.
func NewEndpoints(baseURL string) Endpoints {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	e := Endpoints{roots: make(map[Service]string, len(Services))}
	for _, s := range Services {
		e.roots[s] = withPort(baseURL, DefaultPorts[s])
	}
	return e
}

// WithRoot returns a copy of e with the root of s replaced.
func (e Endpoints) WithRoot(s Service, root string) Endpoints {
	roots := make(map[Service]string, len(e.roots)+1)
	for k, v := range e.roots {
		roots[k] = v
	}
	roots[s] = strings.TrimRight(root, "/")
	return Endpoints{roots: roots}
}

// Root returns the scheme://host:port of s.
func (e Endpoints) Root(s Service) string {
	if root, ok := e.roots[s]; ok {
		return root
	}
	return withPort(DefaultBaseURL, DefaultPorts[s])
}

// API returns the base path API calls to s are made under.
func (e Endpoints) API(s Service) string {
	if s == ServiceAuth {
		return e.Root(s) + "/api/auth"
	}
	return e.Root(s) + "/api"
}

// Health returns the liveness URL of s.
func (e Endpoints) Health(s Service) string {
	return e.Root(s) + "/health"
}

func withPort(baseURL string, port int) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL + ":" + strconv.Itoa(port)
	}
	u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(port))
	u.Path = strings.TrimRight(u.Path, "/")
	return u.String()
}
