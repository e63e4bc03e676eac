package client

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/naveenspark/campusdesk/pkg/domain"
)

// ApplicantStatistics returns admission totals by status, program and source.
func (g *Gateway) ApplicantStatistics(ctx context.Context) (*domain.ApplicantStatistics, error) {
	var stats domain.ApplicantStatistics
	if err := g.get(ctx, g.endpoints.API(ServiceApplicants)+"/applicants/statistics", &stats); err != nil {
		return nil, fmt.Errorf("client.ApplicantStatistics: %w", err)
	}
	return &stats, nil
}

// CertificateStatistics returns certificate totals and revenue.
func (g *Gateway) CertificateStatistics(ctx context.Context) (*domain.CertificateStatistics, error) {
	var stats domain.CertificateStatistics
	if err := g.get(ctx, g.endpoints.API(ServiceCertificates)+"/statistics", &stats); err != nil {
		return nil, fmt.Errorf("client.CertificateStatistics: %w", err)
	}
	return &stats, nil
}

// LibraryStatistics returns book and copy totals.
func (g *Gateway) LibraryStatistics(ctx context.Context) (*domain.LibraryStatistics, error) {
	var stats domain.LibraryStatistics
	if err := g.get(ctx, g.endpoints.API(ServiceLibrary)+"/statistics", &stats); err != nil {
		return nil, fmt.Errorf("client.LibraryStatistics: %w", err)
	}
	return &stats, nil
}

// Overview is the statistics of every service that reports them. A service
// that failed has a nil section and an entry in Errors.
type Overview struct {
	Staff        *domain.StaffStatistics       `json:"staff,omitempty"`
	Applicants   *domain.ApplicantStatistics   `json:"applicants,omitempty"`
	Events       *domain.EventStatistics       `json:"events,omitempty"`
	Certificates *domain.CertificateStatistics `json:"certificates,omitempty"`
	Library      *domain.LibraryStatistics     `json:"library,omitempty"`
	Errors       map[Service]string            `json:"errors,omitempty"`
}

// Failed reports whether any service could not be read.
func (o *Overview) Failed() bool {
	return len(o.Errors) > 0
}

// Overview fetches all statistics concurrently. One failing service does not
// stop the others.
func (g *Gateway) Overview(ctx context.Context) *Overview {
	o := &Overview{}
	var mu sync.Mutex
	fail := func(s Service, err error) {
		mu.Lock()
		defer mu.Unlock()
		if o.Errors == nil {
			o.Errors = make(map[Service]string)
		}
		o.Errors[s] = err.Error()
	}

	var eg errgroup.Group
	collect(ctx, &eg, ServiceStaff, g.StaffStatistics, &o.Staff, fail)
	collect(ctx, &eg, ServiceApplicants, g.ApplicantStatistics, &o.Applicants, fail)
	collect(ctx, &eg, ServiceEvents, g.EventStatistics, &o.Events, fail)
	collect(ctx, &eg, ServiceCertificates, g.CertificateStatistics, &o.Certificates, fail)
	collect(ctx, &eg, ServiceLibrary, g.LibraryStatistics, &o.Library, fail)
	eg.Wait() //nolint:errcheck // failures are recorded per service
	return o
}

func collect[T any](ctx context.Context, eg *errgroup.Group, s Service, fetch func(context.Context) (*T, error), dst **T, fail func(Service, error)) {
	eg.Go(func() error {
		v, err := fetch(ctx)
		if err != nil {
			fail(s, err)
			return nil
		}
		*dst = v
		return nil
	})
}
