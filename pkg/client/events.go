package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/naveenspark/campusdesk/pkg/domain"
)

func (g *Gateway) eventsURL(path string) string {
	return g.endpoints.API(ServiceEvents) + "/events" + path
}

// ListEvents fetches events matching f.
func (g *Gateway) ListEvents(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	params := url.Values{}
	setString(params, "category", f.Category)
	setString(params, "status", f.Status)
	setString(params, "date_from", f.DateFrom)
	setString(params, "date_to", f.DateTo)
	setInt(params, "skip", f.Skip)
	setInt(params, "limit", f.Limit)

	var events []domain.Event
	if err := g.get(ctx, withQuery(g.eventsURL("/events"), params), &events); err != nil {
		return nil, fmt.Errorf("client.ListEvents: %w", err)
	}
	return events, nil
}

// GetEvent fetches a single event by ID.
func (g *Gateway) GetEvent(ctx context.Context, id int) (*domain.Event, error) {
	var e domain.Event
	if err := g.get(ctx, g.eventsURL("/events/"+strconv.Itoa(id)), &e); err != nil {
		return nil, fmt.Errorf("client.GetEvent: %w", err)
	}
	return &e, nil
}

// CreateEvent creates a new event.
func (g *Gateway) CreateEvent(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	var created domain.Event
	if err := g.post(ctx, g.eventsURL("/events"), in, &created); err != nil {
		return nil, fmt.Errorf("client.CreateEvent: %w", err)
	}
	return &created, nil
}

// UpdateEvent changes the fields set in upd and returns the stored event.
func (g *Gateway) UpdateEvent(ctx context.Context, id int, upd domain.EventUpdate) (*domain.Event, error) {
	var updated domain.Event
	if err := g.doJSON(ctx, http.MethodPut, g.eventsURL("/events/"+strconv.Itoa(id)), upd, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateEvent: %w", err)
	}
	return &updated, nil
}

// DeleteEvent deletes an event by ID.
func (g *Gateway) DeleteEvent(ctx context.Context, id int) error {
	if err := g.doJSON(ctx, http.MethodDelete, g.eventsURL("/events/"+strconv.Itoa(id)), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteEvent: %w", err)
	}
	return nil
}

// EventStatistics returns event totals by status and category.
func (g *Gateway) EventStatistics(ctx context.Context) (*domain.EventStatistics, error) {
	var stats domain.EventStatistics
	if err := g.get(ctx, g.eventsURL("/statistics"), &stats); err != nil {
		return nil, fmt.Errorf("client.EventStatistics: %w", err)
	}
	return &stats, nil
}
