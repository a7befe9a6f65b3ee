package services

import (
	"context"
	"net/http"
	"time"

	"github.com/abhidhakal/hready/internal/api"
)

type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Audience  string    `json:"audience,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type AnnouncementInput struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Audience string `json:"audience,omitempty"`
}

type Announcements struct {
	client *api.Client
}

func NewAnnouncements(client *api.Client) *Announcements {
	return &Announcements{client: client}
}

func (s *Announcements) List(ctx context.Context) Result[[]Announcement] {
	return call[[]Announcement](ctx, s.client, api.Request{Method: http.MethodGet, Path: "/announcements"})
}

func (s *Announcements) Create(ctx context.Context, input AnnouncementInput) Result[Announcement] {
	return call[Announcement](ctx, s.client, api.Request{Method: http.MethodPost, Path: "/announcements", Body: input})
}

func (s *Announcements) Update(ctx context.Context, id string, input AnnouncementInput) Result[Announcement] {
	return call[Announcement](ctx, s.client, api.Request{Method: http.MethodPut, Path: "/announcements/" + id, Body: input})
}

func (s *Announcements) Delete(ctx context.Context, id string) Result[Empty] {
	return call[Empty](ctx, s.client, api.Request{Method: http.MethodDelete, Path: "/announcements/" + id})
}
