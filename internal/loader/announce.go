package loader

import "context"

type AnnouncementKind string

const (
	Started   AnnouncementKind = "started"
	Completed AnnouncementKind = "completed"
	Failed    AnnouncementKind = "failed"
)

// Announcement is a progress event meant for assistive technology.
type Announcement struct {
	Kind  AnnouncementKind
	Added int
}

type Announcer interface {
	Announce(Announcement)
}

type AnnouncerFunc func(Announcement)

func (f AnnouncerFunc) Announce(a Announcement) {
	f(a)
}

type nopAnnouncer struct{}

func (nopAnnouncer) Announce(Announcement) {}

// Recorder keeps the announcements of one request, last one wins for display.
type Recorder struct {
	events []Announcement
}

func (r *Recorder) Announce(a Announcement) {
	r.events = append(r.events, a)
}

func (r *Recorder) Events() []Announcement {
	return append([]Announcement(nil), r.events...)
}

func (r *Recorder) Last() (Announcement, bool) {
	if len(r.events) == 0 {
		return Announcement{}, false
	}
	return r.events[len(r.events)-1], true
}

type announcerKey struct{}

// WithAnnouncer routes announcements of loads driven by ctx to a, overriding Options.Announcer.
// Loaders are shared between requests; the announcer belongs to the request.
func WithAnnouncer(ctx context.Context, a Announcer) context.Context {
	return context.WithValue(ctx, announcerKey{}, a)
}

func announcerFrom(ctx context.Context, fallback Announcer) Announcer {
	if a, ok := ctx.Value(announcerKey{}).(Announcer); ok && a != nil {
		return a
	}
	if fallback != nil {
		return fallback
	}
	return nopAnnouncer{}
}
