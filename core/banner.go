package core

import (
	"strings"
	"sync"
	"time"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

const fallbackBannerTitle = "Notification"

type activeBanner struct {
	id      uuid.UUID
	request BannerRequest
	timer   *time.Timer
	minimal bool
}

// BannerManager owns the single active in-app banner. Present replaces any
// current banner, schedules one auto-dismiss, and degrades to the minimal
// surface path when the rich presentation fails. Tap and close callbacks
// arrive from the surface on its own execution context, so every mutation of
// the active reference is serialized here.
type BannerManager struct {
	surface     BannerSurface
	bridge      *EventBridge
	logger      Logger
	autoDismiss time.Duration

	mu     sync.Mutex
	active *activeBanner
}

func NewBannerManager(surface BannerSurface, bridge *EventBridge, logger Logger, autoDismiss time.Duration) *BannerManager {
	return &BannerManager{
		surface:     surface,
		bridge:      bridge,
		logger:      glog.Ensure(logger),
		autoDismiss: autoDismiss,
	}
}

// Present shows a new banner, replacing and dismissing any active one first.
// A failed rich presentation falls back to title+body with no tap data
// capture; the notification is never dropped silently.
func (m *BannerManager) Present(req BannerRequest) {
	if m == nil || m.surface == nil {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		req.Title = fallbackBannerTitle
	}
	req.Data = cloneAnyMap(req.Data)

	m.mu.Lock()
	m.dismissLocked()

	banner := &activeBanner{id: uuid.New(), request: req}
	if err := m.surface.Present(req); err != nil {
		m.logger.Error("banner presentation failed, using minimal fallback",
			"error", err.Error(), "title", req.Title)
		m.surface.PresentMinimal(req.Title, req.Body)
		banner.minimal = true
	}
	m.active = banner

	if m.autoDismiss > 0 {
		id := banner.id
		banner.timer = time.AfterFunc(m.autoDismiss, func() {
			m.expire(id)
		})
	}
	m.mu.Unlock()
}

// Dismiss hides the active banner. Idempotent.
func (m *BannerManager) Dismiss() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.dismissLocked()
	m.mu.Unlock()
}

// OnTap handles a user tap on the active banner: the banner is dismissed and
// its data map is emitted on the notification-tap channel. Minimal-fallback
// banners carry no tap data and emit nothing.
func (m *BannerManager) OnTap() {
	if m == nil {
		return
	}
	m.mu.Lock()
	banner := m.active
	m.dismissLocked()
	m.mu.Unlock()

	if banner == nil || banner.minimal {
		return
	}
	// Emit outside the lock so a listener can call back into the manager.
	m.bridge.EmitTap(banner.request.Data)
}

// OnClose handles the close button: dismiss without emitting data.
func (m *BannerManager) OnClose() {
	m.Dismiss()
}

// Active reports the currently presented banner, if any.
func (m *BannerManager) Active() (BannerRequest, bool) {
	if m == nil {
		return BannerRequest{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return BannerRequest{}, false
	}
	return m.active.request, true
}

// expire is the auto-dismiss path. The banner identity guard makes a stale
// timer firing after replacement a no-op.
func (m *BannerManager) expire(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil || m.active.id != id {
		return
	}
	m.dismissLocked()
}

func (m *BannerManager) dismissLocked() {
	if m.active == nil {
		return
	}
	if m.active.timer != nil {
		m.active.timer.Stop()
	}
	m.active = nil
	if m.surface != nil {
		m.surface.Dismiss()
	}
}
