package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyflow/internal/screen"
	"github.com/abhisek/studyflow/internal/session"
)

// Router holds one screen per tool and forwards input to the active one.
// Screens are kept for the life of the program so their local state, such
// as a scroll position, survives switching tools.
type Router struct {
	screens map[session.Tool]screen.Screen
	active  session.Tool
	started map[session.Tool]bool
}

// New creates a Router showing the initial tool.
func New(screens map[session.Tool]screen.Screen, initial session.Tool) *Router {
	return &Router{
		screens: screens,
		active:  initial,
		started: make(map[session.Tool]bool),
	}
}

// Init starts the initial screen.
func (r *Router) Init() tea.Cmd {
	return r.Show(r.active)
}

// Show makes t the active tool, calling the screen's Init the first time
// it is shown. Unknown tools are ignored.
func (r *Router) Show(t session.Tool) tea.Cmd {
	s, ok := r.screens[t]
	if !ok {
		return nil
	}
	r.active = t
	if r.started[t] {
		return nil
	}
	r.started[t] = true
	return s.Init()
}

// Active returns the active screen.
func (r *Router) Active() screen.Screen {
	return r.screens[r.active]
}

// ActiveTool returns the tool being shown.
func (r *Router) ActiveTool() session.Tool {
	return r.active
}

// Sync tells every screen that caches session-derived widgets to rebuild.
func (r *Router) Sync() {
	for _, s := range r.screens {
		if syncer, ok := s.(screen.Syncer); ok {
			syncer.Sync()
		}
	}
}

// Update forwards a message to the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.screens[r.active] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
