package main

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/folio3d/internal/engine/audio"
	"github.com/Faultbox/folio3d/internal/engine/picking"
	"github.com/Faultbox/folio3d/internal/engine/window"
	"github.com/Faultbox/folio3d/internal/game/content"
)

// presenter shows cursor changes and content on the SDL window. sounds may be
// nil when audio is disabled or unavailable.
type presenter struct {
	win    *window.Window
	sounds *audio.Manager
	log    *zap.Logger
}

func newPresenter(win *window.Window, sounds *audio.Manager, log *zap.Logger) *presenter {
	return &presenter{win: win, sounds: sounds, log: log}
}

func (p *presenter) SetCursor(c picking.Cursor) {
	switch c {
	case picking.CursorPointer:
		p.win.SetCursor(sdl.SYSTEM_CURSOR_HAND)
		p.play(audio.CueHover)
	default:
		p.win.SetCursor(sdl.SYSTEM_CURSOR_ARROW)
	}
}

func (p *presenter) ShowContent(id string, entry content.Entry) {
	p.play(audio.CueActivate)
	if err := p.win.ShowMessage(entry.Title, entry.Text()); err != nil {
		p.log.Warn("content dialog failed", zap.String("target", id), zap.Error(err))
	}
}

func (p *presenter) play(cue audio.Cue) {
	if p.sounds == nil {
		return
	}
	if err := p.sounds.Play(cue); err != nil {
		p.log.Debug("feedback sound skipped", zap.Stringer("cue", cue), zap.Error(err))
	}
}
