// Package tween runs value animations on the frame loop. Each animation
// interpolates a float from one value to another over a duration and hands
// every intermediate value to a setter.
package tween

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Easing curves in gween's (t, begin, change, duration) form.
var (
	Linear    ease.TweenFunc = ease.Linear
	QuadIn    ease.TweenFunc = ease.InQuad
	QuadOut   ease.TweenFunc = ease.OutQuad // gsap's default power1.out
	QuadInOut ease.TweenFunc = ease.InOutQuad
)

// Tween describes one animation.
type Tween struct {
	From     float32
	To       float32
	Duration time.Duration
	Ease     ease.TweenFunc // QuadOut when nil

	// Yoyo plays From->To in the first half of Duration and retraces it
	// back to From in the second half.
	Yoyo bool

	Apply      func(v float32)
	OnComplete func()
}

// Animator starts animations.
type Animator interface {
	Animate(t Tween)
}

type running struct {
	Tween
	curve   *gween.Tween // one From->To leg, nil for zero duration
	leg     float32      // leg length in seconds
	elapsed time.Duration
}

// Scheduler is an Animator advanced explicitly by Update. It is not safe for
// concurrent use; the frame loop owns it.
type Scheduler struct {
	active []*running
}

// NewScheduler creates an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Animate starts t immediately and applies its starting value.
func (s *Scheduler) Animate(t Tween) {
	if t.Ease == nil {
		t.Ease = QuadOut
	}
	r := &running{Tween: t}
	if t.Duration > 0 {
		r.leg = float32(t.Duration.Seconds())
		if t.Yoyo {
			r.leg /= 2
		}
		r.curve = gween.New(t.From, t.To, r.leg, t.Ease)
	}
	r.apply(r.value())
	s.active = append(s.active, r)
}

// Len returns the number of animations in progress.
func (s *Scheduler) Len() int {
	return len(s.active)
}

// Update advances every animation by dt. Finished animations apply their
// exact end value, are removed, and then have OnComplete called. Animations
// started from a callback begin on the next Update.
func (s *Scheduler) Update(dt time.Duration) {
	if len(s.active) == 0 {
		return
	}

	var done []*running
	kept := s.active[:0]
	for _, r := range s.active {
		r.elapsed += dt
		if r.elapsed >= r.Duration {
			r.apply(r.end())
			done = append(done, r)
			continue
		}
		r.apply(r.value())
		kept = append(kept, r)
	}
	for i := len(kept); i < len(s.active); i++ {
		s.active[i] = nil
	}
	s.active = kept

	for _, r := range done {
		if r.OnComplete != nil {
			r.OnComplete()
		}
	}
}

func (r *running) apply(v float32) {
	if r.Apply != nil {
		r.Apply(v)
	}
}

func (r *running) end() float32 {
	if r.Yoyo {
		return r.From
	}
	return r.To
}

// value returns the interpolated value at the current elapsed time. The yoyo
// return leg replays the forward curve backwards.
func (r *running) value() float32 {
	if r.curve == nil {
		return r.end()
	}
	t := float32(r.elapsed.Seconds())
	if r.Yoyo && t > r.leg {
		t = 2*r.leg - t
	}
	v, _ := r.curve.Set(t)
	return v
}
