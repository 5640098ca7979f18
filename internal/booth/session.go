// Package booth runs photo-booth sessions: frames are developed into
// filtered shots and collected until the strip is complete.
package booth

import (
	"context"
	"errors"
	"math/rand"

	"snapbook/internal/applog"
	"snapbook/internal/filter"
	"snapbook/internal/pixel"
	"snapbook/internal/strip"
	"snapbook/internal/yuv"
)

const (
	DefaultTarget = 4
	DefaultFilter = filter.Sepia

	codeLength   = 6
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var (
	// ErrSessionFull is returned when a shot is added to a complete session.
	ErrSessionFull = errors.New("booth: session already has all its shots")
	// ErrEmptyShot is returned by AddShot for a nil or zero-sized buffer.
	ErrEmptyShot = errors.New("booth: empty shot")
)

// NewCode returns a random session code of six letters and digits.
func NewCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// Session collects the shots of one strip. The filter and mirroring are
// applied as each shot is taken. A Session is not safe for concurrent use;
// use Develop to process frames off the caller's goroutine.
type Session struct {
	Code string
	// Target is the number of shots that completes the session.
	Target int
	// Mirrored flips captured frames horizontally, as needed for a
	// front-facing camera.
	Mirrored bool

	filter filter.Kind
	shots  []*pixel.Buffer
}

// NewSession starts a session that completes after target shots. A
// non-positive target means DefaultTarget.
func NewSession(target int, mirrored bool) *Session {
	if target <= 0 {
		target = DefaultTarget
	}
	s := &Session{
		Code:     NewCode(),
		Target:   target,
		Mirrored: mirrored,
		filter:   DefaultFilter,
	}
	applog.Logger().Info("booth: session started", "code", s.Code, "target", target)
	return s
}

// Filter returns the filter applied to new shots.
func (s *Session) Filter() filter.Kind { return s.filter }

// SetFilter selects the filter by name. Unknown names select filter.None.
func (s *Session) SetFilter(name string) filter.Kind {
	s.filter = filter.Parse(name)
	return s.filter
}

// SetFilterKind selects k for new shots.
func (s *Session) SetFilterKind(k filter.Kind) { s.filter = k }

// Complete reports whether the session has all its shots.
func (s *Session) Complete() bool { return len(s.shots) >= s.Target }

// Remaining returns how many shots are still to be taken.
func (s *Session) Remaining() int {
	if n := s.Target - len(s.shots); n > 0 {
		return n
	}
	return 0
}

// Shots returns the filtered shots in capture order.
func (s *Session) Shots() []*pixel.Buffer {
	out := make([]*pixel.Buffer, len(s.shots))
	copy(out, s.shots)
	return out
}

// Capture develops f with the session's filter and mirroring and keeps the
// result. The session is unchanged on error.
func (s *Session) Capture(f yuv.Frame) (*pixel.Buffer, error) {
	if s.Complete() {
		return nil, ErrSessionFull
	}
	shot, err := develop(f, s.filter, s.Mirrored)
	if err != nil {
		return nil, err
	}
	return s.keep(shot), nil
}

// AddShot filters an already decoded picture, such as one picked from the
// gallery, and keeps it. No mirroring is applied.
func (s *Session) AddShot(b *pixel.Buffer) (*pixel.Buffer, error) {
	if s.Complete() {
		return nil, ErrSessionFull
	}
	if b.Empty() {
		return nil, ErrEmptyShot
	}
	return s.keep(filter.Apply(b, s.filter)), nil
}

// Accept keeps a shot returned by Develop.
func (s *Session) Accept(r Result) (*pixel.Buffer, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if s.Complete() {
		return nil, ErrSessionFull
	}
	if r.Shot.Empty() {
		return nil, ErrEmptyShot
	}
	return s.keep(r.Shot), nil
}

func (s *Session) keep(shot *pixel.Buffer) *pixel.Buffer {
	s.shots = append(s.shots, shot)
	applog.Logger().Debug("booth: shot kept", "code", s.Code, "shot", len(s.shots), "of", s.Target, "filter", s.filter.String())
	return shot
}

// Reset drops every shot and draws a new session code.
func (s *Session) Reset() {
	s.shots = nil
	s.Code = NewCode()
}

// Strip composes the shots taken so far.
func (s *Session) Strip(opts ...strip.Option) (*pixel.Buffer, error) {
	return strip.Compose(s.shots, opts...)
}

// Result is the outcome of Develop.
type Result struct {
	Shot *pixel.Buffer
	Err  error
}

func develop(f yuv.Frame, k filter.Kind, mirrored bool) (*pixel.Buffer, error) {
	b, err := yuv.Decode(f)
	if err != nil {
		return nil, err
	}
	if mirrored {
		b = pixel.FlipHorizontal(b)
	}
	return filter.Apply(b, k), nil
}

// Develop decodes, mirrors and filters f on its own goroutine. The channel
// receives exactly one Result and is then closed. It is buffered, so a
// caller that stops waiting does not leave the worker blocked.
func Develop(ctx context.Context, f yuv.Frame, k filter.Kind, mirrored bool) <-chan Result {
	out := make(chan Result, 1)
	if err := ctx.Err(); err != nil {
		out <- Result{Err: err}
		close(out)
		return out
	}
	go func() {
		defer close(out)
		shot, err := develop(f, k, mirrored)
		if err == nil {
			if cerr := ctx.Err(); cerr != nil {
				shot, err = nil, cerr
			}
		}
		out <- Result{Shot: shot, Err: err}
	}()
	return out
}
