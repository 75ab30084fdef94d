package catimg

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// PlaybackState is the state of the animation loop
type PlaybackState int32

const (
	Playing PlaybackState = iota
	StoppingAfterCurrentFrame
	Done
)

func (s PlaybackState) String() string {
	switch s {
	case Playing:
		return "playing"
	case StoppingAfterCurrentFrame:
		return "stopping"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("PlaybackState(%d)", int32(s))
	}
}

// Playback holds the counters of one playback.
//
// Cancel may be called from any goroutine. Everything else belongs to the
// goroutine running the player.
type Playback struct {
	loops atomic.Int64 // negative means forever
	loop  atomic.Int64
	stop  atomic.Bool
	state atomic.Int32
	frame int

	framesRendered int
	passes         int
}

// NewPlayback creates a playback with the given loop budget
func NewPlayback(loops int) *Playback {
	pb := &Playback{}
	pb.loops.Store(int64(loops))
	pb.loop.Store(-1)
	return pb
}

// Cancel asks the playback to stop once the current frame is complete.
// The pass in progress becomes the last one.
func (pb *Playback) Cancel() {
	pb.loops.Store(pb.loop.Load())
	pb.stop.Store(true)
	pb.state.CompareAndSwap(int32(Playing), int32(StoppingAfterCurrentFrame))
}

// Cancelled reports whether Cancel was called
func (pb *Playback) Cancelled() bool { return pb.stop.Load() }

// Loops returns the current loop budget
func (pb *Playback) Loops() int { return int(pb.loops.Load()) }

// Loop returns the index of the pass in progress, -1 before the first
func (pb *Playback) Loop() int { return int(pb.loop.Load()) }

// Frame returns the index of the last frame started
func (pb *Playback) Frame() int { return pb.frame }

// State returns the current state
func (pb *Playback) State() PlaybackState { return PlaybackState(pb.state.Load()) }

// FramesRendered returns the number of frames fully written
func (pb *Playback) FramesRendered() int { return pb.framesRendered }

// Passes returns the number of passes started
func (pb *Playback) Passes() int { return pb.passes }

// next advances the loop counter and reports whether another pass should run
func (pb *Playback) next() bool {
	loop := pb.loop.Add(1)
	loops := pb.loops.Load()
	return loop <= loops || loops < 0
}

// Player plays an Image on a terminal stream
type Player struct {
	opts  Options
	sleep func(time.Duration)
}

// PlayerOption configures a Player
type PlayerOption func(*Player)

// WithSleep replaces the function used to wait between frames
func WithSleep(sleep func(time.Duration)) PlayerOption {
	return func(p *Player) {
		p.sleep = sleep
	}
}

// NewPlayer creates a player. opts.Precision must already be resolved.
func NewPlayer(opts Options, options ...PlayerOption) *Player {
	p := &Player{
		opts:  opts,
		sleep: time.Sleep,
	}
	for _, o := range options {
		o(p)
	}
	return p
}

// Play renders img to w, animating it when it has more than one frame.
//
// For animations the terminal is cleared first, and cancelling ctx stops the
// playback after the frame being drawn. Cancellation is not an error.
func (p *Player) Play(ctx context.Context, w io.Writer, img *Image) error {
	if img == nil {
		return ErrNilImage
	}
	loops := p.opts.Loops
	if img.Frames() <= 1 {
		loops = 0
	}
	pb := NewPlayback(loops)

	if img.Frames() > 1 {
		if _, err := io.WriteString(w, ansi.CursorHomePosition+ansi.EraseEntireScreen); err != nil {
			return err
		}
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-ctx.Done():
				pb.Cancel()
			case <-done:
			}
		}()
	}

	return p.Run(w, img, pb)
}

// Run drives pb over img. It does not clear the screen nor watch for
// cancellation, callers do that through pb.Cancel.
func (p *Player) Run(w io.Writer, img *Image, pb *Playback) (err error) {
	if img == nil {
		return ErrNilImage
	}
	precision := p.opts.Precision
	if precision != 1 && precision != 2 {
		precision = 2
	}

	if _, err := io.WriteString(w, ansi.SaveCurrentCursorPosition+ansi.HideCursor); err != nil {
		return err
	}
	defer func() {
		pb.state.Store(int32(Done))
		if _, werr := io.WriteString(w, ansi.ShowCursor); werr != nil && err == nil {
			err = werr
		}
	}()

	frames := img.Frames()
	for pb.next() {
		pb.passes++
		loop := pb.Loop()
		for frame := 0; frame < frames; frame++ {
			pb.frame = frame
			if frame > 0 || loop > 0 {
				prev := frame - 1
				if frame == 0 {
					prev = frames - 1
				}
				if d := img.Delay(prev); d > 0 {
					p.sleep(d)
				}
				if _, err := io.WriteString(w, ansi.RestoreCurrentCursorPosition); err != nil {
					return err
				}
			}

			f, err := img.Frame(frame)
			if err != nil {
				return err
			}
			if err := RenderFrame(w, f, precision, p.opts.TrueColor); err != nil {
				return err
			}
			pb.framesRendered++

			if pb.Cancelled() {
				return nil
			}
		}
	}
	return nil
}
