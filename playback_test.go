package catimg

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sleepRecorder struct {
	sleeps []time.Duration
	hook   func(n int)
}

func (r *sleepRecorder) sleep(d time.Duration) {
	r.sleeps = append(r.sleeps, d)
	if r.hook != nil {
		r.hook(len(r.sleeps))
	}
}

func testOptions(loops int) Options {
	opts := DefaultOptions()
	opts.Loops = loops
	opts.Precision = 2
	return opts
}

func TestPlaybackNext(t *testing.T) {
	tests := []struct {
		loops      int
		wantPasses int
	}{
		{loops: 0, wantPasses: 1},
		{loops: 1, wantPasses: 2},
		{loops: 3, wantPasses: 4},
	}

	for _, tt := range tests {
		pb := NewPlayback(tt.loops)
		passes := 0
		for pb.next() {
			passes++
		}
		assert.Equal(t, tt.wantPasses, passes, "loops=%d", tt.loops)
	}
}

func TestPlaybackCancel(t *testing.T) {
	pb := NewPlayback(-1)
	assert.Equal(t, Playing, pb.State())
	assert.Equal(t, -1, pb.Loop())

	require.True(t, pb.next())
	require.True(t, pb.next())
	pb.Cancel()

	assert.True(t, pb.Cancelled())
	assert.Equal(t, StoppingAfterCurrentFrame, pb.State())
	assert.Equal(t, 1, pb.Loops())
	assert.False(t, pb.next())
}

func TestRunSingleFrame(t *testing.T) {
	img := createTestImage(t, 4, 4, 1)

	for _, loops := range []int{-1, 0, 5} {
		rec := &sleepRecorder{}
		var buf bytes.Buffer
		p := NewPlayer(testOptions(loops), WithSleep(rec.sleep))
		require.NoError(t, p.Play(context.Background(), &buf, img))

		f, _ := img.Frame(0)
		var frame bytes.Buffer
		require.NoError(t, RenderFrame(&frame, f, 2, true))

		assert.Equal(t, ansi.SaveCurrentCursorPosition+ansi.HideCursor+frame.String()+ansi.ShowCursor, buf.String(), "loops=%d", loops)
		assert.Empty(t, rec.sleeps)
	}
}

func TestRunLoopBudget(t *testing.T) {
	img := createTestImage(t, 2, 2, 3)

	tests := []struct {
		loops      int
		wantFrames int
		wantSleeps []time.Duration
	}{
		{
			loops:      0,
			wantFrames: 3,
			wantSleeps: []time.Duration{50 * time.Millisecond, 100 * time.Millisecond},
		},
		{
			loops:      1,
			wantFrames: 6,
			wantSleeps: []time.Duration{
				50 * time.Millisecond, 100 * time.Millisecond,
				150 * time.Millisecond,
				50 * time.Millisecond, 100 * time.Millisecond,
			},
		},
	}

	for _, tt := range tests {
		rec := &sleepRecorder{}
		var buf bytes.Buffer
		p := NewPlayer(testOptions(tt.loops), WithSleep(rec.sleep))
		pb := NewPlayback(tt.loops)
		require.NoError(t, p.Run(&buf, img, pb))

		assert.Equal(t, tt.wantFrames, pb.FramesRendered())
		assert.Equal(t, tt.loops+1, pb.Passes())
		assert.Equal(t, tt.wantSleeps, rec.sleeps)
		assert.Equal(t, Done, pb.State())

		out := buf.String()
		assert.True(t, strings.HasPrefix(out, ansi.SaveCurrentCursorPosition+ansi.HideCursor))
		assert.True(t, strings.HasSuffix(out, ansi.ShowCursor))
		assert.Equal(t, tt.wantFrames-1, strings.Count(out, ansi.RestoreCurrentCursorPosition))
	}
}

func TestRunZeroDelayDoesNotSleep(t *testing.T) {
	img := createTestImage(t, 2, 2, 3)
	require.NoError(t, img.SetDelay(0, 0))

	rec := &sleepRecorder{}
	pb := NewPlayback(0)
	var buf bytes.Buffer
	require.NoError(t, NewPlayer(testOptions(0), WithSleep(rec.sleep)).Run(&buf, img, pb))

	assert.Equal(t, []time.Duration{100 * time.Millisecond}, rec.sleeps)
	assert.Equal(t, 3, pb.FramesRendered())
}

func TestRunForeverStopsOnCancel(t *testing.T) {
	img := createTestImage(t, 2, 2, 2)
	pb := NewPlayback(-1)

	// cancel during the wait before the seventh frame
	rec := &sleepRecorder{hook: func(n int) {
		if n == 6 {
			pb.Cancel()
		}
	}}
	var buf bytes.Buffer
	require.NoError(t, NewPlayer(testOptions(-1), WithSleep(rec.sleep)).Run(&buf, img, pb))

	assert.Equal(t, 7, pb.FramesRendered())
	assert.Equal(t, 4, pb.Passes())
	assert.Equal(t, 0, pb.Frame())
	assert.Equal(t, Done, pb.State())
	assert.True(t, strings.HasSuffix(buf.String(), ansi.ShowCursor))
}

func TestRunCancelledBeforeStart(t *testing.T) {
	img := createTestImage(t, 2, 2, 4)
	pb := NewPlayback(3)
	pb.Cancel()

	rec := &sleepRecorder{}
	var buf bytes.Buffer
	require.NoError(t, NewPlayer(testOptions(3), WithSleep(rec.sleep)).Run(&buf, img, pb))

	assert.Equal(t, 1, pb.FramesRendered())
	assert.Empty(t, rec.sleeps)
}

func TestPlayAnimationClearsScreen(t *testing.T) {
	img := createTestImage(t, 2, 2, 2)
	var buf bytes.Buffer
	p := NewPlayer(testOptions(0), WithSleep(func(time.Duration) {}))
	require.NoError(t, p.Play(context.Background(), &buf, img))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, ansi.CursorHomePosition+ansi.EraseEntireScreen+ansi.SaveCurrentCursorPosition))
	assert.True(t, strings.HasSuffix(out, ansi.ShowCursor))
}

func TestPlayContextCancel(t *testing.T) {
	img := createTestImage(t, 2, 2, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	p := NewPlayer(testOptions(-1), WithSleep(func(time.Duration) { time.Sleep(time.Millisecond) }))

	done := make(chan error, 1)
	go func() { done <- p.Play(ctx, &buf, img) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("playback did not stop after cancellation")
	}
	assert.True(t, strings.HasSuffix(buf.String(), ansi.ShowCursor))
}

func TestPlayNilImage(t *testing.T) {
	var buf bytes.Buffer
	err := NewPlayer(testOptions(0)).Play(context.Background(), &buf, nil)
	assert.ErrorIs(t, err, ErrNilImage)
}

func TestRunWriteError(t *testing.T) {
	img := createTestImage(t, 2, 2, 2)
	err := NewPlayer(testOptions(0)).Run(failingWriter{}, img, NewPlayback(0))
	assert.Error(t, err)
}

func TestPlaybackStateString(t *testing.T) {
	assert.Equal(t, "playing", Playing.String())
	assert.Equal(t, "stopping", StoppingAfterCurrentFrame.String())
	assert.Equal(t, "done", Done.String())
	assert.Equal(t, "PlaybackState(9)", PlaybackState(9).String())
}
