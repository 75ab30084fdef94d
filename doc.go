/*
Package catimg renders images, including animated GIFs, as colored text in a
terminal.

Two vertically stacked pixels share one terminal cell through the upper half
block glyph (▀), the upper pixel painted as foreground and the lower one as
background. Terminals without UTF-8 get one pixel per cell instead, drawn as
two colored spaces. Colors are sent either as 24-bit RGB or quantized to the
xterm 256-color palette, and pixels with an alpha below 25% are left empty.

Basic Usage:

	img, err := catimg.DecodeFile("image.gif")
	if err != nil {
	    log.Fatal(err)
	}

	opts := catimg.DefaultOptions().ResolvePrecision(catimg.SupportsUTF8())
	cols, rows := catimg.TerminalSizeOrDefault()

	img, _, err = opts.Prepare(img, catimg.TerminalBounds(cols, rows, opts.Precision))
	if err != nil {
	    log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := catimg.NewPlayer(opts).Play(ctx, os.Stdout, img); err != nil {
	    log.Fatal(err)
	}

Fitting:

Images are only ever shrunk, with the same factor on both axes. Without an
explicit target the image is fitted to the terminal width, or to its height
when Options.FitHeight is set and the height is the tighter bound. An
explicit Options.Width or Options.Height overrides the terminal size; setting
both is an error.

Animation:

Frames are redrawn in place, each one after the delay of the frame before it.
Options.Loops is the number of extra passes after the first one, a negative
value loops until the context passed to Player.Play is cancelled. Cancelling
never interrupts a frame: the frame being drawn is completed and playback ends.
*/
package catimg
