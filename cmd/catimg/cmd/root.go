/*
Copyright © 2024 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	"github.com/berdav/catimg"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	width      int
	height     int
	loops      int
	resolution int
	convert    bool
	noTrue     bool
)

func init() {
	log.SetHandler(clihander.Default)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable verbose logging")
	rootCmd.Flags().IntVarP(&width, "width", "w", 0, "Terminal width/columns by default")
	rootCmd.Flags().IntVarP(&height, "height", "H", 0, "Terminal height/row by default")
	rootCmd.Flags().IntVarP(&loops, "loops", "l", -1, "Loops are only useful with GIF files. A value of 1 means that the GIF will be displayed twice because it loops once. A negative value means infinite looping")
	rootCmd.Flags().IntVarP(&resolution, "resolution", "r", 0, "Resolution must be 1 or 2. By default catimg checks for unicode support to use higher resolution")
	rootCmd.Flags().BoolVarP(&convert, "convert", "c", false, "Convert colors to a restricted palette")
	rootCmd.Flags().BoolVarP(&noTrue, "no-truecolor", "t", false, "Disables true color (24-bit) support, falling back to 256 color")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "catimg [-ct] [-w width | -H height] [-l loops] [-r resolution] image-file",
	Short:        "Display images and animated GIFs in your terminal.",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		opts, err := buildOptions(cmd)
		if err != nil {
			// flag misuse, let cobra print the usage with the error
			cmd.SilenceUsage = false
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		cols, rows := catimg.TerminalSizeOrDefault()
		return run(ctx, os.Stdout, args[0], opts, cols, rows)
	},
}

// buildOptions turns the parsed flags into render options. Width and height
// are halved before use, as catimg has always done.
func buildOptions(cmd *cobra.Command) (catimg.Options, error) {
	flags := cmd.Flags()
	opts := catimg.Options{
		Width:     width >> 1,
		Height:    height >> 1,
		FitHeight: flags.Changed("height"),
		Loops:     loops,
		Precision: resolution,
		TrueColor: !noTrue,
		Convert:   convert,
	}
	if flags.Changed("width") && flags.Changed("height") {
		return opts, catimg.ErrWidthAndHeight
	}
	return opts.ResolvePrecision(catimg.SupportsUTF8()), nil
}

// run decodes path, fits it to a cols x rows terminal and plays it on out
func run(ctx context.Context, out io.Writer, path string, opts catimg.Options, cols, rows int) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	img, err := catimg.DecodeFile(path)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"width":              img.Width(),
		"height":             img.Height(),
		"frames":             img.Frames(),
		"truecolor":          opts.TrueColor,
		"truecolor_detected": catimg.SupportsTrueColor(),
	}).Debug("Loaded image")

	bounds := catimg.TerminalBounds(cols, rows, opts.Precision)
	img, fit, err := opts.Prepare(img, bounds)
	if err != nil {
		return fmt.Errorf("failed to prepare image: %w", err)
	}
	log.WithFields(log.Fields{
		"resize":  fit.Resize,
		"scale":   fit.Scale,
		"governs": fit.Governs.String(),
		"cols":    bounds.Cols,
		"rows":    bounds.Rows,
	}).Debug("Fitted image")

	return catimg.NewPlayer(opts).Play(ctx, out, img)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
