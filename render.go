package catimg

import (
	"bufio"
	"io"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// Frame writers are reused across frames of an animation
var frameWriterPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(nil, 32*1024)
	},
}

// RenderFrame writes one frame to w, row by row.
//
// With precision 2 each terminal row covers two pixel rows. Every row ends
// with a style reset and a newline. Output is buffered and fully flushed
// before RenderFrame returns.
func RenderFrame(w io.Writer, f Frame, precision int, trueColor bool) error {
	if precision != 1 && precision != 2 {
		precision = 2
	}
	bw := frameWriterPool.Get().(*bufio.Writer)
	bw.Reset(w)
	defer func() {
		bw.Reset(nil)
		frameWriterPool.Put(bw)
	}()

	for y := 0; y < f.Height(); y += precision {
		for x := range f.Width() {
			upper, _ := f.At(x, y)
			cell := Cell{
				Upper:     upper,
				Precision: precision,
				TrueColor: trueColor,
			}
			if precision == 2 {
				cell.Lower, cell.HasLower = f.At(x, y+1)
			}
			if _, err := bw.WriteString(ComposeCell(cell)); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(ansi.ResetStyle + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
