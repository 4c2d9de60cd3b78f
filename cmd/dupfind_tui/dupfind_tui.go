package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"dupfinder/hasher"
	"dupfinder/report"
	"dupfinder/scan"
)

var (
	workers = flag.IntP("workers", "w", 0, "hashing goroutines, 0 means one per CPU")
	algo    = flag.StringP("hash", "H", hasher.DefaultAlgorithm, "fingerprint algorithm: sha256, blake3 or highway")
)

var (
	defStyle    = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)
	styleTitle  = tcell.StyleDefault.Foreground(tcell.NewHexColor(0x001040)).Background(tcell.NewHexColor(0xdfdfdf)).Bold(true)
	styleHeader = tcell.StyleDefault.Foreground(tcell.NewHexColor(0xffffff)).Bold(true)
	styleFaint  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBar    = tcell.StyleDefault.Foreground(tcell.NewHexColor(0xffffff)).Background(tcell.NewHexColor(0x1f1f9f))
)

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	log.SetOutput(io.Discard)

	digest, err := hasher.ByName(*algo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	root := flag.Arg(0)
	session := scan.NewSession(root, scan.New(*workers, digest))

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	screen.SetStyle(defStyle)
	screen.EnableMouse()

	u := &ui{screen: screen, session: session, root: root}
	session.Start()
	u.run()
	screen.Fini()
}

type ui struct {
	screen  tcell.Screen
	session *scan.Session
	root    string

	groups []report.Group
	lines  []line
	offset int
	quit   bool
}

type line struct {
	text  string
	style tcell.Style
}

func (u *ui) run() {
	tcellChan := make(chan tcell.Event)
	go func() {
		for {
			ev := u.screen.PollEvent()
			for {
				if ev, mouseEvent := ev.(*tcell.EventMouse); !mouseEvent || ev.Buttons() != 0 {
					break
				}
				ev = u.screen.PollEvent()
			}
			if ev == nil {
				return
			}
			tcellChan <- ev
		}
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	done := u.session.Done()

	for !u.quit {
		u.render()
		select {
		case <-ticker.C:
		case <-done:
			u.build()
			done = nil
			ticker.Stop()
		case ev := <-tcellChan:
			u.handle(ev)
		}
	}
}

// build flattens the finished report into scrollable lines.
func (u *ui) build() {
	u.groups = report.Build(u.session.Groups(), nil)
	if len(u.groups) == 0 {
		u.lines = []line{{text: "no duplicates found", style: styleHeader}}
		return
	}
	for i, g := range u.groups {
		u.lines = append(u.lines, line{
			text: fmt.Sprintf("%d) %d files, %s each, %s wasted", i+1, len(g.Paths),
				humanize.Bytes(uint64(g.Size)), humanize.Bytes(uint64(g.Wasted))),
			style: styleHeader,
		})
		u.lines = append(u.lines, line{text: "   " + g.Fingerprint, style: styleFaint})
		for _, p := range g.Paths {
			u.lines = append(u.lines, line{text: "   " + p, style: defStyle})
		}
		u.lines = append(u.lines, line{})
	}
}

func (u *ui) handle(event tcell.Event) {
	switch ev := event.(type) {
	case *tcell.EventResize:
		u.screen.Sync()

	case *tcell.EventKey:
		key, r := ev.Key(), ev.Rune()
		switch {
		case key == tcell.KeyEscape || key == tcell.KeyCtrlC || (key == tcell.KeyRune && r == 'q'):
			if u.session.State() == scan.Running {
				u.session.Cancel()
			} else {
				u.quit = true
			}
		case key == tcell.KeyUp || (key == tcell.KeyRune && r == 'k'):
			u.scroll(-1)
		case key == tcell.KeyDown || (key == tcell.KeyRune && r == 'j'):
			u.scroll(1)
		case key == tcell.KeyPgUp:
			u.scroll(-u.visible())
		case key == tcell.KeyPgDn:
			u.scroll(u.visible())
		case key == tcell.KeyHome:
			u.offset = 0
		case key == tcell.KeyEnd:
			u.scroll(len(u.lines))
		}

	case *tcell.EventMouse:
		switch {
		case ev.Buttons()&tcell.WheelUp != 0:
			u.scroll(-3)
		case ev.Buttons()&tcell.WheelDown != 0:
			u.scroll(3)
		}
	}
}

func (u *ui) visible() int {
	_, h := u.screen.Size()
	if h < 6 {
		return 1
	}
	return h - 5
}

func (u *ui) scroll(delta int) {
	u.offset += delta
	if max := len(u.lines) - u.visible(); u.offset > max {
		u.offset = max
	}
	if u.offset < 0 {
		u.offset = 0
	}
}

func (u *ui) render() {
	u.screen.Clear()
	w, h := u.screen.Size()

	u.text(0, 0, w, styleTitle, " DupFinder  "+u.root)

	if u.lines == nil {
		barWidth := w - 10
		if barWidth > 0 {
			value := u.session.Progress()
			u.text(1, 2, barWidth, styleBar, progressBar(barWidth, value))
			u.text(2+barWidth, 2, 7, defStyle, fmt.Sprintf("%5.1f%%", value*100))
		}
		u.text(0, h-1, w, styleTitle, " Esc stop")
	} else {
		summary := fmt.Sprintf(" %v   %d duplicate groups, %s wasted",
			u.session.State(), len(u.groups), humanize.Bytes(uint64(report.Wasted(u.groups))))
		u.text(0, 2, w, styleHeader, summary)
		for i := 0; i < u.visible() && u.offset+i < len(u.lines); i++ {
			l := u.lines[u.offset+i]
			u.text(1, 4+i, w-2, l.style, l.text)
		}
		u.text(0, h-1, w, styleTitle, " q quit   j/k wheel PgUp PgDn scroll")
	}

	u.screen.Show()
}

func (u *ui) text(col, row, width int, style tcell.Style, text string) {
	if width < 1 {
		return
	}
	text = runewidth.Truncate(text, width, "…")
	x := col
	for _, r := range text {
		u.screen.SetContent(x, row, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	for ; x < col+width; x++ {
		u.screen.SetContent(x, row, ' ', nil, style)
	}
}

func progressBar(barWidth int, value float64) string {
	builder := strings.Builder{}
	progress := int(math.Round(float64(barWidth*8) * value))
	builder.WriteString(strings.Repeat("█", progress/8))
	if progress%8 > 0 {
		builder.WriteRune([]rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉'}[progress%8])
	}
	str := builder.String()
	length := ansi.PrintableRuneWidth(str)
	return str + strings.Repeat(" ", barWidth-length)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: dupfind_tui [flags] <directory>\n\nBrowses duplicate files found under a directory tree.\n\n")
	flag.PrintDefaults()
}
