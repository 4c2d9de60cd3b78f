package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"dupfinder/report"
	"dupfinder/scan"
)

type gui struct {
	window  fyne.Window
	folder  *widget.Label
	bar     *widget.ProgressBar
	status  *widget.Label
	results *fyne.Container

	root    string
	session *scan.Session
	gen     atomic.Int64
}

func main() {
	a := app.New()
	w := a.NewWindow("DupFinder")
	w.Resize(fyne.NewSize(820, 600))

	g := &gui{window: w}
	if len(os.Args) > 1 {
		g.root = os.Args[1]
	}

	g.folder = widget.NewLabel(g.root)
	g.bar = widget.NewProgressBar()
	g.bar.Min = 0.0
	g.bar.Max = 1.0
	g.bar.TextFormatter = func() string {
		return fmt.Sprintf("%.1f%%", g.bar.Value*100)
	}
	g.status = widget.NewLabel("idle")
	g.results = container.NewVBox()

	top := container.NewVBox(
		container.New(layout.NewFormLayout(),
			widget.NewLabel("Folder"),
			container.NewBorder(nil, nil, nil, widget.NewButton("Choose…", g.choose), g.folder),
		),
		container.NewHBox(widget.NewButton("Start", g.start), widget.NewButton("Stop", g.stop)),
		g.bar,
		g.status,
	)
	w.SetContent(container.NewBorder(top, nil, nil, nil, container.NewVScroll(g.results)))

	a.Lifecycle().SetOnStopped(func() {
		if g.session != nil {
			g.session.Cancel()
		}
	})

	w.ShowAndRun()
}

func (g *gui) choose() {
	if g.session != nil && g.session.State() == scan.Running {
		return
	}
	dialog.ShowFolderOpen(func(url fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, g.window)
			return
		}
		if url == nil {
			return
		}
		g.root = url.Path()
		g.folder.SetText(g.root)
		g.status.SetText("idle")
		g.bar.SetValue(0)
		g.results.Objects = nil
		g.results.Refresh()
	}, g.window)
}

func (g *gui) start() {
	if g.session != nil && g.session.State() == scan.Running {
		return
	}
	if g.root == "" {
		g.status.SetText("choose a folder first")
		return
	}
	gen := g.gen.Add(1)
	session := scan.NewSession(g.root, nil)
	g.session = session

	g.results.Objects = nil
	g.results.Refresh()
	g.bar.SetValue(0)
	g.status.SetText("scanning " + g.root)

	session.Start()
	go g.watch(session, gen)
}

func (g *gui) stop() {
	if g.session != nil {
		g.session.Cancel()
	}
}

// watch follows one scan to its end, feeding the progress bar while it
// runs and rendering the report when it is over. A stale watcher, left over
// after the user started a newer scan, goes quietly.
func (g *gui) watch(session *scan.Session, gen int64) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if g.gen.Load() == gen {
				g.bar.SetValue(session.Progress())
			}
		case <-session.Done():
			if g.gen.Load() == gen {
				g.finish(session)
			}
			return
		}
	}
}

func (g *gui) finish(session *scan.Session) {
	groups := report.Build(session.Groups(), nil)
	summary := fmt.Sprintf("%d duplicate groups, %s wasted",
		len(groups), humanize.Bytes(uint64(report.Wasted(groups))))
	if session.State() == scan.Cancelled {
		g.bar.SetValue(0)
		g.status.SetText("stopped, partial result: " + summary)
	} else {
		g.bar.SetValue(1)
		g.status.SetText("done: " + summary)
	}

	if len(groups) == 0 {
		g.results.Objects = []fyne.CanvasObject{widget.NewLabel("no duplicates found")}
		g.results.Refresh()
		return
	}
	items := make([]*widget.AccordionItem, 0, len(groups))
	for i, grp := range groups {
		paths := container.NewVBox()
		for _, p := range grp.Paths {
			paths.Add(widget.NewLabel(p))
		}
		title := fmt.Sprintf("%d) %d files, %s each, %s wasted", i+1, len(grp.Paths),
			humanize.Bytes(uint64(grp.Size)), humanize.Bytes(uint64(grp.Wasted)))
		items = append(items, widget.NewAccordionItem(title, paths))
	}
	g.results.Objects = []fyne.CanvasObject{widget.NewAccordion(items...)}
	g.results.Refresh()
}
