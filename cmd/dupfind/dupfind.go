package main

import (
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/muesli/ansi"
	"github.com/muesli/termenv"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"dupfinder/hasher"
	"dupfinder/report"
	"dupfinder/scan"
)

var (
	workers = flag.IntP("workers", "w", 0, "hashing goroutines, 0 means one per CPU")
	algo    = flag.StringP("hash", "H", hasher.DefaultAlgorithm, "fingerprint algorithm: sha256, blake3 or highway")
	asJSON  = flag.BoolP("json", "j", false, "write the report as JSON")
	quiet   = flag.BoolP("quiet", "q", false, "suppress the progress bar")
	verbose = flag.BoolP("verbose", "v", false, "log files the scan skips")
)

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	digest, err := hasher.ByName(*algo)
	if err != nil {
		log.Fatal(err)
	}

	session := scan.NewSession(flag.Arg(0), scan.New(*workers, digest))

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupted
		log.Warn("stopping; files already being fingerprinted will finish")
		session.Cancel()
	}()

	session.Start()
	watch(session)

	groups := report.Build(session.Groups(), nil)
	if *asJSON {
		err = report.JSON(os.Stdout, groups)
	} else {
		err = report.Text(os.Stdout, groups)
	}
	if err != nil {
		log.Fatal(err)
	}
	if session.State() == scan.Cancelled {
		log.Warn("scan cancelled; the report covers only the fingerprinted part")
	}
}

// watch blocks until the scan finishes, redrawing the progress bar as it
// goes.
func watch(session *scan.Session) {
	output := termenv.NewOutput(os.Stderr)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		if !*quiet {
			draw(output, session.Progress())
		}
		select {
		case <-ticker.C:
		case <-session.Done():
			if !*quiet {
				draw(output, session.Progress())
				output.WriteString("\n")
			}
			return
		}
	}
}

const barWidth = 40

func draw(output *termenv.Output, value float64) {
	bar := output.String(progressBar(barWidth, value)).
		Foreground(output.Color("#ffffff")).
		Background(output.Color("#1f1f9f")).
		String()
	output.WriteString(fmt.Sprintf("\r%s %5.1f%%", bar, value*100))
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
	fmt.Fprintf(os.Stderr, "usage: dupfind [flags] <directory>\n\nFinds files with identical content under a directory tree.\n\n")
	flag.PrintDefaults()
}
