// escpos-print renders text, markdown, or a stationery template onto a
// thermal receipt printer, over TCP, USB, or a console preview.
//
// Usage:
//
//	escpos-print -addr 192.168.1.50:9100 receipt.md -markdown
//	escpos-print -usb 0fe6:811e todo.txt
//	escpos-print -console -template habit -habit "stretch"
//	echo "hello" | escpos-print -console
package main

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hnimtadd/escpos"
	"github.com/hnimtadd/escpos/logger"
	"github.com/hnimtadd/escpos/markdown"
	"github.com/hnimtadd/escpos/printer"
	"github.com/hnimtadd/escpos/printer/transport"
	"github.com/hnimtadd/escpos/template"
)

func main() {
	var (
		addr     = flag.String("addr", "", "network printer host:port")
		usbSpec  = flag.String("usb", "", "usb printer vid:pid in hex, or \"default\"")
		console  = flag.Bool("console", false, "preview on stdout instead of a printer")
		useMD    = flag.Bool("markdown", false, "interpret the input as markdown")
		cpl      = flag.Int("cpl", escpos.DefaultCPL, "printable columns per line")
		feed     = flag.Int("feed", printer.DefaultFeedLines, "blank lines fed before the cut")
		rows     = flag.Int("rows", 0, "rows per page; cuts between pages when set")
		noCut    = flag.Bool("no-cut", false, "suppress the final cut")
		tmpl     = flag.String("template", "", "print a template instead of input: box or habit")
		banner   = flag.String("banner", "", "banner text for the box template")
		habit    = flag.String("habit", "", "habit name for the habit template")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := logger.DefaultLevel
	if *verbose {
		level = logger.DebugLevel
	}
	log := logger.New(logger.Options{Buffer: os.Stderr, Level: level, Type: logger.TypeText})

	opts := escpos.Options{
		CPL:         *cpl,
		FeedLines:   feed,
		RowsPerPage: *rows,
		Logger:      log,
	}
	if *noCut {
		opts.Cut = transport.CutNone
	}
	r, err := escpos.New(opts)
	if err != nil {
		fatal(err)
	}

	if err := fill(r, *tmpl, *banner, *habit, *useMD); err != nil {
		fatal(err)
	}

	t, err := openTransport(*addr, *usbSpec, *console, *cpl, log)
	if err != nil {
		fatal(err)
	}
	defer t.Close()

	if err := r.PrintTo(t); err != nil {
		fatal(err)
	}
	log.Info("printed", "lines", r.Lines(), "fingerprint", r.Fingerprint())
}

// fill builds the receipt content from a template or from the input
// file (or stdin when no file argument is given).
func fill(r *escpos.Receipt, tmpl, banner, habit string, useMD bool) error {
	switch tmpl {
	case "box":
		return template.Box(r, template.BoxOptions{
			Banner:  banner,
			Date:    time.Now(),
			Pattern: template.RandomPattern(),
		})
	case "habit":
		if habit == "" {
			return fmt.Errorf("-template habit needs -habit")
		}
		now := time.Now()
		return template.HabitTracker(r, template.HabitTrackerOptions{
			Habit:   habit,
			Start:   now,
			End:     now.AddDate(0, 0, 27),
			Pattern: template.RandomPattern(),
		})
	case "":
	default:
		return fmt.Errorf("unknown template %q", tmpl)
	}

	content, err := readInput(flag.Arg(0))
	if err != nil {
		return err
	}
	if useMD {
		return markdown.NewInterpreter(r).Render(content)
	}
	return markdown.PlainText(r, string(content))
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func openTransport(addr, usbSpec string, console bool, cpl int, log logger.Logger) (transport.Transport, error) {
	switch {
	case addr != "":
		host, port, err := splitAddr(addr)
		if err != nil {
			return nil, err
		}
		return transport.Dial(transport.NetworkOptions{Host: host, Port: port, Logger: log})
	case usbSpec != "":
		vid, pid, err := parseUSB(usbSpec)
		if err != nil {
			return nil, err
		}
		return transport.OpenUSB(transport.USBOptions{VendorID: vid, ProductID: pid, Logger: log})
	case console:
		fallthrough
	default:
		return transport.NewConsole(transport.ConsoleOptions{CPL: cpl, Logger: log}), nil
	}
}

func splitAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		// A bare host prints to the raw printing port.
		return addr, transport.DefaultPort, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port in %q: %w", addr, err)
	}
	return host, port, nil
}

// parseUSB reads a "vid:pid" hex pair. The literal "default" targets
// the stock vendor and product IDs.
func parseUSB(spec string) (uint16, uint16, error) {
	if spec == "default" {
		return 0, 0, nil
	}
	vidStr, pidStr, ok := strings.Cut(spec, ":")
	if !ok {
		return 0, 0, fmt.Errorf("usb spec %q is not vid:pid", spec)
	}
	vid, err := strconv.ParseUint(vidStr, 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid vendor id %q: %w", vidStr, err)
	}
	pid, err := strconv.ParseUint(pidStr, 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid product id %q: %w", pidStr, err)
	}
	return uint16(vid), uint16(pid), nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "escpos-print:", err)
	os.Exit(1)
}
