/*
NAME
  c3ddump is a command-line tool for inspecting C3D biomechanics files:
  it prints header fields, parameter groups, marker/channel labels, and
  can stream decoded frames as CSV, optionally watching the file's
  directory and re-dumping the file whenever it is written or created.

AUTHORS
  Generated for the c3d reader.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements the c3ddump command-line tool.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/c3d/container/c3d"
	"github.com/ausocean/c3d/source"
	"github.com/ausocean/utils/logging"
)

// Current software version.
const version = "v0.1.0"

// Logging configuration.
const (
	logPath      = "c3ddump.log"
	logMaxSize   = 50 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

func main() {
	showVersion := flag.Bool("version", false, "show version")
	header := flag.Bool("header", false, "print header fields")
	params := flag.Bool("params", false, "print group/parameter names and values")
	labels := flag.Bool("labels", false, "print point and analog labels")
	frames := flag.Int("frames", 0, "print up to N decoded frames as CSV (0 disables)")
	watch := flag.Bool("watch", false, "watch the directory containing the input file for rewrites")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: c3ddump [flags] <path.c3d>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	if err := dump(path, log, *header, *params, *labels, *frames); err != nil {
		log.Fatal("c3ddump: failed", "path", path, "error", err.Error())
	}

	if *watch {
		if err := watchAndDump(path, log, *header, *params, *labels, *frames); err != nil {
			log.Fatal("c3ddump: watch failed", "path", path, "error", err.Error())
		}
	}
}

func dump(path string, log logging.Logger, header, params, labels bool, frames int) error {
	src := source.NewFile(path, log)
	if err := src.Open(); err != nil {
		return err
	}
	defer src.Close()

	a, err := c3d.Open(src, c3d.WithLogger(log))
	if err != nil {
		return fmt.Errorf("c3ddump: could not open %q: %w", path, err)
	}

	if header {
		h := a.Header()
		fmt.Printf("point_counts=%d analog_counts=%d frame_first=%d frame_last=%d scale=%g data_start=%d frame_rate=%g\n",
			h.PointCount, h.AnalogCount, h.FrameFirst, h.FrameLast, h.Scale, h.DataStart, h.FrameRate)
	}

	if params {
		printParams(a)
	}

	if labels {
		if pl, ok := a.PointLabels(); ok {
			fmt.Println("point labels:", pl)
		}
		if al, ok := a.AnalogLabels(); ok {
			fmt.Println("analog labels:", al)
		}
	}

	if frames <= 0 {
		return nil
	}

	it, err := a.Reader()
	if err != nil {
		return fmt.Errorf("c3ddump: could not open frame reader: %w", err)
	}
	defer it.Close()

	for n := 0; n < frames; n++ {
		idx, points, analog, ok := it.Next()
		if !ok {
			break
		}
		fmt.Printf("%d", idx)
		for _, p := range points {
			fmt.Printf(",%g,%g,%g,%g,%g", p.X, p.Y, p.Z, p.Residual, p.Cameras)
		}
		for _, v := range analog {
			fmt.Printf(",%g", v)
		}
		fmt.Println()
	}
	return nil
}

// printParams prints every group's parameters, sorted by group then
// parameter name so repeated runs diff cleanly.
func printParams(a *c3d.Adapter) {
	groups := a.Groups()
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, gname := range names {
		g := groups[gname]
		paramNames := make([]string, 0, len(g.Parameters))
		for pname := range g.Parameters {
			paramNames = append(paramNames, pname)
		}
		sort.Strings(paramNames)

		for _, pname := range paramNames {
			p := g.Parameters[pname]
			fmt.Printf("%s:%s (%s) = %v\n", gname, pname, p.DataLength, p.ValueStrings())
		}
	}
}

// watchAndDump re-runs dump whenever path's containing directory
// reports a write to path, for following a file as a capture session
// appends to it.
func watchAndDump(path string, log logging.Logger, header, params, labels bool, frames int) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("c3ddump: could not create watcher: %w", err)
	}
	defer w.Close()

	dir := "."
	if i := lastSlash(path); i >= 0 {
		dir = path[:i]
	}
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("c3ddump: could not watch %q: %w", dir, err)
	}

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Name != path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := dump(path, log, header, params, labels, frames); err != nil {
				log.Warning("c3ddump: dump on change failed", "path", path, "error", err.Error())
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warning("c3ddump: watcher error", "error", err.Error())
		}
	}
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}
