package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/observability"

	"github.com/xaionaro-go/mediaimage"
	"github.com/xaionaro-go/mediaimage/blockpool"
	"github.com/xaionaro-go/mediaimage/types"
)

func buildView(format string, data []byte, width, height int) (*types.GraphicView, error) {
	switch strings.TrimSpace(strings.ToLower(format)) {
	case "i420":
		return types.NewI420GraphicView(data, width, height)
	case "nv12":
		return types.NewNV12GraphicView(data, width, height)
	case "nv21":
		return types.NewNV21GraphicView(data, width, height)
	case "p010":
		return types.NewP010GraphicView(data, width, height)
	}
	return nil, fmt.Errorf("unsupported input format '%s'", format)
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [flags] <raw-frame-in> <raw-frame-out>\n", os.Args[0])
		pflag.PrintDefaults()
	}

	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	netPprofAddr := pflag.String("net-pprof-listen-addr", "", "an address to listen for incoming net/pprof connections")
	width := pflag.Int("width", 0, "frame width in pixels")
	height := pflag.Int("height", 0, "frame height in pixels")
	inputFormat := pflag.String("input-format", "nv12", "layout of the input frame: i420|nv12|nv21|p010")
	outputFormat := types.ColorFormatYUV420Planar
	pflag.Var(&outputFormat, "output-format", "requested client color format")
	forceCopy := pflag.Bool("force-copy", false, "never wrap the input buffer, always copy")
	pflag.Parse()
	if len(pflag.Args()) != 2 || *width <= 0 || *height <= 0 {
		pflag.Usage()
		os.Exit(1)
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	if *netPprofAddr != "" {
		observability.Go(ctx, func(ctx context.Context) {
			l.Error(http.ListenAndServe(*netPprofAddr, nil))
		})
	}

	inPath := pflag.Arg(0)
	outPath := pflag.Arg(1)

	data, err := os.ReadFile(inPath)
	if err != nil {
		l.Fatal(err)
	}
	l.Debugf("read %s from '%s'", humanize.IBytes(uint64(len(data))), inPath)

	view, err := buildView(*inputFormat, data, *width, *height)
	if err != nil {
		l.Fatal(err)
	}

	conv, err := mediaimage.New(ctx, view, mediaimage.Config{
		ClientColorFormat: outputFormat,
		ForceCopy:         *forceCopy,
	})
	if err != nil {
		l.Fatalf("unable to negotiate a layout for '%s' as %v: %v", inPath, outputFormat, err)
	}
	l.Debugf("descriptor: %s", spew.Sdump(conv.Image()))

	var out []byte
	if wrapped := conv.Wrap(); wrapped != nil {
		l.Infof("zero-copy wrap of %s", humanize.IBytes(uint64(len(wrapped))))
		out = wrapped
	} else {
		pool := blockpool.NewPool()
		block := pool.Fetch(ctx, conv.BackBufferSize())
		defer block.Release(ctx)
		if err := conv.SetBackBuffer(block.Data()); err != nil {
			l.Fatal(err)
		}
		if err := conv.CopyToImage(ctx); err != nil {
			l.Fatal(err)
		}
		l.Infof("copied into a back buffer of %s", humanize.IBytes(uint64(block.Size())))
		out = conv.BackBuffer()
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		l.Fatal(err)
	}
}
