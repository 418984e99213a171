package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/esimov/maskpaint"
	"github.com/esimov/maskpaint/utils"
)

const HelpBanner = `
┌┬┐┌─┐┌─┐┬┌─┌─┐┌─┐┬┌┐┌┌┬┐
│││├─┤└─┐├┴┐├─┘├─┤││││ │
┴ ┴┴ ┴└─┘┴ ┴┴  ┴ ┴┴┘└┘ ┴

Layered mask painting and compositing library.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", pipeName, "Source")
	destination = flag.String("out", pipeName, "Destination")
	mask        = flag.String("mask", "", "Initial mask image")
	edit        = flag.Bool("edit", false, "Open the interactive mask editor")
	actions     = flag.String("actions", "", "Comma separated list of mask actions (fill-black|fill-white|invert|gray-to-black|gray-to-white|feather|edges|undo|faces)")
	opacity     = flag.Float64("opacity", maskpaint.DefaultOverlayOpacity, "Mask overlay opacity")
	blackThr    = flag.Int("tblack", int(maskpaint.DefaultBlackThreshold), "Luminance threshold for the gray to black action")
	whiteThr    = flag.Int("twhite", int(maskpaint.DefaultWhiteThreshold), "Luminance threshold for the gray to white action")
	brushColor  = flag.Int("color", maskpaint.DefaultBrushColor, "Brush gray value")
	brushSize   = flag.Int("size", maskpaint.DefaultBrushSize, "Brush radius")
	strength    = flag.Float64("strength", maskpaint.DefaultBrushStrength, "Brush strength")
	saveDelay   = flag.Duration("delay", maskpaint.DefaultSaveDelay, "Save delay in edit mode")
	blendMode   = flag.String("blend", "", "Blend mode applied over the mask overlay (darken|lighten|multiply|screen)")
	preview     = flag.Bool("preview", false, "Output the composite overlay instead of the raw mask")
	cascade     = flag.String("cc", "", "Cascade classifier used by the faces action")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	var acts []string
	if len(*actions) > 0 {
		for _, action := range strings.Split(*actions, ",") {
			acts = append(acts, strings.ToLower(strings.TrimSpace(action)))
		}
	}

	if !*edit && len(acts) == 0 {
		flag.Usage()
		log.Fatal(fmt.Sprintf("%s%s",
			utils.DecorateText("\nPlease provide at least one mask action or use the -edit flag!", utils.ErrorMessage),
			utils.DefaultColor,
		))
	}

	proc := &maskpaint.Processor{
		BlackThreshold: *blackThr,
		WhiteThreshold: *whiteThr,
		Opacity:        *opacity,
		BrushColor:     *brushColor,
		BrushSize:      *brushSize,
		BrushStrength:  *strength,
		SaveDelay:      *saveDelay,
		BlendMode:      *blendMode,
		Classifier:     *cascade,
		Actions:        acts,
		Preview:        *preview,
		Edit:           *edit,
	}

	proc.Execute(&maskpaint.Ops{
		Src:      *source,
		Mask:     *mask,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  *workers,
	})
}
