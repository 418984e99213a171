/*
Package maskpaint is a layered mask painting library: it maintains a grayscale
paint buffer over a reference image, rasterizes brush strokes into it, applies
bulk mask transforms and keeps the painted mask persisted through a throttled
save sink.

The package provides a command line interface, supporting various flags for
scripted mask processing and an interactive editor window.
To check the supported commands type:

	$ maskpaint --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"os"

		"github.com/esimov/maskpaint"
	)

	func main() {
		save := func(data []byte) error {
			return os.WriteFile("mask.png", data, 0644)
		}
		canvas := maskpaint.NewCanvas(640, 480, nil, save)

		canvas.PointerDown(maskpaint.Point{X: 10, Y: 10})
		canvas.PointerMove(maskpaint.Point{X: 120, Y: 80})
		canvas.PointerUp()

		if err := canvas.Flush(); err != nil {
			fmt.Printf("Error saving the mask: %s", err.Error())
		}
	}
*/
package maskpaint
