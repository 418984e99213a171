package maskpaint

import (
	"fmt"
	"image"
	"image/color"

	pigo "github.com/esimov/pigo/core"
)

// maskWhite is the flat color painted over the detected face regions.
var maskWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// FaceMasker detects faces on the reference image so they can be painted
// into the mask in a single step, sparing the manual brushwork when the
// regions of interest are faces.
type FaceMasker struct {
	classifier *pigo.Pigo

	// Detection tunables.
	MinSize      int
	MaxSize      int
	ShiftFactor  float64
	ScaleFactor  float64
	IoUThreshold float64
	QThreshold   float32
}

// NewFaceMasker unpacks the binary cascade classifier. This will return
// the number of cascade trees, the tree depth, the threshold and the
// prediction from the tree's leaf nodes.
func NewFaceMasker(cascade []byte) (*FaceMasker, error) {
	p := pigo.NewPigo()
	classifier, err := p.Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the cascade file: %v", err)
	}

	return &FaceMasker{
		classifier:   classifier,
		MinSize:      20,
		MaxSize:      1000,
		ShiftFactor:  0.1,
		ScaleFactor:  1.1,
		IoUThreshold: 0.2,
		QThreshold:   5.0,
	}, nil
}

// Detect runs the cascade classifier over the image and returns the
// clustered detections.
func (f *FaceMasker) Detect(img *image.NRGBA) []pigo.Detection {
	bounds := img.Bounds()
	cols, rows := bounds.Dx(), bounds.Dy()

	cParams := pigo.CascadeParams{
		MinSize:     f.MinSize,
		MaxSize:     f.MaxSize,
		ShiftFactor: f.ShiftFactor,
		ScaleFactor: f.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: rgbToGrayscale(img),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := f.classifier.RunCascade(cParams, 0.0)

	return f.classifier.ClusterDetections(dets, f.IoUThreshold)
}
