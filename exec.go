package maskpaint

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/esimov/maskpaint/imop"
	"github.com/esimov/maskpaint/utils"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

var (
	// imgFile holds the file being accessed, be it normal file or pipe name.
	imgFile *os.File

	// Common file related variable
	fs os.FileInfo
)

// Ops wraps the command line arguments of a processing run.
type Ops struct {
	Src, Mask, Dst, PipeName string
	Workers                  int
}

// result holds the relevant information about the mask processing run and the generated image.
type result struct {
	path string
	err  error
}

// Processor holds the mask processing options.
type Processor struct {
	BlackThreshold int
	WhiteThreshold int
	Opacity        float64
	BrushColor     int
	BrushSize      int
	BrushStrength  float64
	SaveDelay      time.Duration
	BlendMode      string
	Classifier     string
	Actions        []string
	Preview        bool
	Edit           bool
	Spinner        *utils.Spinner

	masker *FaceMasker
}

// Execute executes the mask processing run. When the edit mode is active
// it spawns the interactive editor window, otherwise it applies the
// scripted actions over the source image (or over each mask file of the
// source directory) and writes the encoded result to the destination.
func (p *Processor) Execute(op *Ops) {
	var err error
	defaultMsg := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ MASKPAINT", utils.StatusMessage),
		utils.DecorateText("⇢ processing the mask...", utils.DefaultMessage),
	)
	p.Spinner = utils.NewSpinner(defaultMsg, time.Millisecond*80)

	// Supported files
	validExtensions := []string{".jpg", ".png", ".jpeg", ".bmp", ".gif"}

	if p.Edit {
		if err := p.edit(op); err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to run the mask editor: %s", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		return
	}

	// Check if source path is a local image or URL.
	if utils.IsValidUrl(op.Src) {
		src, err := utils.DownloadImage(op.Src)
		if src != nil {
			defer os.Remove(src.Name())
		}

		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source image: %s", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		fs, err = src.Stat()
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source image: %s", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		img, err := os.Open(src.Name())
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Unable to open the temporary image file: %s", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}

		imgFile = img
	} else {
		// Check if the source is a pipe name or a regular file.
		if op.Src == op.PipeName {
			fs, err = os.Stdin.Stat()
		} else {
			fs, err = os.Stat(op.Src)
		}
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source image: %s", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	}

	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		var wg sync.WaitGroup
		// Read destination file or directory.
		_, err := os.Stat(op.Dst)
		if err != nil {
			err = os.Mkdir(op.Dst, 0755)
			if err != nil {
				log.Fatalf(
					utils.DecorateText("Unable to get dir stats: %s\n", utils.ErrorMessage),
					utils.DecorateText(err.Error(), utils.DefaultMessage),
				)
			}
		}

		// Limit the concurrently running workers to maxWorkers.
		if op.Workers <= 0 || op.Workers > maxWorkers {
			op.Workers = runtime.NumCPU()
		}

		// Process the mask files from the specified directory concurrently.
		ch := make(chan result)
		done := make(chan interface{})
		defer close(done)

		paths, errc := walkDir(done, op.Src, validExtensions)

		wg.Add(op.Workers)
		for i := 0; i < op.Workers; i++ {
			go func() {
				defer wg.Done()
				op.consumer(p, op.Dst, ch, done, paths)
			}()
		}

		// Close the channel after the values are consumed.
		go func() {
			defer close(ch)
			wg.Wait()
		}()

		// Consume the channel values.
		for res := range ch {
			op.printOpStatus(res.path, res.err)
		}

		if err = <-errc; err != nil {
			fmt.Fprint(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		}

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0: // check for regular files or pipe names
		ext := filepath.Ext(op.Dst)
		if !isValidExtension(ext, validExtensions) && op.Dst != op.PipeName {
			log.Fatalf(utils.DecorateText(fmt.Sprintf("%v file type not supported", ext), utils.ErrorMessage))
		}

		err = op.process(p, op.Src, op.Dst)
		op.printOpStatus(op.Dst, err)
	}
	if err == nil {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
}

// Run decodes the reference image, applies the scripted actions over the
// mask painted on top of it and encodes the result into the output.
// The optional mask reader hydrates the paint buffer before the actions run.
func (p *Processor) Run(r io.Reader, w io.Writer, mask io.Reader) error {
	src, err := DecodeImage(r)
	if err != nil {
		return err
	}
	bounds := src.Bounds()

	canvas := p.newCanvas(bounds.Dx(), bounds.Dy(), nil)
	if err := canvas.LoadBackground(src); err != nil {
		return err
	}

	if mask != nil {
		img, err := DecodeImage(mask)
		if err != nil {
			return err
		}
		if err := canvas.LoadMaskImage(img); err != nil {
			return err
		}
	}

	if err := p.applyActions(canvas); err != nil {
		return err
	}
	return p.encode(w, canvas)
}

// RunMask treats the source image itself as the mask: the scripted
// actions normalize an already saved mask without a reference image.
// This is the directory mode work unit.
func (p *Processor) RunMask(r io.Reader, w io.Writer) error {
	img, err := DecodeImage(r)
	if err != nil {
		return err
	}
	bounds := img.Bounds()

	canvas := p.newCanvas(bounds.Dx(), bounds.Dy(), nil)
	if err := canvas.LoadMaskImage(img); err != nil {
		return err
	}

	if err := p.applyActions(canvas); err != nil {
		return err
	}
	return p.encode(w, canvas)
}

// edit opens the interactive editor over the source image. The painted
// mask is persisted to the destination path on every change through the
// canvas save throttle.
func (p *Processor) edit(op *Ops) error {
	if op.Dst == op.PipeName {
		return errors.New("the edit mode requires a destination file")
	}
	src, err := DecodeImageFile(op.Src)
	if err != nil {
		return err
	}
	bounds := src.Bounds()

	save := func(data []byte) error {
		return os.WriteFile(op.Dst, data, 0644)
	}
	canvas := p.newCanvas(bounds.Dx(), bounds.Dy(), save)
	if p.SaveDelay > 0 {
		canvas.Saver().SetDelay(p.SaveDelay)
	}
	if err := canvas.LoadBackground(src); err != nil {
		return err
	}

	if len(op.Mask) > 0 {
		mask, err := DecodeImageFile(op.Mask)
		if err != nil {
			return err
		}
		if err := canvas.LoadMaskImage(mask); err != nil {
			return err
		}
	}

	return NewEditor(canvas).Run()
}

// newCanvas builds a canvas preconfigured with the processor options.
func (p *Processor) newCanvas(width, height int, save SaveFunc) *Canvas {
	brush := NewBrush()
	brush.SetColor(p.BrushColor)
	brush.SetSize(p.BrushSize)
	brush.SetStrength(p.BrushStrength)

	canvas := NewCanvas(width, height, brush, save)
	canvas.BlackThreshold = uint8(utils.Clamp(p.BlackThreshold, 0, 255))
	canvas.WhiteThreshold = uint8(utils.Clamp(p.WhiteThreshold, 0, 255))

	if p.Opacity > 0 {
		canvas.Layers().SetOverlayOpacity(p.Opacity)
	}
	if len(p.BlendMode) > 0 {
		canvas.Layers().SetBlend(p.BlendMode)
	}
	return canvas
}

// applyActions runs the scripted bulk actions over the canvas in order.
func (p *Processor) applyActions(canvas *Canvas) error {
	for _, action := range p.Actions {
		var err error

		switch action {
		case "fill-black":
			err = canvas.FillBlack()
		case "fill-white":
			err = canvas.FillWhite()
		case "invert":
			err = canvas.Invert()
		case "gray-to-black":
			err = canvas.GrayToBlack()
		case "gray-to-white":
			err = canvas.GrayToWhite()
		case "feather":
			err = canvas.Feather()
		case "edges":
			err = canvas.SeedEdges()
		case "undo":
			err = canvas.Undo()
		case "faces":
			if p.masker == nil {
				if len(p.Classifier) == 0 {
					return errors.New("please specify a cascade classifier for the face masking action")
				}
				cascade, err := os.ReadFile(p.Classifier)
				if err != nil {
					return fmt.Errorf("error reading the cascade file: %v", err)
				}
				p.masker, err = NewFaceMasker(cascade)
				if err != nil {
					return err
				}
			}
			_, err = canvas.MaskFaces(p.masker)
		default:
			return fmt.Errorf("unsupported action: %v", action)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// encode writes either the raw mask or, in preview mode, the composite
// overlay drawn over the reference image.
func (p *Processor) encode(w io.Writer, canvas *Canvas) error {
	if p.Preview && canvas.Background() != nil {
		bg := imgToNRGBA(canvas.Background())
		bmp := imop.NewBitmap(bg.Bounds())

		cop := imop.InitOp()
		cop.Draw(bmp, canvas.Composite(), bg, 1.0, nil)

		return encodeImg(w, bmp.Img)
	}
	return encodeImg(w, canvas.Layers().Buffer().Image())
}

// consumer reads the path names from the paths channel and normalizes each mask file.
func (op *Ops) consumer(
	p *Processor,
	dest string,
	res chan<- result,
	done <-chan interface{},
	paths <-chan string,
) {
	for src := range paths {
		dst := filepath.Join(dest, filepath.Base(src))
		err := op.process(p, src, dst)

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// process calls the mask processor over the source image and returns the error in case exists.
func (op *Ops) process(p *Processor, in, out string) error {
	var (
		successMsg string
		errorMsg   string
	)
	// Start the progress indicator.
	p.Spinner.Start()

	successMsg = fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ MASKPAINT", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the mask has been saved successfully ✔", utils.SuccessMessage),
	)

	errorMsg = fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ MASKPAINT", utils.StatusMessage),
		utils.DecorateText("mask processing failed...", utils.DefaultMessage),
		utils.DecorateText("✘", utils.ErrorMessage),
	)

	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		p.Spinner.StopMsg = errorMsg
		return err
	}

	// Capture CTRL-C signal and restores back the cursor visibility.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		func() {
			p.Spinner.RestoreCursor()
			os.Remove(dst.(*os.File).Name())
			os.Exit(1)
		}()
	}()

	defer func() {
		if img, ok := src.(*os.File); ok {
			if err := img.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	defer func() {
		if img, ok := dst.(*os.File); ok {
			if err := img.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	// In directory mode the inputs are the mask files themselves,
	// otherwise the input is the reference image the mask is painted over.
	if fs.Mode().IsDir() {
		err = p.RunMask(src, dst)
	} else {
		var mask io.Reader
		if len(op.Mask) > 0 {
			m, err := os.Open(op.Mask)
			if err != nil {
				p.Spinner.StopMsg = errorMsg
				return fmt.Errorf("unable to open the mask file: %v", err)
			}
			defer m.Close()
			mask = m
		}
		err = p.Run(src, dst, mask)
	}
	if err != nil {
		// remove the generated image file in case of an error
		os.Remove(dst.(*os.File).Name())

		p.Spinner.StopMsg = errorMsg
		// Stop the progress indicator.
		p.Spinner.Stop()

		return err
	}

	p.Spinner.StopMsg = successMsg
	// Stop the progress indicator.
	p.Spinner.Stop()

	return nil
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	// Check if the source path is a local image or URL.
	if utils.IsValidUrl(in) {
		src = imgFile
	} else {
		// Check if the source is a pipe name or a regular file.
		if in == op.PipeName {
			if term.IsTerminal(int(os.Stdin.Fd())) {
				return nil, nil, errors.New("`-` should be used with a pipe for stdin")
			}
			src = os.Stdin
		} else {
			src, err = os.Open(in)
			if err != nil {
				return nil, nil, fmt.Errorf("unable to open the source file: %v", err)
			}
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to create the destination file: %v", err)
		}
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the mask processing run.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		log.Fatalf(
			utils.DecorateText("\nError processing the mask: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
	} else {
		if fname != op.PipeName {
			fmt.Fprintf(os.Stderr, "\nThe mask has been saved as: %s %s\n\n",
				utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
				utils.DefaultColor,
			)
		}
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			isFileSupported := false
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}

			// Get the file base name.
			fx := filepath.Ext(f.Name())
			for _, ext := range srcExts {
				if ext == fx {
					isFileSupported = true
					break
				}
			}

			if isFileSupported {
				select {
				case <-done:
					return errors.New("directory walk cancelled")
				case pathChan <- path:
				}
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}
