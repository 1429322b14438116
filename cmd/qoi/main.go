// Command qoi encodes PNG/JPEG images to QOI and decodes QOI images back to
// PNG, dispatching on the input file's extension.
package main

import (
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/halcyon-codecs/qoi"
)

var (
	forceChannels uint8
	colorspace    uint8
	verbose       bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "qoi <file>",
		Short:        "Encode images to QOI or decode QOI images to PNG",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbose)
			return run(args[0])
		},
	}
	cmd.Flags().Uint8Var(&forceChannels, "force-channels", 0, "override decoded channel count (0 honors the header, or 3/4)")
	cmd.Flags().Uint8Var(&colorspace, "colorspace", 0, "colorspace tag to store on encode (0=sRGB, 1=linear)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func setupLogging(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

func run(path string) error {
	start := time.Now()
	ext := strings.ToLower(filepath.Ext(path))

	var outPath string
	var err error

	switch ext {
	case ".png", ".jpg", ".jpeg":
		outPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".qoi"
		err = encodeToQOI(path, outPath)
	case ".qoi":
		outPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
		err = decodeToPNG(path, outPath)
	default:
		err = errors.Errorf("unsupported extension %q, want .png/.jpg/.jpeg/.qoi", ext)
	}

	if err != nil {
		log.Error().Err(err).Str("input", path).Msg("operation failed")
		return err
	}

	log.Info().
		Str("input", path).
		Str("output", outPath).
		Dur("elapsed", time.Since(start)).
		Msg("done")
	return nil
}

func encodeToQOI(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return errors.Wrapf(err, "open %s", inPath)
	}
	defer in.Close()

	img, format, err := image.Decode(in)
	if err != nil {
		return errors.Wrapf(err, "decode %s", inPath)
	}
	log.Debug().Str("format", format).Msg("decoded source image")

	nrgba := image.NewNRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, img.Bounds().Min, draw.Src)

	b := nrgba.Bounds()
	data, err := qoi.Encode(nrgba.Pix, uint32(b.Dx()), uint32(b.Dy()), 4, colorspace)
	if err != nil {
		return errors.Wrapf(err, "encode %s", outPath)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "create %s", outPath)
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return errors.Wrapf(err, "write %s", outPath)
	}
	return nil
}

func decodeToPNG(inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return errors.Wrapf(err, "read %s", inPath)
	}

	pix, width, height, hdrChannels, _, err := qoi.Decode(data, forceChannels)
	if err != nil {
		return errors.Wrapf(err, "decode %s", inPath)
	}

	outChannels := int(hdrChannels)
	if forceChannels == 3 || forceChannels == 4 {
		outChannels = int(forceChannels)
	}

	img := &image.NRGBA{
		Pix:    expandTo4(pix, outChannels),
		Stride: 4 * int(width),
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "create %s", outPath)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return errors.Wrapf(err, "write png %s", outPath)
	}
	return nil
}

// expandTo4 widens a 3-channel RGB pixel buffer to 4-channel NRGBA with
// A=255, leaving an already 4-channel buffer untouched.
func expandTo4(pix []byte, channels int) []byte {
	if channels == 4 {
		return pix
	}
	out := make([]byte, 0, len(pix)/3*4)
	for i := 0; i < len(pix); i += 3 {
		out = append(out, pix[i], pix[i+1], pix[i+2], 255)
	}
	return out
}
