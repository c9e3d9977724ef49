// Photoview shows the images named on the command line in a swipeable
// pager. Drag to pan, double-tap to cycle zoom levels, pinch or use the
// mouse wheel to zoom, and drag past the edge of an image to change page.
// With no arguments it shows a generated test pattern.
package main

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/photoview"
	"github.com/phanxgames/photoview/ebitenhost"
)

func main() {
	cfg, err := Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg, os.Args[1:]); err != nil {
		slog.Error("photoview", "error", err)
		os.Exit(1)
	}
}

func run(cfg *Config, paths []string) error {
	pager, err := buildPager(cfg, paths)
	if err != nil {
		return err
	}
	return ebitenhost.Run(pager, ebitenhost.RunConfig{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		Debug:  cfg.Debug,
	})
}

func buildPager(cfg *Config, paths []string) (*ebitenhost.Pager, error) {
	scaleType, err := photoview.ParseScaleType(cfg.ScaleType)
	if err != nil {
		return nil, err
	}
	viewCfg := photoview.Config{
		MinScale:     cfg.MinScale,
		MidScale:     cfg.MidScale,
		MaxScale:     cfg.MaxScale,
		ZoomDuration: cfg.ZoomDuration,
		ScaleType:    scaleType,
	}

	imgs, err := loadImages(paths, cfg.MaxTexture)
	if err != nil {
		return nil, err
	}

	pager := ebitenhost.NewPager(ebitenhost.PagerConfig{
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
		Debug:  cfg.Debug,
	})
	for i, img := range imgs {
		if _, err := pager.Add(ebiten.NewImageFromImage(img), viewCfg); err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
	}
	pager.SetOnPageChange(func(page int) {
		slog.Info("page", "index", page)
	})

	if cfg.Script != "" {
		data, err := os.ReadFile(cfg.Script)
		if err != nil {
			return nil, fmt.Errorf("read script: %w", err)
		}
		script, err := ebitenhost.LoadScript(data)
		if err != nil {
			return nil, err
		}
		pager.SetScript(script)
	}
	return pager, nil
}

// loadImages decodes each path, downsampled to fit maxTexture. With no
// paths it returns a single test pattern.
func loadImages(paths []string, maxTexture int) ([]image.Image, error) {
	if len(paths) == 0 {
		return []image.Image{checkerboard(1600, 1200, 100)}, nil
	}
	imgs := make([]image.Image, 0, len(paths))
	for _, path := range paths {
		img, err := loadImage(path, maxTexture)
		if err != nil {
			return nil, err
		}
		imgs = append(imgs, img)
	}
	return imgs, nil
}

func loadImage(path string, maxTexture int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, sample, err := photoview.LoadImage(f, maxTexture, maxTexture)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info("loaded image", "path", path, "size", img.Bounds().Size(), "sample", sample)
	return img, nil
}

// checkerboard draws a w x h pattern of cell-sized squares.
func checkerboard(w, h, cell int) image.Image {
	light := color.RGBA{R: 0xe0, G: 0xe0, B: 0xe8, A: 0xff}
	dark := color.RGBA{R: 0x30, G: 0x40, B: 0x60, A: 0xff}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := light
			if (x/cell+y/cell)%2 == 1 {
				c = dark
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
