package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	app "faceduker/internal/application"
	"faceduker/internal/domain/entity"
	"faceduker/internal/infrastructure/vision"
)

type decorateOptions struct {
	In      string
	Out     string
	Variant string
	Width   int
}

var decorateOpts decorateOptions

var decorateCmd = &cobra.Command{
	Use:   "decorate",
	Short: "Рисует узор на лицах в одном файле без запуска сервера",
	RunE: func(cmd *cobra.Command, args []string) error {
		variant, err := entity.ParseVariant(decorateOpts.Variant)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(decorateOpts.In)
		if err != nil {
			return err
		}

		locator, err := vision.NewLocator(vision.Options{
			Backend:        cfg.DetectorBackend,
			ClassifierFile: cfg.ClassifierFile,
			MinQuality:     cfg.PigoMinQuality,
		})
		if err != nil {
			return err
		}
		defer locator.Close()

		img, format, err := vision.Decode(data)
		if err != nil {
			return err
		}

		faces, err := app.NewPipelineService(locator, decorateOpts.Width).Decorate(cmd.Context(), img, variant)
		if err != nil {
			return err
		}

		if f := formatOf(decorateOpts.Out); f != "" {
			format = f
		}
		out, _, err := vision.Encode(vision.ResizeToWidth(img, decorateOpts.Width), format)
		if err != nil {
			return err
		}

		if err := os.WriteFile(decorateOpts.Out, out, 0o644); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "faces: %d, written to %s\n", faces, decorateOpts.Out)
		return nil
	},
}

// formatOf формат по расширению выходного файла
func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return vision.FormatJPEG
	case ".png":
		return vision.FormatPNG
	case ".gif":
		return vision.FormatGIF
	case ".bmp":
		return vision.FormatBMP
	}
	return ""
}

func init() {
	decorateCmd.Flags().StringVar(&decorateOpts.In, "in", "", "Входное изображение")
	decorateCmd.Flags().StringVar(&decorateOpts.Out, "out", "", "Куда записать результат")
	decorateCmd.Flags().StringVar(&decorateOpts.Variant, "variant", string(entity.DefaultVariant), "Узор: cartoon или mask")
	decorateCmd.Flags().IntVar(&decorateOpts.Width, "width", 0, "Уменьшить до этой ширины с сохранением пропорций (0 не меняет размер)")

	_ = decorateCmd.MarkFlagRequired("in")
	_ = decorateCmd.MarkFlagRequired("out")
}
