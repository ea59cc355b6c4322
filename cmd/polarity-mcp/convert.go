package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ironsheep/polarity-mcp/internal/imaging"
	"github.com/ironsheep/polarity-mcp/internal/session"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		in        string
		out       string
		format    string
		intensity int
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Invert a negative file without starting the server",
		Example: `  polarity-mcp convert --in scan.tif --out positive.png
  polarity-mcp convert --in scan.jpg --out positive.jpg --intensity 35`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := a.log.WithField("component", "convert")

			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(out), ".")
			}
			ext, err := imaging.NormalizeFormat(format)
			if err != nil {
				return err
			}

			s := session.New(log)
			if err := s.LoadFile(ctx, in); err != nil {
				return fmt.Errorf("%s: %w", session.StatusMessage(err), err)
			}
			if err := s.Invert(ctx); err != nil {
				return fmt.Errorf("%s: %w", session.StatusMessage(err), err)
			}
			if err := s.SetCorrection(ctx, intensity); err != nil {
				return fmt.Errorf("%s: %w", session.StatusMessage(err), err)
			}
			rendered, err := s.Rendered()
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			if err := imaging.EncodeTo(f, rendered, ext, a.cfg.JPEGQuality); err != nil {
				f.Close()
				os.Remove(out)
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close output file: %w", err)
			}

			log.WithFields(logrus.Fields{
				"in":        in,
				"out":       out,
				"format":    ext,
				"intensity": intensity,
			}).Info(s.State().Status())
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "negative image to read")
	cmd.Flags().StringVar(&out, "out", "", "file to write")
	cmd.Flags().StringVar(&format, "format", "", "png, jpg or webp (default from --out extension)")
	cmd.Flags().IntVar(&intensity, "intensity", 0, "correction intensity 0-100")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("out")
	return cmd
}
