package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mannequin/internal/domain"
	"mannequin/internal/domain/valueobjects"
)

var encodeOutDir string

var encodeCmd = &cobra.Command{
	Use:   "encode <file>...",
	Short: "Print the data URL of each image, or save the base64 payloads to a directory",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEncode(cmd.OutOrStdout(), cmd.ErrOrStderr(), encodeOutDir, args)
	},
}

func init() {
	encodeCmd.Flags().StringVarP(&encodeOutDir, "out-dir", "d", "", "Write <name>.txt with the base64 payload into this directory instead of printing")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(stdout, stderr io.Writer, outDir string, files []string) error {
	for _, file := range files {
		img, err := encodeFile(file)
		if err != nil {
			return err
		}
		if !img.MediaType().IsAccepted() {
			return fmt.Errorf("%s: %w (%s)", file, domain.ErrUnsupportedMediaType, img.MediaType())
		}

		if w, h, ok := img.Dimensions(); ok {
			fmt.Fprintf(stderr, "%s: %s %dx%d, %d bytes\n", file, img.MediaType(), w, h, img.Size())
		} else {
			fmt.Fprintf(stderr, "%s: %s, %d bytes\n", file, img.MediaType(), img.Size())
		}

		if outDir == "" {
			fmt.Fprintln(stdout, img.DataURL())
			continue
		}
		if err := save(outDir, file, img); err != nil {
			return err
		}
	}
	return nil
}

func encodeFile(path string) (*valueobjects.UploadedImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFileRead, err)
	}
	defer f.Close()

	img, err := valueobjects.EncodeImage(f, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// save writes the payload to <dir>/<name without extension>.txt.
func save(dir, file string, img *valueobjects.UploadedImage) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	target := filepath.Join(dir, name+".txt")
	if err := os.WriteFile(target, []byte(img.Base64()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}
