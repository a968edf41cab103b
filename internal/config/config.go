package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, output files, the restyle input,
// preview fonts, slide rendering and text recognition.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Output contains the directory and file names every job writes to
	Output struct {
		// Dir is the directory all outputs are written into
		Dir string `env:"OUTPUT_DIR" env-default:"." yaml:"dir"`
		// Preview is the file name of the generated preview image
		Preview string `env:"OUTPUT_PREVIEW" env-default:"preview.png" yaml:"preview"`
		// Screenshot is the file name of the screenshot placeholder image
		Screenshot string `env:"OUTPUT_SCREENSHOT" env-default:"original-screenshot.png" yaml:"screenshot"`
		// Template is the file name of the compact template deck and of the restyled deck
		Template string `env:"OUTPUT_TEMPLATE" env-default:"tech-business-template.pptx" yaml:"template"`
		// Master is the file name of the widescreen master deck
		Master string `env:"OUTPUT_MASTER" env-default:"tech-business-master-template.pptx" yaml:"master"`
	} `yaml:"output"`

	// Input is the deck restyled by the transform job
	Input string `env:"INPUT" env-default:"original-strong-field-backup.pptx" yaml:"input"`

	// Preview contains the preview image settings
	Preview struct {
		// BoldFonts are tried in order for the preview title
		BoldFonts []string `env:"PREVIEW_BOLD_FONTS" env-default:"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf,/usr/share/fonts/dejavu/DejaVuSans-Bold.ttf,/usr/share/fonts/opentype/noto/NotoSansCJK-Bold.ttc,/System/Library/Fonts/PingFang.ttc" yaml:"boldFonts"` //nolint: lll
		// RegularFonts are tried in order for every other preview text
		RegularFonts []string `env:"PREVIEW_REGULAR_FONTS" env-default:"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf,/usr/share/fonts/dejavu/DejaVuSans.ttf,/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc,/System/Library/Fonts/PingFang.ttc" yaml:"regularFonts"` //nolint: lll
		// ThumbnailWidth is the width of the preview thumbnail; 0 disables it
		ThumbnailWidth int `env:"PREVIEW_THUMBNAIL_WIDTH" env-default:"0" yaml:"thumbnailWidth"`
		// Thumbnail is the file name of the preview thumbnail
		Thumbnail string `env:"PREVIEW_THUMBNAIL" env-default:"preview-thumb.png" yaml:"thumbnail"`
	} `yaml:"preview"`

	// Render contains the slide rasterization settings
	Render struct {
		// Width is the output image width in pixels
		Width int `env:"RENDER_WIDTH" env-default:"1920" yaml:"width"`
		// FontDirs are searched for fonts referenced by slides
		FontDirs []string `env:"RENDER_FONT_DIRS" env-default:"/usr/share/fonts" yaml:"fontDirs"`
	} `yaml:"render"`

	// OCR contains the text recognition settings used by verify
	OCR struct {
		// Languages are the tesseract language codes to load
		Languages []string `env:"OCR_LANGUAGES" env-default:"eng,chi_sim" yaml:"languages"`
	} `yaml:"ocr"`
}

// Load receives the path for yaml config file and returns a filled Config struct.
// When the path is empty or the file does not exist, only the environment and
// defaults are used.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if configPath != "" {
		_, err := os.Stat(configPath)
		if err == nil {
			if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
				return nil, fmt.Errorf("could not read config: %w", err)
			}

			return &cfg, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}

// Path joins name onto the output directory.
func (c *Config) Path(name string) string {
	return filepath.Join(c.Output.Dir, name)
}
