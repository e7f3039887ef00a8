package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	"github.com/tstromberg/collage/pkg/collage"
	"github.com/tstromberg/collage/pkg/source"
)

var (
	cfgFile string
	// conf is rebuilt on every invocation from flags, env and the config file.
	conf = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "collage [flags] IMAGE|DIR|GLOB...",
	Short: "Arrange photos into a square contact-sheet grid",
	Long: `collage crops every input photo to a centered square, scales it to a fixed
tile size and lays the tiles out row by row on the smallest square grid that
holds them all.

Arguments may be image files, directories (walked for images, hidden entries
skipped) or quoted glob patterns. Order follows the arguments.

Examples:
  # Contact sheet of a folder, opened in the image viewer
  collage ~/Pictures/trip

  # Save with a title
  collage -o sheet.jpg --title "Iceland 2024" 'photos/*.jpg'

  # Smaller tiles, sorted by capture time, four images at a time
  collage --tile-size 300 --padding 20 --sort taken --workers 4 -o sheet.png photos/

Exit status: 0 ok, 1 other failure, 2 invalid input, 3 decode failure,
4 font failure, 5 encode failure.`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runCollage,
}

func init() {
	fs := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(fs)
	rootCmd.PersistentFlags().AddGoFlagSet(fs)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.collage.yaml)")

	def := collage.DefaultConfig()
	pf.Int("tile-size", def.TileSize, "tile edge in pixels")
	pf.Int("padding", def.Padding, "padding around and between tiles in pixels")
	pf.String("background", collage.DefaultBackground, "background color (#rrggbb or color name)")
	pf.Int("workers", def.Workers, fmt.Sprintf("images to process at once (up to %d is sensible here)", collage.MaxWorkers()))
	pf.String("sort", "input", "ordering of images: input or taken (EXIF capture time, needs exiftool)")

	tdef := collage.DefaultTitleOptions()
	pf.String("title", "", "title text drawn onto the collage")
	pf.String("font", "", "TrueType/OpenType font for the title (default: $COLLAGE_FONT, then bundled Go Bold)")
	pf.Float64("title-size", tdef.Size, "title font size in points")
	pf.String("title-color", "blue", "title color")
	pf.Int("title-x", tdef.Origin.X, "title left edge in canvas pixels")
	pf.Int("title-y", tdef.Origin.Y, "title top edge in canvas pixels")

	rootCmd.Flags().StringP("output", "o", "", "output file; format from extension (png, jpg, bmp, gif, tif)")
	rootCmd.Flags().Bool("show", false, "open the collage in the image viewer (default when no --output)")
	rootCmd.Flags().Int("quality", collage.DefaultQuality, "JPEG quality")
}

// loadConfig binds the command's flags, COLLAGE_* environment variables and
// the config file, in that order of precedence.
func loadConfig(cmd *cobra.Command, _ []string) error {
	conf = viper.New()
	if err := conf.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	conf.SetEnvPrefix("collage")
	conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	conf.AutomaticEnv()

	if cfgFile != "" {
		conf.SetConfigFile(cfgFile)
		if err := conf.ReadInConfig(); err != nil {
			return fmt.Errorf("%w: config %s: %w", collage.ErrInvalidInput, cfgFile, err)
		}
		klog.V(1).Infof("using config file %s", conf.ConfigFileUsed())
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		klog.V(1).Infof("no home directory: %v", err)
		return nil
	}
	conf.AddConfigPath(home)
	conf.SetConfigType("yaml")
	conf.SetConfigName(".collage")

	if err := conf.ReadInConfig(); err == nil {
		klog.V(1).Infof("using config file %s", conf.ConfigFileUsed())
	}
	return nil
}

// settings assembles the collage and title options from flags, env and config.
func settings() (collage.Config, collage.TitleOptions, error) {
	cfg := collage.DefaultConfig()
	cfg.TileSize = conf.GetInt("tile-size")
	cfg.Padding = conf.GetInt("padding")
	cfg.Workers = conf.GetInt("workers")

	bg, err := collage.ParseColor(conf.GetString("background"))
	if err != nil {
		return cfg, collage.TitleOptions{}, fmt.Errorf("%w: background: %w", collage.ErrInvalidInput, err)
	}
	cfg.Background = bg

	tc, err := collage.ParseColor(conf.GetString("title-color"))
	if err != nil {
		return cfg, collage.TitleOptions{}, fmt.Errorf("%w: title color: %w", collage.ErrInvalidInput, err)
	}

	t := collage.TitleOptions{
		FontPath: conf.GetString("font"),
		Size:     conf.GetFloat64("title-size"),
		Color:    tc,
		Origin:   image.Pt(conf.GetInt("title-x"), conf.GetInt("title-y")),
	}
	return cfg, t, nil
}

// inputs expands arguments into image paths in the requested order.
func inputs(args []string) ([]string, error) {
	paths, err := source.Expand(args)
	if err != nil {
		return nil, err
	}

	switch s := conf.GetString("sort"); s {
	case "", "input":
		return paths, nil
	case "taken":
		return source.SortByTaken(paths)
	default:
		return nil, fmt.Errorf("%w: unknown sort %q", collage.ErrInvalidInput, s)
	}
}

func runCollage(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no images given (see --help)", collage.ErrInvalidInput)
	}

	paths, err := inputs(args)
	if err != nil {
		return err
	}

	cfg, topts, err := settings()
	if err != nil {
		return err
	}

	c, err := collage.Build(cmd.Context(), paths, collage.FileLoader{}, cfg)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	if title := conf.GetString("title"); title != "" {
		c, err = c.WithTitle(title, topts)
		if err != nil {
			return fmt.Errorf("title: %w", err)
		}
	}

	out := conf.GetString("output")
	if out != "" {
		if err := collage.Save(c, out, conf.GetInt("quality")); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}

	if out == "" || conf.GetBool("show") {
		if err := collage.Display(cmd.Context(), c); err != nil {
			klog.Warningf("unable to display collage: %v", err)
		}
	}

	return nil
}
