package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"pixel-veil/internal/config"
	"pixel-veil/internal/imageio"
	"pixel-veil/internal/logger"
	"pixel-veil/internal/resample"
	"pixel-veil/internal/services"
	"pixel-veil/internal/shutdown"

	"github.com/fatih/color"
)

var (
	infoColor    = color.New(color.FgBlue).SprintFunc()
	successColor = color.New(color.FgGreen).SprintFunc()
	warningColor = color.New(color.FgYellow).SprintFunc()
	errorColor   = color.New(color.FgRed).SprintFunc()
)

type printer struct {
	w io.Writer
}

func (p printer) info(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s %s\n", infoColor("[*]"), fmt.Sprintf(format, args...))
}

func (p printer) success(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s %s\n", successColor("[+]"), fmt.Sprintf(format, args...))
}

func (p printer) warning(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s %s\n", warningColor("[!]"), fmt.Sprintf(format, args...))
}

func (p printer) error(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s %s\n", errorColor("[-]"), fmt.Sprintf(format, args...))
}

var (
	errUsage = errors.New("usage")
	errHelp  = errors.New("help requested")
)

func main() {
	log, closer, err := logger.Open(logger.WarnLevel, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	sd := shutdown.NewManager(log)
	sd.Listen(nil)

	err = run(sd.Context(), os.Args[1:], os.Stdout)
	sd.Shutdown()

	switch {
	case err == nil, errors.Is(err, errHelp):
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		printer{os.Stdout}.error("%v", err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  pixel-veil-cli hide    -cover <image> -secret <image> [options]")
	fmt.Fprintln(w, "  pixel-veil-cli extract -carrier <image> [options]")
	fmt.Fprintln(w, "  pixel-veil-cli metrics -cover <image> -carrier <image> [options]")
	fmt.Fprintln(w, "  pixel-veil-cli methods")
	fmt.Fprintln(w, "Run a command with -h to list its options.")
}

// commonFlags are accepted by every operation and override the config file
type commonFlags struct {
	configPath    *string
	backend       *string
	interpolation *string
	workers       *int
	outDir        *string
	verbose       *bool
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		configPath:    fs.String("config", config.DefaultPath, "Path to the YAML configuration"),
		backend:       fs.String("backend", "", "Image library: native or opencv"),
		interpolation: fs.String("interpolation", "", "Resampling method used when sizes differ"),
		workers:       fs.Int("workers", -1, "Goroutines per image pass (0 = one per CPU)"),
		outDir:        fs.String("outdir", "", "Directory for the produced image"),
		verbose:       fs.Bool("verbose", false, "Enable debug logging"),
	}
}

// load reads the config file and applies flag overrides
func (c commonFlags) load() (*config.Config, error) {
	cfg, err := config.LoadConfig(*c.configPath)
	if err != nil {
		return nil, err
	}
	// Terminal output is the printers' job; only warnings go to the log
	// unless asked for.
	if cfg.LogLevel() < logger.WarnLevel {
		cfg.Logging.Level = "warn"
	}
	cfg.ApplyEnv()

	if *c.backend != "" {
		cfg.Processing.Backend = *c.backend
	}
	if *c.interpolation != "" {
		cfg.Processing.Interpolation = *c.interpolation
	}
	if *c.workers >= 0 {
		cfg.Processing.Workers = *c.workers
	}
	if *c.outDir != "" {
		cfg.Output.CarrierDir = *c.outDir
		cfg.Output.RecoveredDir = *c.outDir
	}
	if *c.verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildService(cfg *config.Config) (*services.StegoService, io.Closer, error) {
	log, closer, err := logger.Open(cfg.LogLevel(), cfg.Logging.File)
	if err != nil {
		return nil, nil, err
	}

	svc, err := services.FromConfig(cfg, log)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return svc, closer, nil
}

func run(ctx context.Context, args []string, out io.Writer) error {
	p := printer{out}
	if len(args) == 0 {
		usage(out)
		return errUsage
	}

	switch args[0] {
	case "hide":
		return runHide(ctx, args[1:], p)
	case "extract":
		return runExtract(ctx, args[1:], p)
	case "metrics":
		return runMetrics(ctx, args[1:], p)
	case "methods":
		p.info("Interpolation methods: %s", strings.Join(methodNames(), ", "))
		p.info("Image backends: %s", strings.Join(imageio.Backends(), ", "))
		return nil
	case "-h", "-help", "--help", "help":
		usage(out)
		return nil
	default:
		p.error("Unknown command %q", args[0])
		usage(out)
		return errUsage
	}
}

func methodNames() []string {
	methods := resample.Default().Methods()
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = string(m)
	}
	return names
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

func runHide(ctx context.Context, args []string, p printer) error {
	fs := newFlagSet("hide", p.w)
	cover := fs.String("cover", "", "Cover image that will carry the secret")
	secret := fs.String("secret", "", "Secret image to hide")
	common := addCommonFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if *cover == "" || *secret == "" {
		p.error("Please provide both -cover and -secret images")
		fs.PrintDefaults()
		return errUsage
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	svc, closer, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	p.info("Hiding %s in %s (backend %s, %s)", *secret, *cover, cfg.Processing.Backend, cfg.Processing.Interpolation)
	result, err := svc.HideImage(ctx, *cover, *secret)
	if err != nil {
		return err
	}

	if !result.Input.Grid.SameSize(result.Output.Grid) {
		p.warning("Carrier size differs from cover")
	}
	p.success("Secret image hidden and saved as: %s", result.Output.Path)
	p.info("Carrier %s in %s", result.Output.Grid, result.Duration.Round(time.Millisecond))
	return nil
}

func runExtract(ctx context.Context, args []string, p printer) error {
	fs := newFlagSet("extract", p.w)
	carrier := fs.String("carrier", "", "Carrier image produced by hide")
	common := addCommonFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if *carrier == "" {
		p.error("Please provide a -carrier image")
		fs.PrintDefaults()
		return errUsage
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	svc, closer, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	p.info("Extracting secret from %s", *carrier)
	result, err := svc.ExtractImage(ctx, *carrier)
	if err != nil {
		return err
	}

	p.success("Secret image extracted and saved as: %s", result.Output.Path)
	return nil
}

func runMetrics(ctx context.Context, args []string, p printer) error {
	fs := newFlagSet("metrics", p.w)
	cover := fs.String("cover", "", "Original cover image")
	carrier := fs.String("carrier", "", "Carrier image to score against the cover")
	common := addCommonFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if *cover == "" || *carrier == "" {
		p.error("Please provide both -cover and -carrier images")
		fs.PrintDefaults()
		return errUsage
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	svc, closer, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	result, err := svc.CalculateMetrics(ctx, *cover, *carrier)
	if err != nil {
		return err
	}

	p.success("Image Quality Metrics:")
	p.info("PSNR: %.2f dB", result.Score.PSNR)
	p.info("SSIM: %.4f", result.Score.SSIM)
	return nil
}
