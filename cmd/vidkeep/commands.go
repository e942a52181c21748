package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/five82/vidkeep"
	"github.com/five82/vidkeep/internal/config"
	"github.com/five82/vidkeep/internal/discovery"
	"github.com/five82/vidkeep/internal/ffmpeg"
	"github.com/five82/vidkeep/internal/tui"
	"github.com/five82/vidkeep/internal/util"
)

// concatArgs holds the parsed arguments for the concat command.
type concatArgs struct {
	commonArgs
	inputDir  string
	outputDir string
	pick      bool
	hwaccel   string
	noOpen    bool
}

func runConcat(args []string) error {
	fs := flag.NewFlagSet("concat", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Join clips into one file with FFmpeg's concat demuxer (stream copy).

Usage:
  %s concat [options] [FILE...]

Files given as arguments are joined in that order. Without files, every
matching video in the input directory is joined in listing order.

Options:
  -i, --input <PATH>     Input directory (defaults to the saved input directory)
  -o, --output <PATH>    Output directory (defaults to the saved output directory)
  --pick                 Choose the files interactively
  --hwaccel <API>        Hardware decode API to try first, or "none". Default: saved value
  --no-open              Do not open the output folder afterwards
%s`, appName, commonUsage)
	}

	var ca concatArgs
	ca.register(fs)
	fs.StringVar(&ca.inputDir, "i", "", "Input directory")
	fs.StringVar(&ca.inputDir, "input", "", "Input directory")
	fs.StringVar(&ca.outputDir, "o", "", "Output directory")
	fs.StringVar(&ca.outputDir, "output", "", "Output directory")
	fs.BoolVar(&ca.pick, "pick", false, "Choose files interactively")
	fs.StringVar(&ca.hwaccel, "hwaccel", "", "Hardware decode API")
	fs.BoolVar(&ca.noOpen, "no-open", false, "Do not open the output folder")

	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession(ca.commonArgs)
	if err != nil {
		return err
	}
	defer s.close()

	inputDir := firstNonEmpty(ca.inputDir, s.cfg.InputDir)
	outputDir := firstNonEmpty(ca.outputDir, s.cfg.OutputDir)
	if inputDir == "" && fs.NArg() == 0 {
		return fmt.Errorf("input directory is required (-i/--input or settings)")
	}
	if outputDir == "" {
		return fmt.Errorf("output directory is required (-o/--output or settings)")
	}

	files := make([]string, 0, fs.NArg())
	for _, f := range fs.Args() {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("invalid file path: %w", err)
		}
		if !util.FileExists(abs) {
			return fmt.Errorf("file does not exist: %s", abs)
		}
		files = append(files, abs)
	}
	if inputDir == "" {
		inputDir = filepath.Dir(files[0])
	}

	var opts []vidkeep.Option
	if ca.hwaccel != "" {
		opts = append(opts, vidkeep.WithHWAccel(ca.hwaccel))
	}
	if ca.noOpen {
		opts = append(opts, vidkeep.WithoutReveal())
	}
	if ca.pick {
		opts = append(opts, vidkeep.WithSelector(tui.FileSelector{
			StartDir:   inputDir,
			Extensions: s.cfg.ConcatExtensions,
		}))
	}

	return concatWith(s, vidkeep.ConcatRequest{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Files:     files,
		Pick:      ca.pick,
	}, opts...)
}

// concatWith runs one concatenation. Every failure is reported once, either
// here or by the pipeline, and comes back marked as reported.
func concatWith(s *session, req vidkeep.ConcatRequest, opts ...vidkeep.Option) error {
	k, err := s.keeper(opts...)
	if err != nil {
		return s.fail("Configuration Error", err, "Fix the setting with 'vidkeep settings set'")
	}
	if !ffmpeg.IsAvailable(k.Config().FFmpegPath) {
		return s.fail("FFmpeg Not Found",
			fmt.Errorf("%s not found in PATH", k.Config().FFmpegPath),
			"Install FFmpeg or set ffmpeg_path in settings")
	}

	s.logger.Info("Concat: input=%s output=%s files=%d pick=%v", req.InputDir, req.OutputDir, len(req.Files), req.Pick)

	// A running FFmpeg concat is not cancellable.
	_, err = k.ConcatWithReporter(context.Background(), req, s.rep)
	return reported(err)
}

// transferArgs holds the parsed arguments for the transfer command.
type transferArgs struct {
	commonArgs
	sourceDir       string
	destDir         string
	deleteOriginals bool
	organize        bool
}

func runTransfer(args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Move videos from a source folder to a destination folder.

Usage:
  %s transfer [options]

Options:
  -s, --source <PATH>    Source directory (defaults to the saved input directory)
  -d, --dest <PATH>      Destination directory (defaults to the saved output directory)
  --delete               Delete each original after it is copied
  --organize             Sort the destination into date folders afterwards
%s`, appName, commonUsage)
	}

	var ta transferArgs
	ta.register(fs)
	fs.StringVar(&ta.sourceDir, "s", "", "Source directory")
	fs.StringVar(&ta.sourceDir, "source", "", "Source directory")
	fs.StringVar(&ta.destDir, "d", "", "Destination directory")
	fs.StringVar(&ta.destDir, "dest", "", "Destination directory")
	fs.BoolVar(&ta.deleteOriginals, "delete", false, "Delete originals")
	fs.BoolVar(&ta.organize, "organize", false, "Organize destination by date")

	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession(ta.commonArgs)
	if err != nil {
		return err
	}
	defer s.close()

	req := vidkeep.TransferRequest{
		SourceDir:       firstNonEmpty(ta.sourceDir, s.cfg.InputDir),
		DestDir:         firstNonEmpty(ta.destDir, s.cfg.OutputDir),
		DeleteOriginals: ta.deleteOriginals,
		OrganizeByDate:  ta.organize,
	}
	if req.SourceDir == "" || req.DestDir == "" {
		return fmt.Errorf("source and destination directories are required (-s/-d or settings)")
	}
	return transferWith(s, req)
}

func transferWith(s *session, req vidkeep.TransferRequest) error {
	k, err := s.keeper()
	if err != nil {
		return s.fail("Configuration Error", err, "Fix the setting with 'vidkeep settings set'")
	}

	ctx, cancel := signalContext()
	defer cancel()

	_, err = k.TransferWithReporter(ctx, req, s.rep)
	return reported(err)
}

func runOrganize(args []string) error {
	fs := flag.NewFlagSet("organize", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Sort videos into YYYY-MM-DD folders by creation date.

Usage:
  %s organize [options] [DIR]

DIR defaults to the saved output directory. Legacy MM-DD-YYYY folders are
renamed to the new layout.
%s`, appName, commonUsage)
	}

	var ca commonArgs
	ca.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession(ca)
	if err != nil {
		return err
	}
	defer s.close()

	dir := firstNonEmpty(fs.Arg(0), s.cfg.OutputDir)
	if dir == "" {
		return fmt.Errorf("directory is required (argument or settings)")
	}
	return organizeWith(s, dir)
}

func organizeWith(s *session, dir string) error {
	k, err := s.keeper()
	if err != nil {
		return s.fail("Configuration Error", err, "Fix the setting with 'vidkeep settings set'")
	}

	ctx, cancel := signalContext()
	defer cancel()

	_, err = k.OrganizeWithReporter(ctx, dir, s.rep)
	return reported(err)
}

func runSettings(args []string) error {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Show or change saved settings.

Usage:
  %s settings [options]                 Show settings
  %s settings [options] set KEY VALUE   Change a setting

Keys:
  input_directory, output_directory, hwaccel, ffmpeg_path, open_output_dir,
  concat_extensions, transfer_extensions, scan_extensions (comma-separated)
%s`, appName, appName, commonUsage)
	}

	var ca commonArgs
	ca.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession(ca)
	if err != nil {
		return err
	}
	defer s.close()

	switch fs.Arg(0) {
	case "":
		printSettings(s)
		return nil
	case "set":
		if fs.NArg() != 3 {
			fs.Usage()
			return fmt.Errorf("set takes KEY and VALUE")
		}
		if err := applySetting(s.cfg, fs.Arg(1), fs.Arg(2)); err != nil {
			return err
		}
		if err := s.cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if err := s.saveConfig(); err != nil {
			return err
		}
		s.rep.OperationComplete(fmt.Sprintf("%s updated", fs.Arg(1)))
		return nil
	default:
		fs.Usage()
		return fmt.Errorf("unknown settings action: %s", fs.Arg(0))
	}
}

func printSettings(s *session) {
	c := s.cfg
	fmt.Printf("Config file:          %s\n", s.cfgPath)
	fmt.Printf("input_directory:      %s\n", c.InputDir)
	fmt.Printf("output_directory:     %s\n", c.OutputDir)
	fmt.Printf("hwaccel:              %s\n", c.HWAccel)
	fmt.Printf("ffmpeg_path:          %s\n", c.FFmpegPath)
	fmt.Printf("open_output_dir:      %v\n", c.OpenOutputDir)
	fmt.Printf("scan_extensions:      %s\n", strings.Join(c.ScanExtensions, ","))
	fmt.Printf("concat_extensions:    %s\n", strings.Join(c.ConcatExtensions, ","))
	fmt.Printf("transfer_extensions:  %s\n", strings.Join(c.TransferExtensions, ","))
}

// applySetting sets one config key from its string form. Directories must exist.
func applySetting(c *config.Config, key, value string) error {
	switch key {
	case "input_directory", "output_directory":
		abs, err := filepath.Abs(value)
		if err != nil {
			return err
		}
		if !util.IsDirectory(abs) {
			return fmt.Errorf("directory does not exist: %s", abs)
		}
		if key == "input_directory" {
			c.InputDir = abs
		} else {
			c.OutputDir = abs
		}
	case "hwaccel":
		c.HWAccel = value
	case "ffmpeg_path":
		c.FFmpegPath = value
	case "open_output_dir":
		switch strings.ToLower(value) {
		case "true", "yes", "1":
			c.OpenOutputDir = true
		case "false", "no", "0":
			c.OpenOutputDir = false
		default:
			return fmt.Errorf("open_output_dir must be true or false, got %q", value)
		}
	case "scan_extensions":
		c.ScanExtensions = discovery.NormalizeExtensions(strings.Split(value, ","))
	case "concat_extensions":
		c.ConcatExtensions = discovery.NormalizeExtensions(strings.Split(value, ","))
	case "transfer_extensions":
		c.TransferExtensions = discovery.NormalizeExtensions(strings.Split(value, ","))
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
