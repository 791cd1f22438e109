package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"turtle/internal/config"
	"turtle/pkg/color"
	"turtle/pkg/lexer"
	"turtle/pkg/parser"
	"turtle/pkg/raster"
	"turtle/pkg/vm"
)

// Runner turns one script into one image
type Runner struct {
	cfg *config.Config
	out io.Writer   // user-facing messages and the program listing
	log *log.Logger // diagnostics and tracing
	enc raster.Encoder
}

type Option func(*Runner)

// WithLogger replaces the default logger
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// WithEncoder replaces the BMP encoder
func WithEncoder(enc raster.Encoder) Option {
	return func(r *Runner) { r.enc = enc }
}

// New creates a Runner for cfg writing messages to out
func New(cfg *config.Config, out io.Writer, opts ...Option) *Runner {
	r := &Runner{
		cfg: cfg,
		out: out,
		enc: raster.BMPEncoder{},
	}

	for _, o := range opts {
		o(r)
	}

	if r.log == nil {
		r.log = log.Default()
	}

	return r
}

// Run reads, builds and executes the source file, then writes the image.
// Nothing is written when any stage fails.
func (r *Runner) Run() error {
	r.log.Info("Processing file", "file", r.cfg.SourceFile, "encoding", r.cfg.Encoding)

	raw, err := os.ReadFile(r.cfg.SourceFile)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", r.cfg.SourceFile, err)
	}

	source, err := Decode(raw, r.cfg.Encoding)
	if err != nil {
		return err
	}
	source = strings.ReplaceAll(source, "\r\n", "\n")

	e := vm.NewExecutor(vm.WithLogger(r.log), vm.WithMaxSteps(r.cfg.MaxSteps))

	p := parser.NewParser(lexer.NewLexer(source), e)
	if err := p.Parse(); err != nil {
		var perr *parser.Error
		if errors.As(err, &perr) {
			fmt.Fprintln(r.out, color.BrightRedText("=== Syntax Error ==="))
			fmt.Fprintln(r.out, perr.Pretty(source))
		}
		return fmt.Errorf("building %s failed: %w", r.cfg.SourceFile, err)
	}

	if r.cfg.Listing {
		PrintListing(r.out, e.Functions())
	}

	if r.cfg.DumpFile != "" {
		if err := writeSnapshot(r.cfg.DumpFile, e); err != nil {
			return err
		}
		r.log.Info("Program snapshot written", "file", r.cfg.DumpFile)
	}

	if err := e.Run(); err != nil {
		return fmt.Errorf("execution failed after %d steps: %w", e.Steps(), err)
	}
	r.log.Debug("Execution finished", "steps", e.Steps())

	name := OutputName(r.cfg.SourceFile, r.cfg.OutputFile)
	if err := raster.WriteFile(name, r.enc, e.Canvas()); err != nil {
		return err
	}

	fmt.Fprintf(r.out, "write to file %s\n", name)
	return nil
}

// OutputName picks the image file name: override when set, else the
// source name with its .logo extension replaced by .bmp, else the source
// name with .bmp appended
func OutputName(source, override string) string {
	if override != "" {
		return override
	}

	for _, ext := range []string{".logo", ".LOGO"} {
		if strings.HasSuffix(source, ext) {
			return strings.TrimSuffix(source, ext) + ".bmp"
		}
	}

	return source + ".bmp"
}

func writeSnapshot(path string, e *vm.Executor) error {
	data, err := vm.MarshalSnapshot(e.Snapshot())
	if err != nil {
		return fmt.Errorf("cannot encode snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write snapshot %s: %w", path, err)
	}

	return nil
}
