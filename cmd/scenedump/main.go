// Command scenedump evaluates a scene script and writes the assembled
// primitives as JSON, for inspection and for renderers outside the desktop
// app.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chazu/drillscene/pkg/assemble"
	"github.com/chazu/drillscene/pkg/engine"
	"github.com/chazu/drillscene/pkg/kernel"
	"github.com/chazu/drillscene/pkg/plan"
	"github.com/chazu/drillscene/pkg/scene"
	"github.com/chazu/drillscene/pkg/style"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	theme   string
	out     string
	stl     string
	pretty  bool
	verbose bool
}

// errInvalid marks a script that evaluated but did not validate. The
// findings have already been logged.
var errInvalid = errors.New("scene has errors")

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	var opt options
	cmd := &cobra.Command{
		Use:   "scenedump <script|->",
		Short: "Evaluate a drilling scene script and print its primitives as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(opt.verbose)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			src, err := readSource(args[0], stdin)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := run(log, opt, src, &buf); err != nil {
				return err
			}
			return writeOutput(opt.out, stdout, buf.Bytes())
		},
		SilenceUsage: true,
	}

	flag := cmd.Flags()
	flag.StringVar(&opt.theme, "theme", "", "YAML theme file overriding the default colors and materials")
	flag.StringVarP(&opt.out, "out", "o", "", "Write JSON to this file instead of stdout")
	flag.StringVar(&opt.stl, "stl", "", "Also write every solid and marker part to this binary STL file")
	flag.BoolVar(&opt.pretty, "pretty", false, "Indent the JSON output")
	flag.BoolVarP(&opt.verbose, "verbose", "v", false, "Log at debug level")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

func readSource(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(data), nil
}

// writeOutput sends data to path, or to stdout when path is empty. The file
// is only touched once the whole scene has been encoded.
func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func run(log *zap.Logger, opt options, source string, w io.Writer) error {
	theme := style.DefaultTheme()
	if opt.theme != "" {
		t, err := style.LoadTheme(opt.theme)
		if err != nil {
			return err
		}
		theme = t
		log.Debug("theme loaded", zap.String("path", opt.theme))
	}

	p, evalErrs, err := engine.NewEngine().Evaluate(source)
	if err != nil {
		return err
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			log.Error("eval error", zap.Int("line", e.Line), zap.Int("col", e.Col), zap.String("message", e.Message))
		}
		return errInvalid
	}

	vr := plan.ValidateAll(p)
	for _, wn := range vr.Warnings {
		log.Warn("validation warning", zap.String("item", wn.Item), zap.String("message", wn.Message))
	}
	if !vr.OK() {
		for _, e := range vr.Errors {
			log.Error("validation error", zap.String("item", e.Item), zap.String("message", e.Message))
		}
		return errInvalid
	}

	c, err := assemble.Assemble(p, theme)
	if err != nil {
		return err
	}
	log.Debug("scene assembled",
		zap.Int("items", p.Len()),
		zap.Int("solids", len(c.Solids)),
		zap.Int("curves", len(c.Curves)),
		zap.Int("markers", len(c.Markers)),
	)

	if opt.stl != "" {
		if err := kernel.SaveSTL(opt.stl, meshes(c)...); err != nil {
			return fmt.Errorf("write stl: %w", err)
		}
		log.Info("stl written", zap.String("path", opt.stl))
	}

	enc := json.NewEncoder(w)
	if opt.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(c)
}

// meshes returns the world-space meshes of every solid and marker part.
func meshes(c *scene.Collection) []*kernel.Mesh {
	out := make([]*kernel.Mesh, 0, len(c.Solids)+2*len(c.Markers))
	for _, s := range c.Solids {
		out = append(out, s.Mesh)
	}
	for _, m := range c.Markers {
		for _, p := range m.WorldParts() {
			out = append(out, p.Mesh)
		}
	}
	return out
}
