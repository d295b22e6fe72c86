// Command json-test parses, canonicalizes and verifies JSON documents.
//
// It follows the JSONTestSuite runner convention: exit 0 when the input is
// accepted, 1 when it is rejected, 2 on usage errors and 10 on internal
// failures.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/alecthomas/kingpin/v2"
	"github.com/alecthomas/units"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"

	"github.com/lattice-substrate/json-wtf/jsonerr"
	"github.com/lattice-substrate/json-wtf/jsonfile"
	"github.com/lattice-substrate/json-wtf/jsontoken"
)

const defaultMaxInputSize = 64 * units.MiB

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type globalFlags struct {
	logLevel     string
	maxDepth     int
	maxInputSize units.Base2Bytes
	quiet        bool
}

func (g *globalFlags) options() *jsontoken.Options {
	return &jsontoken.Options{
		MaxDepth:     g.maxDepth,
		MaxInputSize: int(g.maxInputSize),
	}
}

type checkCommand struct {
	files []string
}

type canonicalizeCommand struct {
	input  string
	output string
}

type verifyCommand struct {
	input string
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	var (
		flags globalFlags
		check checkCommand
		canon canonicalizeCommand
		ver   verifyCommand
	)

	app := kingpin.New("json-test", "Parse, canonicalize and verify JSON documents.")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	app.HelpFlag.Short('h')

	terminated := -1
	app.Terminate(func(code int) {
		if terminated < 0 {
			terminated = code
		}
	})

	app.Flag("log.level", "Only log messages with the given severity or above.").
		Default("info").EnumVar(&flags.logLevel, "debug", "info", "warn", "error")
	app.Flag("max-depth", "Maximum nesting depth of arrays and objects.").
		Default(fmt.Sprint(jsontoken.DefaultMaxDepth)).IntVar(&flags.maxDepth)
	app.Flag("max-input-size", "Maximum input size, e.g. 64MiB. 0 disables the limit.").
		Default(defaultMaxInputSize.String()).BytesVar(&flags.maxInputSize)
	app.Flag("quiet", "Suppress success messages.").Short('q').BoolVar(&flags.quiet)

	checkCmd := app.Command("check", "Parse each file and report whether it is accepted.")
	checkCmd.Arg("file", "Files to parse.").Required().StringsVar(&check.files)

	canonCmd := app.Command("canonicalize", "Write the canonical form of the input.")
	canonCmd.Flag("output", "Write to this file instead of stdout.").Short('o').StringVar(&canon.output)
	canonCmd.Arg("input", "Input file, or - for stdin.").Default("-").StringVar(&canon.input)

	verifyCmd := app.Command("verify", "Check that the input is already canonical.")
	verifyCmd.Arg("input", "Input file, or - for stdin.").Default("-").StringVar(&ver.input)

	if len(args) == 0 {
		app.Usage(nil)
		return writeClassifiedError(newLogger(stderr, "info"), jsonerr.New(jsonerr.CLIUsage, -1, "command not specified"))
	}

	command, err := app.Parse(args)
	if terminated >= 0 {
		return terminated
	}
	logger := newLogger(stderr, flags.logLevel)
	if err != nil {
		return writeClassifiedError(logger, jsonerr.Wrap(jsonerr.CLIUsage, -1, "parse arguments", err))
	}

	switch command {
	case checkCmd.FullCommand():
		return check.run(logger, &flags, stdout)
	case canonCmd.FullCommand():
		return canon.run(logger, &flags, stdin, stdout)
	case verifyCmd.FullCommand():
		return ver.run(logger, &flags, stdin, stderr)
	default:
		return writeClassifiedError(logger, jsonerr.New(jsonerr.CLIUsage, -1, "unknown command "+command))
	}
}

func newLogger(w io.Writer, lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	var allow level.Option
	switch lvl {
	case "debug":
		allow = level.AllowDebug()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		allow = level.AllowInfo()
	}
	return level.NewFilter(logger, allow)
}

func (c *checkCommand) run(logger log.Logger, flags *globalFlags, stdout io.Writer) int {
	opts := flags.options()
	limit := int64(flags.maxInputSize)
	errs := make([]error, len(c.files))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range c.files {
		g.Go(func() error {
			data, err := jsonfile.ReadFile(path, limit)
			if err != nil {
				errs[i] = err
				return nil
			}
			level.Debug(logger).Log("msg", "parsing", "path", path, "size", humanize.Bytes(uint64(len(data))))
			_, errs[i] = jsontoken.ParseWithOptions(data, opts)
			return nil
		})
	}
	_ = g.Wait()

	code := jsonerr.ExitSuccess
	for i, path := range c.files {
		if errs[i] != nil {
			code = max(code, writeClassifiedError(log.With(logger, "path", path), errs[i]))
			continue
		}
		if !flags.quiet {
			if err := writef(stdout, "%s: ok\n", path); err != nil {
				return writeClassifiedError(logger, jsonerr.Wrap(jsonerr.InternalIO, -1, "write output", err))
			}
		}
	}
	return code
}

func (c *canonicalizeCommand) run(logger log.Logger, flags *globalFlags, stdin io.Reader, stdout io.Writer) int {
	input, err := readInput(logger, c.input, stdin, int64(flags.maxInputSize))
	if err != nil {
		return writeClassifiedError(logger, err)
	}
	canonical, err := jsonfile.Canonicalize(input, flags.options())
	if err != nil {
		return writeClassifiedError(logger, err)
	}
	out := jsonfile.Envelope(canonical)

	if c.output != "" {
		if err := jsonfile.WriteAtomic(c.output, out); err != nil {
			return writeClassifiedError(logger, err)
		}
		level.Debug(logger).Log("msg", "wrote canonical file", "path", c.output, "size", humanize.Bytes(uint64(len(out))))
		return jsonerr.ExitSuccess
	}
	if _, err := stdout.Write(out); err != nil {
		return writeClassifiedError(logger, jsonerr.Wrap(jsonerr.InternalIO, -1, "write output", err))
	}
	return jsonerr.ExitSuccess
}

func (c *verifyCommand) run(logger log.Logger, flags *globalFlags, stdin io.Reader, stderr io.Writer) int {
	input, err := readInput(logger, c.input, stdin, int64(flags.maxInputSize))
	if err != nil {
		return writeClassifiedError(logger, err)
	}
	if err := jsonfile.Verify(input, flags.options()); err != nil {
		return writeClassifiedError(logger, err)
	}
	if !flags.quiet {
		if err := writeLine(stderr, "ok"); err != nil {
			return jsonerr.ExitInternal
		}
	}
	return jsonerr.ExitSuccess
}

func readInput(logger log.Logger, path string, stdin io.Reader, limit int64) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	// kingpin hands a bare "-" argument over as the empty string.
	if path == "-" || path == "" {
		path = "-"
		data, err = jsonfile.ReadBounded(stdin, limit)
	} else {
		data, err = jsonfile.ReadFile(path, limit)
	}
	if err != nil {
		return nil, err
	}
	level.Debug(logger).Log("msg", "read input", "path", path, "size", humanize.Bytes(uint64(len(data))))
	return data, nil
}

// writeClassifiedError logs err with its failure class and returns the exit
// code for that class. Unclassified errors are internal.
func writeClassifiedError(logger log.Logger, err error) int {
	class := jsonerr.ClassOf(err)
	level.Error(logger).Log("class", string(class), "err", err)
	return class.ExitCode()
}

func writeLine(w io.Writer, msg string) error {
	return writef(w, "%s\n", msg)
}

func writef(w io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		return fmt.Errorf("write stream: %w", err)
	}
	return nil
}
