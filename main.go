package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/abdullah-albanna/json-to-struct/internal/assemble"
	"github.com/abdullah-albanna/json-to-struct/internal/config"
	"github.com/abdullah-albanna/json-to-struct/internal/errors"
	"github.com/abdullah-albanna/json-to-struct/internal/formatter"
	"github.com/abdullah-albanna/json-to-struct/internal/generator"
	"github.com/abdullah-albanna/json-to-struct/internal/infer"
	"github.com/abdullah-albanna/json-to-struct/internal/models"
	"github.com/abdullah-albanna/json-to-struct/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Input   string `help:"Path to input file with invocations. If not specified, reads from stdin." short:"i" type:"path"`
	Output  string `help:"Path to output Go file. If not specified, writes to stdout." short:"o" type:"path"`
	Package string `help:"Package name for generated code. Overrides the config file." short:"p"`
	Config  string `help:"Path to a config file. Defaults to the nearest .json-to-struct.yml." short:"c" type:"path"`
	Format  bool   `help:"Format the output code according to Go standards." short:"f" default:"true" negatable:""`
	NoColor bool   `help:"Disable colored error output."`
	Version bool   `help:"Show version information." short:"v"`
}

// Version information
const Version = "0.1.0"

func main() {
	kongParser := kong.Must(&CLI,
		kong.Name("json-to-struct"),
		kong.Description("Compiles JSON-like literal invocations into Go struct definitions"),
		kong.UsageOnError(),
	)

	if _, err := kongParser.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("json-to-struct version %s\n", Version)
		return
	}

	if err := run(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// run executes the main program logic
func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.NewInputError("failed to load config", err)
	}

	invocations, err := parseInput()
	if err != nil {
		return err
	}

	// Compile every invocation independently, in source order. Each
	// gets a fresh registry; a name reused across invocations is the
	// host namespace's concern.
	var items []assemble.Item
	for _, inv := range invocations {
		inv.Flags.ExtraDerives = mergeDerives(inv.Flags.ExtraDerives, cfg.ExtraDerives)
		schema, err := infer.NewInferrerWithConfig(inv.Flags, cfg).Infer(inv.Name, inv.Root)
		if err != nil {
			return err
		}
		items = append(items, assemble.Assemble(schema, inv.Root, inv.Flags)...)
	}

	code, err := generator.NewGenerator().Generate(items, packageName(cfg))
	if err != nil {
		return errors.NewGenerateError("failed to generate Go source", err)
	}

	if CLI.Format && cfg.Format {
		code, err = formatter.NewFormatter().Format(code)
		if err != nil {
			return errors.NewFormatError("failed to format Go source", err)
		}
	}

	return writeOutput(code)
}

func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	if path == "" {
		return config.NewConfig(), nil
	}
	return config.LoadConfig(path)
}

func parseInput() ([]models.Invocation, error) {
	if CLI.Input != "" {
		return parser.ParseFile(CLI.Input)
	}

	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read stdin", err)
	}
	return parser.ParseString(string(data))
}

func packageName(cfg *config.Config) string {
	if CLI.Package != "" {
		return CLI.Package
	}
	if cfg.Package != "" {
		return cfg.Package
	}
	return "main"
}

func writeOutput(code string) error {
	if CLI.Output == "" {
		fmt.Print(code)
		return nil
	}
	if err := os.WriteFile(CLI.Output, []byte(code), 0o644); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write '%s'", CLI.Output), err)
	}
	return nil
}

func mergeDerives(flags, extra []string) []string {
	seen := make(map[string]struct{}, len(flags))
	out := append([]string(nil), flags...)
	for _, d := range flags {
		seen[d] = struct{}{}
	}
	for _, d := range extra {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

func reportError(err error) {
	msg := errors.UserFriendlyError(err)
	if !CLI.NoColor && isatty.IsTerminal(os.Stderr.Fd()) {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, msg)
	} else {
		fmt.Fprintln(os.Stderr, msg)
	}
	fmt.Fprintln(os.Stderr, "\nFor help, run: json-to-struct --help")
}
