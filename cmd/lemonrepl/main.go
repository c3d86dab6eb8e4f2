/*
Lemonrepl runs an interactive session against a packed LALR(1) parse table,
demonstrating the parse and lex packages end to end. With no flags it
serves a small built-in arithmetic grammar: "NUM (+|-|*|/) NUM".

Usage:

	lemonrepl [flags]

The flags are:

	-t, --tables FILE
		Load a binary-encoded table file (as written by internal/tables)
		instead of the built-in demo grammar's tables. The demo grammar's
		lexer and reduction code are still used.

	-c, --config FILE
		Load driver configuration (max stack size, tracing, lexer error-skip)
		from the given TOML file.

	-d, --direct
		Force reading directly from stdin instead of going through
		GNU-readline-style editing, even when connected to a terminal.

	--trace
		Enable the driver's trace listener regardless of config file
		contents.

Input lines are tokenized and parsed one at a time; the result (or error) of
each line is printed, and each line is parsed by a fresh parser.
*/
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/excursus/citron/config"
	"github.com/excursus/citron/internal/demogrammar"
	"github.com/excursus/citron/internal/replio"
	"github.com/excursus/citron/internal/tables"
	"github.com/excursus/citron/lex"
	"github.com/excursus/citron/parse"
)

const (
	exitSuccess = iota
	exitParseError
	exitInitError
)

var (
	tablesFile  = pflag.StringP("tables", "t", "", "Load a binary-encoded table file instead of the built-in demo grammar")
	configFile  = pflag.StringP("config", "c", "", "Load driver configuration from the given TOML file")
	forceDirect = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of GNU-readline-style editing")
	traceFlag   = pflag.Bool("trace", false, "Enable the driver's trace listener")
)

func main() {
	returnCode := exitSuccess
	defer func() {
		if p := recover(); p != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", p))
		}
		os.Exit(returnCode)
	}()

	pflag.Parse()

	cfg := config.DriverConfig{}
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			returnCode = exitInitError
			return
		}
		cfg = loaded
	}

	lx, t, err := loadGrammar(*tablesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = exitInitError
		return
	}

	logger := log.New(os.Stderr, "lemonrepl: ", 0)

	reader, err := newReader(*forceDirect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = exitInitError
		return
	}
	defer reader.Close()

	if err := runLoop(reader, logger, lx, t, cfg); err != nil && err != io.EOF {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = exitParseError
		return
	}
}

func newReader(direct bool) (replio.LineReader, error) {
	if direct {
		return replio.NewDirectReader(os.Stdin), nil
	}
	return replio.NewInteractiveReader("lemon> ")
}

func loadGrammar(tablesPath string) (*lex.Lexer, *parse.StaticTables, error) {
	if tablesPath == "" {
		return demogrammar.Lexer(), demogrammar.Tables(), nil
	}

	f, err := os.Open(tablesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening table file %q: %w", tablesPath, err)
	}
	defer f.Close()

	t, err := tables.Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding table file %q: %w", tablesPath, err)
	}

	return demogrammar.Lexer(), t, nil
}

// runLoop reads one line at a time, tokenizes and parses it with a fresh
// parser instance, and reports the result. A line that fails to lex or
// parse is reported but does not stop the session.
func runLoop(reader replio.LineReader, logger *log.Logger, lx *lex.Lexer, t *parse.StaticTables, cfg config.DriverConfig) error {
	for {
		line, err := reader.ReadLine()
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}

		result, err := parseLine(line, logger, lx, t, cfg)
		if err != nil {
			fmt.Printf("error: %s\n", err)
			continue
		}
		fmt.Printf("= %v\n", result)
	}
}

func parseLine(line string, logger *log.Logger, lx *lex.Lexer, t *parse.StaticTables, cfg config.DriverConfig) (float64, error) {
	p := parse.NewParser[demogrammar.Token, float64, float64](t, demogrammar.Reduction(), 0)
	p.SetMaxStackSize(cfg.Driver.MaxStackSize)

	if cfg.Driver.Trace || *traceFlag {
		p.RegisterTraceListener(func(s string) { logger.Println(s) })
	}

	var onError lex.OnError
	if cfg.Lexer.ErrorSkip {
		onError = func(e *lex.NoMatchingRuleError) {
			logger.Printf("skipped unrecognized input: %s", e)
		}
	}

	var tokenizeErr error
	lexErr := lx.Tokenize(line, func(tok lex.Token) {
		if tokenizeErr != nil {
			return
		}
		code, value, ok := demogrammar.TokenCodeForData(tok.Data)
		if !ok {
			return
		}
		if err := p.Consume(demogrammar.Token{Code: code, Value: value}, code); err != nil {
			tokenizeErr = err
		}
	}, onError)

	if lexErr != nil {
		return 0, lexErr
	}
	if tokenizeErr != nil {
		return 0, tokenizeErr
	}

	return p.EndParsing()
}
