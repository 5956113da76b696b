package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	cfgPkg "github.com/xhad/ltcc/pkg/config"
)

// WgetOptions are the make_wget flags.
type WgetOptions struct {
	ConfigPath string
	URL        string
	DataDir    string
}

// ParseOptions are the parse_xml flags.
type ParseOptions struct {
	ConfigPath string
	Dir        string
	OutName    string
	DBUrl      string
	Workers    int
}

const usageText = `usage: ltcc <command> [flags]

commands:
  make_wget   create an executable shell script to wget all pdfs into a local directory
  parse_xml   parse the xml files for pre-identified meaningful quantities

Run "ltcc <command> -h" for the flags of a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "make_wget":
		var opts WgetOptions
		if opts, err = parseWgetFlags(os.Args[2:]); err == nil {
			err = runMakeWget(opts)
		}
	case "parse_xml":
		var opts ParseOptions
		if opts, err = parseXMLFlags(os.Args[2:]); err == nil {
			err = runParseXML(opts)
		}
	case "-h", "--help", "help":
		fmt.Print(usageText)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usageText)
		os.Exit(2)
	}

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
}

func parseWgetFlags(args []string) (WgetOptions, error) {
	var opts WgetOptions
	fs := flag.NewFlagSet("make_wget", flag.ContinueOnError)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to config file")
	fs.StringVar(&opts.URL, "url", "", "The url with pdf hrefs (defaults to the configured index page)")
	fs.StringVar(&opts.DataDir, "fdir", "", "Directory the script downloads into (defaults to the configured data dir)")

	return opts, fs.Parse(args)
}

func parseXMLFlags(args []string) (ParseOptions, error) {
	var opts ParseOptions
	fs := flag.NewFlagSet("parse_xml", flag.ContinueOnError)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to config file")
	fs.StringVar(&opts.Dir, "fdir", "", "The directory of the xml files we will parse (defaults to the configured data dir)")
	fs.StringVar(&opts.OutName, "outname", "", "The path to the csv file with the parsed results (required)")
	fs.StringVar(&opts.DBUrl, "db-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string; records are also stored there when set")
	fs.IntVar(&opts.Workers, "workers", 0, "Number of documents parsed concurrently (defaults to the configured value)")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.OutName == "" {
		fs.Usage()
		return opts, errors.New("parse_xml: --outname is required")
	}
	return opts, nil
}

// loadConfig reads the config file and checks it. Flags override the file
// after loading.
func loadConfig(path string, override func(*cfgPkg.Config)) (*cfgPkg.Config, error) {
	cfg, err := cfgPkg.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	override(cfg)

	if errs := cfg.Validate(); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}
	return cfg, nil
}
