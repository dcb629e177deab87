package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/urlup/urlup"
	"github.com/urlup/urlup/internal/banner"
	"github.com/urlup/urlup/internal/credentials"
	"github.com/urlup/urlup/internal/output"
)

var version = "1.1.0"

type options struct {
	input      string
	output     string
	explain    bool
	quiet      bool
	colorize   bool
	user       string
	password   string
	noKeyring  bool
	insecure   bool
	headers    []string
	timeout    time.Duration
	maxChain   int
	workers    int
	rateLimit  int
	retries    int
	configPath string

	keyringService string
}

// Execute runs the urlup command. Configuration errors exit non-zero;
// per-URL resolution failures do not.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "urlup [url ...]",
		Short: "Find the ultimate destination of URLs after following redirections",
		Long: `urlup dereferences HTTP(S) URLs: it requests each one, follows any
redirections, and reports the original URL, the final URL reached, and the
status code returned by the first request.

URLs are taken from the command line, from a file given with -i (one URL per
line, blank lines ignored), or both. Results are printed to the terminal and,
with -o, written to a CSV file with the columns original,final,status,error.

URLs that go through an EZproxy-style rewriting proxy are authenticated
automatically. Credentials come from -u/-p, from the OS keyring, or from an
interactive prompt, in that order of preference.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "read newline-delimited URLs from `file`")
	f.StringVarP(&opts.output, "output", "o", "", "write results as CSV to `file`")
	f.BoolVarP(&opts.explain, "explain", "e", false, "print an explanation of each status code")
	f.StringVarP(&opts.user, "user", "u", "", "proxy user name")
	f.StringVarP(&opts.password, "password", "p", "", "proxy password")
	f.BoolVarP(&opts.noKeyring, "no-keyring", "X", false, "do not consult or update the OS keyring")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress informational output")
	f.BoolVarP(&opts.colorize, "color", "c", false, "colorize console output")
	f.StringArrayVarP(&opts.headers, "header", "H", nil, "extra HTTP header (repeatable, `Key: Value`)")
	f.DurationVarP(&opts.timeout, "timeout", "t", urlup.DefaultTimeout, "per-request timeout")
	f.IntVar(&opts.maxChain, "max-redirects", urlup.DefaultMaxRedirects, "maximum redirect hops per URL")
	f.IntVar(&opts.workers, "workers", 1, "number of URLs resolved concurrently")
	f.IntVar(&opts.rateLimit, "rate-limit", 0, "request starts per second (0 = unlimited)")
	f.IntVar(&opts.retries, "retries", 0, "extra attempts on transport errors and 5xx responses")
	f.BoolVar(&opts.insecure, "insecure", false, "skip TLS certificate verification")
	f.StringVar(&opts.configPath, "config", "", "YAML defaults `file`")
	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	setupLogging(opts.quiet)

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	opts.apply(cmd.Flags(), cfg)

	if opts.workers < 1 {
		return fmt.Errorf("--workers must be at least 1 (got %d)", opts.workers)
	}
	if opts.timeout <= 0 {
		return fmt.Errorf("--timeout must be > 0 (got %s)", opts.timeout)
	}
	if opts.maxChain <= 0 {
		return fmt.Errorf("--max-redirects must be > 0 (got %d)", opts.maxChain)
	}
	if opts.rateLimit < 0 {
		return fmt.Errorf("--rate-limit must be >= 0 (got %d)", opts.rateLimit)
	}
	if opts.retries < 0 {
		return fmt.Errorf("--retries must be >= 0 (got %d)", opts.retries)
	}

	headers, err := parseHeaders(opts.headers)
	if err != nil {
		return err
	}

	urls, err := collectURLs(args, opts.input)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return errors.New("no URLs to check; pass them as arguments or use -i")
	}

	colorize := opts.colorize && isatty.IsTerminal(os.Stdout.Fd())
	color.NoColor = !colorize

	if !opts.quiet {
		banner.Print(version)
	}

	// Creating the output file up front keeps an unwritable path from
	// surfacing only after the whole batch has run.
	var outFile *os.File
	if opts.output != "" {
		if outFile, err = os.Create(opts.output); err != nil {
			return fmt.Errorf("cannot write output file: %w", err)
		}
	}

	provider := &credentials.Provider{
		Service:  opts.keyringService,
		UseStore: !opts.noKeyring,
	}
	proxy := urlup.NewProxyHelper(func(host string) (string, string, error) {
		logrus.Infof("Authenticating to proxy %s", host)
		cred, cerr := provider.Obtain(opts.user, opts.password)
		return cred.User, cred.Password, cerr
	}, opts.timeout)

	logrus.Infof("Resolving %d URL(s)", len(urls))
	results := urlup.ResolveAll(cmd.Context(), urls, urlup.Options{
		Timeout:      opts.timeout,
		MaxRedirects: opts.maxChain,
		Retries:      opts.retries,
		Workers:      opts.workers,
		RateLimit:    opts.rateLimit,
		Headers:      headers,
		Insecure:     opts.insecure,
		Proxy:        proxy,
	})

	output.NewConsole(os.Stdout, opts.explain, colorize).WriteAll(results)

	if outFile != nil {
		if err := output.WriteCSV(outFile, results); err != nil {
			_ = outFile.Close()
			return fmt.Errorf("write output file: %w", err)
		}
		if err := outFile.Close(); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
		logrus.Infof("Wrote %d row(s) to %s", len(results), opts.output)
	}

	logrus.Info("Done.")
	return nil
}

func setupLogging(quiet bool) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if quiet {
		logrus.SetLevel(logrus.WarnLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// collectURLs merges command-line URLs with those read from path, preserving
// order: arguments first, then file lines. Blank lines are ignored.
func collectURLs(args []string, path string) ([]string, error) {
	urls := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			urls = append(urls, a)
		}
	}
	if path == "" {
		return urls, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read input file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read input file: %w", err)
	}
	return urls, nil
}

func parseHeaders(headers []string) (map[string]string, error) {
	if len(headers) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(headers))
	for _, h := range headers {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("invalid header %q (expected Key: Value)", h)
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out, nil
}
