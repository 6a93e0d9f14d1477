package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/netip"
	"time"

	"github.com/mdlayher/ethernet"
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	envutil "github.com/projectdiscovery/utils/env"
)

var defaultTimeout = envutil.GetEnvOrDefault("ARPTEST_TIMEOUT", "1")

const description = `arptest sends a single ARP request and prints the hardware address of the host that answers.

Usage:
  arptest [flags] <iface> <ipaddr>

An empty <iface> selects the only ARP-capable interface on the system.
Exit status: 0 reply received, 1 no reply, 2 usage error, 3 system error.`

// cliFlags holds raw flag values before validation.
type cliFlags struct {
	Timeout     string
	MAC         string
	ResolveName bool
	Verbose     bool
	Silent      bool
	NoColor     bool
}

type interfaceResolver interface {
	Resolve(name string) (*Interface, error)
}

type arpProber interface {
	Probe(ifi *Interface, target netip.Addr, dst net.HardwareAddr, timeout time.Duration) (Result, error)
}

// newFlagSet registers the flags on a command line that returns parse errors
// and writes diagnostics and usage to stderr. Callers parse CommandLine
// directly, so stdout only ever carries the result and no config file is
// written.
func newFlagSet(f *cliFlags, stderr io.Writer) *goflags.FlagSet {
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(description)
	flagSet.CommandLine = flag.NewFlagSet("arptest", flag.ContinueOnError)
	flagSet.CommandLine.SetOutput(stderr)
	flagSet.CommandLine.Usage = func() {
		fmt.Fprintf(stderr, "%s\n\nFlags:\n", description)
		flagSet.CommandLine.PrintDefaults()
	}

	flagSet.CreateGroup("probe", "Probe",
		flagSet.StringVarP(&f.Timeout, "timeout", "w", defaultTimeout, "seconds to wait for a reply (decimals allowed, 0 waits forever)"),
		flagSet.StringVarP(&f.MAC, "mac", "m", "", "send the request to this MAC address instead of broadcast (aa:bb:cc:dd:ee:ff)"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&f.ResolveName, "resolve-name", "rn", false, "look up the replying host's name over mDNS"),
		flagSet.BoolVarP(&f.Verbose, "verbose", "v", false, "show verbose output"),
		flagSet.BoolVar(&f.Silent, "silent", false, "show only the result line"),
		flagSet.BoolVarP(&f.NoColor, "no-color", "nc", false, "disable output content coloring (ANSI escape codes)"),
	)

	return flagSet
}

// newOptions validates flag values and the <iface> <ipaddr> arguments.
func newOptions(f *cliFlags, args []string) (*Options, error) {
	if len(args) != 2 {
		return nil, argErrorf("expected <iface> <ipaddr>, got %d arguments", len(args))
	}

	timeout, err := parseTimeout(f.Timeout)
	if err != nil {
		return nil, err
	}

	dst := ethernet.Broadcast
	if f.MAC != "" {
		if dst, err = parseMAC(f.MAC); err != nil {
			return nil, err
		}
	}

	target, err := netip.ParseAddr(args[1])
	if err != nil || !target.Is4() {
		return nil, argErrorf("invalid IP address %s", args[1])
	}

	return &Options{
		IfaceName:   args[0],
		Target:      target,
		Destination: dst,
		Timeout:     timeout,
		ResolveName: f.ResolveName,
		Verbose:     f.Verbose,
		Silent:      f.Silent,
		NoColor:     f.NoColor,
	}, nil
}

func configureOutput(f *cliFlags) {
	if f.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if f.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
	}
	if f.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
}

func runCLI(args []string, stdout, stderr io.Writer) int {
	var f cliFlags
	flagSet := newFlagSet(&f, stderr)
	if err := flagSet.CommandLine.Parse(args); err != nil {
		// the flag package has already printed the error and usage
		if errors.Is(err, flag.ErrHelp) {
			return exitSuccess
		}
		return exitArgs
	}

	configureOutput(&f)

	opts, err := newOptions(&f, flagSet.CommandLine.Args())
	if err != nil {
		gologger.Error().Msgf("%s", err)
		flagSet.CommandLine.Usage()
		return exitCode(err)
	}

	checkPrivileges()

	return execute(opts, NewResolver(), NewProber(), stdout)
}

// execute runs one probe and writes the result line to stdout on success.
func execute(opts *Options, resolver interfaceResolver, prober arpProber, stdout io.Writer) int {
	ifi, err := resolver.Resolve(opts.IfaceName)
	if err != nil {
		gologger.Error().Msgf("%s", err)
		return exitCode(err)
	}
	gologger.Debug().Msgf("using %s (index %d)", ifi.Name, ifi.Index)

	res, err := prober.Probe(ifi, opts.Target, opts.Destination, opts.Timeout)
	if err != nil {
		gologger.Error().Msgf("%s", err)
		return exitCode(err)
	}
	if res.Status != StatusFound {
		gologger.Verbose().Msgf("no reply from %s within %s", opts.Target, opts.Timeout)
		return exitNotFound
	}

	fmt.Fprintln(stdout, formatMAC(res.HardwareAddr))

	if vendor := vendorOf(res.HardwareAddr); vendor != "" {
		gologger.Verbose().Msgf("%s vendor: %s", formatMAC(res.HardwareAddr), vendor)
	}
	if opts.ResolveName {
		if name := mdnsNameOf(ifi, opts.Target, mdnsTimeout); name != "" {
			gologger.Info().Msgf("%s is %s", opts.Target, name)
		}
	}

	return exitSuccess
}
