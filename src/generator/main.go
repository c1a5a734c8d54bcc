package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/overline-mining/nemgen/src/common"
)

var cli struct {
	LogLevel string `help:"Logging level. Supported levels: DEV, DEBUG, INFO, WARN, ERROR, FATAL." default:"INFO"`

	Generate struct {
		Input      string `short:"i" required:"" help:"nemesis configuration (yaml)"`
		Output     string `short:"o" required:"" help:"nemesis binary file"`
		Workers    int    `default:"1" help:"number of goroutines signing transactions"`
		NoProgress bool   `help:"do not show a progress bar while signing"`
	} `cmd:"" help:"Build and sign the nemesis block."`

	Verify struct {
		Input  string `short:"i" required:"" help:"nemesis binary file"`
		Config string `short:"c" help:"nemesis configuration to compare the balances against"`
	} `cmd:"" help:"Parse a nemesis binary file and check every signature."`

	Version struct{} `cmd:"" help:"Print the version."`
}

func PrintProgramHeader() {
	zap.S().Infof("nemgen version: %s", common.GetVersion())
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("nemgen"),
		kong.Description("NEM nemesis block generator"))

	common.SetupLogger(cli.LogLevel)
	defer zap.L().Sync()

	// ctrl-c aborts before anything is written
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch kctx.Command() {
	case "generate":
		PrintProgramHeader()
		err = generate(ctx, cli.Generate.Input, cli.Generate.Output, cli.Generate.Workers, !cli.Generate.NoProgress)
	case "verify":
		PrintProgramHeader()
		err = verify(cli.Verify.Input, cli.Verify.Config)
	case "version":
		PrintProgramHeader()
	default:
		zap.S().Fatalf("unknown command %q", kctx.Command())
	}
	if err != nil {
		for _, e := range multierr.Errors(err) {
			zap.S().Error(e)
		}
		zap.S().Fatalf("%s failed", kctx.Command())
	}
}
