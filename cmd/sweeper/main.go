package main

import (
	"context"
	"fmt"
	"os"
	"time"

	flags "github.com/jessevdk/go-flags"

	"azload-e2e/common/azcli"

	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

type options struct {
	AzPath    string        `long:"az" default:"az" description:"path to the az executable"`
	Prefix    string        `long:"prefix" default:"clitest-load-" description:"name prefix of the resource groups created by the suite"`
	OlderThan time.Duration `long:"older-than" default:"3h" description:"delete groups created longer ago than this"`
	DryRun    bool          `long:"dry-run" description:"only report the groups that would be deleted"`
	Wait      bool          `long:"wait" description:"wait for each delete to complete"`
	Timeout   time.Duration `long:"timeout" default:"30m" description:"timeout of a single az command"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "azload-e2e resource sweeper"
	parser.LongDescription = "Deletes resource groups leaked by interrupted azload-e2e runs"
	if _, err := parser.Parse(); err != nil {
		code := 1
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			code = 0
		}
		os.Exit(code)
	}

	logf.SetLogger(zap.New(zap.UseDevMode(true), zap.WriteTo(os.Stderr)))

	az := azcli.NewRunner(opts.AzPath, azcli.WithTimeout(opts.Timeout))
	deleted, err := sweep(context.Background(), az, opts, time.Now())
	for _, name := range deleted {
		fmt.Println(name)
	}
	if err != nil {
		logf.Log.Error(err, "sweep failed")
		os.Exit(1)
	}
}
