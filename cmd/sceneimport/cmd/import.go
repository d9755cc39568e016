package cmd

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/aurorafx/sceneimport/internal/dispatcher"
	"github.com/aurorafx/sceneimport/internal/httpclient"
	"github.com/aurorafx/sceneimport/internal/importer"
	"github.com/aurorafx/sceneimport/internal/importer/objimporter"
	"github.com/aurorafx/sceneimport/internal/observability"
	"github.com/aurorafx/sceneimport/internal/pipeline/core"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/gensmoothnormals"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/limitboneweights"
	"github.com/aurorafx/sceneimport/internal/pipeline/stages/splitlargemeshes"
	"github.com/aurorafx/sceneimport/internal/sceneio"
	"github.com/aurorafx/sceneimport/internal/urlutil"
	"github.com/aurorafx/sceneimport/pkg/bytesize"
	"github.com/aurorafx/sceneimport/pkg/duration"
)

var (
	importFlagNames []string
	importVerbose   bool
)

var importCmd = &cobra.Command{
	Use:   "import <path-or-url>",
	Short: "Decode and post-process one asset, printing a memory summary",
	Long: `Runs a single Import Dispatcher pass over a local path or a remote
http(s):// or file:// URL, then prints the resulting scene's memory
footprint. Exits non-zero and prints the dispatcher's error string on
failure.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringSliceVar(&importFlagNames, "flag", nil, "post-processing flag to request, by name (repeatable)")
	importCmd.Flags().BoolVar(&importVerbose, "verbose-validation", false, "re-validate scene structure between every pipeline stage")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	target := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := observability.NewLogger(cfg.Logging)

	flags, err := core.ParseFlagNames(importFlagNames)
	if err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	if cfg.Import.SignatureProbeBytes > 0 {
		importer.MaxHeaderSearchBytes = int(cfg.Import.SignatureProbeBytes)
	}

	builder := dispatcher.NewBuilder().
		WithLogger(logger).
		WithVerboseValidation(importVerbose || cfg.Import.VerboseValidation).
		WithPropertyDefaults(func(d *dispatcher.Dispatcher) {
			d.SetPropertyFloat(gensmoothnormals.PropertyCreaseAngle, cfg.Import.CreaseAngleDegrees*math.Pi/180)
			d.SetPropertyInteger(splitlargemeshes.PropertyMaxVertices, cfg.Import.SplitMaxVertices)
			d.SetPropertyInteger(splitlargemeshes.PropertyMaxTriangles, cfg.Import.SplitMaxTriangles)
			d.SetPropertyInteger(limitboneweights.PropertyMaxWeights, cfg.Import.MaxBoneWeights)
		})

	if urlutil.IsSupportedURL(target) {
		remoteCfg := httpclient.DefaultConfig()
		remoteCfg.Timeout = time.Duration(cfg.Remote.Timeout)
		remoteCfg.RetryAttempts = cfg.Remote.RetryAttempts
		remoteCfg.RetryDelay = time.Duration(cfg.Remote.RetryDelay)
		if cfg.Remote.UserAgent != "" {
			remoteCfg.UserAgent = cfg.Remote.UserAgent
		}
		remoteCfg.Logger = logger
		builder = builder.WithIO(sceneio.NewRemoteIO(remoteCfg, logger))
	}

	d := builder.Build()
	d.RegisterLoader(objimporter.New())

	start := time.Now()
	sc := d.ReadFile(target, flags)
	elapsed := time.Since(start)

	if sc == nil {
		return fmt.Errorf("import failed: %s", d.GetErrorString())
	}

	req := d.GetMemoryRequirements()
	fmt.Printf("imported %s in %s\n", target, duration.Format(elapsed))
	fmt.Printf("  nodes:      %s\n", bytesize.Format(bytesize.Size(req.Nodes)))
	fmt.Printf("  meshes:     %s\n", bytesize.Format(bytesize.Size(req.Meshes)))
	fmt.Printf("  materials:  %s\n", bytesize.Format(bytesize.Size(req.Materials)))
	fmt.Printf("  animations: %s\n", bytesize.Format(bytesize.Size(req.Animations)))
	fmt.Printf("  textures:   %s\n", bytesize.Format(bytesize.Size(req.Textures)))
	fmt.Printf("  cameras:    %s\n", bytesize.Format(bytesize.Size(req.Cameras)))
	fmt.Printf("  lights:     %s\n", bytesize.Format(bytesize.Size(req.Lights)))
	fmt.Printf("  total:      %s\n", bytesize.Format(bytesize.Size(req.Total)))

	return nil
}
