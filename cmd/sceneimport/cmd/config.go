package cmd

import (
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aurorafx/sceneimport/internal/config"
	"github.com/aurorafx/sceneimport/pkg/bytesize"
	"github.com/aurorafx/sceneimport/pkg/duration"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long:  `Commands for managing sceneimport configuration.`,
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the default configuration",
	Long: `Dump the default configuration values in YAML format.

This shows all available configuration options with their default values.
You can redirect this output to a file to create a configuration template:

  sceneimport config dump > config.yaml

Configuration can be set via:
  - Config file (config.yaml, /etc/sceneimport/config.yaml, $HOME/.sceneimport/config.yaml)
  - Environment variables (SCENEIMPORT_SERVER_PORT, SCENEIMPORT_IMPORT_CREASE_ANGLE_DEGREES, etc.)
  - Command-line flags (for some options)

Environment variables use the SCENEIMPORT_ prefix and underscores for nesting.
Example: server.port -> SCENEIMPORT_SERVER_PORT`,
	RunE: runConfigDump,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configDumpCmd)
}

// toMap converts a struct to a map, formatting durations and sizes for human readability.
func toMap(v any) map[string]any {
	result := make(map[string]any)
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		key := fieldType.Tag.Get("mapstructure")
		if key == "" {
			key = fieldType.Name
		}

		switch fv := field.Interface().(type) {
		case time.Duration:
			result[key] = duration.Format(fv)
		case config.Duration:
			result[key] = duration.Format(time.Duration(fv))
		case config.ByteSize:
			result[key] = bytesize.Format(bytesize.Size(fv))
		default:
			if field.Kind() == reflect.Struct {
				result[key] = toMap(field.Interface())
			} else {
				result[key] = field.Interface()
			}
		}
	}
	return result
}

func runConfigDump(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfgMap := toMap(cfg)

	yamlData, err := yaml.Marshal(cfgMap)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	fmt.Println("# sceneimport Configuration File")
	fmt.Println("# ==============================")
	fmt.Println("#")
	fmt.Println("# All values shown below are defaults.")
	fmt.Println("# Duration format: 30s, 5m, 1h")
	fmt.Println("# Size format: 5MB, 1GB")
	fmt.Println("#")
	fmt.Println("# Environment variable overrides:")
	fmt.Println("#   SCENEIMPORT_SERVER_HOST, SCENEIMPORT_SERVER_PORT")
	fmt.Println("#   SCENEIMPORT_IMPORT_CREASE_ANGLE_DEGREES, SCENEIMPORT_IMPORT_MAX_BONE_WEIGHTS")
	fmt.Println("#   SCENEIMPORT_REMOTE_TIMEOUT, SCENEIMPORT_REMOTE_RETRY_ATTEMPTS")
	fmt.Println("#   SCENEIMPORT_LOGGING_LEVEL, SCENEIMPORT_LOGGING_FORMAT")
	fmt.Println("#")
	fmt.Println("")
	fmt.Print(string(yamlData))

	return nil
}
