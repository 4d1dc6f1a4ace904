package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hed1ad/doravis/pkg/config"
	"github.com/hed1ad/doravis/pkg/logger"
	_ "github.com/hed1ad/doravis/pkg/sources/hdf5"
	"github.com/hed1ad/doravis/pkg/visualizer"
)

var rootCmd = &cobra.Command{
	Use:   "doravis",
	Short: "Browse DORA outlier detection results",
	Long: `doravis reads a DORA configuration, locates each method's selection file
under out_dir and shows the ranked items with their images or feature vectors.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(viper.GetString("log-level"))
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "path to the DORA configuration file")
	flags.String("data-root", "", "override data_to_score from the configuration")
	flags.String("out-dir", "", "override out_dir from the configuration")
	flags.String("log-level", "WARN", "DEBUG, INFO, WARN, ERROR or DISABLED")
	flags.Int("page-size", visualizer.DefaultPageSize, "rows per page")

	for _, name := range []string{"config", "data-root", "out-dir", "log-level", "page-size"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	viper.SetEnvPrefix("DORAVIS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(validateCmd, methodsCmd, tableCmd, aggregateCmd, featuresCmd)
}

// loadConfig reads the configuration and applies path overrides.
func loadConfig() (*config.Config, error) {
	path := viper.GetString("config")
	if path == "" {
		return nil, fmt.Errorf("no configuration given (--config or DORAVIS_CONFIG)")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if root := viper.GetString("data-root"); root != "" {
		cfg = cfg.WithDataRoot(root)
	}
	if dir := viper.GetString("out-dir"); dir != "" {
		cfg = cfg.WithOutDir(dir)
	}
	return cfg, nil
}

// openSession loads a configuration that passes validation.
func openSession() (*visualizer.Session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if report := cfg.Validate(); !report.OK() {
		return nil, fmt.Errorf("configuration has unresolved issues, run 'doravis validate'")
	}
	return visualizer.NewSession(cfg)
}

func pageSize() int {
	return viper.GetInt("page-size")
}
