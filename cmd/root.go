package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "widl-grpc",
	Short: "Generate Protocol Buffers definitions from WIDL schemas",
	Long: `widl-grpc turns a WIDL schema document (namespace, services, types, enums and unions)
into a proto3 file that can be fed to protoc or buf.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		levelName, err := cmd.Flags().GetString("log-level")
		if err != nil {
			return err
		}
		level, err := logrus.ParseLevel(levelName)
		if err != nil {
			return err
		}
		log.SetOutput(cmd.ErrOrStderr())
		log.SetLevel(level)
		return nil
	},
}

// Execute runs the root command. Errors are already reported to stderr by
// cobra; the caller only needs to pick an exit code.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	rootCmd.PersistentFlags().String("log-level", logrus.InfoLevel.String(), "log level (trace, debug, info, warn, error)")
}
