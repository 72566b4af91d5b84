package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	projectDir string
	debugMode  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nhost",
	Short: "Run an Nhost project locally",
	Long: `nhost brings up a local development environment for an Nhost project:
a Postgres database and Hasura GraphQL engine started through docker-compose,
plus the Hasura console pointed at them.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. a failed stage of nhost dev)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set up version template
	rootCmd.SetVersionTemplate(`{{printf "nhost version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newDevCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())

	rootCmd.PersistentFlags().StringVar(&projectDir, "project-dir", ".", "Directory containing docker-compose.example and config.yaml")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging on stderr")
}
