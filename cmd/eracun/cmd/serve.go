package cmd

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rezonia/eracun/internal/server"
)

var (
	serveAddress string
	serveDebug   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server.

Configuration is read from flags, falling back to environment variables
(ERACUN_ADDRESS, ERACUN_DEBUG). A .env file in the working directory is
loaded if present.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "Listen address (default :8080, or ERACUN_ADDRESS)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug mode")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded configuration from .env")
	}

	address := serveAddress
	if address == "" {
		address = os.Getenv("ERACUN_ADDRESS")
	}
	if address == "" {
		address = ":8080"
	}

	debug := serveDebug || os.Getenv("ERACUN_DEBUG") == "true"

	srv := server.NewServer(&server.Config{
		Address:      address,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Debug:        debug,
	})
	return srv.Run()
}
