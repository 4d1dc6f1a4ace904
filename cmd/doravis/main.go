// Command doravis browses the ranked output of a DORA outlier detection run.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("doravis failed")
		os.Exit(1)
	}
}
