// Command wordscramble serves the Word Scramble JSON API and offers a
// terminal version of the game.
//
//	wordscramble serve            # HTTP API on $PORT (default 5175)
//	wordscramble play             # play in the terminal
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("wordscramble")
		os.Exit(1)
	}
}
