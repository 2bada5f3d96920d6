// Package internal holds the process configuration.
package internal

import (
	"time"
	"unicode/utf8"
)

type Config struct {
	Host           string `env:"HOST,default=0.0.0.0"`
	Port           int    `env:"PORT,default=8080"`
	DebugPort      int    `env:"DEBUG_PORT,default=6060"`
	Debug          bool   `env:"DEBUG,default=false"`
	LogLevel       string `env:"LOG_LEVEL,default=info"`
	BadgerFilepath string `env:"BADGER_FILEPATH,default=/tmp/quickchat/badger"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,default=/tmp/quickchat/bluge"`
	UploadDir      string `env:"UPLOAD_DIR,default=/tmp/quickchat/uploads"`

	BufferSize           int           `env:"BUFFER_SIZE,default=1024"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=5s"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=30s"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=3s"`

	AuthSigningKey    string        `env:"AUTH_SIGNING_KEY"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=168h"`

	CharacterReplacement string `env:"CHARACTER_REPLACEMENT,default=*"`
	SearchLimit          int    `env:"SEARCH_LIMIT,default=20"`
}

// CharacterRune returns the first rune of the configured censor replacement,
// falling back to '*' when the variable is empty.
func (c Config) CharacterRune() rune {
	if c.CharacterReplacement == "" {
		return '*'
	}
	r, _ := utf8.DecodeRuneInString(c.CharacterReplacement)
	return r
}
