package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goanswer/internal/stub"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}
	var opts stub.Options
	if v := strings.TrimSpace(os.Getenv("STUB_FAIL_VERTICALS")); v != "" {
		opts.FailVerticals = strings.Split(v, ",")
	}
	opts.FailChat = os.Getenv("STUB_FAIL_CHAT") == "1"

	srv := &http.Server{Addr: addr, Handler: stub.NewHandler(opts), ReadHeaderTimeout: 5 * time.Second}
	log.Info().Str("addr", addr).Str("model", stub.Model).Msg("stub listening; point -serper.url and -llm.base (+/v1) here")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("stub server")
	}
}
