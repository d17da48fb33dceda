/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/silsoftware/ldml-api/httpapi"
	"github.com/silsoftware/ldml-api/internal/logging"
	"github.com/silsoftware/ldml-api/profiles"
)

// version is set by the release build pipeline; left as a placeholder for
// local/dev builds.
var version = "dev"

func main() {
	configPath := pflag.String("config", "/etc/ldml-api.json", "path to the profiles config file")
	profileName := pflag.String("profile", "", "profile name to use as the default fallback")
	listen := pflag.String("listen", "0.0.0.0:3000", "address to listen on")
	logPath := pflag.String("log", "", "path to the log file (console-only if empty)")
	debug := pflag.Bool("debug", false, "enable debug logging")
	pflag.Parse()

	logging.Init(*logPath, *debug)

	pp, err := profiles.Load(*configPath)
	if err != nil {
		log.Error().Err(err).Str("config", *configPath).Msg("failed to load profiles")
		os.Exit(1)
	}

	if *profileName != "" {
		if err := pp.SetFallback(*profileName); err != nil {
			log.Error().Err(err).Str("profile", *profileName).Msg("failed to select fallback profile")
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := httpapi.Config{ServiceName: "ldml-api", Version: version}
	if err := httpapi.Run(ctx, *listen, pp, cfg); err != nil {
		log.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}
