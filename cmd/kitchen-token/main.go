// Command kitchen-token issues a bearer token for a kitchen role.
package main

import (
	"flag"
	"fmt"

	"github.com/tair/kitchen-stock/internal/app"
	"github.com/tair/kitchen-stock/internal/config"
	"github.com/tair/kitchen-stock/pkg/auth"
	"github.com/tair/kitchen-stock/pkg/logger"
)

func main() {
	subject := flag.String("subject", "", "actor id placed in the sub claim")
	role := flag.String("role", auth.RoleChef, "DELIVERY_DRIVER, CHEF or HEAD_CHEF")
	flag.Parse()

	cfg := config.Load()
	logger.Init("kitchen-token", true)

	if *subject == "" {
		logger.Logger.Fatal().Msg("-subject is required")
	}
	if !auth.ValidRole(*role) {
		logger.Logger.Fatal().Str("role", *role).Msg("Unknown role")
	}

	token, err := app.ProvideTokenManager(cfg).GenerateToken(*subject, *role)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to sign token")
	}
	fmt.Println(token)
}
