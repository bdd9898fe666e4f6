package main

import (
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/app"

	"go.uber.org/fx"
)

// @title MarineFit API
// @version 1.0
// @description Training booking backend for the MarineFit Telegram bot.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	fx.New(app.Module).Run()
}
