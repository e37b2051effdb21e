package main

import (
	"github.com/ishop-labs/backend/internal/app"
	"github.com/ishop-labs/backend/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
