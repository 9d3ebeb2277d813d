package main

import (
	"go.uber.org/fx"

	"plume/internal/service"
)

func main() {
	fx.New(service.Options("")...).Run()
}
