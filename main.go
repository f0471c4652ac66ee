package main

import (
	"exusiai.dev/autodash/cmd/app"
)

func main() {
	app.Run()
}
