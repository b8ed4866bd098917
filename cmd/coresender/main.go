package main

import (
	"github.com/coresender/coresender-go/pkg/root"

	_ "github.com/coresender/coresender-go/pkg/console" // Register commands
)

func main() {
	root.Execute()
}
