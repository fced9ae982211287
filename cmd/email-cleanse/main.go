package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-email-cleanse/cmd/email-cleanse/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
