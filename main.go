package main

import "github.com/commerceops/backoffice/cmd"

func main() {
	cmd.Execute()
}
