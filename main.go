package main

import "ingress-identity/cmd"

func main() {
	cmd.Execute()
}
