package main

import "github.com/bilgehannal/dnsredir/internal/cli"

func main() {
	cli.Execute()
}
