package main

import "StockBoard/internal/cli"

func main() {
	cli.Run()
}
