package main

import "alfredoptarigan/resumate/internal/cli"

func main() {
	cli.Execute()
}
