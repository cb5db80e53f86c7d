package main

import "github.com/itsmostafa/pdfextbook/cmd"

func main() {
	cmd.Execute()
}
