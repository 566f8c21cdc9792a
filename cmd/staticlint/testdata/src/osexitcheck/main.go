package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("starting")
	os.Exit(1) // want "avoid direct os.Exit call in main function of main package"
}

func fail() {
	os.Exit(1)
}
