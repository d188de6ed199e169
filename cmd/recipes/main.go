package main

import "github.com/goplus/recipes/cmd/recipes/internal"

func main() {
	internal.Execute()
}
