package main

import "tarn/cmd"

func main() {
	cmd.Execute()
}
