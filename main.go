package main

import (
	"github.com/HisarCS/MusicCo/cmd"
)

func main() {
	cmd.Execute()
}
