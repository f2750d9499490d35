package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"skintone/pkg/imaging"
	"skintone/pkg/skin"
)

const keepPercent = 60

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: skintone <photo.jpg|photo.png>")
	}

	file, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("error opening %s: %v", os.Args[1], err)
	}
	defer file.Close()

	src, err := imaging.Decode(file)
	if err != nil {
		log.Fatalf("error decoding %s: %v", os.Args[1], err)
	}

	region, _ := skin.CentralRegion(imaging.Fit(src, imaging.DefaultMaxDim), keepPercent)
	tone, ok := skin.Estimate(region)
	if !ok {
		log.Fatal("could not extract a skin color; try a photo with the face centered")
	}

	out := termenv.NewOutput(os.Stdout)
	block := out.String("        ").Background(out.Color(tone.Hex())).String()
	for range 3 {
		fmt.Println(block)
	}
	fmt.Printf("RGB: (%d, %d, %d)\n", tone.R, tone.G, tone.B)
	fmt.Printf("HEX: %s\n", tone.Hex())
}
