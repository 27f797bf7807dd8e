// Command blitinfo reports the detected display platform and the
// registered presentation backends.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gogpu/blitview"
	"github.com/gogpu/blitview/driver"
	_ "github.com/gogpu/blitview/driver/memory"
	_ "github.com/gogpu/blitview/driver/shiny"
)

func main() {
	probe := flag.Bool("probe", false, "open and close a window on the best backend")
	flag.Parse()

	p := blitview.DetectPlatform()
	fmt.Printf("display server:    %s\n", p.DisplayServer)
	fmt.Printf("transparency:      %v\n", p.SupportsTransparency)
	fmt.Printf("positioning:       %v\n", p.SupportsPositioning)
	fmt.Printf("direct rendering:  %v\n", p.SupportsDirectRendering)
	fmt.Println()

	names := driver.List()
	if len(names) == 0 {
		fmt.Println("no backends registered")
		os.Exit(1)
	}
	fmt.Println("backends (priority order):")
	for _, name := range names {
		e, ok := driver.Get(name)
		if !ok {
			continue
		}
		state := "available"
		if !e.Available() {
			state = "unavailable"
		}
		fmt.Printf("  %-10s priority %3d  %s\n", e.Name, e.Priority, state)
	}

	if !*probe {
		return
	}

	loop, err := blitview.New()
	if err != nil {
		log.Fatalf("Failed to start event loop: %v", err)
	}
	defer loop.Close()

	win, err := loop.NewWindow(blitview.WindowOptions{Title: "blitinfo probe"})
	if err != nil {
		log.Fatalf("Failed to open window: %v", err)
	}
	w, h := win.Size()
	fmt.Printf("\nprobe: %s backend, window %dx%d\n", loop.Backend(), w, h)
	win.Close()
}
