package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"photo-bridge/internal/thumbs"
)

func main() {
	cacheDir := flag.String("cache-dir", "/cache", "cache directory used by the preview service")
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	thumbDir := filepath.Join(*cacheDir, "thumbnails")
	if _, err := os.Stat(thumbDir); err != nil {
		fmt.Fprintf(os.Stderr, "no thumbnail cache at %s: %v\n", thumbDir, err)
		os.Exit(1)
	}

	if !*yes {
		fmt.Printf("Delete all cached thumbnails under %s? [y/N] ", thumbDir)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return
		}
	}

	disk := thumbs.NewDiskCache(thumbDir)
	if err := disk.ClearAll(); err != nil {
		fmt.Fprintf(os.Stderr, "failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Thumbnail cache cleared.")
}
