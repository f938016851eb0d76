package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/eringen/homepage/scaffold"
)

func runNew(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: homepage new <directory>")
	}
	dir := args[0]
	data := scaffold.NewData(filepath.Base(dir), time.Now().Format("2006-01-02"))

	fmt.Printf("Creating new site: %s\n\n", dir)
	created, err := scaffold.Write(dir, data)
	if err != nil {
		return err
	}
	for _, p := range created {
		fmt.Printf("  created %s\n", p)
	}

	fmt.Println()
	fmt.Println("Done! Next steps:")
	fmt.Println()
	fmt.Printf("  cd %s\n", dir)
	fmt.Println("  homepage build")
	fmt.Println("  homepage serve --dev")
	return nil
}
