package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aretw0/scribe"
)

func main() {
	count := flag.Int("count", 1000, "Number of files to write")
	size := flag.Int("size", 256, "Content size in bytes")
	signing := flag.String("signing", "on,sha512", "Signing setting (off, on,md5, on,sha512)")
	keep := flag.Bool("keep", false, "Keep the benchmark directory after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "scribe_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	svc, err := scribe.New(benchDir,
		scribe.WithLogger(logger),
		scribe.WithSigning(*signing),
	)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	content := strings.Repeat("x", *size)
	owner := 1
	names := make([]string, 0, *count)

	fmt.Printf("Writing %d files (%d bytes, signing=%s) in %s...\n", *count, *size, *signing, benchDir)
	startWrite := time.Now()
	for i := 0; i < *count; i++ {
		rec, err := svc.WriteFile(ctx, content, scribe.ModeWrite, &owner)
		if err != nil {
			panic(err)
		}
		names = append(names, rec.Name)
	}
	writeDur := time.Since(startWrite)

	fmt.Println("Reading back...")
	startRead := time.Now()
	for _, name := range names {
		if _, err := svc.ReadFile(ctx, name, &owner); err != nil {
			panic(err)
		}
	}
	readDur := time.Since(startRead)

	startList := time.Now()
	list, err := svc.ListFiles(ctx, "")
	if err != nil {
		panic(err)
	}
	listDur := time.Since(startList)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d files):\n", *count)
	fmt.Printf("  Write: %v (%v/op)\n", writeDur, writeDur/time.Duration(*count))
	fmt.Printf("  Read:  %v (%v/op)\n", readDur, readDur/time.Duration(*count))
	fmt.Printf("  List:  %v (Items: %d)\n", listDur, len(list))
	fmt.Printf("--------------------------------------------------\n")
}
