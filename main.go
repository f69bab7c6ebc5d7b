package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mdobak/go-xerrors"

	"mood-tagger/config"
	"mood-tagger/utils"
	"mood-tagger/wav"
)

func main() {
	err := utils.CreateFolder("tmp")
	if err != nil {
		logger := utils.GetLogger()
		err := xerrors.New(err)
		ctx := context.Background()
		logger.ErrorContext(ctx, "Failed create tmp dir.", slog.Any("error", err))
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	_ = godotenv.Load()

	cfg, err := config.Load(utils.GetEnv("MOOD_CONFIG_PATH", "mood-tagger.json"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	switch os.Args[1] {
	case "analyze":
		analyzeCmd := flag.NewFlagSet("analyze", flag.ExitOnError)
		workers := analyzeCmd.Int("workers", cfg.Analysis.Workers, "concurrent file pipelines")
		dryRun := analyzeCmd.Bool("dry-run", false, "extract features without rating or storing")
		analyzeCmd.Parse(os.Args[2:])
		if analyzeCmd.NArg() < 1 {
			fmt.Println("usage: mood-tagger analyze [-workers N] [-dry-run] <file_or_dir>")
			os.Exit(1)
		}
		if *workers > 0 {
			cfg.Analysis.Workers = *workers
		}
		analyze(analyzeCmd.Arg(0), cfg, *dryRun)

	case "tags":
		if len(os.Args) < 3 {
			fmt.Println("usage: mood-tagger tags <file>")
			os.Exit(1)
		}
		showTags(os.Args[2], cfg)

	case "restore":
		if len(os.Args) < 3 {
			fmt.Println("usage: mood-tagger restore <file>")
			os.Exit(1)
		}
		restoreFile(os.Args[2], cfg)

	case "serve":
		// Check for FFmpeg availability before starting server
		if err := wav.CheckFFmpegAvailable(); err != nil {
			log.Printf("WARNING: %v\n", err)
			log.Println("The server will start but non-MP3 decoding will fail until FFmpeg is installed.")
		} else {
			log.Println("FFmpeg is available")
		}

		serveCmd := flag.NewFlagSet("serve", flag.ExitOnError)
		port := serveCmd.String("p", "5000", "port to use")
		serveCmd.Parse(os.Args[2:])
		serve(*port, cfg)

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("usage: mood-tagger <command>")
	fmt.Println()
	fmt.Println("commands:")
	fmt.Println("  analyze [-workers N] [-dry-run] <file_or_dir>   analyze and mood-tag audio file(s)")
	fmt.Println("  tags    <file>                                  show stored mood tags for a file")
	fmt.Println("  restore <file>                                  restore a file from its backup")
	fmt.Println("  serve   [-p 5000]                               start the HTTP API")
}
