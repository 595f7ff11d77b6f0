package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/capcom6/filetracker/internal/hasher"
	"github.com/urfave/cli/v3"
)

var errFileRequired = errors.New("at least one file is required")

func main() {
	cmd := &cli.Command{
		Name:      "filehash",
		Usage:     "print content digests the way filetracker computes them",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "algorithm",
				Aliases: []string{"a"},
				Usage:   "digest algorithm: md5, sha256 or xxhash",
				Value:   string(hasher.DefaultAlgorithm),
				Sources: cli.EnvVars("FILETRACKER_ALGORITHM"),
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalln(err)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return errFileRequired
	}

	h, err := hasher.New(cmd.String("algorithm"))
	if err != nil {
		return err
	}

	failed := false
	for _, file := range files {
		digest, sumErr := h.Sum(file)
		if sumErr != nil {
			log.Println(sumErr)
			failed = true
			continue
		}

		fmt.Fprintf(os.Stdout, "%s  %s\n", digest, file)
	}

	if failed {
		return cli.Exit("", 1)
	}

	return nil
}
