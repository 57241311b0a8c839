package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	vdf "github.com/quilibrium-labs/classgroup-vdf"
)

var (
	configPath = flag.String(
		"config",
		"",
		"path to a YAML config file supplying defaults for the flags below",
	)
	construction = flag.String(
		"construction",
		"",
		"vdf construction to use: pietrzak or wesolowski",
	)
	challengeHex = flag.String(
		"challenge",
		"",
		"hex-encoded challenge bytes",
	)
	difficulty = flag.Uint64(
		"t",
		0,
		"number of sequential squarings",
	)
	intSizeBits = flag.Int(
		"int-size-bits",
		0,
		"discriminant bit length",
	)
	discriminantHex = flag.String(
		"discriminant",
		"",
		"hex-encoded magnitude of the (negative) discriminant, negated after decoding; derived from the challenge when empty",
	)
	proofHex = flag.String(
		"proof",
		"",
		"hex-encoded proof, required by verify",
	)
)

func main() {
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	if *construction == "" {
		*construction = cfg.Construction
	}
	if *difficulty == 0 {
		*difficulty = cfg.Difficulty
	}
	if *intSizeBits == 0 {
		*intSizeBits = cfg.IntSizeBits
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: vdfctl [solve|verify] [flags]")
		os.Exit(2)
	}

	c, err := buildConstruction(*construction, *intSizeBits)
	if err != nil {
		logger.Fatal("invalid construction", zap.Error(err))
	}

	challenge, err := hex.DecodeString(*challengeHex)
	if err != nil {
		logger.Fatal("invalid challenge encoding", zap.Error(err))
	}

	var d *big.Int
	if *discriminantHex != "" {
		buf, err := hex.DecodeString(*discriminantHex)
		if err != nil {
			logger.Fatal("invalid discriminant encoding", zap.Error(err))
		}
		d = new(big.Int).SetBytes(buf)
		d.Neg(d)
	}

	switch args[0] {
	case "solve":
		if err := c.CheckDifficulty(*difficulty); err != nil {
			logger.Fatal("difficulty rejected", zap.Error(err))
		}
		proof, err := c.Solve(context.Background(), challenge, *difficulty, d)
		if err != nil {
			logger.Fatal("solve failed", zap.Error(err))
		}
		fmt.Println(hex.EncodeToString(proof))
	case "verify":
		proof, err := hex.DecodeString(*proofHex)
		if err != nil {
			logger.Fatal("invalid proof encoding", zap.Error(err))
		}
		if err := c.Verify(challenge, *difficulty, proof, d); err != nil {
			logger.Info("proof rejected", zap.Error(err))
			os.Exit(1)
		}
		fmt.Println("valid")
	default:
		fmt.Fprintln(os.Stderr, "usage: vdfctl [solve|verify] [flags]")
		os.Exit(2)
	}
}

func buildConstruction(name string, bits int) (vdf.Construction, error) {
	switch name {
	case "pietrzak":
		return vdf.Pietrzak(bits), nil
	case "wesolowski", "":
		return vdf.Wesolowski(bits), nil
	default:
		return nil, errors.Errorf("vdfctl: unknown construction %q", name)
	}
}
