// Command dawn-authority serves the trust-boundary side of the IBE
// protocol: Generate mints a fresh master keypair and returns the private
// half sealed, Reveal unseals a previously sealed master key and derives
// the decryption key for one label. It speaks exactly one CBOR request
// and one CBOR response per invocation over stdin/stdout, the same
// contract the upstream enclave's app process served over a pipe to its
// signed enclave binary.
//
// Two sealing backends are wired: --seal-mode=kms (default) seals against
// an AWS KMS customer managed key and is the only mode fit for production;
// --seal-mode=local seals against an in-process key that never survives
// process exit, for development and tests.
//
// When --seal-store-path is set, the sealed master private key is persisted
// to a local badger database keyed by the sealing backend's key identifier
// (the KMS key ID, or "local" for --seal-mode=local): generate writes the
// freshly sealed key to the store, and the default serve-one-request action
// falls back to the stored blob for a Reveal request that arrives with no
// sealed key attached, so an authority process can restart without every
// caller having to resupply sealed_msk on every exchange.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Layr-Labs/dawn-ibe/internal/awsconfig"
	"github.com/Layr-Labs/dawn-ibe/pkg/authority"
	"github.com/Layr-Labs/dawn-ibe/pkg/ibe"
	"github.com/Layr-Labs/dawn-ibe/pkg/logger"
	"github.com/Layr-Labs/dawn-ibe/pkg/sealer"
	"github.com/Layr-Labs/dawn-ibe/pkg/sealstore"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "dawn-authority",
		Usage: "IBE master key authority: generate and reveal within a sealed trust boundary",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "seal-mode",
				Value: "kms",
				Usage: "sealing backend: kms or local",
			},
			&cli.StringFlag{
				Name:    "kms-key-id",
				Usage:   "AWS KMS key ID, alias, or ARN (required for --seal-mode=kms)",
				EnvVars: []string{"DAWN_AUTHORITY_KMS_KEY_ID"},
			},
			&cli.StringFlag{
				Name:    "aws-region",
				Usage:   "AWS region override",
				EnvVars: []string{"DAWN_AUTHORITY_AWS_REGION"},
			},
			&cli.StringFlag{
				Name:    "seal-store-path",
				Usage:   "persist the sealed master private key to a badger database at this path",
				EnvVars: []string{"DAWN_AUTHORITY_SEAL_STORE_PATH"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "selfcheck",
				Usage:  "generate a master keypair, reveal a decryption key for a fixed label, and verify it",
				Action: runSelfcheck,
			},
			{
				Name:   "generate",
				Usage:  "mint a fresh master keypair and print the public key and sealed private key in hex, one per line",
				Action: runGenerate,
			},
		},
		Action: runServeOne,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildSealer(c *cli.Context, log *zap.Logger) (sealer.Sealer, error) {
	switch c.String("seal-mode") {
	case "local":
		return sealer.NewLocalSealer()
	case "kms":
		keyID := c.String("kms-key-id")
		if keyID == "" {
			return nil, fmt.Errorf("--kms-key-id is required for --seal-mode=kms")
		}
		awsCfg, err := awsconfig.Load(c.Context, c.String("aws-region"))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return sealer.NewKMSSealer(awsCfg, keyID, log), nil
	default:
		return nil, fmt.Errorf("unknown seal-mode %q", c.String("seal-mode"))
	}
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	return logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("verbose")})
}

// sealStoreKeyID is the identifier a sealed blob is keyed under in the seal
// store: the KMS key ID in kms mode, so rotating it can't collide with blobs
// sealed under a previous one, or a fixed label in local mode since a
// LocalSealer has no durable identifier of its own.
func sealStoreKeyID(c *cli.Context) string {
	if c.String("seal-mode") == "local" {
		return "local"
	}
	return c.String("kms-key-id")
}

// openSealStore opens the seal store at --seal-store-path, or returns a nil
// *sealstore.Store if the flag was not given: persistence is optional.
func openSealStore(c *cli.Context, log *zap.Logger) (*sealstore.Store, error) {
	path := c.String("seal-store-path")
	if path == "" {
		return nil, nil
	}
	return sealstore.Open(path, log)
}

// runServeOne is the default action: read exactly one CBOR Request from
// stdin, dispatch it, write exactly one CBOR Response to stdout. This is
// the mode a parent process drives as a subprocess per exchange.
func runServeOne(c *cli.Context) error {
	log, err := newLogger(c)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	s, err := buildSealer(c, log)
	if err != nil {
		return err
	}

	store, err := openSealStore(c, log)
	if err != nil {
		return fmt.Errorf("failed to open seal store: %w", err)
	}
	if store != nil {
		defer store.Close() //nolint:errcheck
	}

	req, err := authority.ReadRequest(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}

	if req.Kind == authority.KindReveal && len(req.Sealed.Blob) == 0 {
		if store == nil {
			return fmt.Errorf("reveal request carries no sealed master key and no --seal-store-path was given")
		}
		sealed, found, err := store.Get(sealStoreKeyID(c))
		if err != nil {
			return fmt.Errorf("failed to load sealed master key from store: %w", err)
		}
		if !found {
			return fmt.Errorf("no sealed master key persisted under %q; run generate first", sealStoreKeyID(c))
		}
		req.Sealed = sealed
	}

	resp, err := authority.Handle(c.Context, req, s)
	if err != nil {
		return err
	}

	if req.Kind == authority.KindGenerate && store != nil {
		if err := store.Put(sealStoreKeyID(c), resp.Sealed); err != nil {
			return fmt.Errorf("failed to persist sealed master key: %w", err)
		}
	}

	if err := authority.WriteResponse(os.Stdout, resp); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

// runSelfcheck exercises Generate followed by Reveal in a single process,
// against the configured sealer, and verifies the resulting decryption key
// against the fixed label "label" before exiting 0. It never forks a
// subprocess: the point is to check this binary's own wiring, not the
// serve-one-request contract.
//
// When --seal-store-path is given, the sealed key generated here is also
// persisted and immediately re-read back out of the store before Reveal,
// so selfcheck exercises the same restart path the served Reveal action
// relies on rather than just the in-memory Generate response.
func runSelfcheck(c *cli.Context) error {
	log, err := newLogger(c)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	s, err := buildSealer(c, log)
	if err != nil {
		return err
	}

	store, err := openSealStore(c, log)
	if err != nil {
		return fmt.Errorf("failed to open seal store: %w", err)
	}
	if store != nil {
		defer store.Close() //nolint:errcheck
	}

	ctx := c.Context
	genResp, err := authority.Handle(ctx, authority.GenerateRequest(), s)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	sealed := genResp.Sealed
	if store != nil {
		keyID := sealStoreKeyID(c)
		if err := store.Put(keyID, sealed); err != nil {
			return fmt.Errorf("failed to persist sealed master key: %w", err)
		}
		reloaded, found, err := store.Get(keyID)
		if err != nil {
			return fmt.Errorf("failed to reload sealed master key: %w", err)
		}
		if !found {
			return fmt.Errorf("sealed master key vanished from store immediately after Put")
		}
		sealed = reloaded
	}

	label := ibe.Label("label")
	revealResp, err := authority.Handle(ctx, authority.RevealRequest(label, sealed), s)
	if err != nil {
		return fmt.Errorf("reveal failed: %w", err)
	}

	mpk, err := ibe.MasterPublicKeyFromBytes(genResp.MasterPublicKey)
	if err != nil {
		return fmt.Errorf("invalid master public key in generate response: %w", err)
	}
	sigma, err := ibe.DecryptionKeyFromBytes(revealResp.DecryptionKey)
	if err != nil {
		return fmt.Errorf("invalid decryption key in reveal response: %w", err)
	}

	ok, err := ibe.Verify(label, mpk, sigma)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("selfcheck: decryption key failed to verify against master public key")
	}

	log.Info("selfcheck passed")
	return nil
}

// runGenerate mints a fresh master keypair and prints it, one field per
// line, so a caller can capture the public key and sealed private key
// without parsing CBOR. When --seal-store-path is given, the sealed private
// key is also persisted under the sealing backend's key identifier so a
// later invocation of the default action can serve Reveal requests against
// it without the caller resupplying sealed_msk.
func runGenerate(c *cli.Context) error {
	log, err := newLogger(c)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	s, err := buildSealer(c, log)
	if err != nil {
		return err
	}

	store, err := openSealStore(c, log)
	if err != nil {
		return fmt.Errorf("failed to open seal store: %w", err)
	}
	if store != nil {
		defer store.Close() //nolint:errcheck
	}

	resp, err := authority.Handle(context.Background(), authority.GenerateRequest(), s)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	if store != nil {
		if err := store.Put(sealStoreKeyID(c), resp.Sealed); err != nil {
			return fmt.Errorf("failed to persist sealed master key: %w", err)
		}
	}

	fmt.Printf("master_public_key=%x\n", resp.MasterPublicKey)
	fmt.Printf("sealed_master_private_key=%x\n", resp.Sealed.Blob)
	return nil
}
