package sealer

import (
	"context"
	"encoding/hex"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// aadContextKey is the EncryptionContext key KMS binds aad under. KMS
// requires encryption context to be a string map, so aad is hex-encoded.
const aadContextKey = "dawn-ibe-aad"

// KMSSealer seals master private key material against an AWS KMS customer
// managed key. The key never leaves KMS; Seal and Unseal are both network
// calls.
type KMSSealer struct {
	logger    *zap.Logger
	kmsClient *kms.Client
	keyID     string
}

// NewKMSSealer constructs a KMSSealer bound to keyID (a KMS key ID, alias,
// or ARN).
func NewKMSSealer(awsCfg aws.Config, keyID string, logger *zap.Logger) *KMSSealer {
	return &KMSSealer{
		logger:    logger,
		kmsClient: kms.NewFromConfig(awsCfg),
		keyID:     keyID,
	}
}

func (s *KMSSealer) Seal(ctx context.Context, aad, plaintext []byte) (Sealed, error) {
	out, err := s.kmsClient.Encrypt(ctx, &kms.EncryptInput{
		KeyId:             aws.String(s.keyID),
		Plaintext:         plaintext,
		EncryptionContext: map[string]string{aadContextKey: hex.EncodeToString(aad)},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "kms seal failed for key %s", s.keyID)
	}
	s.logger.Debug("sealed master key material", zap.String("key_id", s.keyID))
	return out.CiphertextBlob, nil
}

func (s *KMSSealer) Unseal(ctx context.Context, aad []byte, sealed Sealed) ([]byte, error) {
	out, err := s.kmsClient.Decrypt(ctx, &kms.DecryptInput{
		KeyId:             aws.String(s.keyID),
		CiphertextBlob:    sealed,
		EncryptionContext: map[string]string{aadContextKey: hex.EncodeToString(aad)},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "kms unseal failed for key %s", s.keyID)
	}
	return out.Plaintext, nil
}
