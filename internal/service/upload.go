package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/google/uuid"

	"retail-demo/internal/models"
	"retail-demo/internal/notify"
	blobs "retail-demo/internal/repository/redis"
)

// UploadPaymentProof stores the proof as proof_{uuid}{ext} in the payment
// proof container. There is no fallback for proofs: a failed upload is
// returned to the caller.
func (s *Service) UploadPaymentProof(ctx context.Context, p models.PaymentProof) (string, Written, error) {
	if err := s.validate(p); err != nil {
		return "", Written{}, err
	}
	ext := filepath.Ext(p.FileName)
	name := "proof_" + uuid.NewString() + ext

	contentType := mime.TypeByExtension(ext)
	url, err := s.repo.Blobs.Upload(ctx, s.containers.PaymentProofs, name, p.Content, contentType)
	if err != nil {
		return "", Written{}, fmt.Errorf("upload payment proof: %w", err)
	}
	observe("payment_proof", "upload", SourceRemote)

	w := Written{Id: name, Source: SourceRemote}
	s.notify(ctx, &w, notify.PaymentProof, name, models.PaymentProofUploaded{
		FileName:       p.FileName,
		BlobName:       name,
		RelatedOrderId: p.RelatedOrderId,
		CustomerName:   p.CustomerName,
		Action:         models.ActionPaymentProofUploaded,
		Timestamp:      s.now(),
	})
	return url, w, nil
}

// DownloadBlob serves blobs of the known containers only.
func (s *Service) DownloadBlob(ctx context.Context, container, name string) ([]byte, string, error) {
	if container != s.containers.ProductImages && container != s.containers.PaymentProofs {
		return nil, "", fmt.Errorf("container %s: %w", container, ErrNotFound)
	}
	data, contentType, err := s.repo.Blobs.Download(ctx, container, name)
	if errors.Is(err, blobs.ErrBlobNotFound) {
		return nil, "", fmt.Errorf("blob %s/%s: %w", container, name, ErrNotFound)
	}
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}
