package service

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"retail-demo/internal/models"
	"retail-demo/internal/notify"
	blobs "retail-demo/internal/repository/redis"
)

func (s *Service) products() entity[models.Product] {
	return entity[models.Product]{
		name:   "product",
		remote: s.repo.Products,
		local:  s.repo.Fallback.Products,
		id:     func(p models.Product) string { return p.Id },
		setID:  func(p *models.Product, id string) { p.Id = id },
	}
}

func (s *Service) ListProducts(ctx context.Context) ([]models.Product, Source, error) {
	recs, src := s.products().list(ctx)
	return recs, src, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (models.Product, Source, error) {
	return s.products().get(ctx, id)
}

// AddProduct uploads the optional image before writing the product row. A
// failed upload sends the whole product to the fallback store without an
// image.
func (s *Service) AddProduct(ctx context.Context, p models.Product, img *models.Image) (models.Product, Written, error) {
	if err := s.validate(p); err != nil {
		return models.Product{}, Written{}, err
	}
	p.Id = uuid.NewString()
	p.ImageUrl = ""

	var notes []notify.Delivery
	if !img.Empty() {
		url, sent, err := s.uploadImage(ctx, p.Id, img)
		if err != nil {
			p, w := s.products().addLocal(p, err)
			return p, w, nil
		}
		p.ImageUrl = url
		notes = sent
	}

	p, w := s.products().add(ctx, p)
	w.Notifications = append(notes, w.Notifications...)
	return p, w, nil
}

// UpdateProduct keeps the stored image unless a new one is uploaded.
func (s *Service) UpdateProduct(ctx context.Context, p models.Product, img *models.Image) (models.Product, Written, error) {
	if p.Id == "" {
		return models.Product{}, Written{}, invalid("id is required")
	}
	if err := s.validate(p); err != nil {
		return models.Product{}, Written{}, err
	}
	existing, _, err := s.products().get(ctx, p.Id)
	if err != nil {
		return models.Product{}, Written{}, err
	}
	p.ImageUrl = existing.ImageUrl

	var notes []notify.Delivery
	if !img.Empty() {
		url, sent, err := s.uploadImage(ctx, p.Id, img)
		if err != nil {
			w, err := s.products().updateLocal(p, err)
			if err != nil {
				return models.Product{}, w, err
			}
			return p, w, nil
		}
		p.ImageUrl = url
		notes = sent
	}

	w, err := s.products().update(ctx, p)
	w.Notifications = append(notes, w.Notifications...)
	if err != nil {
		return models.Product{}, w, err
	}
	return p, w, nil
}

// DeleteProduct removes the product image blob, if any, before the row. The
// image is looked up in whichever store holds the product.
func (s *Service) DeleteProduct(ctx context.Context, id string) (Written, error) {
	if p, _, err := s.products().get(ctx, id); err == nil && p.ImageUrl != "" {
		s.deleteImage(ctx, p.ImageUrl)
	}
	return s.products().remove(ctx, id), nil
}

// uploadImage stores img as {productId}_{file name} and triggers the image
// function.
func (s *Service) uploadImage(ctx context.Context, productId string, img *models.Image) (string, []notify.Delivery, error) {
	name := productId + "_" + filepath.Base(img.FileName)
	url, err := s.repo.Blobs.Upload(ctx, s.containers.ProductImages, name, img.Data, img.ContentType)
	if err != nil {
		return "", nil, err
	}
	observe("product_image", "upload", SourceRemote)

	var w Written
	s.notify(ctx, &w, notify.ImageProcess, productId, models.ImageUploaded{
		ProductId:        productId,
		ImageName:        name,
		OriginalFileName: img.FileName,
		Action:           models.ActionProcessImage,
		Timestamp:        s.now(),
	})
	return url, w.Notifications, nil
}

func (s *Service) deleteImage(ctx context.Context, imageURL string) {
	log := logrus.WithField("image_url", imageURL)
	name, err := blobs.BlobName(imageURL)
	if err != nil {
		log.WithError(err).Warn("cannot derive image blob name")
		return
	}
	if err = s.repo.Blobs.Delete(ctx, s.containers.ProductImages, name); err != nil {
		log.WithError(err).Warn("delete image blob")
	}
}
