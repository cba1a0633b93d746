package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"retail-demo/internal/models"
	"retail-demo/internal/notify"
	"retail-demo/internal/repository"
	"retail-demo/internal/repository/fileshare"
)

const contractUploader = "System"

func contractFromFile(f fileshare.FileInfo) models.Contract {
	return models.Contract{
		Id:           f.Name,
		ContractName: f.Name,
		ContractType: models.InferContractType(f.Name),
		Description:  "Contract file: " + f.Name,
		FileSize:     f.ContentLength,
		UploadDate:   f.LastModified.UTC(),
		Status:       models.ContractStatusActive,
	}
}

func contractFellBack(op, name string, err error) {
	log := logrus.WithFields(logrus.Fields{"entity": "contract", "op": op}).WithError(err)
	if name != "" {
		log = log.WithField("name", name)
	}
	if errors.Is(err, repository.ErrRemoteUnavailable) || errors.Is(err, fileshare.ErrFileNotFound) {
		log.Debug("using fallback store")
		return
	}
	log.Warn("file share failed, using fallback store")
}

// ListContracts enumerates the contract files of the share, newest first.
// Types are inferred from the file names.
func (s *Service) ListContracts(ctx context.Context) ([]models.Contract, Source, error) {
	files, err := s.repo.Contracts.List(ctx)
	if err == nil {
		out := make([]models.Contract, 0, len(files))
		for _, f := range files {
			out = append(out, contractFromFile(f))
		}
		observe("contract", "list", SourceRemote)
		return out, SourceRemote, nil
	}
	contractFellBack("list", "", err)

	out := s.repo.Fallback.Contracts.List()
	sort.SliceStable(out, func(i, j int) bool { return out[i].UploadDate.After(out[j].UploadDate) })
	observe("contract", "list", SourceFallback)
	return out, SourceFallback, nil
}

func (s *Service) GetContract(ctx context.Context, name string) (models.Contract, Source, error) {
	f, err := s.repo.Contracts.Properties(ctx, name)
	if err == nil {
		observe("contract", "get", SourceRemote)
		return contractFromFile(f), SourceRemote, nil
	}
	contractFellBack("get", name, err)

	if c, ok := s.repo.Fallback.Contracts.FindByName(name); ok {
		observe("contract", "get", SourceFallback)
		return c, SourceFallback, nil
	}
	return models.Contract{}, "", fmt.Errorf("contract %s: %w", name, ErrNotFound)
}

// UploadContract writes the contract file to the share under the contract
// name, or the uploaded file name when no name is given. The uploaded file's
// extension is appended to a name without one. Contracts are addressed by
// that name, so it is also the id.
func (s *Service) UploadContract(ctx context.Context, c models.Contract, fileName string) (models.Contract, Written, error) {
	if len(c.Content) == 0 {
		return models.Contract{}, Written{}, invalid("contract file is required")
	}
	name := strings.TrimSpace(c.ContractName)
	if name == "" {
		name = filepath.Base(fileName)
	}
	if filepath.Ext(name) == "" {
		name += filepath.Ext(fileName)
	}
	c.ContractName = name
	c.Id = name
	if !models.IsContractType(c.ContractType) {
		c.ContractType = models.InferContractType(name)
	}
	if c.Status == "" {
		c.Status = models.ContractStatusActive
	}
	if c.Description == "" {
		c.Description = "Contract file: " + name
	}
	c.FileSize = int64(len(c.Content))
	c.UploadDate = s.now()
	if err := s.validate(c); err != nil {
		return models.Contract{}, Written{}, err
	}

	w := Written{Id: c.Id, Source: SourceRemote}
	if info, err := s.repo.Contracts.Upload(ctx, name, c.Content); err != nil {
		contractFellBack("upload", name, err)
		w.Source, w.RemoteErr = SourceFallback, err
	} else {
		c.UploadDate = info.LastModified.UTC()
	}
	s.repo.Fallback.Contracts.Add(c)
	observe("contract", "upload", w.Source)

	s.notify(ctx, &w, notify.ContractProcess, name, models.ContractUploaded{
		FileName:     name,
		ContractType: c.ContractType,
		FileSize:     c.FileSize,
		UploadedBy:   contractUploader,
		Action:       models.ActionProcessContract,
		Timestamp:    s.now(),
	})
	return c, w, nil
}

// DownloadContract reads the file from the share, or the content kept in
// the fallback store.
func (s *Service) DownloadContract(ctx context.Context, name string) ([]byte, Source, error) {
	data, err := s.repo.Contracts.Download(ctx, name)
	if err == nil {
		observe("contract", "download", SourceRemote)
		return data, SourceRemote, nil
	}
	contractFellBack("download", name, err)

	if c, ok := s.repo.Fallback.Contracts.FindByName(name); ok && len(c.Content) > 0 {
		observe("contract", "download", SourceFallback)
		return c.Content, SourceFallback, nil
	}
	return nil, "", fmt.Errorf("contract %s: %w", name, ErrNotFound)
}

func (s *Service) DeleteContract(ctx context.Context, name string) (Written, error) {
	w := Written{Id: name, Source: SourceRemote}
	if err := s.repo.Contracts.Delete(ctx, name); err != nil {
		contractFellBack("delete", name, err)
		w.Source, w.RemoteErr = SourceFallback, err
	}
	s.repo.Fallback.Contracts.DeleteByName(name)
	observe("contract", "delete", w.Source)
	return w, nil
}
