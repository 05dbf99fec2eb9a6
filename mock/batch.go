package mock

import (
	"context"

	"github.com/fwojciec/htmlpatch"
)

var _ htmlpatch.BatchService = (*BatchService)(nil)

// BatchService is a mock implementation of htmlpatch.BatchService.
type BatchService struct {
	CreateBatchFn     func(ctx context.Context, batch *htmlpatch.Batch) error
	FindBatchByIDFn   func(ctx context.Context, id string) (*htmlpatch.Batch, error)
	FindBatchesFn     func(ctx context.Context, filter htmlpatch.BatchFilter) ([]*htmlpatch.Batch, error)
	UpdateBatchFn     func(ctx context.Context, id string, upd htmlpatch.BatchUpdate) (*htmlpatch.Batch, error)
	FindBatchFilesFn  func(ctx context.Context, filter htmlpatch.BatchFileFilter) ([]*htmlpatch.BatchFile, error)
	UpdateBatchFileFn func(ctx context.Context, id string, upd htmlpatch.BatchFileUpdate) (*htmlpatch.BatchFile, error)
}

func (s *BatchService) CreateBatch(ctx context.Context, batch *htmlpatch.Batch) error {
	return s.CreateBatchFn(ctx, batch)
}

func (s *BatchService) FindBatchByID(ctx context.Context, id string) (*htmlpatch.Batch, error) {
	return s.FindBatchByIDFn(ctx, id)
}

func (s *BatchService) FindBatches(ctx context.Context, filter htmlpatch.BatchFilter) ([]*htmlpatch.Batch, error) {
	return s.FindBatchesFn(ctx, filter)
}

func (s *BatchService) UpdateBatch(ctx context.Context, id string, upd htmlpatch.BatchUpdate) (*htmlpatch.Batch, error) {
	return s.UpdateBatchFn(ctx, id, upd)
}

func (s *BatchService) FindBatchFiles(ctx context.Context, filter htmlpatch.BatchFileFilter) ([]*htmlpatch.BatchFile, error) {
	return s.FindBatchFilesFn(ctx, filter)
}

func (s *BatchService) UpdateBatchFile(ctx context.Context, id string, upd htmlpatch.BatchFileUpdate) (*htmlpatch.BatchFile, error) {
	return s.UpdateBatchFileFn(ctx, id, upd)
}
