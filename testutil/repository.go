package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"

	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/repository/contract"
	"ai-gateway-be/internal/repository/specification"
	"ai-gateway-be/internal/repository/unitofwork"
)

// FakeRepositoryFactory is an in-memory relational store. The *Err fields
// make the matching operation fail.
type FakeRepositoryFactory struct {
	mu sync.Mutex

	Logs       []*entity.LogRecord
	Images     []*entity.ImageArtifact
	FileNodes  []*entity.FileNode
	Embeddings []*entity.Embedding

	LogCreateErr       error
	LogFindErr         error
	ImageCreateErr     error
	FileNodeErr        error
	EmbeddingCreateErr error
	PingErr            error

	Commits   int
	Rollbacks int

	seq int64
}

func NewFakeRepositoryFactory() *FakeRepositoryFactory {
	return &FakeRepositoryFactory{}
}

var _ unitofwork.RepositoryFactory = (*FakeRepositoryFactory)(nil)

func (f *FakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{f: f}
}

func (f *FakeRepositoryFactory) Ping(ctx context.Context) error {
	return f.PingErr
}

func (f *FakeRepositoryFactory) LogCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Logs)
}

func (f *FakeRepositoryFactory) LogsOfKind(kind entity.LogKind) []*entity.LogRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.LogRecord
	for _, l := range f.Logs {
		if l.Kind == kind {
			out = append(out, l)
		}
	}
	return out
}

func (f *FakeRepositoryFactory) ImageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Images)
}

func (f *FakeRepositoryFactory) NodeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.FileNodes)
}

type fakeUnitOfWork struct {
	f      *FakeRepositoryFactory
	active bool
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return errors.New("transaction already started")
	}
	u.active = true
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	if !u.active {
		return errors.New("no transaction to commit")
	}
	u.active = false
	u.f.mu.Lock()
	u.f.Commits++
	u.f.mu.Unlock()
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if !u.active {
		return errors.New("no transaction to rollback")
	}
	u.active = false
	u.f.mu.Lock()
	u.f.Rollbacks++
	u.f.mu.Unlock()
	return nil
}

func (u *fakeUnitOfWork) RequestLogRepository() contract.RequestLogRepository {
	return fakeRequestLogRepo{u.f}
}

func (u *fakeUnitOfWork) ImageArtifactRepository() contract.ImageArtifactRepository {
	return fakeImageRepo{u.f}
}

func (u *fakeUnitOfWork) FileNodeRepository() contract.FileNodeRepository {
	return fakeFileNodeRepo{u.f}
}

func (u *fakeUnitOfWork) EmbeddingRepository() contract.EmbeddingRepository {
	return fakeEmbeddingRepo{u.f}
}

// query collects the specifications the fakes understand.
type query struct {
	path      *string
	kind      *string
	namespace *string
	desc      bool
	limit     int
}

func parse(specs []specification.Specification) query {
	var q query
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByPath:
			p := v.Path
			q.path = &p
		case specification.ByKind:
			k := v.Kind
			q.kind = &k
		case specification.ByNamespace:
			n := v.Namespace
			q.namespace = &n
		case specification.OrderBy:
			q.desc = v.Desc
		case specification.Pagination:
			q.limit = v.Limit
		}
	}
	return q
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

type fakeRequestLogRepo struct{ f *FakeRepositoryFactory }

func (r fakeRequestLogRepo) Create(ctx context.Context, record *entity.LogRecord) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if r.f.LogCreateErr != nil {
		return r.f.LogCreateErr
	}
	r.f.seq++
	record.Seq = r.f.seq
	cp := *record
	r.f.Logs = append(r.f.Logs, &cp)
	return nil
}

func (r fakeRequestLogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LogRecord, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if r.f.LogFindErr != nil {
		return nil, r.f.LogFindErr
	}
	q := parse(specs)
	var out []*entity.LogRecord
	for _, l := range r.f.Logs {
		if q.kind != nil && string(l.Kind) != *q.kind {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if q.desc {
			return out[i].Seq > out[j].Seq
		}
		return out[i].Seq < out[j].Seq
	})
	return limit(out, q.limit), nil
}

type fakeImageRepo struct{ f *FakeRepositoryFactory }

func (r fakeImageRepo) Create(ctx context.Context, artifact *entity.ImageArtifact) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if r.f.ImageCreateErr != nil {
		return r.f.ImageCreateErr
	}
	cp := *artifact
	r.f.Images = append(r.f.Images, &cp)
	return nil
}

func (r fakeImageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ImageArtifact, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			for _, a := range r.f.Images {
				if a.Id == byID.ID {
					cp := *a
					return &cp, nil
				}
			}
		}
	}
	return nil, nil
}

func (r fakeImageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ImageArtifact, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	q := parse(specs)
	out := make([]*entity.ImageArtifact, 0, len(r.f.Images))
	for _, a := range r.f.Images {
		cp := *a
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if q.desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return limit(out, q.limit), nil
}

type fakeFileNodeRepo struct{ f *FakeRepositoryFactory }

func (r fakeFileNodeRepo) Create(ctx context.Context, node *entity.FileNode) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if r.f.FileNodeErr != nil {
		return r.f.FileNodeErr
	}
	for _, n := range r.f.FileNodes {
		if n.Path == node.Path {
			return nil
		}
	}
	cp := *node
	r.f.FileNodes = append(r.f.FileNodes, &cp)
	return nil
}

func (r fakeFileNodeRepo) Update(ctx context.Context, node *entity.FileNode) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if r.f.FileNodeErr != nil {
		return r.f.FileNodeErr
	}
	for _, n := range r.f.FileNodes {
		if n.Id == node.Id {
			n.Name = node.Name
			n.Type = node.Type
			n.UpdatedAt = node.UpdatedAt
		}
	}
	return nil
}

func (r fakeFileNodeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FileNode, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if r.f.FileNodeErr != nil {
		return nil, r.f.FileNodeErr
	}
	q := parse(specs)
	for _, n := range r.f.FileNodes {
		if q.path != nil && n.Path == *q.path {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeFileNodeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FileNode, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if r.f.FileNodeErr != nil {
		return nil, r.f.FileNodeErr
	}
	out := make([]*entity.FileNode, 0, len(r.f.FileNodes))
	for _, n := range r.f.FileNodes {
		cp := *n
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

type fakeEmbeddingRepo struct{ f *FakeRepositoryFactory }

func (r fakeEmbeddingRepo) Create(ctx context.Context, e *entity.Embedding) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	if r.f.EmbeddingCreateErr != nil {
		return r.f.EmbeddingCreateErr
	}
	cp := *e
	r.f.Embeddings = append(r.f.Embeddings, &cp)
	return nil
}

func (r fakeEmbeddingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	q := parse(specs)
	var n int64
	for _, e := range r.f.Embeddings {
		if q.namespace != nil && e.Namespace != *q.namespace {
			continue
		}
		n++
	}
	return n, nil
}
