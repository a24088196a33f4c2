package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"ai-gateway-be/internal/constant"
	"ai-gateway-be/internal/dto"
	"ai-gateway-be/internal/entity"
	"ai-gateway-be/internal/pkg/logger"
	"ai-gateway-be/internal/repository/contract"
	"ai-gateway-be/internal/repository/specification"
	"ai-gateway-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IFileService interface {
	Write(ctx context.Context, req *dto.WriteFileRequest, content string) (*dto.WriteFileResponse, error)
	Read(ctx context.Context, filePath string) (*dto.ProjectFileResponse, error)
	Tree(ctx context.Context) (*dto.FileTreeResponse, error)
}

type fileService struct {
	kv         contract.KeyValueStore
	uowFactory unitofwork.RepositoryFactory
	reqLogger  IRequestLogger
	logger     logger.ILogger
}

func NewFileService(
	kv contract.KeyValueStore,
	uowFactory unitofwork.RepositoryFactory,
	reqLogger IRequestLogger,
	logger logger.ILogger,
) IFileService {
	return &fileService{
		kv:         kv,
		uowFactory: uowFactory,
		reqLogger:  reqLogger,
		logger:     logger,
	}
}

func (s *fileService) Write(ctx context.Context, req *dto.WriteFileRequest, content string) (*dto.WriteFileResponse, error) {
	filePath, err := cleanPath(req.Path)
	if err != nil {
		return nil, err
	}

	storeErr := s.kv.Put(ctx, constant.FileKey(filePath), content)

	s.reqLogger.Record(ctx, entity.LogKindFileEdit,
		map[string]interface{}{
			"path":       filePath,
			"editor":     req.Editor,
			"session_id": req.SessionId,
			"bytes":      len(content),
		},
		map[string]interface{}{
			"stored": storeErr == nil,
		},
	)

	if storeErr != nil {
		return nil, fmt.Errorf("store file content: %w", storeErr)
	}

	if err := s.upsertNode(ctx, filePath); err != nil {
		s.logger.Warn("FileService", "Failed to update file tree", map[string]interface{}{
			"path":  filePath,
			"error": err.Error(),
		})
	}

	return &dto.WriteFileResponse{Success: true, Path: filePath}, nil
}

// upsertNode inserts a file node for the path or bumps its updated_at.
// Parent folders are not created.
func (s *fileService) upsertNode(ctx context.Context, filePath string) (err error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = uow.Rollback()
		}
	}()

	repo := uow.FileNodeRepository()
	now := time.Now().UTC()

	node, err := repo.FindOne(ctx, specification.ByPath{Path: filePath})
	if err != nil {
		return err
	}

	if node == nil {
		err = repo.Create(ctx, &entity.FileNode{
			Id:        uuid.New(),
			Path:      filePath,
			Name:      path.Base(filePath),
			Type:      entity.FileNodeTypeFile,
			UpdatedAt: now,
		})
	} else {
		node.UpdatedAt = now
		err = repo.Update(ctx, node)
	}
	if err != nil {
		return err
	}

	return uow.Commit()
}

func (s *fileService) Read(ctx context.Context, filePath string) (*dto.ProjectFileResponse, error) {
	clean, err := cleanPath(filePath)
	if err != nil {
		return nil, err
	}

	content, found, err := s.kv.Get(ctx, constant.FileKey(clean))
	if err != nil {
		return nil, fmt.Errorf("read file content: %w", err)
	}
	if !found {
		return nil, ErrFileNotFound
	}
	return &dto.ProjectFileResponse{Path: clean, Content: content}, nil
}

func (s *fileService) Tree(ctx context.Context) (*dto.FileTreeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	nodes, err := uow.FileNodeRepository().FindAll(ctx, specification.OrderBy{Field: "path"})
	if err != nil {
		return nil, fmt.Errorf("list file nodes: %w", err)
	}
	return &dto.FileTreeResponse{Root: buildTree(nodes)}, nil
}

// buildTree nests a node under its parent folder when that folder node
// exists. Orphans stay at the root.
func buildTree(nodes []*entity.FileNode) []*dto.FileTreeNode {
	byPath := make(map[string]*dto.FileTreeNode, len(nodes))
	for _, n := range nodes {
		byPath[n.Path] = &dto.FileTreeNode{
			Name:      n.Name,
			Path:      n.Path,
			Type:      n.Type,
			UpdatedAt: n.UpdatedAt,
		}
	}

	root := make([]*dto.FileTreeNode, 0)
	for _, n := range nodes {
		treeNode := byPath[n.Path]
		parent, ok := byPath[n.ParentPath()]
		if ok && parent != treeNode && parent.Type == entity.FileNodeTypeFolder {
			parent.Children = append(parent.Children, treeNode)
			continue
		}
		root = append(root, treeNode)
	}
	return root
}

func cleanPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", ErrInvalidPath
	}
	clean := strings.TrimPrefix(path.Clean("/"+p), "/")
	if clean == "" {
		return "", ErrInvalidPath
	}
	return clean, nil
}
