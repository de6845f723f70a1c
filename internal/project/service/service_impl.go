package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/shopmeter/internal/project/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("project.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Project, error) {
	parsed, err := parseID(id)
	if err != nil {
		return domain.Project{}, err
	}

	project, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return domain.Project{}, err
	}
	if project == nil {
		return domain.Project{}, domain.ErrProjectNotFound
	}
	return *project, nil
}

func (s *Service) Save(ctx context.Context, req domain.SaveRequest) (domain.Project, error) {
	now := time.Now().UTC()

	project := domain.Project{
		ShopDomain:       strings.ToLower(strings.TrimSpace(req.ShopDomain)),
		Image:            req.Image,
		Attributes:       datatypes.JSONMap(req.Attributes),
		AppliedAttribute: req.AppliedAttribute,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if project.Attributes == nil {
		project.Attributes = datatypes.JSONMap{}
	}

	if strings.TrimSpace(req.ID) == "" {
		if project.ShopDomain == "" {
			return domain.Project{}, domain.ErrInvalidShop
		}
		project.ID = s.genID.Generate()
	} else {
		parsed, err := parseID(req.ID)
		if err != nil {
			return domain.Project{}, err
		}

		existing, err := s.repo.FindByID(ctx, parsed)
		if err != nil {
			return domain.Project{}, err
		}
		if existing == nil {
			return domain.Project{}, domain.ErrProjectNotFound
		}
		project.ID = existing.ID
		project.ShopDomain = existing.ShopDomain
		project.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.Upsert(ctx, &project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
