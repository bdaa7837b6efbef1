package businessflow

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/artemmak/showreel/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakePricingSettingsRepo struct {
	mu      sync.Mutex
	rows    []*models.PricingSettings
	err     error
	saveErr error
}

func (r *fakePricingSettingsRepo) ByID(ctx context.Context, id uint) (*models.PricingSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (r *fakePricingSettingsRepo) ByFilter(ctx context.Context, filter models.PricingSettingsFilter, orderBy string, limit, offset int) ([]*models.PricingSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.PricingSettings(nil), r.rows...), r.err
}

func (r *fakePricingSettingsRepo) Save(ctx context.Context, entity *models.PricingSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	entity.ID = uint(len(r.rows) + 1)
	r.rows = append(r.rows, entity)
	return nil
}

func (r *fakePricingSettingsRepo) SaveBatch(ctx context.Context, entities []*models.PricingSettings) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakePricingSettingsRepo) Count(ctx context.Context, filter models.PricingSettingsFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), r.err
}

func (r *fakePricingSettingsRepo) Exists(ctx context.Context, filter models.PricingSettingsFilter) (bool, error) {
	n, err := r.Count(ctx, filter)
	return n > 0, err
}

func (r *fakePricingSettingsRepo) Latest(ctx context.Context) (*models.PricingSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if len(r.rows) == 0 {
		return nil, nil
	}
	return r.rows[len(r.rows)-1], nil
}

type fakeProjectRequestRepo struct {
	mu      sync.Mutex
	rows    []*models.ProjectRequest
	saveErr error
}

func (r *fakeProjectRequestRepo) ByID(ctx context.Context, id uint) (*models.ProjectRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, nil
}

func (r *fakeProjectRequestRepo) match(filter models.ProjectRequestFilter) []*models.ProjectRequest {
	out := make([]*models.ProjectRequest, 0, len(r.rows))
	for _, row := range r.rows {
		if filter.Status != nil && row.Status != *filter.Status {
			continue
		}
		if filter.Source != nil && row.Source != *filter.Source {
			continue
		}
		if filter.UUID != nil && row.UUID != *filter.UUID {
			continue
		}
		out = append(out, row)
	}
	return out
}

func (r *fakeProjectRequestRepo) ByFilter(ctx context.Context, filter models.ProjectRequestFilter, orderBy string, limit, offset int) ([]*models.ProjectRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.match(filter)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	if offset > 0 {
		if offset >= len(rows) {
			return []*models.ProjectRequest{}, nil
		}
		rows = rows[offset:]
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *fakeProjectRequestRepo) Save(ctx context.Context, entity *models.ProjectRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	if err := entity.BeforeCreate(nil); err != nil {
		return err
	}
	entity.ID = uint(len(r.rows) + 1)
	r.rows = append(r.rows, entity)
	return nil
}

func (r *fakeProjectRequestRepo) SaveBatch(ctx context.Context, entities []*models.ProjectRequest) error {
	for _, e := range entities {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeProjectRequestRepo) Count(ctx context.Context, filter models.ProjectRequestFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.match(filter))), nil
}

func (r *fakeProjectRequestRepo) Exists(ctx context.Context, filter models.ProjectRequestFilter) (bool, error) {
	n, err := r.Count(ctx, filter)
	return n > 0, err
}

func (r *fakeProjectRequestRepo) ByUUID(ctx context.Context, id uuid.UUID) (*models.ProjectRequest, error) {
	rows, err := r.ByFilter(ctx, models.ProjectRequestFilter{UUID: &id}, "", 1, 0)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *fakeProjectRequestRepo) UpdateStatus(ctx context.Context, id uint, status models.ProjectRequestStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			row.Status = status
			return nil
		}
	}
	return errors.New("project request not found")
}

type fakeSiteContentRepo struct {
	mu   sync.Mutex
	rows map[string]*models.SiteContent
	err  error
}

func newFakeSiteContentRepo(rows ...*models.SiteContent) *fakeSiteContentRepo {
	r := &fakeSiteContentRepo{rows: make(map[string]*models.SiteContent)}
	for _, row := range rows {
		r.rows[row.ID] = row
	}
	return r
}

func (r *fakeSiteContentRepo) ByKey(ctx context.Context, key string) (*models.SiteContent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	row, ok := r.rows[key]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *fakeSiteContentRepo) List(ctx context.Context, filter models.SiteContentFilter) ([]*models.SiteContent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	keys := make([]string, 0, len(r.rows))
	for k := range r.rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*models.SiteContent, 0, len(keys))
	for _, k := range keys {
		cp := *r.rows[k]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSiteContentRepo) Upsert(ctx context.Context, content *models.SiteContent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	cp := *content
	r.rows[content.ID] = &cp
	return nil
}

type fakeProjectRepo struct {
	mu     sync.Mutex
	rows   map[string]*models.Project
	nextID uint
	err    error
}

func newFakeProjectRepo(rows ...*models.Project) *fakeProjectRepo {
	r := &fakeProjectRepo{rows: make(map[string]*models.Project)}
	for _, row := range rows {
		r.nextID++
		row.ID = r.nextID
		r.rows[row.Slug] = row
	}
	return r
}

func (r *fakeProjectRepo) ByID(ctx context.Context, id uint) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProjectRepo) ByFilter(ctx context.Context, filter models.ProjectFilter, orderBy string, limit, offset int) ([]*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*models.Project, 0, len(r.rows))
	for _, row := range r.rows {
		if filter.Slug != nil && row.Slug != *filter.Slug {
			continue
		}
		if filter.IsPublished != nil && row.IsPublished != *filter.IsPublished {
			continue
		}
		if filter.Tag != nil && !row.HasTag(*filter.Tag) {
			continue
		}
		cp := *row
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeProjectRepo) Save(ctx context.Context, entity *models.Project) error {
	return r.Upsert(ctx, entity)
}

func (r *fakeProjectRepo) SaveBatch(ctx context.Context, entities []*models.Project) error {
	for _, e := range entities {
		if err := r.Upsert(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeProjectRepo) Count(ctx context.Context, filter models.ProjectFilter) (int64, error) {
	rows, err := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(rows)), err
}

func (r *fakeProjectRepo) Exists(ctx context.Context, filter models.ProjectFilter) (bool, error) {
	n, err := r.Count(ctx, filter)
	return n > 0, err
}

func (r *fakeProjectRepo) BySlug(ctx context.Context, slug string) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	row, ok := r.rows[slug]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *fakeProjectRepo) Upsert(ctx context.Context, project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if prev, ok := r.rows[project.Slug]; ok {
		project.ID = prev.ID
		project.CreatedAt = prev.CreatedAt
	} else {
		r.nextID++
		project.ID = r.nextID
	}
	_ = project.BeforeSave(nil)
	cp := *project
	r.rows[project.Slug] = &cp
	return nil
}

func (r *fakeProjectRepo) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	if _, ok := r.rows[slug]; !ok {
		return false, nil
	}
	delete(r.rows, slug)
	return true, nil
}

// fakeShowcaseRepo keeps entries in insertion order; id and visible read the entry's fields
type fakeShowcaseRepo[T any] struct {
	mu      sync.Mutex
	rows    []*T
	id      func(*T) *uint
	visible func(*T) bool
	nextID  uint
	err     error
}

func newFakeShowcaseRepo[T any](id func(*T) *uint, visible func(*T) bool, rows ...*T) *fakeShowcaseRepo[T] {
	r := &fakeShowcaseRepo[T]{id: id, visible: visible}
	for _, row := range rows {
		r.nextID++
		*r.id(row) = r.nextID
		r.rows = append(r.rows, row)
	}
	return r
}

func newFakeHeroStatRepo(rows ...*models.HeroStat) *fakeShowcaseRepo[models.HeroStat] {
	return newFakeShowcaseRepo(
		func(s *models.HeroStat) *uint { return &s.ID },
		func(s *models.HeroStat) bool { return s.IsVisible },
		rows...,
	)
}

func newFakeSocialLinkRepo(rows ...*models.SocialLink) *fakeShowcaseRepo[models.SocialLink] {
	return newFakeShowcaseRepo(
		func(l *models.SocialLink) *uint { return &l.ID },
		func(l *models.SocialLink) bool { return l.IsVisible },
		rows...,
	)
}

func newFakeAIToolRepo(rows ...*models.AITool) *fakeShowcaseRepo[models.AITool] {
	return newFakeShowcaseRepo(
		func(t *models.AITool) *uint { return &t.ID },
		nil,
		rows...,
	)
}

func (r *fakeShowcaseRepo[T]) ByID(ctx context.Context, id uint) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if *r.id(row) == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeShowcaseRepo[T]) List(ctx context.Context, visibleOnly bool) ([]*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*T, 0, len(r.rows))
	for _, row := range r.rows {
		if visibleOnly && r.visible != nil && !r.visible(row) {
			continue
		}
		cp := *row
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeShowcaseRepo[T]) Upsert(ctx context.Context, entity *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	cp := *entity
	id := *r.id(entity)
	if id == 0 {
		r.nextID++
		*r.id(entity) = r.nextID
		*r.id(&cp) = r.nextID
		r.rows = append(r.rows, &cp)
		return nil
	}
	for i, row := range r.rows {
		if *r.id(row) == id {
			r.rows[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeShowcaseRepo[T]) Delete(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	for i, row := range r.rows {
		if *r.id(row) == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
