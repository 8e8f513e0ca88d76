package persona

import (
	"context"
	"time"

	"makementors-be/internal/constant"
	"makementors-be/internal/entity"
	"makementors-be/internal/pkg/logger"
	"makementors-be/internal/repository/specification"
	"makementors-be/internal/repository/unitofwork"

	"github.com/patrickmn/go-cache"
)

// Persona is the resolved identity the relay speaks as.
type Persona struct {
	Kind         Kind
	MentorId     string
	DisplayName  string
	SystemPrompt string
	// Generic is set when resolution fell back to the default assistant
	// because neither catalog had the requested mentor.
	Generic bool
}

// Resolver turns a MentorRef into a Persona. Template rows are static
// seed data, so they sit in an in-process cache; custom mentors are
// per-user and read through to the store every time.
type Resolver struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	templates  *cache.Cache
}

func NewResolver(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) *Resolver {
	// Template catalog changes only on reseed; purge slowly.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &Resolver{
		uowFactory: uowFactory,
		logger:     logger,
		templates:  c,
	}
}

// Resolve looks the mentor up in the catalog the ref points at. A miss
// in either catalog degrades to the generic assistant persona instead
// of failing the request.
func (r *Resolver) Resolve(ctx context.Context, ref MentorRef) Persona {
	switch ref.Kind {
	case KindTemplate:
		if tpl := r.lookupTemplate(ctx, ref.TemplateId); tpl != nil {
			return Persona{
				Kind:         KindTemplate,
				MentorId:     tpl.TemplateId,
				DisplayName:  tpl.DisplayName,
				SystemPrompt: tpl.SystemPromptBase,
			}
		}
	case KindCustom:
		if m := r.lookupCustom(ctx, ref); m != nil {
			return Persona{
				Kind:         KindCustom,
				MentorId:     m.Id.String(),
				DisplayName:  m.Name,
				SystemPrompt: CustomSystemPrompt(m.Name, m.Description),
			}
		}
	}

	r.logger.Warn("Persona", "Mentor not found in either catalog, using generic persona", map[string]interface{}{
		"mentor_id": ref.Id(),
		"kind":      string(ref.Kind),
	})

	return Persona{
		Kind:         ref.Kind,
		MentorId:     ref.Id(),
		DisplayName:  "Mentor",
		SystemPrompt: constant.GenericSystemPrompt,
		Generic:      true,
	}
}

func (r *Resolver) lookupTemplate(ctx context.Context, templateId string) *entity.MentorTemplate {
	if x, found := r.templates.Get(templateId); found {
		return x.(*entity.MentorTemplate)
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	tpl, err := uow.MentorTemplateRepository().FindOne(ctx, specification.ByTemplateID{TemplateID: templateId})
	if err != nil {
		r.logger.Error("Persona", "Failed to load mentor template", map[string]interface{}{
			"template_id": templateId,
			"error":       err.Error(),
		})
		return nil
	}
	if tpl == nil {
		return nil
	}

	r.templates.Set(templateId, tpl, cache.DefaultExpiration)
	return tpl
}

func (r *Resolver) lookupCustom(ctx context.Context, ref MentorRef) *entity.Mentor {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	m, err := uow.MentorRepository().FindOne(ctx, specification.ByID{ID: ref.CustomId})
	if err != nil {
		r.logger.Error("Persona", "Failed to load custom mentor", map[string]interface{}{
			"mentor_id": ref.CustomId.String(),
			"error":     err.Error(),
		})
		return nil
	}
	return m
}

// InvalidateTemplate drops a cached template, e.g. after reseeding.
func (r *Resolver) InvalidateTemplate(templateId string) {
	r.templates.Delete(templateId)
}
