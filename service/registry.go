package service

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/nestavo/contracts/backend/model"
)

// variableKeyPattern is the grammar a {{TOKEN}} placeholder can express. Keys
// outside it could never be substituted and would survive rendering verbatim.
var variableKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// TemplateRegistry holds immutable contract templates keyed by id.
// A registered template's markup and schema never change; updating a template
// means registering a new id and deactivating the old one. Reads hand out
// copies so callers cannot mutate the registered schema.
type TemplateRegistry struct {
	mu    sync.RWMutex
	byID  map[string]*model.ContractTemplate
	order []string
}

func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		byID: make(map[string]*model.ContractTemplate),
	}
}

// Register adds a template. Duplicate ids are rejected, as are variable keys
// that do not fit the placeholder grammar.
func (r *TemplateRegistry) Register(t *model.ContractTemplate) error {
	for _, v := range t.Variables {
		if !variableKeyPattern.MatchString(v.Key) {
			return fmt.Errorf("%w: %q", model.ErrInvalidVariableKey, v.Key)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[t.ID]; exists {
		return model.ErrDuplicateTemplate
	}

	r.byID[t.ID] = cloneTemplate(t)
	r.order = append(r.order, t.ID)
	return nil
}

// ByID returns a copy of the template with the given id, active or not.
func (r *TemplateRegistry) ByID(id string) (*model.ContractTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return nil, model.ErrTemplateNotFound
	}
	return cloneTemplate(t), nil
}

// ByType returns copies of active templates of the given type in registration order.
func (r *TemplateRegistry) ByType(ct model.ContractType) []*model.ContractTemplate {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.ContractTemplate
	for _, id := range r.order {
		t := r.byID[id]
		if t.Active && t.Type == ct {
			result = append(result, cloneTemplate(t))
		}
	}
	return result
}

// All returns copies of every active template in registration order.
func (r *TemplateRegistry) All() []*model.ContractTemplate {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.ContractTemplate
	for _, id := range r.order {
		if t := r.byID[id]; t.Active {
			result = append(result, cloneTemplate(t))
		}
	}
	return result
}

// Deactivate retires a template without touching its markup or schema.
func (r *TemplateRegistry) Deactivate(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok {
		return model.ErrTemplateNotFound
	}
	t.Active = false
	return nil
}

func cloneTemplate(t *model.ContractTemplate) *model.ContractTemplate {
	out := *t
	out.Variables = make([]model.TemplateVariable, len(t.Variables))
	copy(out.Variables, t.Variables)
	out.Clauses = make([]model.LegalClause, len(t.Clauses))
	copy(out.Clauses, t.Clauses)
	return &out
}
