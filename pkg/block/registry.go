package block

import (
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-blockgen/pkg/render"
)

// Lookup resolves definitions by type. Both Builder and Registry implement it
// so advanced definitions can be compiled against a partially built set.
type Lookup interface {
	Lookup(t Type) (Definition, error)
}

// Builder collects definitions before the registry is frozen. It is not safe
// for concurrent use; build the registry once at start-up.
type Builder struct {
	definitions map[Type]Definition
	order       []Type
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{definitions: make(map[Type]Definition)}
}

// Register adds a definition. Duplicate types return ErrDuplicateType.
func (b *Builder) Register(def Definition) error {
	if err := def.validate(); err != nil {
		return err
	}
	if _, exists := b.definitions[def.Type]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateType, def.Type)
	}
	if def.Name == "" {
		def.Name = string(def.Type)
	}
	b.definitions[def.Type] = def
	b.order = append(b.order, def.Type)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (b *Builder) MustRegister(def Definition) {
	if err := b.Register(def); err != nil {
		panic(err)
	}
}

// Lookup returns a registered definition.
func (b *Builder) Lookup(t Type) (Definition, error) {
	def, ok := b.definitions[t]
	if !ok {
		return Definition{}, &UnknownTypeError{Type: t}
	}
	return def, nil
}

// Build freezes the collected definitions. The builder may keep being used;
// later registrations do not affect registries already built.
func (b *Builder) Build() *Registry {
	defs := make(map[Type]Definition, len(b.definitions))
	for key, def := range b.definitions {
		defs[key] = def
	}
	return &Registry{definitions: defs}
}

// Registry is the read-only set of block definitions. It has no mutators, so
// a single value can be shared across goroutines.
type Registry struct {
	definitions map[Type]Definition
}

// Lookup returns the definition for t or an *UnknownTypeError.
func (r *Registry) Lookup(t Type) (Definition, error) {
	def, ok := r.definitions[t]
	if !ok {
		return Definition{}, &UnknownTypeError{Type: t}
	}
	return def, nil
}

// Has reports whether t is registered.
func (r *Registry) Has(t Type) bool {
	_, ok := r.definitions[t]
	return ok
}

// Types returns the registered types sorted by name.
func (r *Registry) Types() []Type {
	types := make([]Type, 0, len(r.definitions))
	for t := range r.definitions {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Definitions returns the registered definitions sorted by type.
func (r *Registry) Definitions() []Definition {
	types := r.Types()
	defs := make([]Definition, 0, len(types))
	for _, t := range types {
		defs = append(defs, r.definitions[t])
	}
	return defs
}

// Create instantiates a node of type t with payload merged over the defaults.
func (r *Registry) Create(t Type, payload Node) (Node, error) {
	def, err := r.Lookup(t)
	if err != nil {
		return Node{}, err
	}
	return def.Create(payload), nil
}

// RenderNode dispatches to the definition registered for the node type.
// Hidden nodes render empty in production mode.
func (r *Registry) RenderNode(params RenderParams) (render.Result, error) {
	if params.Document == nil {
		return nil, errors.New("block: render params have no document")
	}
	t, ok := params.Document.Type(params.Node)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, params.Node)
	}
	def, err := r.Lookup(t)
	if err != nil {
		return nil, err
	}
	if !params.Mode.Testing() {
		if node, _ := params.Document.Node(params.Node); node.Data.IsHidden() {
			return render.Result{}, nil
		}
	}
	if params.Renderer == nil {
		params.Renderer = r
	}
	return def.Render(params)
}

// Render renders the whole document from its root.
func (r *Registry) Render(doc *Document, mode render.Mode, data RenderData) (render.Result, error) {
	if doc == nil {
		return nil, errors.New("block: document is required")
	}
	return r.RenderNode(RenderParams{
		Document: doc,
		Node:     doc.Root(),
		Idx:      RootIdx,
		Mode:     mode,
		Data:     data.Context,
		Theme:    data.Theme,
		Renderer: r,
	})
}

// Validate walks the document and reports every unknown type, misplaced
// node and attribute schema violation, joined into one error.
func (r *Registry) Validate(doc *Document) error {
	if doc == nil {
		return errors.New("block: document is required")
	}
	var errs []error
	doc.Walk(func(id NodeID, depth int) bool {
		node, _ := doc.Node(id)
		idx := doc.Idx(id)
		def, err := r.Lookup(node.Type)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", idx, err))
			return true
		}
		if parent := doc.Parent(id); parent != NoNode {
			parentType, _ := doc.Type(parent)
			if !def.AcceptsParent(parentType) {
				errs = append(errs, fmt.Errorf("%s: %w: %s under %s", idx, ErrInvalidParent, node.Type, parentType))
			}
		}
		if err := validateAttributes(def.Attributes, node.Attributes); err != nil {
			errs = append(errs, fmt.Errorf("%s: %s attributes: %w", idx, node.Type, err))
		}
		return true
	})
	return errors.Join(errs...)
}

func validateAttributes(schema *openapi3.Schema, attrs map[string]string) error {
	if schema == nil {
		return nil
	}
	value := make(map[string]any, len(attrs))
	for key, attr := range attrs {
		value[key] = attr
	}
	return schema.VisitJSON(value, openapi3.MultiErrors())
}
