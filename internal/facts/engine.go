package facts

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"vigil/internal/logging"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"
)

//go:embed schema.mg
var schema string

// Engine wraps the Mangle engine: the embedded schema is analyzed once,
// facts are appended in batches, and the rules re-evaluate after every
// batch so derived predicates stay current.
type Engine struct {
	mu             sync.Mutex
	store          factstore.ConcurrentFactStore
	programInfo    *analysis.ProgramInfo
	predicateIndex map[string]ast.PredicateSym
}

// NewEngine analyzes the embedded schema and returns a ready engine.
func NewEngine() (*Engine, error) {
	unit, err := parse.Unit(strings.NewReader(schema))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	programInfo, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return nil, fmt.Errorf("analyze schema: %w", err)
	}

	e := &Engine{
		store:          factstore.NewConcurrentFactStore(factstore.NewSimpleInMemoryStore()),
		programInfo:    programInfo,
		predicateIndex: make(map[string]ast.PredicateSym, len(programInfo.Decls)),
	}
	for sym := range programInfo.Decls {
		e.predicateIndex[sym.Symbol] = sym
	}
	return e, nil
}

// AddFacts inserts a batch of facts and re-evaluates the derived rules.
func (e *Engine) AddFacts(facts []Fact) error {
	if len(facts) == 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, fact := range facts {
		atom, err := e.toAtom(fact)
		if err != nil {
			return err
		}
		e.store.Add(atom)
	}
	logging.FactsDebug("inserted %d facts", len(facts))

	_, err := mengine.EvalProgramWithStats(e.programInfo, e.store)
	return err
}

// Facts returns the stored facts for a predicate, derived ones included
// once the rules have evaluated.
func (e *Engine) Facts(predicate string) ([]Fact, error) {
	e.mu.Lock()
	sym, ok := e.predicateIndex[predicate]
	e.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("predicate %s is not declared in the schema", predicate)
	}

	var results []Fact
	err := e.store.GetFacts(ast.NewQuery(sym), func(atom ast.Atom) error {
		args := make([]interface{}, len(atom.Args))
		for i, arg := range atom.Args {
			args[i] = baseTermToInterface(arg)
		}
		results = append(results, Fact{Predicate: predicate, Args: args})
		return nil
	})
	return results, err
}

// FactCount estimates the stored fact count, derived facts included.
func (e *Engine) FactCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.EstimateFactCount()
}

// Predicates lists the predicate names the schema declares or derives.
func (e *Engine) Predicates() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, 0, len(e.predicateIndex))
	for name := range e.predicateIndex {
		names = append(names, name)
	}
	return names
}

func (e *Engine) toAtom(fact Fact) (ast.Atom, error) {
	sym, ok := e.predicateIndex[fact.Predicate]
	if !ok {
		return ast.Atom{}, fmt.Errorf("predicate %s is not declared in the schema", fact.Predicate)
	}
	if len(fact.Args) != sym.Arity {
		return ast.Atom{}, fmt.Errorf("predicate %s expects %d args, got %d", fact.Predicate, sym.Arity, len(fact.Args))
	}

	args := make([]ast.BaseTerm, len(fact.Args))
	for i, raw := range fact.Args {
		term, err := toBaseTerm(raw)
		if err != nil {
			return ast.Atom{}, fmt.Errorf("predicate %s arg %d: %w", fact.Predicate, i, err)
		}
		args[i] = term
	}
	return ast.Atom{Predicate: sym, Args: args}, nil
}

func toBaseTerm(value interface{}) (ast.BaseTerm, error) {
	switch v := value.(type) {
	case string:
		if strings.HasPrefix(v, "/") {
			name, err := ast.Name(v)
			if err != nil {
				return nil, err
			}
			return name, nil
		}
		return ast.String(v), nil
	case int:
		return ast.Number(int64(v)), nil
	case int64:
		return ast.Number(v), nil
	case bool:
		if v {
			return ast.TrueConstant, nil
		}
		return ast.FalseConstant, nil
	}
	return nil, fmt.Errorf("unsupported fact argument type %T", value)
}

func baseTermToInterface(term ast.BaseTerm) interface{} {
	c, ok := term.(ast.Constant)
	if !ok {
		return term.String()
	}
	switch c.Type {
	case ast.StringType, ast.NameType:
		return c.Symbol
	case ast.NumberType:
		return c.NumValue
	default:
		return c.String()
	}
}
